package bitid

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"depth4 extremes", "0b000", "0b111", "0x07"},
		{"self", "0b010", "0b010", "0x00"},
		{"single bit", "0b0", "0b1", "0x01"},
		{"adjacent", "0b0110", "0b0111", "0x01"},
		{"halves", "0b0000000", "0b1000000", "0x40"},
		{"depth16 extremes", "0b" + strings.Repeat("0", 15), "0b" + strings.Repeat("1", 15), "0x7fff"},
		{"nine bits pads to four digits", "0b000000000", "0b000000001", "0x0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Fatalf("Distance(%q, %q) = %q; want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistance_LenientFallback(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"empty selection", "", "0b010"},
		{"root has no payload", "0b", "0b1"},
		{"length mismatch", "0b01", "0b010"},
		{"missing prefix", "1010", "0b10"},
		{"non binary", "0b012", "0b010"},
		{"bad prefix both", "0x01", "0x10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != Zero {
				t.Fatalf("Distance(%q, %q) = %q; want %q", tt.a, tt.b, got, Zero)
			}
		})
	}
}

func genID(bits int) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		var b strings.Builder
		b.WriteString(Prefix)
		for i := 0; i < bits; i++ {
			if rapid.Bool().Draw(t, "bit") {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		return b.String()
	})
}

func TestDistance_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.IntRange(1, 15).Draw(t, "bits")
		a := genID(bits).Draw(t, "a")
		b := genID(bits).Draw(t, "b")

		ab := Distance(a, b)
		if ba := Distance(b, a); ab != ba {
			t.Fatalf("asymmetric: %q vs %q", ab, ba)
		}
		if self := Distance(a, a); Value(self) != 0 {
			t.Fatalf("Distance(a, a) = %q; want zero", self)
		}
		if len(ab)%2 != 0 {
			t.Fatalf("hex %q not even-padded", ab)
		}
		if limit := uint64(1)<<bits - 1; Value(ab) > limit {
			t.Fatalf("distance %d exceeds %d-bit range", Value(ab), bits)
		}
		// Sharing the first k bits means the XOR fits in the remaining bits.
		shared := 0
		for shared < bits && a[len(Prefix)+shared] == b[len(Prefix)+shared] {
			shared++
		}
		if Value(ab) >= uint64(1)<<(bits-shared) {
			t.Fatalf("distance %d too large for %d shared bits of %d", Value(ab), shared, bits)
		}
	})
}

func TestValue(t *testing.T) {
	if got := Value("0x07"); got != 7 {
		t.Fatalf("Value(0x07) = %d", got)
	}
	if got := Value("0x7fff"); got != 32767 {
		t.Fatalf("Value(0x7fff) = %d", got)
	}
	if got := Value("garbage"); got != 0 {
		t.Fatalf("Value(garbage) = %d; want 0", got)
	}
	if got := Value(""); got != 0 {
		t.Fatalf("Value(\"\") = %d; want 0", got)
	}
}

func TestNodeHex(t *testing.T) {
	tests := map[string]string{
		"":        "0x00",
		"0b":      "0x00",
		"0b0111":  "0x07",
		"0b10000": "0x10",
		"0b1":     "0x01",
		"0b12":    "0x00",
	}
	for id, want := range tests {
		if got := NodeHex(id); got != want {
			t.Errorf("NodeHex(%q) = %q; want %q", id, got, want)
		}
	}
}

func TestChildAndLastBit(t *testing.T) {
	left := Child(Root, 0)
	right := Child(Root, 1)
	if left != "0b0" || right != "0b1" {
		t.Fatalf("children of root = %q, %q", left, right)
	}
	if LastBit(left) != '0' || LastBit(right) != '1' {
		t.Fatalf("last bits %c %c", LastBit(left), LastBit(right))
	}
	if LastBit(Root) == '0' || LastBit(Root) == '1' {
		t.Fatalf("root last bit must not look like a side, got %c", LastBit(Root))
	}
	if Bits(Child(left, 1)) != 2 {
		t.Fatalf("Bits(0b01) = %d", Bits(Child(left, 1)))
	}
}
