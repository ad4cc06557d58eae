// Package bitid handles the bit-string identifiers of tree nodes and the XOR
// distance between them.
//
// An id is the fixed prefix "0b" followed by one bit per edge on the path from
// the root: "0" for a left edge, "1" for a right edge. The root is "0b".
package bitid

import (
	"strconv"
	"strings"
)

// Prefix is the structural marker every id starts with.
const Prefix = "0b"

// Zero is the distance returned for inputs that cannot be compared.
const Zero = "0x00"

// Root is the id of the tree root.
const Root = Prefix

// Child returns the id of the left (bit 0) or right (bit 1) child of id.
func Child(id string, bit int) string {
	if bit == 0 {
		return id + "0"
	}
	return id + "1"
}

// Payload returns the path bits of id, or "" when id is not prefixed.
func Payload(id string) string {
	if !strings.HasPrefix(id, Prefix) {
		return ""
	}
	return id[len(Prefix):]
}

// Bits returns the number of payload bits in id.
func Bits(id string) int {
	return len(Payload(id))
}

// LastBit returns the final character of id. For the root this is the
// trailing 'b' of the prefix, which matches neither side.
func LastBit(id string) byte {
	if id == "" {
		return 0
	}
	return id[len(id)-1]
}

// Valid reports whether id is the prefix followed only by binary digits.
func Valid(id string) bool {
	if !strings.HasPrefix(id, Prefix) {
		return false
	}
	for i := len(Prefix); i < len(id); i++ {
		if id[i] != '0' && id[i] != '1' {
			return false
		}
	}
	return true
}

// Distance returns the XOR of the payloads of a and b as a "0x" hex string.
//
// Inputs without payload bits, of different lengths, or malformed in any way
// yield Zero instead of an error so callers can always render something.
func Distance(a, b string) string {
	if len(a) < len(Prefix)+1 || len(b) < len(Prefix)+1 {
		return Zero
	}
	if len(a) != len(b) {
		return Zero
	}
	if !Valid(a) || !Valid(b) {
		return Zero
	}
	x, err := strconv.ParseUint(Payload(a), 2, 64)
	if err != nil {
		return Zero
	}
	y, err := strconv.ParseUint(Payload(b), 2, 64)
	if err != nil {
		return Zero
	}
	return formatHex(x^y, Bits(a))
}

// Value parses a distance string back into its integer. Malformed strings
// parse as zero.
func Value(distance string) uint64 {
	s := strings.TrimPrefix(distance, "0x")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0
	}
	return v
}

// NodeHex renders the payload of id as even-padded hex, e.g. "0b0111" ->
// "0x07". An empty or malformed id renders as "0x00".
func NodeHex(id string) string {
	p := Payload(id)
	if p == "" || !Valid(id) {
		return Zero
	}
	v, err := strconv.ParseUint(p, 2, 64)
	if err != nil {
		return Zero
	}
	return "0x" + padToEven(strconv.FormatUint(v, 16))
}

func formatHex(v uint64, bits int) string {
	digits := (bits + 3) / 4
	if digits%2 != 0 {
		digits++
	}
	s := strconv.FormatUint(v, 16)
	if len(s) < digits {
		s = strings.Repeat("0", digits-len(s)) + s
	}
	return "0x" + padToEven(s)
}

func padToEven(s string) string {
	if len(s)%2 != 0 {
		return "0" + s
	}
	return s
}
