package ui

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate_UTF8Safe(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "zero max", input: "0b0101", maxLen: 0, want: ""},
		{name: "fits", input: "0b0101", maxLen: 10, want: "0b0101"},
		{name: "ellipsis", input: "0b010101010101", maxLen: 8, want: "0b01010…"},
		{name: "wide runes", input: "配置配置", maxLen: 5, want: "配置…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate output is not valid UTF-8: %q", got)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		i, total, n int
		lo, hi      int
	}{
		{0, 4, 8, 0, 4},
		{0, 16, 5, 0, 5},
		{8, 16, 5, 6, 11},
		{15, 16, 5, 11, 16},
		{14, 16, 4, 12, 16},
	}
	for _, tt := range tests {
		lo, hi := window(tt.i, tt.total, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("window(%d, %d, %d) = [%d, %d), want [%d, %d)", tt.i, tt.total, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}
