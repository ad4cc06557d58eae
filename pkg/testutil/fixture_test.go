package testutil

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

func TestLeafID(t *testing.T) {
	tests := []struct {
		depth, i int
		want     string
	}{
		{1, 0, "0b"},
		{2, 1, "0b1"},
		{3, 0, "0b00"},
		{3, 2, "0b10"},
		{5, 5, "0b0101"},
	}
	for _, tt := range tests {
		if got := LeafID(tt.depth, tt.i); got != tt.want {
			t.Errorf("LeafID(%d, %d) = %q, want %q", tt.depth, tt.i, got, tt.want)
		}
	}
}

func TestLeafID_MatchesTreeOrder(t *testing.T) {
	root := tree.Build(5, 400, 400)
	for i, leaf := range root.Leaves() {
		if got := LeafID(5, i); got != leaf.ID {
			t.Fatalf("leaf %d = %s, LeafID = %s", i, leaf.ID, got)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42, 1, 8).Fixtures(50)
	b := NewGenerator(42, 1, 8).Fixtures(50)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different fixtures")
	}
}

func TestGenerator_FixturesAreValid(t *testing.T) {
	for _, f := range NewGenerator(7, 1, 10).Fixtures(200) {
		if f.Depth < 1 || f.Depth > 10 {
			t.Fatalf("%v: depth out of range", f)
		}
		if f.Radius < 0 || f.Radius > f.Depth-1 {
			t.Fatalf("%v: radius out of range", f)
		}
		if f.Selected != "" && bitid.Bits(f.Selected) != f.Depth-1 {
			t.Fatalf("%v: selection is not a leaf", f)
		}
		if f.Hovered != "" && bitid.Bits(f.Hovered) > f.Depth-1 {
			t.Fatalf("%v: hover below the leaves", f)
		}
	}
}

func TestScenePipeline(t *testing.T) {
	for _, f := range NewGenerator(1, 1, 9).Fixtures(100) {
		t.Run(f.String(), func(t *testing.T) {
			sc := f.Scene(t)
			AssertSceneCounts(t, sc)
			AssertSectorsTile(t, sc)
			AssertFlags(t, sc, f.Selected, f.Hovered)
			if sc.Radius != f.Radius {
				t.Errorf("radius = %d, want %d", sc.Radius, f.Radius)
			}
		})
	}
}

func TestAssertJSONEqual(t *testing.T) {
	type a struct {
		X int `json:"x"`
	}
	type b struct {
		X int `json:"x"`
	}
	AssertJSONEqual(t, a{X: 1}, b{X: 1})
}
