package session

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

func TestNew(t *testing.T) {
	s := New(40, 1024, 600)
	if s.Depth != tree.MaxDepth {
		t.Fatalf("Depth = %d; want %d", s.Depth, tree.MaxDepth)
	}
	if s.Width != 600 || s.Height != 600 {
		t.Fatalf("viewport %vx%v; want the 600x600 square", s.Width, s.Height)
	}
	if s.Center != (tree.Point{X: 300, Y: 300}) {
		t.Fatalf("Center = %v", s.Center)
	}
}

func TestDepthTransitionsClamp(t *testing.T) {
	s := New(1, 100, 100)
	if s.DecreaseDepth() || s.Depth != 1 {
		t.Fatalf("DecreaseDepth at 1 changed depth to %d", s.Depth)
	}
	for i := 0; i < 30; i++ {
		s.IncreaseDepth()
	}
	if s.Depth != tree.MaxDepth {
		t.Fatalf("Depth = %d after many increases", s.Depth)
	}
	if s.IncreaseDepth() {
		t.Fatal("IncreaseDepth at the maximum reported a change")
	}
	tests := map[int]int{0: 1, -5: 1, 7: 7, 16: 16, 99: 16}
	for in, want := range tests {
		s.SetDepth(in)
		if s.Depth != want {
			t.Errorf("SetDepth(%d) -> %d; want %d", in, s.Depth, want)
		}
	}
}

func TestDepthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New(rapid.IntRange(-20, 40).Draw(t, "start"), 500, 500)
		steps := rapid.SliceOf(rapid.IntRange(0, 2)).Draw(t, "steps")
		for _, step := range steps {
			switch step {
			case 0:
				s.IncreaseDepth()
			case 1:
				s.DecreaseDepth()
			case 2:
				s.SetRadius(rapid.IntRange(-3, 20).Draw(t, "radius"))
			}
			if s.Depth < tree.MinDepth || s.Depth > tree.MaxDepth {
				t.Fatalf("depth %d out of range", s.Depth)
			}
			if s.Radius < 0 || s.Radius > s.Depth-1 {
				t.Fatalf("radius %d out of range at depth %d", s.Radius, s.Depth)
			}
		}
	})
}

func TestSelectOnlyLeaves(t *testing.T) {
	s := New(4, 800, 800)
	root := tree.Build(s.Depth, s.Width, s.Height)

	for _, id := range []string{"0b", "0b0", "0b01"} {
		if s.Select(root.Find(id)) {
			t.Fatalf("Select(%s) changed the selection", id)
		}
		if s.Selected != "" {
			t.Fatalf("Select(%s) set %q", id, s.Selected)
		}
	}
	if s.Select(nil) {
		t.Fatal("Select(nil) changed the selection")
	}
	if !s.Select(root.Find("0b101")) || s.Selected != "0b101" {
		t.Fatalf("leaf not selected: %q", s.Selected)
	}
	if s.Select(root.Find("0b101")) {
		t.Fatal("reselecting the same leaf reported a change")
	}
	if s.Select(root.Find("0b10")) || s.Selected != "0b101" {
		t.Fatalf("internal node replaced the selection: %q", s.Selected)
	}
}

func TestSelectByID(t *testing.T) {
	s := New(5, 800, 800)
	if err := s.SelectByID("0b0110"); err != nil {
		t.Fatalf("SelectByID: %v", err)
	}
	for _, id := range []string{"0b011", "0b01101", "0b01x0", "0110", ""} {
		err := s.SelectByID(id)
		if !errors.Is(err, ErrNotLeaf) {
			t.Errorf("SelectByID(%q) = %v; want ErrNotLeaf", id, err)
		}
	}
	if s.Selected != "0b0110" {
		t.Fatalf("failed SelectByID changed the selection to %q", s.Selected)
	}
	s.Deselect()
	if s.HasSelection() {
		t.Fatal("Deselect kept the selection")
	}
}

func TestDepthChangeKeepsSelection(t *testing.T) {
	s := New(4, 800, 800)
	_ = s.SelectByID("0b010")
	s.IncreaseDepth()
	if s.Selected != "0b010" {
		t.Fatalf("selection dropped: %q", s.Selected)
	}
	if !s.Stale() {
		t.Fatal("selection from depth 4 should be stale at depth 5")
	}
	s.DecreaseDepth()
	if s.Stale() {
		t.Fatal("selection should be valid again at depth 4")
	}
}

func TestDepthChangeClearsSelectionWithPolicy(t *testing.T) {
	s := New(4, 800, 800)
	s.Policy.ClearOnDepthChange = true
	_ = s.SelectByID("0b010")
	if s.SetDepth(4) {
		t.Fatal("SetDepth to the same depth reported a change")
	}
	if s.Selected == "" {
		t.Fatal("no-op depth change cleared the selection")
	}
	s.DecreaseDepth()
	if s.Selected != "" {
		t.Fatalf("selection kept: %q", s.Selected)
	}
}

func TestHover(t *testing.T) {
	s := New(3, 800, 800)
	root := tree.Build(s.Depth, s.Width, s.Height)
	s.Hover(root.Find("0b1"))
	if s.Hovered != "0b1" {
		t.Fatalf("Hovered = %q", s.Hovered)
	}
	s.Hover(root)
	if s.Hovered != "0b" {
		t.Fatalf("Hovered = %q", s.Hovered)
	}
	s.Unhover()
	if s.Hovered != "" {
		t.Fatalf("Unhover left %q", s.Hovered)
	}
	s.Hover(root.Find("0b00"))
	s.Hover(nil)
	if s.Hovered != "" {
		t.Fatalf("Hover(nil) left %q", s.Hovered)
	}
}

func TestRadius(t *testing.T) {
	s := New(4, 800, 800)
	if !s.IncreaseRadius() || s.Radius != 1 {
		t.Fatalf("Radius = %d", s.Radius)
	}
	s.SetRadius(10)
	if s.Radius != 3 {
		t.Fatalf("Radius = %d; want clamp to 3", s.Radius)
	}
	s.SetDepth(2)
	if s.Radius != 1 {
		t.Fatalf("Radius = %d after shrinking to depth 2", s.Radius)
	}
	s.DecreaseRadius()
	if s.DecreaseRadius() || s.Radius != 0 {
		t.Fatalf("Radius = %d; want 0", s.Radius)
	}
}

func TestSetCanvas(t *testing.T) {
	s := New(3, 800, 800)
	s.SetCanvas(1200, 500)
	if s.Width != 1200 || s.Height != 500 || s.Center != (tree.Point{X: 600, Y: 250}) {
		t.Fatalf("canvas %vx%v center %v", s.Width, s.Height, s.Center)
	}
}
