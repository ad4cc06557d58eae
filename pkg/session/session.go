// Package session holds the interaction state of the heat wheel: the tree
// depth, the selected and hovered nodes, the highlight radius and the
// viewport. The state is a plain value owned by its caller and changed only
// through the transition methods below.
package session

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// ErrNotLeaf is returned by SelectByID for ids that are not leaves of the
// current depth.
var ErrNotLeaf = errors.New("not a leaf of the current depth")

// Policy tunes transitions whose behavior is a matter of taste.
type Policy struct {
	// ClearOnDepthChange drops the selection whenever the depth changes.
	// When false a selection from another depth is kept (and reported by
	// Stale) until the user selects again.
	ClearOnDepthChange bool
}

// State is the interaction state.
type State struct {
	Depth    int
	Selected string // leaf id or ""
	Hovered  string // node id or ""
	Radius   int    // in-radius threshold exponent, [0, Depth-1]

	Width, Height float64
	Center        tree.Point

	Policy Policy
}

// New returns a state at the given depth (clamped) with a square viewport.
func New(depth int, width, height float64) State {
	s := State{Depth: tree.ClampDepth(depth)}
	s.SetViewport(width, height)
	return s
}

// IncreaseDepth grows the tree by one level, up to tree.MaxDepth.
func (s *State) IncreaseDepth() bool {
	return s.SetDepth(s.Depth + 1)
}

// DecreaseDepth shrinks the tree by one level, down to tree.MinDepth.
func (s *State) DecreaseDepth() bool {
	return s.SetDepth(s.Depth - 1)
}

// SetDepth sets the depth, clamped to [tree.MinDepth, tree.MaxDepth]. It
// reports whether the depth changed.
func (s *State) SetDepth(n int) bool {
	n = tree.ClampDepth(n)
	if n == s.Depth {
		return false
	}
	debug.Log("session: depth %d -> %d", s.Depth, n)
	s.Depth = n
	if s.Policy.ClearOnDepthChange {
		s.Selected = ""
	}
	s.Radius = s.clampRadius(s.Radius)
	return true
}

// Select makes node the selection when it is a leaf of the current depth.
// Other nodes leave the state untouched. It reports whether the selection
// changed.
func (s *State) Select(node *tree.Node) bool {
	if node == nil || node.Depth != s.Depth-1 {
		return false
	}
	if s.Selected == node.ID {
		return false
	}
	s.Selected = node.ID
	return true
}

// SelectByID selects the leaf with the given id without a built tree.
func (s *State) SelectByID(id string) error {
	if !bitid.Valid(id) || bitid.Bits(id) != s.Depth-1 {
		return fmt.Errorf("select %q at depth %d: %w", id, s.Depth, ErrNotLeaf)
	}
	s.Selected = id
	return nil
}

// Deselect clears the selection.
func (s *State) Deselect() {
	s.Selected = ""
}

// Hover marks node as hovered. Any node may be hovered.
func (s *State) Hover(node *tree.Node) {
	if node == nil {
		s.Hovered = ""
		return
	}
	s.Hovered = node.ID
}

// Unhover clears the hover.
func (s *State) Unhover() {
	s.Hovered = ""
}

// SetRadius sets the highlight radius, clamped to [0, Depth-1].
func (s *State) SetRadius(r int) bool {
	r = s.clampRadius(r)
	if r == s.Radius {
		return false
	}
	s.Radius = r
	return true
}

// IncreaseRadius widens the highlight by one bit.
func (s *State) IncreaseRadius() bool { return s.SetRadius(s.Radius + 1) }

// DecreaseRadius narrows the highlight by one bit.
func (s *State) DecreaseRadius() bool { return s.SetRadius(s.Radius - 1) }

func (s *State) clampRadius(r int) int {
	if r < 0 {
		return 0
	}
	if r > s.Depth-1 {
		return s.Depth - 1
	}
	return r
}

// SetViewport fits the drawing into the largest square of a w x h window
// and centers on it.
func (s *State) SetViewport(w, h float64) {
	side := min(w, h)
	s.SetCanvas(side, side)
}

// SetCanvas uses an exact w x h drawing area.
func (s *State) SetCanvas(w, h float64) {
	s.Width, s.Height = w, h
	s.Center = tree.Center(w, h)
}

// Stale reports whether the selection names no leaf of the current depth,
// which happens after a depth change under the default policy.
func (s State) Stale() bool {
	return s.Selected != "" && bitid.Bits(s.Selected) != s.Depth-1
}

// HasSelection reports whether a selection is set.
func (s State) HasSelection() bool {
	return s.Selected != ""
}
