// Package testutil provides deterministic scene fixtures and assertions for
// tests across packages.
package testutil

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/session"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// SceneFixture describes one frame: a tree depth, the interaction state and
// the canvas.
type SceneFixture struct {
	Depth    int
	Selected string // leaf id or ""
	Hovered  string // node id or ""
	Radius   int
	Width    float64 // defaults to 400
	Height   float64 // defaults to 400
}

func (f SceneFixture) String() string {
	return fmt.Sprintf("depth=%d sel=%q hover=%q r=%d", f.Depth, f.Selected, f.Hovered, f.Radius)
}

// State returns the session state of the fixture.
func (f SceneFixture) State(t *testing.T) session.State {
	t.Helper()
	w, h := f.Width, f.Height
	if w == 0 {
		w = 400
	}
	if h == 0 {
		h = 400
	}
	st := session.New(f.Depth, w, h)
	st.SetRadius(f.Radius)
	if f.Selected != "" {
		if err := st.SelectByID(f.Selected); err != nil {
			t.Fatalf("fixture %v: %v", f, err)
		}
	}
	st.Hovered = f.Hovered
	return st
}

// Scene builds the tree and scene of the fixture with the default ramp.
func (f SceneFixture) Scene(t *testing.T) *heatmap.Scene {
	t.Helper()
	st := f.State(t)
	root := tree.Build(st.Depth, st.Width, st.Height)
	if f.Hovered != "" && root.Find(f.Hovered) == nil {
		t.Fatalf("fixture %v: no node %s", f, f.Hovered)
	}
	return heatmap.BuildScene(root, st, heatmap.DefaultScale(st.Depth))
}

// BuildScene is shorthand for SceneFixture{...}.Scene on a 400x400 canvas.
func BuildScene(t *testing.T, depth int, selected, hovered string) *heatmap.Scene {
	t.Helper()
	return SceneFixture{Depth: depth, Selected: selected, Hovered: hovered}.Scene(t)
}

// LeafID returns the id of leaf i (left to right) of a tree of depth.
func LeafID(depth, i int) string {
	bits := depth - 1
	if bits == 0 {
		return bitid.Root
	}
	s := strconv.FormatUint(uint64(i), 2)
	return bitid.Root + strings.Repeat("0", bits-len(s)) + s
}

// Generator creates random but reproducible fixtures.
type Generator struct {
	rng      *rand.Rand
	minDepth int
	maxDepth int
}

// NewGenerator returns a generator over depths [minDepth, maxDepth].
func NewGenerator(seed int64, minDepth, maxDepth int) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		minDepth: tree.ClampDepth(minDepth),
		maxDepth: tree.ClampDepth(maxDepth),
	}
}

// Fixture returns the next fixture. Selection and hover are each left empty
// one time in four; the hover is any node, leaf or internal.
func (g *Generator) Fixture() SceneFixture {
	f := SceneFixture{Depth: g.minDepth + g.rng.Intn(g.maxDepth-g.minDepth+1)}
	f.Radius = g.rng.Intn(f.Depth)
	if g.rng.Intn(4) != 0 {
		f.Selected = LeafID(f.Depth, g.rng.Intn(tree.LeafCount(f.Depth)))
	}
	if g.rng.Intn(4) != 0 {
		level := g.rng.Intn(f.Depth)
		id := bitid.Root
		for i := 0; i < level; i++ {
			id = bitid.Child(id, g.rng.Intn(2))
		}
		f.Hovered = id
	}
	return f
}

// Fixtures returns n fixtures.
func (g *Generator) Fixtures(n int) []SceneFixture {
	out := make([]SceneFixture, n)
	for i := range out {
		out[i] = g.Fixture()
	}
	return out
}
