// Package sector assigns every leaf of the heat wheel the angular wedge its
// heat arc is drawn in.
//
// A leaf's wedge is bounded by the angles of two ancestors: its parent on one
// side and, on the other, the parent of the nearest ancestor that sits on the
// opposite side of the tree. Wedges of neighbouring leaves therefore share
// boundaries. Where that ancestor is the root, which sits on the center and
// has no angle, the boundary is substituted from a small decision table.
//
// Angles follow the arc convention: 0 points up and angles grow clockwise.
package sector

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// ParallelThreshold is the leaf count above which Resolve fans out.
var ParallelThreshold = 1024

// Angles is the wedge of one leaf.
type Angles struct {
	NodeAngle   float64 `json:"node_angle"`
	Left        float64 `json:"left"`
	Right       float64 `json:"right"`
	LeftParent  string  `json:"left_parent,omitempty"`
	RightParent string  `json:"right_parent,omitempty"`
}

// Span returns the angular width of the wedge.
func (a Angles) Span() float64 {
	return a.Right - a.Left
}

// Contains reports whether angle lies in the wedge, modulo a full turn.
func (a Angles) Contains(angle float64) bool {
	rel := math.Mod(angle-a.Left, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel < a.Span()
}

// quarter is the offset turning atan2's "right" zero into "up".
const quarter = math.Pi / 2

// AngleOf returns the arc-convention angle of p seen from center.
func AngleOf(p, center tree.Point) float64 {
	return quarter + math.Atan2(p.Y-center.Y, p.X-center.X)
}

// Resolve computes the wedge of every leaf. leaves must be the leaves of one
// tree in any order; the result is keyed by leaf id.
func Resolve(leaves []*tree.Node, center tree.Point) map[string]Angles {
	defer metrics.Timer(metrics.SectorResolve)()

	out := make(map[string]Angles, len(leaves))
	if len(leaves) == 2 {
		for _, leaf := range leaves {
			out[leaf.ID] = twoLeaf(leaf, center)
		}
		return out
	}

	results := make([]Angles, len(leaves))
	resolveAll(leaves, center, results)
	for i, leaf := range leaves {
		if leaf.Parent == nil {
			continue
		}
		out[leaf.ID] = results[i]
	}
	debug.Log("sector: resolved %d leaves", len(out))
	return out
}

func resolveAll(leaves []*tree.Node, center tree.Point, results []Angles) {
	if len(leaves) <= ParallelThreshold {
		for i, leaf := range leaves {
			results[i] = resolveLeaf(leaf, center)
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(leaves) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(leaves); start += chunk {
		lo, hi := start, min(start+chunk, len(leaves))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				results[i] = resolveLeaf(leaves[i], center)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// twoLeaf is the fixed quadrant assignment used when the tree has exactly
// two leaves.
func twoLeaf(leaf *tree.Node, center tree.Point) Angles {
	a := Angles{NodeAngle: AngleOf(leaf.Pos(), center)}
	if bitid.LastBit(leaf.ID) == '0' {
		a.Left, a.Right = -math.Pi/2, 0
	} else {
		a.Left, a.Right = 0, math.Pi/2
	}
	if leaf.Parent != nil {
		a.LeftParent, a.RightParent = leaf.Parent.ID, leaf.Parent.ID
	}
	return a
}

// OppositeAncestor walks up from the parent of leaf while the ancestor is on
// the same side as leaf. The node it stops on is the first one whose subtree
// borders the other half as seen from leaf, or the root.
func OppositeAncestor(leaf *tree.Node) *tree.Node {
	side := bitid.LastBit(leaf.ID)
	a := leaf.Parent
	if a == nil {
		return leaf
	}
	for a.Parent != nil && bitid.LastBit(a.ID) == side {
		a = a.Parent
	}
	return a
}

// SameSideAncestor walks up from the parent of leaf while the ancestor is on
// the other side from leaf.
func SameSideAncestor(leaf *tree.Node) *tree.Node {
	side := bitid.LastBit(leaf.ID)
	a := leaf.Parent
	if a == nil {
		return leaf
	}
	for a.Parent != nil && bitid.LastBit(a.ID) != side {
		a = a.Parent
	}
	return a
}

// boundaryParents picks the ancestors whose angles bound the wedge of leaf.
func boundaryParents(leaf *tree.Node) (left, right *tree.Node) {
	opp := OppositeAncestor(leaf)
	far := opp
	if opp.Parent != nil {
		far = opp.Parent
	}
	if bitid.LastBit(leaf.ID) == '1' {
		return leaf.Parent, far
	}
	return far, leaf.Parent
}

func resolveLeaf(leaf *tree.Node, center tree.Point) Angles {
	if leaf.Parent == nil {
		return Angles{}
	}
	lp, rp := boundaryParents(leaf)

	node := AngleOf(leaf.Pos(), center)
	left := AngleOf(lp.Pos(), center)
	right := AngleOf(rp.Pos(), center)

	if left == quarter {
		left = substituteLeft(node, right)
	}
	if right == quarter {
		right = substituteRight(node, left)
	}
	if left > right {
		left -= 2 * math.Pi
	}
	if right == math.Pi {
		right = node + (node - left)
	}

	return Angles{
		NodeAngle:   node,
		Left:        left,
		Right:       right,
		LeftParent:  lp.ID,
		RightParent: rp.ID,
	}
}
