// Package tree builds the complete binary tree shown by the heat wheel.
//
// Every node carries its bit-string id (see package bitid), its depth, a
// non-owning pointer to its parent and planar coordinates from a radial
// layout centered on the viewport.
package tree

import (
	"fmt"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
)

// Depth bounds accepted by Build.
const (
	MinDepth = 1
	MaxDepth = 16
)

// Point is a planar coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one vertex of the tree.
type Node struct {
	ID    string
	X, Y  float64
	Depth int

	// Parent is nil for the root. Children are both nil for leaves and both
	// set otherwise; index 0 is the left child.
	Parent   *Node
	Children [2]*Node

	// theta is the layout angle (0 = up, clockwise), kept for the layout pass.
	theta float64
}

// Pos returns the node position.
func (n *Node) Pos() Point {
	return Point{X: n.X, Y: n.Y}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Children[0] == nil
}

// Left returns the left child (nil on leaves).
func (n *Node) Left() *Node { return n.Children[0] }

// Right returns the right child (nil on leaves).
func (n *Node) Right() *Node { return n.Children[1] }

// ClampDepth limits n to [MinDepth, MaxDepth].
func ClampDepth(n int) int {
	if n < MinDepth {
		return MinDepth
	}
	if n > MaxDepth {
		return MaxDepth
	}
	return n
}

// NodeCount returns the number of nodes in a complete tree of the given depth.
func NodeCount(depth int) int {
	return 1<<depth - 1
}

// LeafCount returns the number of leaves in a complete tree of the given depth.
func LeafCount(depth int) int {
	return 1 << (depth - 1)
}

// Build constructs a complete binary tree with depth levels laid out in a
// width x height viewport and returns its root.
//
// depth must already be clamped; an out-of-range depth is a programming
// error and panics.
func Build(depth int, width, height float64) *Node {
	if depth < MinDepth || depth > MaxDepth {
		panic(fmt.Sprintf("tree: depth %d outside [%d, %d]", depth, MinDepth, MaxDepth))
	}
	defer metrics.Timer(metrics.TreeBuild)()
	defer debug.LogEnterExit(fmt.Sprintf("tree.Build depth=%d", depth))()

	root := &Node{ID: bitid.Root}
	grow(root, depth)
	layout(root, depth, width, height)
	return root
}

func grow(n *Node, depth int) {
	if n.Depth == depth-1 {
		return
	}
	for bit := 0; bit < 2; bit++ {
		c := &Node{
			ID:     bitid.Child(n.ID, bit),
			Depth:  n.Depth + 1,
			Parent: n,
		}
		n.Children[bit] = c
		grow(c, depth)
	}
}

// Descendants returns n and every node below it in breadth-first order, the
// order renderers draw markers in.
func (n *Node) Descendants() []*Node {
	out := []*Node{n}
	for i := 0; i < len(out); i++ {
		cur := out[i]
		if cur.IsLeaf() {
			continue
		}
		out = append(out, cur.Children[0], cur.Children[1])
	}
	return out
}

// Leaves returns the leaves below n from left to right.
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c)
			return
		}
		walk(c.Children[0])
		walk(c.Children[1])
	}
	walk(n)
	return out
}

// Link is an edge between a node and its parent.
type Link struct {
	Source *Node // parent
	Target *Node // child
}

// Links returns one link per non-root node in breadth-first order.
func (n *Node) Links() []Link {
	nodes := n.Descendants()
	out := make([]Link, 0, len(nodes)-1)
	for _, c := range nodes[1:] {
		out = append(out, Link{Source: c.Parent, Target: c})
	}
	return out
}

// Find returns the node with the given id, or nil. It follows the id bits
// from n, so it costs O(depth).
func (n *Node) Find(id string) *Node {
	if len(id) < len(n.ID) || id[:len(n.ID)] != n.ID {
		return nil
	}
	cur := n
	for _, ch := range id[len(n.ID):] {
		if cur.IsLeaf() {
			return nil
		}
		switch ch {
		case '0':
			cur = cur.Children[0]
		case '1':
			cur = cur.Children[1]
		default:
			return nil
		}
	}
	return cur
}

// Height returns the depth of the deepest node below n plus one, i.e. the
// depth Build was called with when n is a root.
func (n *Node) Height() int {
	h := 1
	for c := n; !c.IsLeaf(); c = c.Children[0] {
		h++
	}
	return h
}
