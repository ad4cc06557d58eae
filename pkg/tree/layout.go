package tree

import "math"

// Layout constants shared with the heat map dimensions.
const (
	// Margin is the space kept between the leaf ring and the viewport edge
	// for the node, heat and in-radius rings drawn outside it.
	Margin = 56.0
	// MinRing is the smallest leaf ring radius used for tiny viewports.
	MinRing = 24.0
)

// ringArc returns where the leaf ring starts and how far it sweeps, in the
// arc convention (0 = up, clockwise).
//
// The placements line up the root's two halves with the boundary cases the
// sector resolver substitutes for: depth 2 uses the upper half ring of its
// fixed quadrant sectors, depth 3 is turned a twelfth so neither depth-1
// node sits on a horizontal axis, and deeper trees start at 12 o'clock.
func ringArc(depth int) (start, span float64) {
	switch depth {
	case 1:
		return 0, 0
	case 2:
		return -math.Pi / 2, math.Pi
	case 3:
		return -math.Pi / 6, 2 * math.Pi
	default:
		return 0, 2 * math.Pi
	}
}

// LeafRing returns the leaf ring radius for a viewport.
func LeafRing(width, height float64) float64 {
	r := math.Min(width, height)/2 - Margin
	if r < MinRing {
		return MinRing
	}
	return r
}

// Center returns the viewport center the root is placed on.
func Center(width, height float64) Point {
	return Point{X: width / 2, Y: height / 2}
}

// layout assigns coordinates: leaves evenly on the ring in path order,
// internal nodes at the mean angle of their children and a radius
// proportional to their depth, the root exactly on the center.
func layout(root *Node, depth int, width, height float64) {
	c := Center(width, height)
	if depth == 1 {
		root.X, root.Y = c.X, c.Y
		return
	}
	start, span := ringArc(depth)
	ring := LeafRing(width, height)
	leaves := root.Leaves()
	count := float64(len(leaves))
	for i, leaf := range leaves {
		leaf.theta = start + (float64(i)+0.5)*span/count
	}
	assignTheta(root)

	levels := float64(depth - 1)
	for _, n := range root.Descendants() {
		if n.Depth == 0 {
			n.X, n.Y = c.X, c.Y
			continue
		}
		r := ring * float64(n.Depth) / levels
		n.X = c.X + r*math.Sin(n.theta)
		n.Y = c.Y - r*math.Cos(n.theta)
	}
}

func assignTheta(n *Node) float64 {
	if n.IsLeaf() {
		return n.theta
	}
	n.theta = (assignTheta(n.Children[0]) + assignTheta(n.Children[1])) / 2
	return n.theta
}

// LeafRadius returns the distance from the root to its leaf ring, derived
// from the last leaf like the renderers do.
func (n *Node) LeafRadius() float64 {
	leaves := n.Leaves()
	last := leaves[len(leaves)-1]
	return math.Hypot(last.X-n.X, last.Y-n.Y)
}
