package heatmap

import (
	"math"
	"strconv"
	"strings"
)

// Ring widths around the leaf ring.
const (
	ArcWidth  = 20.0
	NodeWidth = 16.0
	HeatInner = 16.0
	RingPad   = 16.0
)

// Dimensions are the radii of the rings drawn for every leaf sector.
type Dimensions struct {
	LeafRadius float64 `json:"leaf_radius"`
	HeatInner  float64 `json:"heat_inner"`
	HeatOuter  float64 `json:"heat_outer"`
	NodeInner  float64 `json:"node_inner"`
	NodeOuter  float64 `json:"node_outer"`
	// RingOuter bounds the in-radius highlight, which starts at NodeOuter.
	RingOuter float64 `json:"ring_outer"`
	// GuideRadius is where the radial guide lines of internal nodes end.
	GuideRadius float64 `json:"guide_radius"`
}

// NewDimensions derives the ring radii from the leaf ring radius.
func NewDimensions(leafRadius float64) Dimensions {
	heatOuter := leafRadius + 16 + ArcWidth
	return Dimensions{
		LeafRadius:  leafRadius,
		HeatInner:   HeatInner,
		HeatOuter:   heatOuter,
		NodeInner:   leafRadius - NodeWidth,
		NodeOuter:   leafRadius + NodeWidth,
		RingOuter:   heatOuter + RingPad,
		GuideRadius: leafRadius + ArcWidth + 16,
	}
}

// Label renders a distance value for the label arc. Hovered labels are the
// bare decimal; the rest are bracketed and padded to a steady width.
func Label(value uint64, hovered bool) string {
	dec := strconv.FormatUint(value, 10)
	if hovered {
		return dec
	}
	var b strings.Builder
	b.WriteString("|_")
	if len(dec) == 1 {
		b.WriteByte('_')
	}
	b.WriteString(dec)
	if len(dec) < 3 {
		b.WriteByte('_')
	}
	b.WriteByte('_')
	return b.String()
}

// FontScale returns the label size in rem. Shallow trees and the hovered
// leaf use the full size; deeper trees shrink so labels fit their wedge.
func FontScale(depth int, hovered bool) float64 {
	if hovered || depth < 4 {
		return 7
	}
	return 8 / (float64(depth-3) * 2)
}

// LabelEnd is the end angle of the label path. The hovered leaf gets an
// extra half turn so its longer label is not clipped by the wedge.
func LabelEnd(end float64, hovered bool) float64 {
	if hovered {
		return end + math.Pi
	}
	return end
}

// InRadius reports whether value lies within the highlight radius, i.e.
// value <= 2^radius - 1.
func InRadius(value uint64, radius int) bool {
	if radius < 0 {
		return false
	}
	if radius >= 64 {
		return true
	}
	return value <= (uint64(1)<<uint(radius))-1
}
