package heatmap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Reds is the nine-class sequential ColorBrewer ramp used for heat fills,
// lightest first.
var Reds = []string{
	"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
	"#ef3b2c", "#cb181d", "#a50f15", "#67000d",
}

// Fixed fills shared by every renderer.
const (
	NodeFillLeft  = "green" // ids ending in 0
	NodeFillRight = "blue"  // ids ending in 1
	RingFill      = "yellow"
	NoFill        = "none"
	GuideStroke   = "black"
)

// ColorScale maps a distance value in [Min, Max] onto a sequential ramp.
type ColorScale struct {
	Min, Max float64
	stops    []colorful.Color
}

// NewColorScale builds a scale over [0, maxValue] from hex stops. A nil or
// empty ramp uses Reds.
func NewColorScale(maxValue float64, ramp []string) (ColorScale, error) {
	if len(ramp) == 0 {
		ramp = Reds
	}
	stops := make([]colorful.Color, 0, len(ramp))
	for _, hex := range ramp {
		c, err := colorful.Hex(hex)
		if err != nil {
			return ColorScale{}, fmt.Errorf("heat ramp stop %q: %w", hex, err)
		}
		stops = append(stops, c)
	}
	return ColorScale{Min: 0, Max: maxValue, stops: stops}, nil
}

// DefaultScale returns the Reds scale for the leaves of a tree of depth.
func DefaultScale(depth int) ColorScale {
	s, _ := NewColorScale(MaxValue(depth), nil)
	return s
}

// MaxValue is the largest distance between two leaves of a tree of depth.
func MaxValue(depth int) float64 {
	if depth < 2 {
		return 0
	}
	return math.Exp2(float64(depth-1)) - 1
}

// WithDomain returns a copy of s spanning [0, maxValue].
func (s ColorScale) WithDomain(maxValue float64) ColorScale {
	s.Min, s.Max = 0, maxValue
	return s
}

// Color returns the ramp color of v. Values outside the domain clamp to the
// ends; a degenerate domain maps everything to the first stop.
func (s ColorScale) Color(v float64) colorful.Color {
	if len(s.stops) == 0 {
		s = DefaultScale(2).WithDomain(s.Max)
	}
	t := 0.0
	if s.Max > s.Min {
		t = (v - s.Min) / (s.Max - s.Min)
	}
	t = math.Max(0, math.Min(1, t))

	last := len(s.stops) - 1
	if last == 0 {
		return s.stops[0]
	}
	pos := t * float64(last)
	i := int(math.Floor(pos))
	if i >= last {
		return s.stops[last]
	}
	frac := pos - float64(i)
	if frac == 0 {
		return s.stops[i]
	}
	return s.stops[i].BlendLab(s.stops[i+1], frac).Clamped()
}

// ColorOf returns the hex fill for v.
func (s ColorScale) ColorOf(v float64) string {
	return s.Color(v).Hex()
}

// NodeFill returns the marker fill for a node id: one color per side.
func NodeFill(id string) string {
	if len(id) > 0 && id[len(id)-1] == '0' {
		return NodeFillLeft
	}
	return NodeFillRight
}
