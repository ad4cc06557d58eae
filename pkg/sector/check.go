package sector

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Tolerance is the default slack for boundary comparisons.
const Tolerance = 1e-6

// Ordered returns the wedges sorted by their left boundary taken modulo a
// full turn, i.e. clockwise from 12 o'clock.
func Ordered(angles map[string]Angles) []Angles {
	out := make([]Angles, 0, len(angles))
	for _, a := range angles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return normalize(out[i].Left) < normalize(out[j].Left)
	})
	return out
}

func normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Contiguous checks that the wedges tile a full turn: sorted clockwise, every
// right boundary meets the next left boundary (modulo a full turn), no wedge
// is inverted, and the spans add up to 2*pi. It returns nil when they do.
func Contiguous(angles map[string]Angles, tol float64) error {
	if len(angles) == 0 {
		return nil
	}
	ordered := Ordered(angles)
	spans := make([]float64, len(ordered))
	for i, a := range ordered {
		if a.Span() < -tol {
			return fmt.Errorf("wedge at %.6f is inverted: [%.6f, %.6f]", a.NodeAngle, a.Left, a.Right)
		}
		spans[i] = a.Span()
	}
	if total := floats.Sum(spans); !scalar.EqualWithinAbs(total, 2*math.Pi, tol) {
		return fmt.Errorf("wedges sweep %.6f; want %.6f", total, 2*math.Pi)
	}

	for i := range ordered {
		next := (i + 1) % len(ordered)
		gap := normalize(ordered[next].Left - ordered[i].Right)
		if gap > math.Pi {
			gap = 2*math.Pi - gap
		}
		if gap > tol {
			return fmt.Errorf("gap of %.6f between wedge ending %.6f and wedge starting %.6f",
				gap, ordered[i].Right, ordered[next].Left)
		}
	}
	return nil
}
