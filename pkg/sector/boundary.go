package sector

import "math"

// roundCase tags the rounded value of the known boundary when the other one
// degenerated onto the center.
type roundCase int

const (
	caseOther roundCase = iota
	caseTwo             // rounds to 2: just past 3 o'clock
	caseZero            // rounds to 0: near 12 o'clock
	caseMinusTwo        // rounds to -2: just past the -pi/2 cut of atan2
)

func (c roundCase) String() string {
	switch c {
	case caseTwo:
		return "two"
	case caseZero:
		return "zero"
	case caseMinusTwo:
		return "minus-two"
	default:
		return "other"
	}
}

// jsRound rounds half up, matching the rounding the boundary table was
// tuned with (math.Round rounds half away from zero).
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}

func classify(v float64) roundCase {
	switch jsRound(v) {
	case 2:
		return caseTwo
	case 0:
		return caseZero
	case -2:
		return caseMinusTwo
	default:
		return caseOther
	}
}

// substituteLeft replaces a left boundary that degenerated onto the center,
// given the leaf angle and the (valid) right boundary.
func substituteLeft(node, right float64) float64 {
	switch classify(right) {
	case caseTwo:
		return math.Pi / 2
	case caseZero:
		return 0
	case caseMinusTwo:
		wrapped := -2*math.Pi + node
		return wrapped - (right - wrapped)
	default:
		return node - (right - node)
	}
}

// substituteRight replaces a right boundary that degenerated onto the
// center, given the leaf angle and the left boundary. The pi result is a
// marker resolved by the mirror step after unwinding.
func substituteRight(node, left float64) float64 {
	switch classify(left) {
	case caseTwo:
		return node + (node - left)
	case caseZero:
		return 0
	case caseMinusTwo:
		return -math.Pi / 2
	default:
		return math.Pi
	}
}
