package export

import (
	"fmt"
	"math"
	"strings"
)

// arcPoint returns the point at radius r and arc angle a (0 = up, clockwise)
// relative to the center.
func arcPoint(r, a float64) (x, y float64) {
	return r * math.Sin(a), -r * math.Cos(a)
}

func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// arcPath returns SVG path data for an annular sector between the inner and
// outer radius, from start to end in arc angles, relative to the center. An
// inner radius of zero draws a pie slice; a sweep of a full turn or more
// draws the whole ring.
func arcPath(inner, outer, start, end float64) string {
	if inner > outer {
		inner, outer = outer, inner
	}
	sweep := end - start
	var b strings.Builder

	if math.Abs(sweep) >= 2*math.Pi-1e-9 {
		ring(&b, outer, start, true)
		if inner > 0 {
			ring(&b, inner, start, false)
		}
		return b.String()
	}

	large := 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	cw, ccw := 1, 0
	if sweep < 0 {
		cw, ccw = 0, 1
	}

	x0, y0 := arcPoint(outer, start)
	x1, y1 := arcPoint(outer, end)
	fmt.Fprintf(&b, "M%s,%s", num(x0), num(y0))
	fmt.Fprintf(&b, "A%s,%s,0,%d,%d,%s,%s", num(outer), num(outer), large, cw, num(x1), num(y1))
	if inner > 0 {
		x2, y2 := arcPoint(inner, end)
		x3, y3 := arcPoint(inner, start)
		fmt.Fprintf(&b, "L%s,%s", num(x2), num(y2))
		fmt.Fprintf(&b, "A%s,%s,0,%d,%d,%s,%s", num(inner), num(inner), large, ccw, num(x3), num(y3))
	} else {
		b.WriteString("L0,0")
	}
	b.WriteString("Z")
	return b.String()
}

// ring writes a full circle as two half arcs. The inner ring runs
// counter-clockwise so the nonzero fill rule leaves a hole.
func ring(b *strings.Builder, r, start float64, clockwise bool) {
	sweep := 1
	if !clockwise {
		sweep = 0
	}
	x0, y0 := arcPoint(r, start)
	x1, y1 := arcPoint(r, start+math.Pi)
	fmt.Fprintf(b, "M%s,%s", num(x0), num(y0))
	fmt.Fprintf(b, "A%s,%s,0,1,%d,%s,%s", num(r), num(r), sweep, num(x1), num(y1))
	fmt.Fprintf(b, "A%s,%s,0,1,%d,%s,%s", num(r), num(r), sweep, num(x0), num(y0))
	b.WriteString("Z")
}

// labelPath returns an open arc at radius r from start to end for text to
// follow.
func labelPath(r, start, end float64) string {
	if end-start >= 2*math.Pi {
		end = start + 2*math.Pi - 1e-3
	}
	sweep := end - start
	large := 0
	if math.Abs(sweep) > math.Pi {
		large = 1
	}
	cw := 1
	if sweep < 0 {
		cw = 0
	}
	x0, y0 := arcPoint(r, start)
	x1, y1 := arcPoint(r, end)
	return fmt.Sprintf("M%s,%sA%s,%s,0,%d,%d,%s,%s",
		num(x0), num(y0), num(r), num(r), large, cw, num(x1), num(y1))
}
