package export

import (
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
)

const labelPad = 10.0

var namedFills = map[string]color.RGBA{
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"green":  {G: 128, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"red":    {R: 255, A: 255},
}

// fillColor resolves a CSS fill to a color. "none" and unknown names report
// false.
func fillColor(fill string) (color.Color, bool) {
	if c, ok := namedFills[fill]; ok {
		return c, true
	}
	c, err := colorful.Hex(fill)
	if err != nil {
		return nil, false
	}
	return c, true
}

func renderPNG(w io.Writer, sc *heatmap.Scene) error {
	dc := gg.NewContext(int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height)))
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1)
	for _, e := range sc.Edges {
		dc.DrawLine(e.From.X, e.From.Y, e.To.X, e.To.Y)
		dc.Stroke()
	}

	for _, n := range sc.Nodes {
		drawMarker(dc, n)
	}

	if sc.HasHeat() {
		drawSectorsPNG(dc, sc)
	}

	dc.SetColor(colorText)
	dc.SetDash(2, 2)
	for _, g := range sc.Guides {
		dc.DrawLine(g.From.X, g.From.Y, g.To.X, g.To.Y)
		dc.Stroke()
	}
	dc.SetDash()

	drawHeaderPNG(dc, sc)

	return dc.EncodePNG(w)
}

func drawMarker(dc *gg.Context, n heatmap.Marker) {
	if c, ok := fillColor(n.Fill); ok {
		dc.SetColor(c)
		dc.DrawCircle(n.Pos.X, n.Pos.Y, markerRadius)
		dc.Fill()
	}
	switch {
	case n.Selected:
		dc.SetColor(colorSelected)
	case n.Hovered:
		dc.SetColor(colorHovered)
	default:
		return
	}
	dc.SetLineWidth(2)
	dc.DrawCircle(n.Pos.X, n.Pos.Y, markerRadius)
	dc.Stroke()
}

func drawSectorsPNG(dc *gg.Context, sc *heatmap.Scene) {
	d := sc.Dims
	cx, cy := sc.Center.X, sc.Center.Y
	for _, s := range sc.Sectors {
		if c, ok := fillColor(s.HeatFill); ok {
			r, g, b, _ := c.RGBA()
			opacity := heatOpacity
			dc.SetRGBA255(int(r>>8), int(g>>8), int(b>>8), int(255*opacity))
			annulus(dc, cx, cy, d.HeatInner, d.HeatOuter, s.Start, s.End)
			dc.Fill()
		}
		if c, ok := fillColor(s.NodeFill); ok {
			dc.SetColor(c)
			annulus(dc, cx, cy, d.NodeInner, d.NodeOuter, s.Start, s.End)
			dc.Fill()
		}
		if s.InRadius {
			c, _ := fillColor(heatmap.RingFill)
			dc.SetColor(c)
			annulus(dc, cx, cy, d.HeatOuter, d.RingOuter, s.Start, s.End)
			dc.Fill()
		}
		// the bitmap font does not scale, so deep trees only label the hover
		if s.Hovered || sc.Depth < 6 {
			x, y := arcPoint(d.RingOuter+labelPad, s.Mid())
			dc.SetColor(colorText)
			dc.DrawStringAnchored(s.Label, cx+x, cy+y, 0.5, 0.5)
		}
	}
}

// annulus adds an annular sector in arc angles to the current path. gg
// measures angles from the positive x axis, a quarter turn behind the arc
// convention.
func annulus(dc *gg.Context, cx, cy, inner, outer, start, end float64) {
	a0, a1 := start-math.Pi/2, end-math.Pi/2
	dc.NewSubPath()
	dc.DrawArc(cx, cy, outer, a0, a1)
	if inner > 0 {
		dc.DrawArc(cx, cy, inner, a1, a0)
	} else {
		dc.LineTo(cx, cy)
	}
	dc.ClosePath()
}

func drawHeaderPNG(dc *gg.Context, sc *heatmap.Scene) {
	dc.SetColor(colorText)
	for i, line := range sc.Header.Lines() {
		dc.DrawStringAnchored(line, 12, 16+float64(i)*16, 0, 0.5)
	}
	if tip := sc.Header.Tooltip; tip != "" {
		y := sc.Height - 12
		if sc.Header.TooltipTop {
			y = 16 + 3*16
		}
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(truncate(tip, 48), sc.Width-12, y, 1, 0.5)
	}
}
