package export

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
)

var (
	colorBackdrop = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorEdge     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colorText     = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	colorSubtle   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colorSelected = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	colorHovered  = color.RGBA{R: 245, G: 158, B: 11, A: 255}
)

const (
	markerRadius = 5.0
	heatOpacity  = 0.75
)

func renderSVG(w io.Writer, title string, sc *heatmap.Scene) error {
	canvas := svg.New(w)
	canvas.Start(sc.Width, sc.Height)
	if title != "" {
		canvas.Title(title)
	}
	canvas.Rect(0, 0, sc.Width, sc.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Gid("edges")
	for _, e := range sc.Edges {
		canvas.Line(e.From.X, e.From.Y, e.To.X, e.To.Y,
			fmt.Sprintf("stroke:%s;stroke-width:1", css(colorEdge)))
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range sc.Nodes {
		canvas.Circle(n.Pos.X, n.Pos.Y, markerRadius, `id="`+n.ID+`"`, markerStyle(n))
	}
	canvas.Gend()

	if sc.HasHeat() {
		drawSectorsSVG(canvas, sc)
	}

	canvas.Gid("guides")
	for _, g := range sc.Guides {
		canvas.Line(g.From.X, g.From.Y, g.To.X, g.To.Y,
			fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:2,2", heatmap.GuideStroke))
	}
	canvas.Gend()

	drawHeaderSVG(canvas, sc)

	canvas.End()
	return nil
}

func markerStyle(n heatmap.Marker) string {
	stroke := "none"
	switch {
	case n.Selected:
		stroke = css(colorSelected)
	case n.Hovered:
		stroke = css(colorHovered)
	}
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:2", n.Fill, stroke)
}

func drawSectorsSVG(canvas *svg.SVG, sc *heatmap.Scene) {
	d := sc.Dims
	canvas.Group(`id="heat"`, fmt.Sprintf(`transform="translate(%s,%s)"`, num(sc.Center.X), num(sc.Center.Y)))
	for _, s := range sc.Sectors {
		canvas.Path(arcPath(d.HeatInner, d.HeatOuter, s.Start, s.End),
			`class="heat"`,
			fmt.Sprintf("fill:%s;fill-opacity:%g", s.HeatFill, heatOpacity))
		canvas.Path(arcPath(d.NodeInner, d.NodeOuter, s.Start, s.End),
			`class="node"`,
			fmt.Sprintf("fill:%s", s.NodeFill))

		ring := heatmap.NoFill
		if s.InRadius {
			ring = heatmap.RingFill
		}
		canvas.Path(arcPath(d.HeatOuter, d.RingOuter, s.Start, s.End),
			`class="ring"`,
			fmt.Sprintf("fill:%s", ring))

		pathID := s.ID + "Arc"
		canvas.Path(labelPath(d.HeatOuter+2, s.Start, s.LabelEnd),
			fmt.Sprintf(`id="%s"`, pathID),
			"fill:none")
		weight := "normal"
		if s.Hovered {
			weight = "bold"
		}
		canvas.Textpath(s.Label, "#"+pathID,
			fmt.Sprintf("fill:%s;font-size:%grem;font-family:monospace;font-weight:%s",
				css(colorText), s.FontScale, weight))
	}
	canvas.Gend()
}

func drawHeaderSVG(canvas *svg.SVG, sc *heatmap.Scene) {
	canvas.Gid("header")
	for i, line := range sc.Header.Lines() {
		canvas.Text(12, 20+float64(i)*16, line,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorText)))
	}
	if tip := sc.Header.Tooltip; tip != "" {
		y := sc.Height - 12
		if sc.Header.TooltipTop {
			y = 20 + 3*16
		}
		canvas.Text(sc.Width-12, y, truncate(tip, 48),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:end", css(colorSubtle)))
	}
	canvas.Gend()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
