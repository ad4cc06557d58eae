package ui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/sector"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// A terminal cell stands for a CellWidth x CellHeight patch of the canvas;
// cells are about twice as tall as wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Marker glyphs.
const (
	glyphNode     = '●'
	glyphSelected = '◉'
	glyphHovered  = '◎'
	glyphEdge     = '·'
	glyphGuide    = '┊'
	glyphHeat     = ' '
	glyphNodeArc  = '▒'
)

var namedHex = map[string]string{
	"green":  "#008000",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"black":  "#000000",
}

// hexOf maps a scene fill to a hex color, "" for none.
func hexOf(fill string) string {
	if h, ok := namedHex[fill]; ok {
		return h
	}
	if strings.HasPrefix(fill, "#") {
		return fill
	}
	return ""
}

// cellKind tells the renderer which theme color a foreground uses when the
// cell carries no explicit hex.
type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindHeat
	kindEdge
	kindGuide
	kindMarker
	kindSelected
	kindHovered
)

type cell struct {
	ch   rune
	fg   string // hex, or "" to use the kind's theme color
	bg   string // hex or ""
	kind cellKind
}

// Raster is a scene sampled onto terminal cells.
type Raster struct {
	Cols, Rows int
	cells      [][]cell
	// origin of the canvas relative to the raster's top-left, in canvas units
	offX, offY float64
}

// CanvasSide returns the side of the square canvas that fits cols x rows
// terminal cells.
func CanvasSide(cols, rows int) float64 {
	return math.Max(0, math.Min(float64(cols)*CellWidth, float64(rows)*CellHeight))
}

// sectorIndex finds the sector under an angle by binary search over the
// sectors' left boundaries.
type sectorIndex struct {
	starts  []float64
	sectors []heatmap.Sector
}

func newSectorIndex(secs []heatmap.Sector) sectorIndex {
	sorted := make([]heatmap.Sector, len(secs))
	copy(sorted, secs)
	sort.Slice(sorted, func(i, j int) bool {
		return normalizeAngle(sorted[i].Start) < normalizeAngle(sorted[j].Start)
	})
	starts := make([]float64, len(sorted))
	for i, s := range sorted {
		starts[i] = normalizeAngle(s.Start)
	}
	return sectorIndex{starts: starts, sectors: sorted}
}

func (ix sectorIndex) at(angle float64) (heatmap.Sector, bool) {
	if len(ix.sectors) == 0 {
		return heatmap.Sector{}, false
	}
	a := normalizeAngle(angle)
	i := sort.SearchFloat64s(ix.starts, a)
	// i is the first start >= a; the candidate starts at or before a
	if i == len(ix.starts) || ix.starts[i] > a {
		i--
	}
	if i < 0 {
		i = len(ix.sectors) - 1
	}
	s := ix.sectors[i]
	if (sector.Angles{Left: s.Start, Right: s.End}).Contains(angle) {
		return s, true
	}
	return heatmap.Sector{}, false
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Rasterize samples sc onto a cols x rows grid. The scene's canvas is
// centered in the grid.
func Rasterize(sc *heatmap.Scene, cols, rows int) *Raster {
	r := &Raster{Cols: cols, Rows: rows}
	if cols <= 0 || rows <= 0 {
		return r
	}
	r.offX = (float64(cols)*CellWidth - sc.Width) / 2
	r.offY = (float64(rows)*CellHeight - sc.Height) / 2
	r.cells = make([][]cell, rows)
	for y := range r.cells {
		r.cells[y] = make([]cell, cols)
		for x := range r.cells[y] {
			r.cells[y][x] = cell{ch: ' '}
		}
	}

	if sc.HasHeat() {
		r.paintRings(sc)
	}
	for _, e := range sc.Edges {
		r.line(e.From, e.To, glyphEdge, kindEdge)
	}
	for _, g := range sc.Guides {
		r.line(g.From, g.To, glyphGuide, kindGuide)
	}
	for _, n := range sc.Nodes {
		r.marker(n)
	}
	return r
}

// point returns the canvas point at the center of cell (x, y).
func (r *Raster) point(x, y int) tree.Point {
	return tree.Point{
		X: (float64(x)+0.5)*CellWidth - r.offX,
		Y: (float64(y)+0.5)*CellHeight - r.offY,
	}
}

// cellAt returns the cell holding canvas point p.
func (r *Raster) cellAt(p tree.Point) (x, y int, ok bool) {
	x = int(math.Floor((p.X + r.offX) / CellWidth))
	y = int(math.Floor((p.Y + r.offY) / CellHeight))
	return x, y, x >= 0 && y >= 0 && x < r.Cols && y < r.Rows
}

func (r *Raster) paintRings(sc *heatmap.Scene) {
	ix := newSectorIndex(sc.Sectors)
	d := sc.Dims
	for y := 0; y < r.Rows; y++ {
		for x := 0; x < r.Cols; x++ {
			p := r.point(x, y)
			dist := math.Hypot(p.X-sc.Center.X, p.Y-sc.Center.Y)
			if dist < d.HeatInner || dist > d.RingOuter {
				continue
			}
			s, ok := ix.at(sector.AngleOf(p, sc.Center))
			if !ok {
				continue
			}
			c := &r.cells[y][x]
			switch {
			case dist >= d.NodeInner && dist <= d.NodeOuter:
				c.ch, c.fg, c.bg, c.kind = glyphNodeArc, hexOf(s.NodeFill), hexOf(s.HeatFill), kindHeat
			case dist <= d.HeatOuter:
				c.ch, c.bg, c.kind = glyphHeat, hexOf(s.HeatFill), kindHeat
			case s.InRadius:
				c.ch, c.bg, c.kind = glyphHeat, hexOf(heatmap.RingFill), kindHeat
			}
		}
	}
}

// line stamps glyph along the segment from a to b, leaving markers alone.
func (r *Raster) line(a, b tree.Point, glyph rune, kind cellKind) {
	steps := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y)/(CellWidth/2))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y, ok := r.cellAt(tree.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
		if !ok {
			continue
		}
		c := &r.cells[y][x]
		if c.kind >= kindMarker {
			continue
		}
		c.ch, c.fg, c.kind = glyph, "", kind
	}
}

func (r *Raster) marker(n heatmap.Marker) {
	x, y, ok := r.cellAt(n.Pos)
	if !ok {
		return
	}
	c := &r.cells[y][x]
	switch {
	case n.Selected:
		c.ch, c.fg, c.kind = glyphSelected, "", kindSelected
	case n.Hovered:
		if c.kind == kindSelected {
			return
		}
		c.ch, c.fg, c.kind = glyphHovered, "", kindHovered
	default:
		if c.kind >= kindSelected {
			return
		}
		c.ch, c.fg, c.kind = glyphNode, hexOf(n.Fill), kindMarker
	}
}

// Glyph returns the rune at (x, y), for tests and debugging.
func (r *Raster) Glyph(x, y int) rune {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return 0
	}
	return r.cells[y][x].ch
}

// Background returns the background hex at (x, y), "" for none.
func (r *Raster) Background(x, y int) string {
	if x < 0 || y < 0 || x >= r.Cols || y >= r.Rows {
		return ""
	}
	return r.cells[y][x].bg
}

// Render turns the raster into styled lines, batching runs of equal style.
func (r *Raster) Render(t Theme) string {
	lines := make([]string, r.Rows)
	for y, row := range r.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.ch)
			}
			b.WriteString(t.cellStyle(row[start]).Render(run.String()))
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.kind == b.kind
}

func (t Theme) cellStyle(c cell) lipgloss.Style {
	s := t.Renderer.NewStyle()
	if c.bg != "" {
		s = s.Background(HeatColor(c.bg))
	}
	if c.fg != "" {
		return s.Foreground(HeatColor(c.fg))
	}
	switch c.kind {
	case kindEdge:
		s = s.Foreground(t.Edge)
	case kindGuide:
		s = s.Foreground(t.Guide)
	case kindSelected:
		s = s.Foreground(t.Selected).Bold(true)
	case kindHovered:
		s = s.Foreground(t.Hovered).Bold(true)
	}
	return s
}
