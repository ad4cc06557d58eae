package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// DetailPaneWidth is the width of the detail panel in split view.
const DetailPaneWidth = 38

// detailMarkdown describes the wheel state and the hovered node.
func detailMarkdown(sc *heatmap.Scene) string {
	var b strings.Builder
	b.WriteString("## Wheel\n\n")
	fmt.Fprintf(&b, "- depth: **%d** (%d leaves)\n", sc.Depth, tree.LeafCount(sc.Depth))
	fmt.Fprintf(&b, "- radius: **%d** (distance <= %d)\n", sc.Radius, radiusLimit(sc.Radius))

	if sel := sc.Header.Selected; sel != "" {
		b.WriteString("\n## Selection\n\n")
		fmt.Fprintf(&b, "- bits: `%s`\n", sel)
		fmt.Fprintf(&b, "- node_id: `%s`\n", sc.Header.NodeID)
		if sc.Header.Stale {
			b.WriteString("- *stale: not a leaf at this depth*\n")
		}
	}

	id := sc.Header.Tooltip
	if id == "" {
		return b.String()
	}
	b.WriteString("\n## Hover\n\n")
	fmt.Fprintf(&b, "- id: `%s`\n", id)
	s, ok := sc.Sector(id)
	if !ok {
		b.WriteString("- internal node\n")
		return b.String()
	}
	fmt.Fprintf(&b, "- distance: `%s` (%d)\n", s.Distance, s.Value)
	if s.InRadius {
		b.WriteString("- inside radius\n")
	}
	fmt.Fprintf(&b, "- wedge: %.1f° .. %.1f°\n", degrees(s.Start), degrees(s.End))
	return b.String()
}

func radiusLimit(radius int) uint64 {
	if radius >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << uint(radius)) - 1
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// newDetailRenderer returns a glamour renderer wrapped to width, or nil when
// glamour cannot start (the panel then shows raw markdown).
func newDetailRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func renderDetail(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
