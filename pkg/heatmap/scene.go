package heatmap

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/sector"
	"github.com/vanderheijden86/xorwheel/pkg/session"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// Edge joins a node to its parent.
type Edge struct {
	Source string     `json:"source"`
	Target string     `json:"target"`
	From   tree.Point `json:"from"`
	To     tree.Point `json:"to"`
}

// Marker is the dot drawn for a node.
type Marker struct {
	ID       string     `json:"id"`
	Pos      tree.Point `json:"pos"`
	Depth    int        `json:"depth"`
	Leaf     bool       `json:"leaf"`
	Fill     string     `json:"fill"`
	Selected bool       `json:"selected,omitempty"`
	Hovered  bool       `json:"hovered,omitempty"`
}

// Header is the text shown above the wheel.
type Header struct {
	Depth    int    `json:"depth"`
	Selected string `json:"selected"` // payload bits of the selection
	NodeID   string `json:"node_id"`  // selection as even-padded hex
	Stale    bool   `json:"stale,omitempty"`
	Tooltip  string `json:"tooltip,omitempty"`
	// TooltipTop places the tooltip above the wheel for the left half.
	TooltipTop bool `json:"tooltip_top,omitempty"`
}

// Lines renders the header as text lines.
func (h Header) Lines() []string {
	lines := []string{
		fmt.Sprintf("depth: %d", h.Depth),
		"selected: " + h.Selected,
		"node_id: " + h.NodeID,
	}
	if h.Stale {
		lines[1] += " (stale)"
	}
	return lines
}

// String joins Lines.
func (h Header) String() string {
	return strings.Join(h.Lines(), "\n")
}

// Scene is every draw descriptor for one frame, in layering order: edges,
// then node markers, then heat sectors, then guides.
type Scene struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Center tree.Point `json:"center"`
	Depth  int        `json:"depth"`
	Radius int        `json:"radius"`
	Dims   Dimensions `json:"dims"`
	Scale  ColorScale `json:"-"`

	Edges   []Edge   `json:"edges"`
	Nodes   []Marker `json:"nodes"`
	Sectors []Sector `json:"sectors"`
	Guides  []Guide  `json:"guides"`
	Header  Header   `json:"header"`
}

// HasHeat reports whether the scene carries a heat ring. Trees of depth 1
// have a single node and draw none.
func (s *Scene) HasHeat() bool {
	return len(s.Sectors) > 0
}

// Sector returns the sector of id, or false.
func (s *Scene) Sector(id string) (Sector, bool) {
	for _, sec := range s.Sectors {
		if sec.ID == id {
			return sec, true
		}
	}
	return Sector{}, false
}

// BuildScene projects root under st. root must have been built for st's
// depth and canvas. A zero scale uses the Reds ramp.
func BuildScene(root *tree.Node, st session.State, scale ColorScale) *Scene {
	defer metrics.Timer(metrics.SceneBuild)()

	if len(scale.stops) == 0 {
		scale = DefaultScale(st.Depth)
	} else {
		scale = scale.WithDomain(MaxValue(st.Depth))
	}

	nodes := root.Descendants()
	leaves := root.Leaves()
	dims := NewDimensions(0)
	if len(nodes) > 1 {
		dims = NewDimensions(root.LeafRadius())
	}

	sc := &Scene{
		Width:  st.Width,
		Height: st.Height,
		Center: st.Center,
		Depth:  st.Depth,
		Radius: st.Radius,
		Dims:   dims,
		Scale:  scale,
		Header: header(st),
	}

	for _, l := range root.Links() {
		sc.Edges = append(sc.Edges, Edge{
			Source: l.Source.ID,
			Target: l.Target.ID,
			From:   l.Source.Pos(),
			To:     l.Target.Pos(),
		})
	}
	for _, n := range nodes {
		sc.Nodes = append(sc.Nodes, Marker{
			ID:       n.ID,
			Pos:      n.Pos(),
			Depth:    n.Depth,
			Leaf:     n.IsLeaf(),
			Fill:     NodeFill(n.ID),
			Selected: n.ID == st.Selected,
			Hovered:  n.ID == st.Hovered,
		})
	}

	if len(nodes) < 3 {
		debug.Log("heatmap: depth %d has no heat ring", st.Depth)
		return sc
	}

	angles := sector.Resolve(leaves, st.Center)
	sc.Sectors = Project(leaves, angles, Options{
		Selected: st.Selected,
		Hovered:  st.Hovered,
		Depth:    st.Depth,
		Radius:   st.Radius,
		Scale:    scale,
	})
	debug.Assert(len(sc.Sectors) == len(leaves), "heatmap: one sector per leaf")
	if len(nodes) > 3 {
		sc.Guides = Guides(nodes, st.Center, dims, st.Depth)
	}
	return sc
}

func header(st session.State) Header {
	h := Header{
		Depth:    st.Depth,
		Selected: bitid.Payload(st.Selected),
		NodeID:   bitid.NodeHex(st.Selected),
		Stale:    st.Stale(),
		Tooltip:  st.Hovered,
	}
	if st.Hovered != "" {
		h.TooltipTop = strings.HasPrefix(st.Hovered, bitid.Prefix+"0")
	}
	return h
}
