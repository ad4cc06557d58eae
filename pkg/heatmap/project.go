// Package heatmap turns a laid-out tree, its leaf sectors and the
// interaction state into draw descriptors: heat sectors colored by the XOR
// distance of each leaf to the selection, node markers, edges and the
// radial guides of internal nodes.
package heatmap

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/sector"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// Sector is the draw descriptor of one leaf.
type Sector struct {
	ID       string  `json:"id"`
	Distance string  `json:"distance"`
	Value    uint64  `json:"value"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	LabelEnd float64 `json:"label_end"`

	HeatFill string `json:"heat_fill"`
	NodeFill string `json:"node_fill"`
	InRadius bool   `json:"in_radius"`

	Label     string  `json:"label"`
	FontScale float64 `json:"font_rem"`
	Hovered   bool    `json:"hovered,omitempty"`
	Selected  bool    `json:"selected,omitempty"`
}

// Mid returns the angle halfway through the sector.
func (s Sector) Mid() float64 {
	return (s.Start + s.End) / 2
}

// Options carries the interaction inputs of Project.
type Options struct {
	Selected string
	Hovered  string
	Depth    int
	Radius   int
	// Scale defaults to the Reds scale for Depth when zero.
	Scale ColorScale
}

// Project builds one Sector per leaf that has an entry in sectors, in the
// order of leaves.
func Project(leaves []*tree.Node, sectors map[string]sector.Angles, opts Options) []Sector {
	defer metrics.Timer(metrics.HeatmapProject)()

	if len(opts.Scale.stops) == 0 {
		opts.Scale = DefaultScale(opts.Depth)
	}
	twoLeaves := len(leaves) == 2

	slots := make([]Sector, len(leaves))
	ok := make([]bool, len(leaves))
	project := func(i int) {
		leaf := leaves[i]
		a, found := sectors[leaf.ID]
		if !found {
			return
		}
		dist := bitid.Distance(opts.Selected, leaf.ID)
		if twoLeaves {
			dist = "0x01"
			if opts.Selected == leaf.ID {
				dist = bitid.Zero
			}
		}
		slots[i] = projectLeaf(leaf.ID, dist, a, opts)
		ok[i] = true
	}

	if len(leaves) <= sector.ParallelThreshold {
		for i := range leaves {
			project(i)
		}
	} else {
		workers := runtime.GOMAXPROCS(0)
		chunk := (len(leaves) + workers - 1) / workers
		var g errgroup.Group
		g.SetLimit(workers)
		for start := 0; start < len(leaves); start += chunk {
			lo, hi := start, min(start+chunk, len(leaves))
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					project(i)
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make([]Sector, 0, len(leaves))
	for i, s := range slots {
		if ok[i] {
			out = append(out, s)
		}
	}
	return out
}

func projectLeaf(id, dist string, a sector.Angles, opts Options) Sector {
	value := bitid.Value(dist)
	hovered := opts.Hovered == id
	return Sector{
		ID:        id,
		Distance:  dist,
		Value:     value,
		Start:     a.Left,
		End:       a.Right,
		LabelEnd:  LabelEnd(a.Right, hovered),
		HeatFill:  opts.Scale.ColorOf(float64(value)),
		NodeFill:  NodeFill(id),
		InRadius:  InRadius(value, opts.Radius),
		Label:     Label(value, hovered),
		FontScale: FontScale(opts.Depth, hovered),
		Hovered:   hovered,
		Selected:  opts.Selected == id,
	}
}

// Guide is a radial line from an internal node out past the heat ring.
type Guide struct {
	NodeID string     `json:"node_id"`
	From   tree.Point `json:"from"`
	To     tree.Point `json:"to"`
}

// Guides returns one guide per internal node below the root, in the order
// of nodes.
func Guides(nodes []*tree.Node, center tree.Point, dims Dimensions, depth int) []Guide {
	var out []Guide
	for _, n := range nodes {
		if n.Depth == 0 || n.Depth == depth-1 {
			continue
		}
		angle := math.Atan2(n.Y-center.Y, n.X-center.X)
		out = append(out, Guide{
			NodeID: n.ID,
			From:   n.Pos(),
			To: tree.Point{
				X: center.X + dims.GuideRadius*math.Cos(angle),
				Y: center.Y + dims.GuideRadius*math.Sin(angle),
			},
		})
	}
	return out
}
