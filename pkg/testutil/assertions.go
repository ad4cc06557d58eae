package testutil

import (
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/sector"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
)

// AssertSceneCounts verifies the element counts a scene of its depth must
// have: one marker per node, one edge per non-root node, one sector per
// leaf (none for a single node).
func AssertSceneCounts(t *testing.T, sc *heatmap.Scene) {
	t.Helper()
	nodes := tree.NodeCount(sc.Depth)
	if len(sc.Nodes) != nodes {
		t.Errorf("depth %d: %d markers, want %d", sc.Depth, len(sc.Nodes), nodes)
	}
	if len(sc.Edges) != nodes-1 {
		t.Errorf("depth %d: %d edges, want %d", sc.Depth, len(sc.Edges), nodes-1)
	}
	wantSectors := tree.LeafCount(sc.Depth)
	if sc.Depth == 1 {
		wantSectors = 0
	}
	if len(sc.Sectors) != wantSectors {
		t.Errorf("depth %d: %d sectors, want %d", sc.Depth, len(sc.Sectors), wantSectors)
	}
}

// AssertSectorsTile verifies that the sectors of a scene with a full ring
// cover a full turn without gaps or overlaps.
func AssertSectorsTile(t *testing.T, sc *heatmap.Scene) {
	t.Helper()
	if sc.Depth < 3 {
		return
	}
	angles := make(map[string]sector.Angles, len(sc.Sectors))
	for _, s := range sc.Sectors {
		angles[s.ID] = sector.Angles{Left: s.Start, Right: s.End}
	}
	if err := sector.Contiguous(angles, sector.Tolerance); err != nil {
		t.Errorf("depth %d: %v", sc.Depth, err)
	}
}

// AssertFlags verifies that at most one sector and one marker carry each of
// the selected and hovered flags, and that they name the header's nodes.
func AssertFlags(t *testing.T, sc *heatmap.Scene, selected, hovered string) {
	t.Helper()
	var sel, hov []string
	for _, n := range sc.Nodes {
		if n.Selected {
			sel = append(sel, n.ID)
		}
		if n.Hovered {
			hov = append(hov, n.ID)
		}
	}
	check := func(kind string, got []string, want string) {
		t.Helper()
		switch {
		case want == "" && len(got) != 0:
			t.Errorf("%s markers %v, want none", kind, got)
		case want != "" && (len(got) != 1 || got[0] != want):
			t.Errorf("%s markers %v, want [%s]", kind, got, want)
		}
	}
	check("selected", sel, selected)
	check("hovered", hov, hovered)

	for _, s := range sc.Sectors {
		if s.Selected && s.ID != selected {
			t.Errorf("sector %s flagged selected, want %q", s.ID, selected)
		}
		if s.Hovered && s.ID != hovered {
			t.Errorf("sector %s flagged hovered, want %q", s.ID, hovered)
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
// Useful for comparing structs that may have different Go representations
// but equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}
