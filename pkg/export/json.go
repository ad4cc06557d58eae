package export

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/version"
)

// Document is the JSON snapshot: the scene plus provenance.
type Document struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version"`
	*heatmap.Scene
}

func renderJSON(w io.Writer, title string, sc *heatmap.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Title: title, Version: version.Version, Scene: sc})
}
