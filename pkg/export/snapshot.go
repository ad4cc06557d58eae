// Package export writes a rendered heat map scene to disk as SVG, PNG or
// JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/xorwheel/pkg/config"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNoPath            = errors.New("output path is required")
	ErrNoScene           = errors.New("no scene to export")
)

// SnapshotOptions controls snapshot export.
type SnapshotOptions struct {
	Path   string         // Output path; format inferred from extension when Format empty
	Format string         // "svg", "png" or "json" (case-insensitive)
	Title  string         // Optional title written into the document
	Scene  *heatmap.Scene // Scene to render
}

// ResolveFormat returns the output format and the path to write. The format
// comes from opts.Format, else from the path's extension; a path without an
// extension gets ".svg" appended.
func ResolveFormat(opts SnapshotOptions) (format, path string, err error) {
	path = opts.Path
	format = strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = config.FormatSVG
		case ".png":
			format = config.FormatPNG
		case ".json":
			format = config.FormatJSON
		default:
			format = config.FormatSVG
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	switch format {
	case config.FormatSVG, config.FormatPNG, config.FormatJSON:
	default:
		return "", "", fmt.Errorf("%w %q (want svg, png or json)", ErrUnsupportedFormat, format)
	}
	if path == "" {
		return "", "", ErrNoPath
	}
	return format, path, nil
}

// SaveSnapshot renders opts.Scene to opts.Path.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Scene == nil {
		return ErrNoScene
	}
	format, path, err := ResolveFormat(opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(file, format, opts.Title, opts.Scene); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSnapshot renders scene to w in format.
func WriteSnapshot(w io.Writer, format, title string, scene *heatmap.Scene) error {
	if scene == nil {
		return ErrNoScene
	}
	defer metrics.Timer(metrics.Export)()
	debug.LogIf(scene.Header.Stale, "export: selection %s is not a leaf at depth %d", scene.Header.Selected, scene.Depth)

	switch format {
	case config.FormatSVG:
		return renderSVG(w, title, scene)
	case config.FormatPNG:
		return renderPNG(w, scene)
	case config.FormatJSON:
		return renderJSON(w, title, scene)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}
