// Package config handles loading and saving xw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/xorwheel/config.yaml
//
// The file only holds defaults. Selection, hover and depth of a running
// session are never written back.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appDir = "xorwheel"

// Export formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ViewConfig holds the initial view.
type ViewConfig struct {
	Depth  int     `yaml:"depth,omitempty"`  // initial tree depth (1-16)
	Radius int     `yaml:"radius"`           // in-radius highlight exponent
	Width  float64 `yaml:"width,omitempty"`  // export canvas width
	Height float64 `yaml:"height,omitempty"` // export canvas height
}

// SelectionConfig controls selection behavior.
type SelectionConfig struct {
	ClearOnDepthChange bool `yaml:"clear_on_depth_change,omitempty"`
}

// ExportConfig controls snapshot exports.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`    // where `e` writes snapshots
	Format string `yaml:"format,omitempty"` // svg, png or json
}

// ThemeConfig overrides colors.
type ThemeConfig struct {
	HeatRamp []string `yaml:"heat_ramp,omitempty"` // hex stops, lightest first
}

// ExperimentalConfig holds experimental tuning knobs.
type ExperimentalConfig struct {
	ParallelThreshold int `yaml:"parallel_threshold,omitempty"`
}

// Config is the top-level configuration for xw.
type Config struct {
	View         ViewConfig         `yaml:"view,omitempty"`
	Selection    SelectionConfig    `yaml:"selection,omitempty"`
	Export       ExportConfig       `yaml:"export,omitempty"`
	Theme        ThemeConfig        `yaml:"theme,omitempty"`
	Experimental ExperimentalConfig `yaml:"experimental,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			Depth:  4,
			Radius: 2,
			Width:  800,
			Height: 800,
		},
		Export: ExportConfig{
			Format: FormatSVG,
		},
		Experimental: ExperimentalConfig{
			ParallelThreshold: 1024,
		},
	}
}

// ConfigDir returns the XDG config directory for xw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}

	cfg.Export.Dir = expandHome(cfg.Export.Dir)
	return cfg, nil
}

// Validate rejects values no clamp can repair.
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.Format) {
	case "", FormatSVG, FormatPNG, FormatJSON:
	default:
		return fmt.Errorf("export.format %q: want svg, png or json", c.Export.Format)
	}
	if c.View.Width < 0 || c.View.Height < 0 {
		return fmt.Errorf("view size %vx%v is negative", c.View.Width, c.View.Height)
	}
	for _, stop := range c.Theme.HeatRamp {
		if !strings.HasPrefix(stop, "#") {
			return fmt.Errorf("theme.heat_ramp stop %q: want #rrggbb", stop)
		}
	}
	if len(c.Theme.HeatRamp) == 1 {
		return fmt.Errorf("theme.heat_ramp needs at least two stops")
	}
	return nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExportFormat returns the normalized export format, svg when unset.
func (c Config) ExportFormat() string {
	if c.Export.Format == "" {
		return FormatSVG
	}
	return strings.ToLower(c.Export.Format)
}

// ExportPath joins the export directory and a file name for the configured
// format, e.g. "xorwheel-d5.svg".
func (c Config) ExportPath(stem string) string {
	name := stem + "." + c.ExportFormat()
	if c.Export.Dir == "" {
		return name
	}
	return filepath.Join(c.Export.Dir, name)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
