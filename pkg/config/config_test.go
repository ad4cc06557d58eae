package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.View.Depth != 4 {
		t.Errorf("expected default depth 4, got %d", cfg.View.Depth)
	}
	if cfg.View.Radius != 2 {
		t.Errorf("expected default radius 2, got %d", cfg.View.Radius)
	}
	if cfg.View.Width != 800 || cfg.View.Height != 800 {
		t.Errorf("expected 800x800 canvas, got %vx%v", cfg.View.Width, cfg.View.Height)
	}
	if cfg.Selection.ClearOnDepthChange {
		t.Error("expected selection to survive depth changes by default")
	}
	if cfg.ExportFormat() != FormatSVG {
		t.Errorf("expected svg export, got %q", cfg.ExportFormat())
	}
	if cfg.Experimental.ParallelThreshold != 1024 {
		t.Errorf("expected parallel threshold 1024, got %d", cfg.Experimental.ParallelThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.View.Depth != 4 {
		t.Errorf("expected default config, got depth %d", cfg.View.Depth)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
view:
  depth: 7
  radius: 0
  width: 1200
  height: 900

selection:
  clear_on_depth_change: true

export:
  dir: ~/wheels
  format: PNG

theme:
  heat_ramp: ["#ffffff", "#000000"]

experimental:
  parallel_threshold: 64
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.View.Depth != 7 {
		t.Errorf("expected depth 7, got %d", cfg.View.Depth)
	}
	if cfg.View.Radius != 0 {
		t.Errorf("expected explicit radius 0 to override the default, got %d", cfg.View.Radius)
	}
	if cfg.View.Width != 1200 || cfg.View.Height != 900 {
		t.Errorf("expected 1200x900, got %vx%v", cfg.View.Width, cfg.View.Height)
	}
	if !cfg.Selection.ClearOnDepthChange {
		t.Error("expected clear_on_depth_change true")
	}
	// Path should have ~ expanded
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "wheels"); cfg.Export.Dir != want {
		t.Errorf("expected expanded dir %q, got %q", want, cfg.Export.Dir)
	}
	if cfg.ExportFormat() != FormatPNG {
		t.Errorf("expected normalized png, got %q", cfg.ExportFormat())
	}
	if len(cfg.Theme.HeatRamp) != 2 {
		t.Errorf("expected 2 ramp stops, got %v", cfg.Theme.HeatRamp)
	}
	if cfg.Experimental.ParallelThreshold != 64 {
		t.Errorf("expected parallel threshold 64, got %d", cfg.Experimental.ParallelThreshold)
	}
}

func TestLoadFrom_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("view:\n  depth: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.View.Depth != 9 {
		t.Errorf("expected depth 9, got %d", cfg.View.Depth)
	}
	if cfg.View.Width != 800 || cfg.ExportFormat() != FormatSVG {
		t.Errorf("expected untouched defaults, got %+v", cfg)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"format":     "export:\n  format: gif\n",
		"size":       "view:\n  width: -1\n",
		"ramp color": "theme:\n  heat_ramp: [red, blue]\n",
		"ramp short": "theme:\n  heat_ramp: [\"#ffffff\"]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), "validating config") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.View.Depth = 11
	cfg.View.Radius = 0
	cfg.Selection.ClearOnDepthChange = true
	cfg.Export.Format = FormatJSON
	cfg.Theme.HeatRamp = []string{"#f7fbff", "#08306b"}

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if loaded.View.Depth != 11 {
		t.Errorf("expected depth 11, got %d", loaded.View.Depth)
	}
	if loaded.View.Radius != 0 {
		t.Errorf("expected radius 0 to survive a round trip, got %d", loaded.View.Radius)
	}
	if !loaded.Selection.ClearOnDepthChange {
		t.Error("expected clear_on_depth_change to survive a round trip")
	}
	if loaded.ExportFormat() != FormatJSON {
		t.Errorf("expected json, got %q", loaded.ExportFormat())
	}
	if len(loaded.Theme.HeatRamp) != 2 || loaded.Theme.HeatRamp[1] != "#08306b" {
		t.Errorf("unexpected ramp %v", loaded.Theme.HeatRamp)
	}
}

func TestExportPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ExportPath("xorwheel-d5"); got != "xorwheel-d5.svg" {
		t.Errorf("expected bare file name, got %q", got)
	}
	cfg.Export.Dir = "/tmp/out"
	cfg.Export.Format = FormatPNG
	if got := cfg.ExportPath("w"); got != filepath.Join("/tmp/out", "w.png") {
		t.Errorf("unexpected path %q", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~/", filepath.Join(home, "")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := ConfigDir()
	expected := filepath.Join(dir, "xorwheel")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if ConfigPath() != filepath.Join(expected, "config.yaml") {
		t.Errorf("unexpected config path %q", ConfigPath())
	}
}

func TestLoad_UsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.View.Depth = 6
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.View.Depth != 6 {
		t.Errorf("expected depth 6, got %d", loaded.View.Depth)
	}
}
