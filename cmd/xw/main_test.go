package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/xorwheel/pkg/config"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/session"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"--depth", "5", "--select", "0b0101", "--radius", "0", "--export", "out.png"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.depth != 5 || opts.selectID != "0b0101" || opts.radius != 0 || opts.exportPath != "out.png" {
		t.Fatalf("opts = %+v", opts)
	}

	opts, err = parseFlags(nil, &stderr)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.radius != -1 || opts.depth != 0 {
		t.Fatalf("defaults = %+v, want radius -1 and depth 0", opts)
	}

	if _, err := parseFlags([]string{"stray"}, &stderr); err == nil {
		t.Fatal("expected error for positional argument")
	}
	if _, err := parseFlags([]string{"--help"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("--help error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Usage: xw") {
		t.Fatalf("usage not printed: %q", stderr.String())
	}
}

func TestBuildState(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		name       string
		opts       options
		wantDepth  int
		wantRadius int
		wantSel    string
		wantErr    bool
	}{
		{name: "config defaults", opts: options{radius: -1}, wantDepth: 4, wantRadius: 2},
		{name: "flag overrides", opts: options{depth: 6, radius: 4, selectID: "0b10101"}, wantDepth: 6, wantRadius: 4, wantSel: "0b10101"},
		{name: "radius clamped", opts: options{depth: 2, radius: 9}, wantDepth: 2, wantRadius: 1},
		{name: "depth too deep", opts: options{depth: 17, radius: -1}, wantErr: true},
		{name: "selection of wrong depth", opts: options{depth: 3, radius: -1, selectID: "0b010"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := buildState(tt.opts, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildState: %v", err)
			}
			if st.Depth != tt.wantDepth || st.Radius != tt.wantRadius || st.Selected != tt.wantSel {
				t.Fatalf("state = depth %d radius %d selected %q", st.Depth, st.Radius, st.Selected)
			}
		})
	}
}

func TestBuildState_SelectionErrorIsNotLeaf(t *testing.T) {
	_, err := buildState(options{depth: 3, radius: -1, selectID: "0b1"}, config.DefaultConfig())
	if !errors.Is(err, session.ErrNotLeaf) {
		t.Fatalf("err = %v, want ErrNotLeaf", err)
	}
}

func TestRunExport(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()

	for _, name := range []string{"wheel.svg", "wheel.png", "wheel.json", "nested/wheel"} {
		t.Run(name, func(t *testing.T) {
			opts := options{depth: 4, radius: -1, selectID: "0b010", exportPath: filepath.Join(dir, name), width: 320, height: 240}
			st, err := buildState(opts, cfg)
			if err != nil {
				t.Fatalf("buildState: %v", err)
			}
			path, err := runExport(opts, cfg, st)
			if err != nil {
				t.Fatalf("runExport: %v", err)
			}
			if filepath.Ext(path) == "" {
				t.Fatalf("path %q has no extension", path)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Size() == 0 {
				t.Fatal("empty snapshot")
			}
		})
	}
}

func TestRunExport_UsesExactCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.json")
	opts := options{depth: 3, radius: -1, exportPath: path, width: 300, height: 200}
	st, err := buildState(opts, config.DefaultConfig())
	if err != nil {
		t.Fatalf("buildState: %v", err)
	}
	if _, err := runExport(opts, config.DefaultConfig(), st); err != nil {
		t.Fatalf("runExport: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Width != 300 || doc.Height != 200 {
		t.Fatalf("canvas = %vx%v, want 300x200", doc.Width, doc.Height)
	}
}

func TestRunExport_BadFormat(t *testing.T) {
	opts := options{depth: 3, radius: -1, exportPath: filepath.Join(t.TempDir(), "x.svg"), format: "gif"}
	st, _ := buildState(opts, config.DefaultConfig())
	if _, err := runExport(opts, config.DefaultConfig(), st); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestRunCheck(t *testing.T) {
	var out bytes.Buffer
	if err := runCheck(&out); err != nil {
		t.Fatalf("runCheck: %v\n%s", err, out.String())
	}
	for _, want := range []string{"depth  3: ok (4 sectors)", "depth 16: ok (32768 sectors)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestWriteMetrics(t *testing.T) {
	metrics.ResetAll()
	var out bytes.Buffer
	if err := runCheck(&out); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	out.Reset()
	if err := writeMetrics(&out); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	var stats []metrics.TimingStats
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("metrics are not JSON: %v\n%s", err, out.String())
	}
	if metrics.Enabled() && len(stats) == 0 {
		t.Fatal("no metrics recorded")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	var stderr bytes.Buffer
	if cfg := loadConfig(filepath.Join(dir, "missing.yaml"), &stderr); cfg.View.Depth != 4 {
		t.Fatalf("missing file depth = %d, want default", cfg.View.Depth)
	}
	if stderr.Len() != 0 {
		t.Fatalf("missing file warned: %q", stderr.String())
	}

	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("view:\n  depth: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if cfg := loadConfig(good, &stderr); cfg.View.Depth != 7 {
		t.Fatalf("depth = %d, want 7", cfg.View.Depth)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("export:\n  format: gif\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := loadConfig(bad, &stderr)
	if cfg.Export.Format != config.FormatSVG {
		t.Fatalf("bad config format = %q, want defaults", cfg.Export.Format)
	}
	if !strings.Contains(stderr.String(), "Warning") {
		t.Fatalf("bad config not reported: %q", stderr.String())
	}
}
