package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/vanderheijden86/xorwheel/pkg/config"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/export"
	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/sector"
	"github.com/vanderheijden86/xorwheel/pkg/session"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
	"github.com/vanderheijden86/xorwheel/pkg/ui"
	"github.com/vanderheijden86/xorwheel/pkg/version"
	"github.com/vanderheijden86/xorwheel/pkg/watcher"
)

// options are the parsed command line flags. Zero values (and -1 for the
// radius) defer to the config file.
type options struct {
	configPath string
	exportPath string
	format     string
	depth      int
	selectID   string
	radius     int
	width      float64
	height     float64
	check      bool
	metrics    bool
	noWatch    bool
	version    bool
	cpuProfile string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("xw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.ConfigPath(), "Config file path")
	fs.StringVar(&opts.exportPath, "export", "", "Write a snapshot to this path (.svg, .png or .json) and exit")
	fs.StringVar(&opts.format, "format", "", "Snapshot format, overriding the export path's extension")
	fs.IntVar(&opts.depth, "depth", 0, "Tree depth (1-16)")
	fs.StringVar(&opts.selectID, "select", "", "Leaf to select, e.g. 0b010")
	fs.IntVar(&opts.radius, "radius", -1, "Highlight radius exponent")
	fs.Float64Var(&opts.width, "width", 0, "Export canvas width")
	fs.Float64Var(&opts.height, "height", 0, "Export canvas height")
	fs.BoolVar(&opts.check, "check", false, "Verify that leaf sectors tile the ring at every depth and exit")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print timing metrics as JSON after an export or check")
	fs.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the config file when it changes")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.StringVar(&opts.cpuProfile, "cpu-profile", "", "Write CPU profile to file")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: xw [options]")
		fmt.Fprintln(stderr, "\nA radial XOR-distance heat map of a complete binary tree.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	// CPU profiling support
	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if opts.version {
		fmt.Printf("xw %s\n", version.Version)
		return
	}

	cfg := loadConfig(opts.configPath, os.Stderr)
	if cfg.Experimental.ParallelThreshold > 0 {
		sector.ParallelThreshold = cfg.Experimental.ParallelThreshold
	}

	if opts.check {
		err := runCheck(os.Stdout)
		if opts.metrics {
			_ = writeMetrics(os.Stdout)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	st, err := buildState(opts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.exportPath != "" {
		path, err := runExport(opts, cfg, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
		if opts.metrics {
			if err := writeMetrics(os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: xw needs a terminal; use --export to write a snapshot instead")
		os.Exit(1)
	}

	if debug.Enabled() {
		// log lines on stderr would tear the alternate screen
		logPath := filepath.Join(os.TempDir(), "xw-debug.log")
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			defer f.Close()
			debug.SetOutput(f)
			fmt.Fprintf(os.Stderr, "Debug log: %s\n", logPath)
		}
	}

	m := ui.NewModel(st, cfg)
	if !opts.noWatch && opts.configPath != "" {
		cw, err := watcher.WatchConfig(opts.configPath)
		if err != nil {
			debug.Log("xw: config watch disabled: %v", err)
		} else {
			defer cw.Stop()
			m = m.WithConfigWatcher(cw)
		}
	}

	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running xw: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file. A broken file is reported and replaced
// by the defaults.
func loadConfig(path string, stderr io.Writer) config.Config {
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v; using defaults\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// buildState combines the config defaults with the command line overrides.
func buildState(opts options, cfg config.Config) (session.State, error) {
	depth := cfg.View.Depth
	if opts.depth != 0 {
		depth = opts.depth
	}
	if depth < tree.MinDepth || depth > tree.MaxDepth {
		return session.State{}, fmt.Errorf("depth %d outside [%d, %d]", depth, tree.MinDepth, tree.MaxDepth)
	}

	width, height := canvasSize(opts, cfg)
	st := session.New(depth, width, height)
	st.Policy.ClearOnDepthChange = cfg.Selection.ClearOnDepthChange
	radius := cfg.View.Radius
	if opts.radius >= 0 {
		radius = opts.radius
	}
	st.SetRadius(radius)

	if opts.selectID != "" {
		if err := st.SelectByID(opts.selectID); err != nil {
			return session.State{}, err
		}
	}
	return st, nil
}

// canvasSize returns the export canvas, flags over config.
func canvasSize(opts options, cfg config.Config) (width, height float64) {
	width, height = cfg.View.Width, cfg.View.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}
	return width, height
}

// runExport renders st on the exact export canvas and writes it to the
// export path. It returns the path written.
func runExport(opts options, cfg config.Config, st session.State) (string, error) {
	st.SetCanvas(canvasSize(opts, cfg))

	scale, err := heatmap.NewColorScale(heatmap.MaxValue(st.Depth), cfg.Theme.HeatRamp)
	if err != nil {
		return "", err
	}
	root := tree.Build(st.Depth, st.Width, st.Height)
	snap := export.SnapshotOptions{
		Path:   opts.exportPath,
		Format: opts.format,
		Title:  fmt.Sprintf("xorwheel depth %d", st.Depth),
		Scene:  heatmap.BuildScene(root, st, scale),
	}
	_, path, err := export.ResolveFormat(snap)
	if err != nil {
		return "", err
	}
	if err := export.SaveSnapshot(snap); err != nil {
		return "", err
	}
	return path, nil
}

// runCheck resolves the sectors of every depth that draws a full ring and
// verifies they tile it.
func runCheck(w io.Writer) error {
	var failed []int
	for depth := 3; depth <= tree.MaxDepth; depth++ {
		root := tree.Build(depth, 800, 800)
		angles := sector.Resolve(root.Leaves(), tree.Center(800, 800))
		if err := sector.Contiguous(angles, sector.Tolerance); err != nil {
			fmt.Fprintf(w, "depth %2d: FAIL %v\n", depth, err)
			failed = append(failed, depth)
			continue
		}
		fmt.Fprintf(w, "depth %2d: ok (%d sectors)\n", depth, len(angles))
	}
	if len(failed) > 0 {
		return fmt.Errorf("sectors do not tile the ring at depths %v", failed)
	}
	return nil
}

func writeMetrics(w io.Writer) error {
	data, err := json.MarshalIndent(metrics.AllTimingStats(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set XW_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("XW_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
