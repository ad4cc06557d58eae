package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/xorwheel/pkg/bitid"
	"github.com/vanderheijden86/xorwheel/pkg/config"
	"github.com/vanderheijden86/xorwheel/pkg/debug"
	"github.com/vanderheijden86/xorwheel/pkg/export"
	"github.com/vanderheijden86/xorwheel/pkg/heatmap"
	"github.com/vanderheijden86/xorwheel/pkg/metrics"
	"github.com/vanderheijden86/xorwheel/pkg/session"
	"github.com/vanderheijden86/xorwheel/pkg/tree"
	"github.com/vanderheijden86/xorwheel/pkg/watcher"
)

// View width thresholds for adaptive layout
const (
	SplitViewThreshold = 100
	defaultWidth       = 80
	defaultHeight      = 24
	// header, leaf strip and footer
	chromeLines = 3
)

// ConfigReloadedMsg carries a config file reload.
type ConfigReloadedMsg watcher.Reload

// SnapshotSavedMsg reports the outcome of an export.
type SnapshotSavedMsg struct {
	Path string
	Err  error
}

// WaitForConfigCmd returns a command that waits for the next config reload.
func WaitForConfigCmd(cw *watcher.ConfigWatcher) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-cw.Reloads()
		if !ok {
			return nil
		}
		return ConfigReloadedMsg(r)
	}
}

// Model is the bubbletea model of the heat wheel. It owns the interaction
// state and rebuilds the tree and scene whenever the state changes.
type Model struct {
	state session.State
	cfg   config.Config
	scale heatmap.ColorScale

	root       *tree.Node
	scene      *heatmap.Scene
	builtDepth int
	builtSide  float64

	theme Theme
	keys  keyMap
	help  help.Model

	depthInput    textinput.Model
	enteringDepth bool
	showHelp      bool
	showDetail    bool
	detail        *glamour.TermRenderer

	configWatcher *watcher.ConfigWatcher

	width         int
	height        int
	ready         bool
	statusMsg     string
	statusIsError bool

	// swapped out in tests
	copyToClipboard func(string) error
	saveSnapshot    func(export.SnapshotOptions) error
}

// NewModel returns a model for st, using cfg for the color ramp, the
// selection policy and exports.
func NewModel(st session.State, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%d-%d", tree.MinDepth, tree.MaxDepth)
	ti.CharLimit = 2
	ti.Width = 4
	ti.Prompt = "depth: "

	m := Model{
		state:           st,
		cfg:             cfg,
		theme:           DefaultTheme(lipgloss.DefaultRenderer()),
		keys:            keys,
		help:            help.New(),
		depthInput:      ti,
		showDetail:      true,
		width:           defaultWidth,
		height:          defaultHeight,
		ready:           true,
		copyToClipboard: clipboard.WriteAll,
		saveSnapshot:    export.SaveSnapshot,
	}
	m.state.Policy.ClearOnDepthChange = cfg.Selection.ClearOnDepthChange
	if err := m.setRamp(cfg.Theme.HeatRamp); err != nil {
		m.setStatus(err.Error(), true)
	}
	m.resize()
	return m
}

// WithConfigWatcher attaches a config watcher whose reloads are applied live.
func (m Model) WithConfigWatcher(cw *watcher.ConfigWatcher) Model {
	m.configWatcher = cw
	return m
}

func (m Model) Init() tea.Cmd {
	if m.configWatcher != nil {
		return WaitForConfigCmd(m.configWatcher)
	}
	return nil
}

// State returns the interaction state.
func (m Model) State() session.State { return m.state }

// Scene returns the scene of the current frame.
func (m Model) Scene() *heatmap.Scene { return m.scene }

// Status returns the status line and whether it reports an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

func (m *Model) setRamp(ramp []string) error {
	scale, err := heatmap.NewColorScale(heatmap.MaxValue(m.state.Depth), ramp)
	if err != nil {
		m.scale = heatmap.DefaultScale(m.state.Depth)
		return err
	}
	m.scale = scale
	return nil
}

func (m Model) splitView() bool {
	return m.showDetail && m.width >= SplitViewThreshold
}

func (m Model) helpLines() int {
	if !m.showHelp {
		return 0
	}
	n := 0
	for _, col := range m.keys.FullHelp() {
		n = max(n, len(col))
	}
	return n + 1
}

// rasterSize returns the cells available to the wheel.
func (m Model) rasterSize() (cols, rows int) {
	cols = m.width
	if m.splitView() {
		cols -= DetailPaneWidth + 2
	}
	rows = m.height - chromeLines - m.helpLines()
	if m.enteringDepth {
		rows--
	}
	return max(cols, 1), max(rows, 1)
}

// resize fits the canvas to the terminal and rebuilds the frame.
func (m *Model) resize() {
	side := CanvasSide(m.rasterSize())
	if side != m.state.Width || side != m.state.Height {
		m.state.SetViewport(side, side)
	}
	if m.splitView() && m.detail == nil {
		m.detail = newDetailRenderer(DetailPaneWidth - 2)
	}
	m.rebuild()
}

// rebuild regenerates the tree when depth or canvas changed, then the scene.
func (m *Model) rebuild() {
	if m.root == nil || m.builtDepth != m.state.Depth || m.builtSide != m.state.Width {
		m.root = tree.Build(m.state.Depth, m.state.Width, m.state.Height)
		m.builtDepth, m.builtSide = m.state.Depth, m.state.Width
	}
	m.scene = heatmap.BuildScene(m.root, m.state, m.scale)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()

	case ConfigReloadedMsg:
		m.applyReload(watcher.Reload(msg))
		if m.configWatcher != nil {
			cmds = append(cmds, WaitForConfigCmd(m.configWatcher))
		}

	case SnapshotSavedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.Err), true)
		} else {
			m.setStatus("Exported "+msg.Path, false)
		}

	case tea.KeyMsg:
		if m.enteringDepth {
			next, cmd := m.handleDepthEntry(msg)
			return next, cmd
		}
		next, cmd := m.handleKeys(msg)
		return next, cmd
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// any key clears the previous status
	m.setStatus("", false)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.DepthUp):
		m.changeDepth(m.state.Depth + 1)
	case key.Matches(msg, m.keys.DepthDown):
		m.changeDepth(m.state.Depth - 1)
	case key.Matches(msg, m.keys.DepthEntry):
		m.enteringDepth = true
		m.depthInput.SetValue("")
		cmd := m.depthInput.Focus()
		m.resize()
		return m, cmd

	case key.Matches(msg, m.keys.Next):
		m.moveLeaf(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveLeaf(-1)
	case key.Matches(msg, m.keys.Parent):
		m.moveParent()
	case key.Matches(msg, m.keys.Child):
		m.moveChild()
	case key.Matches(msg, m.keys.Internal):
		m.cycleInternal()

	case key.Matches(msg, m.keys.Select):
		m.selectHovered()
	case key.Matches(msg, m.keys.Deselect):
		m.state.Deselect()
	case key.Matches(msg, m.keys.Unhover):
		if m.showHelp {
			m.showHelp = false
			m.help.ShowAll = false
			m.resize()
			return m, nil
		}
		m.state.Unhover()

	case key.Matches(msg, m.keys.RadiusUp):
		m.state.IncreaseRadius()
	case key.Matches(msg, m.keys.RadiusDown):
		m.state.DecreaseRadius()

	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
		return m, nil

	default:
		return m, nil
	}

	m.rebuild()
	return m, nil
}

func (m Model) handleDepthEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.enteringDepth = false
		m.depthInput.Blur()
		m.resize()
		return m, nil
	case tea.KeyEnter:
		m.enteringDepth = false
		m.depthInput.Blur()
		value := strings.TrimSpace(m.depthInput.Value())
		n, err := strconv.Atoi(value)
		if err != nil {
			m.setStatus(fmt.Sprintf("Invalid depth %q", value), true)
			m.resize()
			return m, nil
		}
		m.changeDepth(n)
		m.resize()
		return m, nil
	}
	var cmd tea.Cmd
	m.depthInput, cmd = m.depthInput.Update(msg)
	return m, cmd
}

// changeDepth applies a clamped depth and keeps the scale domain in step.
func (m *Model) changeDepth(n int) {
	clamped := tree.ClampDepth(n)
	if clamped != n {
		m.setStatus(fmt.Sprintf("Depth clamped to %d", clamped), false)
	}
	if !m.state.SetDepth(clamped) {
		return
	}
	if err := m.setRamp(m.cfg.Theme.HeatRamp); err != nil {
		m.setStatus(err.Error(), true)
	}
	if m.state.Stale() {
		m.setStatus(fmt.Sprintf("Selection %s is not a leaf at depth %d", m.state.Selected, m.state.Depth), false)
	}
}

// leafIndex returns the position of id among the leaves, or -1.
func (m Model) leafIndex(id string) int {
	if !bitid.Valid(id) || bitid.Bits(id) != m.state.Depth-1 {
		return -1
	}
	if m.state.Depth == 1 {
		return 0
	}
	v, err := strconv.ParseUint(bitid.Payload(id), 2, 64)
	if err != nil {
		return -1
	}
	return int(v)
}

// moveLeaf moves the hover delta leaves clockwise. Without a hovered leaf it
// starts at the selection, else at the first or last leaf.
func (m *Model) moveLeaf(delta int) {
	leaves := m.root.Leaves()
	n := len(leaves)
	i := m.leafIndex(m.state.Hovered)
	switch {
	case i >= 0:
		i = ((i+delta)%n + n) % n
	case m.leafIndex(m.state.Selected) >= 0:
		i = m.leafIndex(m.state.Selected)
	case delta > 0:
		i = 0
	default:
		i = n - 1
	}
	m.state.Hover(leaves[i])
}

func (m *Model) moveParent() {
	n := m.root.Find(m.state.Hovered)
	if n == nil {
		m.state.Hover(m.root)
		return
	}
	if n.Parent != nil {
		m.state.Hover(n.Parent)
	}
}

func (m *Model) moveChild() {
	n := m.root.Find(m.state.Hovered)
	if n == nil {
		n = m.root
	} else if !n.IsLeaf() {
		n = n.Left()
	}
	m.state.Hover(n)
}

// cycleInternal hovers the next internal node in breadth-first order.
func (m *Model) cycleInternal() {
	var internal []*tree.Node
	for _, n := range m.root.Descendants() {
		if !n.IsLeaf() {
			internal = append(internal, n)
		}
	}
	if len(internal) == 0 {
		m.setStatus("No internal nodes at depth 1", false)
		return
	}
	next := 0
	for i, n := range internal {
		if n.ID == m.state.Hovered {
			next = (i + 1) % len(internal)
			break
		}
	}
	m.state.Hover(internal[next])
}

func (m *Model) selectHovered() {
	n := m.root.Find(m.state.Hovered)
	if n == nil {
		m.setStatus("Nothing hovered", true)
		return
	}
	if !n.IsLeaf() {
		m.setStatus("Only leaves can be selected", true)
		return
	}
	if m.state.Select(n) {
		debug.Log("ui: selected %s", n.ID)
	}
}

func (m *Model) copySelection() {
	if !m.state.HasSelection() {
		m.setStatus("No leaf selected", true)
		return
	}
	if err := m.copyToClipboard(m.state.Selected); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", m.state.Selected), false)
}

// snapshotStem names an export after the depth and selection.
func snapshotStem(st session.State) string {
	stem := fmt.Sprintf("xorwheel-d%d", st.Depth)
	if st.HasSelection() {
		stem += "-" + bitid.Payload(st.Selected)
	}
	return stem
}

// exportCmd renders the current state at the configured export canvas size
// off the UI goroutine.
func (m Model) exportCmd() tea.Cmd {
	st := m.state
	st.SetCanvas(m.cfg.View.Width, m.cfg.View.Height)
	scale := m.scale
	path := m.cfg.ExportPath(snapshotStem(st))
	save := m.saveSnapshot
	return func() tea.Msg {
		root := tree.Build(st.Depth, st.Width, st.Height)
		sc := heatmap.BuildScene(root, st, scale)
		err := save(export.SnapshotOptions{Path: path, Title: "xorwheel", Scene: sc})
		return SnapshotSavedMsg{Path: path, Err: err}
	}
}

// applyReload takes the defaults of a reloaded config: radius, ramp,
// selection policy and export settings. Depth and selection stay as they
// are.
func (m *Model) applyReload(r watcher.Reload) {
	if r.Err != nil {
		m.setStatus(fmt.Sprintf("Config reload failed: %v", r.Err), true)
		return
	}
	m.cfg = r.Config
	m.state.Policy.ClearOnDepthChange = r.Config.Selection.ClearOnDepthChange
	m.state.SetRadius(r.Config.View.Radius)
	if err := m.setRamp(r.Config.Theme.HeatRamp); err != nil {
		m.setStatus(err.Error(), true)
	} else {
		m.setStatus("Config reloaded", false)
	}
	m.rebuild()
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	defer metrics.Timer(metrics.UIRender)()

	cols, rows := m.rasterSize()
	wheel := Rasterize(m.scene, cols, rows).Render(m.theme)

	body := wheel
	if m.splitView() {
		panel := PanelStyle.
			Width(DetailPaneWidth).
			Height(rows - 2).
			MaxHeight(rows).
			Render(renderDetail(m.detail, detailMarkdown(m.scene)))
		body = lipgloss.JoinHorizontal(lipgloss.Top, wheel, panel)
	}

	parts := []string{m.renderHeader(), body, m.renderLeafStrip()}
	if m.enteringDepth {
		parts = append(parts, m.depthInput.View())
	}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	parts = append(parts, m.renderFooter())

	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHeader() string {
	h := m.scene.Header
	text := strings.Join(h.Lines(), "  ")
	text += fmt.Sprintf("  radius: %d", m.state.Radius)
	if h.Tooltip != "" {
		text += "  hover: " + h.Tooltip
	}
	return m.theme.Header.Render(truncate(text, max(m.width-2, 1)))
}

// renderLeafStrip lists the leaves around the hover with their distances.
func (m Model) renderLeafStrip() string {
	if !m.scene.HasHeat() {
		return m.theme.MutedText.Render("single node: no heat ring")
	}
	secs := m.scene.Sectors
	center := m.leafIndex(m.state.Hovered)
	if center < 0 {
		center = max(m.leafIndex(m.state.Selected), 0)
	}

	const cellWidth = 12
	lo, hi := window(center, len(secs), max(m.width/cellWidth, 1))
	var b strings.Builder
	for _, s := range secs[lo:hi] {
		label := padRight(truncate(bitid.Payload(s.ID)+":"+strconv.FormatUint(s.Value, 10), cellWidth-1), cellWidth)
		style := m.theme.Base
		switch {
		case s.Selected:
			style = m.theme.PrimaryBold
		case s.Hovered:
			style = m.theme.Base.Foreground(m.theme.Hovered).Bold(true)
		case !s.InRadius:
			style = m.theme.MutedText
		}
		b.WriteString(style.Render(label))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := m.theme.StatusOK
		prefix := "✓ "
		if m.statusIsError {
			style = m.theme.StatusError
			prefix = "✗ "
		}
		return style.Render(truncate(prefix+m.statusMsg, max(m.width-4, 1)))
	}
	if m.showHelp {
		return m.theme.MutedText.Render("esc close help")
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
