package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	DepthUp    key.Binding
	DepthDown  key.Binding
	DepthEntry key.Binding
	Next       key.Binding
	Prev       key.Binding
	Parent     key.Binding
	Child      key.Binding
	Internal   key.Binding
	Select     key.Binding
	Deselect   key.Binding
	Unhover    key.Binding
	RadiusUp   key.Binding
	RadiusDown key.Binding
	Copy       key.Binding
	Export     key.Binding
	Detail     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DepthUp, k.DepthDown, k.Prev, k.Next, k.Select, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.DepthUp, k.DepthDown, k.DepthEntry},
		{k.Next, k.Prev, k.Parent, k.Child, k.Internal},
		{k.Select, k.Deselect, k.Unhover, k.RadiusUp, k.RadiusDown},
		{k.Copy, k.Export, k.Detail, k.Help, k.Quit},
	}
}

var keys = keyMap{
	DepthUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "deeper"),
	),
	DepthDown: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "shallower"),
	),
	DepthEntry: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "set depth"),
	),
	Next: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next leaf"),
	),
	Prev: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev leaf"),
	),
	Parent: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "parent"),
	),
	Child: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "child"),
	),
	Internal: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "internal node"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Deselect: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "deselect"),
	),
	Unhover: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "unhover"),
	),
	RadiusUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "widen radius"),
	),
	RadiusDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "narrow radius"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Detail: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "detail"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
