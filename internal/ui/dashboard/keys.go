// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the dashboard-level key bindings.
type KeyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	FocusNext key.Binding
	FocusPrev key.Binding
	Help      key.Binding
	Refresh   key.Binding
	Sidebar   key.Binding
	Dismiss   key.Binding

	// Map cursor
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Clear  key.Binding

	// Cards
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Trend filters
	FilterReset key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "map/trends"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "show/hide chat"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("C-w", "dismiss"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll cards"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll cards"),
		),
		FilterReset: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("bksp", "reset filter"),
		),
	}
}

// =============================================================================
// HELP VIEWS
// =============================================================================

// mapHelp is shown while the map has focus.
type mapHelp struct{ KeyMap }

func (k mapHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Clear, k.NextTab, k.FocusNext, k.Help}
}

func (k mapHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Clear},
		{k.ScrollUp, k.ScrollDown},
		{k.NextTab, k.FocusNext, k.FocusPrev, k.Sidebar},
		{k.Refresh, k.Dismiss, k.Help, k.Quit},
	}
}

// filterHelp is shown while the trend filters have focus.
type filterHelp struct{ KeyMap }

func (k filterHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.FilterReset, k.NextTab, k.FocusNext, k.Help}
}

func (k filterHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.FilterReset},
		{k.NextTab, k.FocusNext, k.FocusPrev, k.Sidebar},
		{k.Refresh, k.Dismiss, k.Help, k.Quit},
	}
}
