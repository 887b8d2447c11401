// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of a focused chat widget.
type KeyMap struct {
	Submit       key.Binding
	NewChat      key.Binding
	ToggleList   key.Binding
	Delete       key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Suggestion   key.Binding
	Copy         key.Binding
	Clear        key.Binding
	Collapse     key.Binding
	CloseOverlay key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		ToggleList: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "conversations"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "delete chat"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Suggestion: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "next suggestion"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy answer"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear chat"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("C-b", "show/hide chat"),
		),
		CloseOverlay: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close list"),
		),
	}
}

// GlobalHelp is the KeyMap view shown while the sidebar has focus.
type GlobalHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (k GlobalHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewChat, k.ToggleList, k.Copy}
}

// FullHelp implements help.KeyMap.
func (k GlobalHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Suggestion, k.Copy},
		{k.NewChat, k.ToggleList, k.Delete, k.CloseOverlay},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Collapse},
	}
}

// ThreadHelp is the KeyMap view shown while a single-conversation widget
// has focus.
type ThreadHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (k ThreadHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.Copy}
}

// FullHelp implements help.KeyMap.
func (k ThreadHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Copy},
		{k.Up, k.Down, k.PageUp, k.PageDown},
	}
}
