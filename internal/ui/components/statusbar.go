// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line: key hints on the left, an optional status
// message on the right. "?" toggles the full help.
type StatusBar struct {
	help    help.Model
	width   int
	message string
	theme   *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDesc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDesc
	return &StatusBar{help: h, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
	s.help.Width = width
}

// SetMessage sets the right-hand status text.
func (s *StatusBar) SetMessage(message string) {
	s.message = message
}

// ToggleFullHelp switches between one-line and full help.
func (s *StatusBar) ToggleFullHelp() {
	s.help.ShowAll = !s.help.ShowAll
}

// ShowingFullHelp reports whether the full help is visible.
func (s *StatusBar) ShowingFullHelp() bool {
	return s.help.ShowAll
}

// View renders the bar for keys.
func (s *StatusBar) View(keys help.KeyMap) string {
	hints := s.help.View(keys)
	if s.message == "" || s.help.ShowAll {
		return s.theme.StatusBar.Width(s.width).Render(hints)
	}

	msg := s.theme.Muted.Render(s.message)
	gap := s.width - 2 - lipgloss.Width(hints) - lipgloss.Width(msg)
	if gap < 1 {
		return s.theme.StatusBar.Width(s.width).Render(hints)
	}
	return s.theme.StatusBar.Width(s.width).Render(hints + strings.Repeat(" ", gap) + msg)
}
