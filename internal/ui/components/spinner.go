// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading indicator with an optional message.
type Spinner struct {
	spinner spinner.Model
	message string
	style   lipgloss.Style
}

// NewSpinner creates a spinner with a configuration and message.
func NewSpinner(cfg styles.SpinnerConfig, message string) Spinner {
	s := spinner.New()
	s.Spinner = cfg.Spinner()
	s.Style = lipgloss.NewStyle().Foreground(styles.Teal)
	return Spinner{
		spinner: s,
		message: message,
		style:   lipgloss.NewStyle().Foreground(styles.TextSecondary),
	}
}

// NewTypingSpinner is shown where the next assistant answer will appear.
func NewTypingSpinner() Spinner {
	return NewSpinner(styles.DotsSpinner, "")
}

// NewLoadingSpinner is shown while a data panel loads.
func NewLoadingSpinner(message string) Spinner {
	return NewSpinner(styles.LineSpinner, message)
}

// Tick starts the animation.
func (s Spinner) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the animation. Ticks for other spinners are ignored by
// the bubbles model itself.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// SetMessage changes the text next to the animation.
func (s *Spinner) SetMessage(message string) {
	s.message = message
}

// View renders the spinner.
func (s Spinner) View() string {
	if s.message == "" {
		return s.spinner.View()
	}
	return s.spinner.View() + " " + s.style.Render(s.message)
}
