// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for CLI output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2A9D8F"))

	// SectionStyle is used for section headers within commands
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(16)

	// ValueStyle is used for regular values and text
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// SuccessStyle is used for success messages and OK statuses
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// ErrorStyle is used for error messages and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle is used for warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// PromptStyle is the chat REPL's "you" marker
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E9A820")).
			Bold(true)
)

// stateStatusStyles tint state status words like the map does.
var stateStatusStyles = map[model.StateStatus]lipgloss.Style{
	model.StateEnacted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2A9D8F")),
	model.StatePending:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E9A820")),
	model.StateGuidance: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7EC4")),
	model.StateFailed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F4B4B4")),
}

// =============================================================================
// HELPERS
// =============================================================================

// RenderSeparator renders a horizontal rule width cells wide.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 60
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderLabel renders a label padded to the label column.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}

// padCell right-pads styled text to width visible cells.
func padCell(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// RenderStateStatus renders a state's status label in its map color.
func RenderStateStatus(s model.StateStatus) string {
	if style, ok := stateStatusStyles[s]; ok {
		return style.Render(s.Label())
	}
	return DimStyle.Render(s.Label())
}
