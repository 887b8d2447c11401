// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the StateScope TUI.
// Chrome colors use Lip Gloss AdaptiveColor for automatic light/dark
// detection. Map tints and badges are fixed so the legend reads the same on
// every terminal.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
)

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Teal - Brand color, enacted legislation, active tab
var Teal = lipgloss.AdaptiveColor{Light: "#2A9D8F", Dark: "#4FC3B5"}

// TealDeep - Darker teal for backgrounds
var TealDeep = lipgloss.AdaptiveColor{Light: "#1A6B61", Dark: "#134E47"}

// Ink - Headings, selected outlines
var Ink = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#F0EEF6"}

// Indigo - Assistant messages, guidance
var Indigo = lipgloss.AdaptiveColor{Light: "#3D4D8A", Dark: "#9AA8E0"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors and failed requests
var Rose = lipgloss.AdaptiveColor{Light: "#991B1B", Dark: "#FB7185"}

// Amber - Warnings, pending bills
var Amber = lipgloss.AdaptiveColor{Light: "#8A6310", Dark: "#E9A820"}

// Emerald - Success toasts, healthy API
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header, footer, sidebar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F7F5F2", Dark: "#181825"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E1DA", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#2A9D8F", Dark: "#1A6B61"}

var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E9E4F5"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#DFE3F3", Dark: "#3D4D8A"}

// =============================================================================
// MAP STATUS TINTS
// =============================================================================

// StatusFill is the map tint of each state status.
var StatusFill = map[model.StateStatus]lipgloss.Color{
	model.StateEnacted:  "#2A9D8F",
	model.StatePending:  "#E9A820",
	model.StateGuidance: "#6C7EC4",
	model.StateFailed:   "#F4B4B4",
	model.StateNone:     "#E8E4DF",
}

// StatusText is the label color drawn on top of each tint.
var StatusText = map[model.StateStatus]lipgloss.Color{
	model.StateEnacted:  "#FFFFFF",
	model.StatePending:  "#1A1A2E",
	model.StateGuidance: "#FFFFFF",
	model.StateFailed:   "#1A1A2E",
	model.StateNone:     "#1A1A2E",
}

// SelectedOutline marks the selected state.
var SelectedOutline = lipgloss.Color("#1A1A2E")

// FillFor returns the tint of s, falling back to the "none" tint.
func FillFor(s model.StateStatus) lipgloss.Color {
	if c, ok := StatusFill[s]; ok {
		return c
	}
	return StatusFill[model.StateNone]
}

// TextFor returns the tile label color of s.
func TextFor(s model.StateStatus) lipgloss.Color {
	if c, ok := StatusText[s]; ok {
		return c
	}
	return StatusText[model.StateNone]
}

// =============================================================================
// POLICY BADGES
// =============================================================================

// BadgeColors is the background/text pair of a status badge plus the
// accent drawn along the policy card.
type BadgeColors struct {
	Bg     lipgloss.Color
	Fg     lipgloss.Color
	Accent lipgloss.Color
}

// Badges maps policy status to badge colors.
var Badges = map[model.PolicyStatus]BadgeColors{
	model.PolicyEnacted:    {Bg: "#D4F0EC", Fg: "#1A6B61", Accent: "#2A9D8F"},
	model.PolicyIntroduced: {Bg: "#FDF0CD", Fg: "#8A6310", Accent: "#E9A820"},
	model.PolicyActive:     {Bg: "#DFE3F3", Fg: "#3D4D8A", Accent: "#6C7EC4"},
	model.PolicyFailed:     {Bg: "#FEE2E2", Fg: "#991B1B", Accent: "#E05252"},
}

// BadgeFor returns the badge colors of s, falling back to "active".
func BadgeFor(s model.PolicyStatus) BadgeColors {
	if b, ok := Badges[s]; ok {
		return b
	}
	return Badges[model.PolicyActive]
}

// =============================================================================
// ACCESSIBILITY: Shapes and high contrast for colorblind users
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators provides ASCII indicators alongside colors.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// StatusGlyph is printed on map tiles in addition to the tint, so statuses
// stay distinguishable without color.
var StatusGlyph = map[model.StateStatus]string{
	model.StateEnacted:  "*",
	model.StatePending:  "~",
	model.StateGuidance: "+",
	model.StateFailed:   "x",
	model.StateNone:     " ",
}

// LinkColor - Accessible link color with sufficient contrast
var LinkColor = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its indicator.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(Indigo).Bold(true).
		Render(StatusIndicators.Info + " " + message)
}

// RenderLink renders text as an underlined link.
func RenderLink(text string) string {
	return lipgloss.NewStyle().Foreground(LinkColor).Underline(true).Render(text)
}

// RenderBadge renders a policy status badge.
func RenderBadge(s model.PolicyStatus) string {
	b := BadgeFor(s)
	return lipgloss.NewStyle().
		Background(b.Bg).
		Foreground(b.Fg).
		Bold(true).
		Padding(0, 1).
		Render(string(s))
}

// RenderSwatch renders a two-cell color swatch for a map status.
func RenderSwatch(s model.StateStatus) string {
	return lipgloss.NewStyle().Background(FillFor(s)).Render("  ")
}
