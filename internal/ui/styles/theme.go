// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	Mode         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND TAB STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HealthOK       lipgloss.Style
	HealthDown     lipgloss.Style
	Tab            lipgloss.Style
	TabActive      lipgloss.Style

	// ==========================================================================
	// MAP STYLES
	// ==========================================================================

	MapBox       lipgloss.Style
	InsetTitle   lipgloss.Style
	Tooltip      lipgloss.Style
	TooltipTitle lipgloss.Style
	TooltipCount lipgloss.Style
	LegendLabel  lipgloss.Style
	Description  lipgloss.Style

	// ==========================================================================
	// POLICY PANEL STYLES
	// ==========================================================================

	Panel        lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelMessage lipgloss.Style
	Picker       lipgloss.Style
	PickerItem   lipgloss.Style
	PickerActive lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardBill     lipgloss.Style
	CardMeta     lipgloss.Style
	CardSummary  lipgloss.Style
	LinkStyle    lipgloss.Style

	// ==========================================================================
	// CHAT STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarHandle    lipgloss.Style
	SidebarHandleHot lipgloss.Style
	ChatHeader       lipgloss.Style
	ChatEmpty        lipgloss.Style
	ConvItem         lipgloss.Style
	ConvItemActive   lipgloss.Style
	ConvDelete       lipgloss.Style
	UserBubble       lipgloss.Style
	AssistantBubble  lipgloss.Style
	FailedBubble     lipgloss.Style
	RoleLabel        lipgloss.Style
	Sources          lipgloss.Style
	Suggestion       lipgloss.Style
	SuggestionActive lipgloss.Style
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style
	Spinner          lipgloss.Style
	ThinkingText     lipgloss.Style

	// ==========================================================================
	// TRENDS STYLES
	// ==========================================================================

	ChartBox      lipgloss.Style
	ChartTitle    lipgloss.Style
	BarLabel      lipgloss.Style
	BarValue      lipgloss.Style
	BarValueMax   lipgloss.Style
	FilterLabel   lipgloss.Style
	FilterValue   lipgloss.Style
	FilterFocused lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. mode is one of
// ModeAuto, ModeDark or ModeLight; anything else behaves like ModeAuto.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		mode = ModeAuto
		isDark = termenv.HasDarkBackground()
		lipgloss.SetHasDarkBackground(isDark)
	}

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HealthOK = lipgloss.NewStyle().
		Foreground(Emerald)

	t.HealthDown = lipgloss.NewStyle().
		Foreground(Rose)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 2)

	// Map
	t.MapBox = lipgloss.NewStyle().
		Padding(1, 2)

	t.InsetTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.Tooltip = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.TooltipTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink)

	t.TooltipCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.LegendLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		MarginRight(2)

	t.Description = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Policy panel
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink)

	t.PanelMessage = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Picker = lipgloss.NewStyle()

	t.PickerItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.PickerActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 1)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginBottom(1)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.CardBill = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.CardMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CardSummary = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	// Chat
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim)

	t.SidebarHandle = lipgloss.NewStyle().
		Foreground(Overlay)

	t.SidebarHandleHot = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ChatHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.ChatEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center)

	t.ConvItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ConvItemActive = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		Padding(0, 1)

	t.ConvDelete = lipgloss.NewStyle().
		Foreground(Rose)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AssistantBubbleBorder).
		PaddingLeft(1)

	t.FailedBubble = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Rose).
		PaddingLeft(1)

	t.RoleLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true)

	t.Sources = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(Teal).
		Padding(0, 1)

	t.SuggestionActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Padding(0, 1)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Trends
	t.ChartBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ChartTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Ink).
		MarginBottom(1)

	t.BarLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.BarValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.BarValueMax = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.FilterLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FilterValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.FilterFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Accessibility
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // chat collapses to an overlay
	LayoutWide                     // chat is a resizable sidebar
)

// GetLayoutMode returns the layout mode for the current width. breakpoint
// is ui.narrow_breakpoint from config.
func (t *Theme) GetLayoutMode(breakpoint int) LayoutMode {
	if t.Width < breakpoint {
		return LayoutNarrow
	}
	return LayoutWide
}

// TileStyle returns the style of a map tile.
func (t *Theme) TileStyle(fill, text lipgloss.Color, selected, hovered bool) lipgloss.Style {
	s := lipgloss.NewStyle().Background(fill).Foreground(text)
	if selected {
		s = s.Bold(true).Underline(true)
	}
	if hovered {
		s = s.Reverse(true)
	}
	return s
}
