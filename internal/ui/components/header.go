// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Title is the dashboard title.
const Title = "StateScope: Interactive AI in Education Policy Tracker"

// ShortTitle is used when the terminal is too narrow for Title.
const ShortTitle = "StateScope"

// HealthState is what the header knows about the API.
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthOK
	HealthDown
)

// Header is the title bar with tab strip and API health.
type Header struct {
	Tabs      []string
	ActiveTab int
	Width     int

	health      HealthState
	policyCount int
	theme       *styles.Theme
}

// NewHeader creates a header with the given tabs.
func NewHeader(theme *styles.Theme, tabs ...string) *Header {
	return &Header{Tabs: tabs, Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTheme swaps the theme after a config reload.
func (h *Header) SetTheme(theme *styles.Theme) {
	h.theme = theme
}

// SetHealth records the latest /health result. A nil health means the API
// could not be reached.
func (h *Header) SetHealth(health *model.Health) {
	if health == nil {
		h.health = HealthDown
		return
	}
	h.health = HealthOK
	h.policyCount = health.PolicyCount
}

// HealthText returns the health indicator text.
func (h *Header) HealthText() string {
	switch h.health {
	case HealthOK:
		return "API: ok · " + fmtNumber(h.policyCount) + " " + util.Plural(h.policyCount, "policy", "policies")
	case HealthDown:
		return "API: unreachable"
	default:
		return "API: ..."
	}
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	inner := width - 2

	var healthStyle lipgloss.Style
	switch h.health {
	case HealthOK:
		healthStyle = h.theme.HealthOK
	case HealthDown:
		healthStyle = h.theme.HealthDown
	default:
		healthStyle = h.theme.Muted
	}
	health := healthStyle.Render(h.HealthText())
	healthWidth := lipgloss.Width(health)

	title := Title
	if util.StringWidth(title)+healthWidth+2 > inner {
		title = ShortTitle
	}
	titleLine := h.theme.HeaderTitle.Render(title)
	gap := inner - lipgloss.Width(titleLine) - healthWidth
	if gap < 1 {
		gap = 1
	}
	top := titleLine + strings.Repeat(" ", gap) + health

	var tabs []string
	for i, tab := range h.Tabs {
		style := h.theme.Tab
		if i == h.ActiveTab {
			style = h.theme.TabActive
		}
		tabs = append(tabs, style.Render(tab))
	}

	content := top
	if len(tabs) > 0 {
		content += "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	}
	return h.theme.Header.Width(width).Render(content)
}

// TabAt returns the tab under column x on the tab row, or -1.
func (h *Header) TabAt(x int) int {
	// Header padding is one column.
	pos := 1
	for i, tab := range h.Tabs {
		style := h.theme.Tab
		if i == h.ActiveTab {
			style = h.theme.TabActive
		}
		w := lipgloss.Width(style.Render(tab))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w
	}
	return -1
}

// Height is the number of lines View produces.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}
