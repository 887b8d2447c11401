// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// PolicyMetaLine returns "<type> · <date>" for a policy.
func PolicyMetaLine(p model.Policy) string {
	return model.PolicyTypeLabel(p.PolicyType) + " · " + p.DateIntroduced
}

// PolicyCard renders one policy record in width cells.
func PolicyCard(theme *styles.Theme, p model.Policy, width int) string {
	status := p.Status()
	badge := styles.RenderBadge(status)

	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	titleWidth := inner - lipgloss.Width(badge) - 1
	if titleWidth < 8 {
		titleWidth = 8
	}
	title := theme.CardTitle.Render(wrapText(p.Title, titleWidth))
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, title, " ", badge)}

	if p.BillNumber != "" {
		lines = append(lines, theme.CardBill.Render(p.BillNumber))
	}
	lines = append(lines, theme.CardMeta.Render(PolicyMetaLine(p)))
	if p.SummaryText != "" {
		lines = append(lines, theme.CardSummary.Render(wrapText(p.SummaryText, inner)))
	}
	if p.SourceURL != "" {
		lines = append(lines, theme.LinkStyle.Render("View source")+" "+theme.Muted.Render(p.SourceURL))
	}

	return theme.Card.
		BorderForeground(styles.BadgeFor(status).Accent).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
