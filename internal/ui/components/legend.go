// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// LegendStatuses are the statuses shown in the map legend, in order.
var LegendStatuses = []model.StateStatus{
	model.StateNone,
	model.StateGuidance,
	model.StatePending,
	model.StateEnacted,
}

// Legend renders the map legend on one line, or one entry per line when
// vertical is set.
func Legend(theme *styles.Theme, vertical bool) string {
	items := make([]string, 0, len(LegendStatuses))
	for _, s := range LegendStatuses {
		items = append(items, styles.RenderSwatch(s)+" "+theme.LegendLabel.Render(s.LegendLabel()))
	}
	if vertical {
		return lipgloss.JoinVertical(lipgloss.Left, items...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}
