// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// TooltipCountLine returns "N policy · click to view", or "" when the state
// has no policies.
func TooltipCountLine(count int) string {
	if count <= 0 {
		return ""
	}
	return strconv.Itoa(count) + " " + util.Plural(count, "policy", "policies") + " · click to view"
}

// Tooltip renders the hover card of a state.
func Tooltip(theme *styles.Theme, s model.State) string {
	status := s.Status()
	content := theme.TooltipTitle.Render(s.Name) + "\n" +
		styles.RenderSwatch(status) + " " + status.Label()
	if line := TooltipCountLine(s.PolicyCount); line != "" {
		content += "\n" + theme.TooltipCount.Render(line)
	}
	return theme.Tooltip.Render(content)
}
