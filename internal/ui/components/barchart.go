// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// Chart messages.
const (
	ChartLoading = "Loading..."
	ChartEmpty   = "No data for current filters."
)

// BarChart draws labeled horizontal bars scaled to the largest count.
type BarChart struct {
	Title string
	// HighlightMax draws the largest bars in the accent color and the rest
	// dimmed.
	HighlightMax bool

	theme *styles.Theme
}

// NewBarChart creates a chart.
func NewBarChart(theme *styles.Theme, title string, highlightMax bool) BarChart {
	return BarChart{Title: title, HighlightMax: highlightMax, theme: theme}
}

// SetTheme swaps the theme after a config reload.
func (c *BarChart) SetTheme(theme *styles.Theme) {
	c.theme = theme
}

// View renders bars in width cells. loading and empty data render the chart
// messages instead.
func (c BarChart) View(bars []model.Bar, loading bool, width int) string {
	title := c.theme.ChartTitle.Render(c.Title)
	switch {
	case loading:
		return c.theme.ChartBox.Render(title + "\n" + c.theme.PanelMessage.Render(ChartLoading))
	case len(bars) == 0:
		return c.theme.ChartBox.Render(title + "\n" + c.theme.PanelMessage.Render(ChartEmpty))
	}

	labelWidth := 0
	countWidth := 0
	for _, b := range bars {
		if w := util.StringWidth(b.Label); w > labelWidth {
			labelWidth = w
		}
		if w := len(strconv.Itoa(b.Count)); w > countWidth {
			countWidth = w
		}
	}
	if limit := width / 3; labelWidth > limit && limit > 4 {
		labelWidth = limit
	}

	barWidth := width - labelWidth - countWidth - 8
	if barWidth < 4 {
		barWidth = 4
	}

	top := model.MaxCount(bars)
	hot := progress.New(progress.WithSolidFill(string(styles.StatusFill[model.StateEnacted])), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	dim := progress.New(progress.WithSolidFill("#9FD3CC"), progress.WithoutPercentage(), progress.WithWidth(barWidth))
	hot.EmptyColor, dim.EmptyColor = "", ""
	hot.Empty, dim.Empty = ' ', ' '

	lines := []string{title}
	for _, b := range bars {
		pct := 0.0
		if top > 0 {
			pct = float64(b.Count) / float64(top)
		}
		bar, valueStyle := hot, c.theme.BarValue
		if c.HighlightMax {
			if b.Count == top {
				valueStyle = c.theme.BarValueMax
			} else {
				bar = dim
			}
		}
		label := c.theme.BarLabel.Render(util.PadWidth(util.TruncateWidth(b.Label, labelWidth), labelWidth))
		count := valueStyle.Render(strconv.Itoa(b.Count))
		lines = append(lines, label+" "+bar.ViewAs(pct)+" "+count)
	}
	return c.theme.ChartBox.Render(strings.Join(lines, "\n"))
}
