// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/components"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// Trends tab text.
const (
	TrendsError    = "Error loading trends."
	StatusLabel    = "By status:"
	LevelLabel     = "By level:"
	breakdownEmpty = "no data"
)

// Filters exposes the trends filter bar.
func (m *Model) Filters() *Filters {
	return m.filters
}

// SetFilter chooses value for field and re-fetches when it changed.
func (m *Model) SetFilter(field FilterField, value string) tea.Cmd {
	if !m.filters.Set(field, value) {
		return nil
	}
	return m.fetchTrends()
}

func (m *Model) filterKey(msg tea.KeyMsg) tea.Cmd {
	f := m.filters.Focused()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.filters.MoveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.filters.MoveFocus(1)
	case key.Matches(msg, m.keys.Left):
		if m.filters.Cycle(f, -1) {
			return m.fetchTrends()
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
		if m.filters.Cycle(f, 1) {
			return m.fetchTrends()
		}
	case key.Matches(msg, m.keys.FilterReset), key.Matches(msg, m.keys.Clear):
		if m.filters.Reset(f) {
			return m.fetchTrends()
		}
	}
	return nil
}

// filterAt returns the filter field under column x of the filter bar.
func (m *Model) filterAt(x int) (FilterField, bool) {
	rel := x - m.regions.filters.X
	_, spans := m.filters.View(m.theme, m.focus == FocusFilters)
	for i, s := range spans {
		if rel >= s.start && rel < s.end {
			return FilterField(i), true
		}
	}
	return 0, false
}

// =============================================================================
// RENDERING
// =============================================================================

func (m *Model) trendsView() string {
	r := m.regions

	bar, _ := m.filters.View(m.theme, m.focus == FocusFilters)

	timeline := m.chartView(0, m.timelineChart, model.TimelineBars(m.data.timeline.Data),
		m.data.timeline.Loading && !m.data.timeline.Loaded(), m.data.timeline.Err)
	topics := m.chartView(1, m.topicChart, model.TopicBars(m.data.topicTrends.Data),
		m.data.topicTrends.Loading && !m.data.topicTrends.Loaded(), m.data.topicTrends.Err)

	var charts string
	if r.charts[1].Y == r.charts[0].Y {
		charts = lipgloss.JoinHorizontal(lipgloss.Top, timeline, " ", topics)
	} else {
		charts = lipgloss.JoinVertical(lipgloss.Left, timeline, topics)
	}

	breakdown := box(lipgloss.JoinVertical(lipgloss.Left, m.statusBreakdown(), m.levelBreakdown()), r.breakdown.W, r.breakdown.H)
	chat := box(m.trendsChat.View(), r.trendsChat.W, r.trendsChat.H)

	content := lipgloss.JoinVertical(lipgloss.Left,
		"",
		bar,
		"",
		charts,
		breakdown,
		"",
		chat,
	)
	return lipgloss.NewStyle().PaddingLeft(1).Render(content)
}

func (m *Model) chartView(i int, chart components.BarChart, bars []model.Bar, loading bool, err error) string {
	rc := m.regions.charts[i]
	if err != nil {
		body := m.theme.ChartTitle.Render(chart.Title) + "\n" + m.theme.ErrorStyle.Render(TrendsError)
		return box(m.theme.ChartBox.Render(body), rc.W, rc.H)
	}
	return box(chart.View(bars, loading, rc.W-4), rc.W, rc.H)
}

func (m *Model) statusBreakdown() string {
	res := m.data.statusTrends
	if res.Err != nil {
		return m.theme.FilterLabel.Render(StatusLabel) + " " + m.theme.ErrorStyle.Render(TrendsError)
	}
	parts := make([]string, 0, len(res.Data))
	for _, s := range res.Data {
		parts = append(parts, styles.RenderBadge(model.ParsePolicyStatus(s.Status))+" "+strconv.Itoa(s.Count))
	}
	return m.breakdownLine(StatusLabel, parts, res.Loading && !res.Loaded())
}

func (m *Model) levelBreakdown() string {
	res := m.data.levelTrends
	if res.Err != nil {
		return m.theme.FilterLabel.Render(LevelLabel) + " " + m.theme.ErrorStyle.Render(TrendsError)
	}
	parts := make([]string, 0, len(res.Data))
	for _, l := range res.Data {
		label := l.Level
		if label == "" {
			label = "unspecified"
		}
		parts = append(parts, m.theme.FilterValue.Render(label)+m.theme.BarValue.Render(strconv.Itoa(l.Count)))
	}
	return m.breakdownLine(LevelLabel, parts, res.Loading && !res.Loaded())
}

func (m *Model) breakdownLine(label string, parts []string, loading bool) string {
	head := m.theme.FilterLabel.Render(util.PadWidth(label, 11))
	switch {
	case loading:
		return head + m.theme.PanelMessage.Render(components.ChartLoading)
	case len(parts) == 0:
		return head + m.theme.PanelMessage.Render(breakdownEmpty)
	}
	return head + strings.Join(parts, "  ")
}
