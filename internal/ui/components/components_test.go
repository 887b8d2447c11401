// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(styles.ModeLight)
}

func TestFmtNumber(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		123456:  "123,456",
		1234567: "1,234,567",
		-4200:   "-4,200",
	}
	for in, want := range tests {
		if got := fmtNumber(in); got != want {
			t.Errorf("fmtNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("Which states have pending AI education bills", 16)
	for _, line := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(line), 16, "line %q", line)
	}
	assert.Equal(t, "single", wrapText("single", 0))
}

func TestTooltipCountLine(t *testing.T) {
	assert.Equal(t, "", TooltipCountLine(0))
	assert.Equal(t, "1 policy · click to view", TooltipCountLine(1))
	assert.Equal(t, "7 policies · click to view", TooltipCountLine(7))
}

func TestTooltip(t *testing.T) {
	out := Tooltip(testTheme(), model.State{Name: "California", PolicyStatus: "enacted", PolicyCount: 3})
	assert.Contains(t, out, "California")
	assert.Contains(t, out, "Enacted legislation")
	assert.Contains(t, out, "3 policies")

	none := Tooltip(testTheme(), model.State{Name: "Wyoming", PolicyStatus: "mystery"})
	assert.Contains(t, none, "No policy yet")
	assert.NotContains(t, none, "click to view")
}

func TestLegend(t *testing.T) {
	out := Legend(testTheme(), false)
	for _, label := range []string{"No policy", "Guidance only", "Pending", "Enacted"} {
		assert.Contains(t, out, label)
	}
}

func TestPolicyCard(t *testing.T) {
	p := model.Policy{
		Title:          "AI Literacy in Schools",
		StatusRaw:      "enacted",
		BillNumber:     "AB 2876",
		PolicyType:     "executive_order",
		DateIntroduced: "2024-02-15",
		SummaryText:    "Requires AI literacy instruction.",
		SourceURL:      "https://leginfo.legislature.ca.gov",
	}
	out := PolicyCard(testTheme(), p, 60)
	assert.Contains(t, out, "AB 2876")
	assert.Contains(t, out, "executive order · 2024-02-15")
	assert.Contains(t, out, "View source")
	assert.Contains(t, out, "enacted")

	bare := PolicyCard(testTheme(), model.Policy{Title: "Guidance", PolicyType: "guidance", StatusRaw: "pending-review"}, 60)
	assert.NotContains(t, bare, "View source")
	assert.Contains(t, bare, "active", "unknown status renders the active badge")
}

func TestPolicyMetaLine(t *testing.T) {
	assert.Equal(t, "bill · 2023-01-01", PolicyMetaLine(model.Policy{PolicyType: "bill", DateIntroduced: "2023-01-01"}))
}

func TestBarChart(t *testing.T) {
	chart := NewBarChart(testTheme(), "Policies by Topic", true)

	assert.Contains(t, chart.View(nil, true, 60), ChartLoading)
	assert.Contains(t, chart.View(nil, false, 60), ChartEmpty)

	out := chart.View([]model.Bar{{Label: "AI literacy", Count: 12}, {Label: "Data privacy", Count: 4}}, false, 60)
	assert.Contains(t, out, "Policies by Topic")
	assert.Contains(t, out, "AI literacy")
	assert.Contains(t, out, "12")
}

func TestHeader(t *testing.T) {
	h := NewHeader(testTheme(), "Map", "Trends")
	h.SetWidth(120)

	assert.Equal(t, "API: ...", h.HealthText())
	h.SetHealth(&model.Health{Status: "ok", PolicyCount: 1234})
	assert.Equal(t, "API: ok · 1,234 policies", h.HealthText())
	h.SetHealth(nil)
	assert.Equal(t, "API: unreachable", h.HealthText())

	out := h.View()
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Trends")

	h.SetWidth(40)
	assert.Contains(t, h.View(), ShortTitle)
}

func TestHeader_TabAt(t *testing.T) {
	h := NewHeader(testTheme(), "Map", "Trends")
	assert.Equal(t, 0, h.TabAt(1))
	assert.Equal(t, -1, h.TabAt(0))
	last := h.TabAt(1 + len("Map") + 4)
	assert.Equal(t, 1, last)
	assert.Equal(t, -1, h.TabAt(200))
}

func TestSpinnerView(t *testing.T) {
	s := NewLoadingSpinner("Loading policies...")
	assert.Contains(t, s.View(), "Loading policies...")
	assert.NotNil(t, s.Tick())
}
