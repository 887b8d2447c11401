// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/layout"
	"github.com/jeranaias/statescope/internal/ui/components"
)

// minMainWidth keeps the tab content usable when the sidebar is wide.
const minMainWidth = 40

// now is replaced in tests.
var now = time.Now

// rect is a screen area in cells.
type rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// regions is where everything was laid out by the last resize. Mouse
// handling tests against the same rectangles the view draws into.
type regions struct {
	header  rect
	main    rect
	handle  rect
	sidebar rect
	status  rect

	// Map tab
	mapArea   rect
	tooltip   rect
	panel     rect
	cards     rect
	picker    rect
	panelChat rect

	// Trends tab
	filters    rect
	charts     [2]rect
	breakdown  rect
	trendsChat rect
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes every region from the terminal size and pushes the
// sizes down to the widgets.
func (m *Model) resize() {
	w, h := m.width, m.height
	if w < minMainWidth {
		w = minMainWidth
	}
	if h < 12 {
		h = 12
	}

	m.header.SetWidth(w)
	m.status.SetWidth(w)
	hh := m.header.Height()
	bodyY, bodyH := hh, h-hh-1

	narrow := m.cfg.UI.NarrowBreakpoint > 0 && w < m.cfg.UI.NarrowBreakpoint
	if narrow != m.narrow {
		m.applyTransition(m.resizer.SetDisabled(narrow))
		m.narrow = narrow
		if narrow && m.global.Session().Expanded() {
			// Start collapsed; the toggle brings the chat back.
			m.global.Session().ToggleExpanded()
		}
		if narrow && m.focus == FocusSidebar {
			m.setFocus(m.focusOrder()[0])
		}
	}
	m.global.SetNarrow(narrow)

	r := regions{
		header: rect{0, 0, w, hh},
		status: rect{0, h - 1, w, 1},
	}
	switch {
	case narrow && m.global.Visible():
		r.sidebar = rect{0, bodyY, w, bodyH}
	case narrow:
		r.main = rect{0, bodyY, w, bodyH - 1}
		r.sidebar = rect{0, bodyY + bodyH - 1, w, 1}
	default:
		sw, _ := m.resizer.Width()
		if sw > w-1-minMainWidth {
			sw = w - 1 - minMainWidth
		}
		mainW := w - sw - 1
		r.main = rect{0, bodyY, mainW, bodyH}
		r.handle = rect{mainW, bodyY, 1, bodyH}
		r.sidebar = rect{mainW + 1, bodyY, sw, bodyH}
	}
	m.global.SetSize(r.sidebar.W, r.sidebar.H)

	m.layoutMapTab(&r)
	m.layoutTrendsTab(&r)
	m.regions = r
	m.resetCards()
}

func (m *Model) layoutMapTab(r *regions) {
	main := r.main
	gridH := m.layout.GridHeight(m.grid)
	mapW := m.layout.MapWidth()

	r.mapArea = rect{main.X + 1, main.Y + 1, min(mapW, main.W-1), gridH}
	blockH := gridH + 3 // top margin, grid, legend, tooltip line

	if main.W >= mapW+2+42 {
		r.tooltip = rect{main.X + 1, main.Y + 1 + gridH + 1, mapW, 1}
		r.panel = rect{main.X + mapW + 2, main.Y, main.W - mapW - 2, main.H}
	} else {
		r.tooltip = rect{main.X + 1, main.Y + 1 + gridH + 1, main.W - 1, 1}
		r.panel = rect{main.X, main.Y + blockH, main.W, max(main.H-blockH, 0)}
	}

	// Panel: separator, title, content.
	content := rect{r.panel.X + 1, r.panel.Y + 2, max(r.panel.W-2, 0), max(r.panel.H-2, 0)}
	r.picker = content
	if content.W >= 70 {
		chatW := max(content.W*2/5, 30)
		r.cards = rect{content.X, content.Y, content.W - chatW - 1, content.H}
		r.panelChat = rect{content.X + content.W - chatW, content.Y, chatW, content.H}
	} else {
		cardsH := content.H / 2
		r.cards = rect{content.X, content.Y, content.W, cardsH}
		r.panelChat = rect{content.X, content.Y + cardsH, content.W, content.H - cardsH}
	}
	m.panelChat.SetSize(r.panelChat.W, r.panelChat.H)
	m.cards.Width, m.cards.Height = r.cards.W, r.cards.H
}

func (m *Model) layoutTrendsTab(r *regions) {
	main := r.main
	x, w := main.X+1, max(main.W-2, 0)

	r.filters = rect{x, main.Y + 1, w, 1}
	y := main.Y + 3
	rest := main.H - 3

	chatH := max(rest/3, 8)
	breakdownH := 2
	chartsH := max(rest-chatH-breakdownH-1, 4)

	if w >= 90 {
		cw := (w - 1) / 2
		r.charts[0] = rect{x, y, cw, chartsH}
		r.charts[1] = rect{x + cw + 1, y, w - cw - 1, chartsH}
	} else {
		half := chartsH / 2
		r.charts[0] = rect{x, y, w, half}
		r.charts[1] = rect{x, y + half, w, chartsH - half}
	}
	r.breakdown = rect{x, y + chartsH, w, breakdownH}
	r.trendsChat = rect{x, y + chartsH + breakdownH + 1, w, max(main.Y+main.H-(y+chartsH+breakdownH+1), 0)}
	m.trendsChat.SetSize(r.trendsChat.W, r.trendsChat.H)
}

// applyTransition tracks whether pointer events are captured by a sidebar
// drag. Every Attach is matched by exactly one Detach.
func (m *Model) applyTransition(t layout.Transition) {
	switch t {
	case layout.TransitionAttach:
		m.capture = true
		m.log.Debug("sidebar drag started")
	case layout.TransitionDetach:
		m.capture = false
		w, _ := m.resizer.Width()
		m.log.Debug("sidebar drag ended", zap.Int("width", w))
	}
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// box clips s to w x h cells and pads it to exactly that size.
func box(s string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	clipped := lipgloss.NewStyle().MaxWidth(w).MaxHeight(h).Render(s)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, clipped)
}

// overlayBottomRight draws top over the bottom-right corner of base, a
// block width cells wide.
func overlayBottomRight(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	topW := lipgloss.Width(top)
	if topW > width {
		topW = width
	}
	keep := width - topW

	start := len(baseLines) - len(topLines)
	if start < 0 {
		start = 0
	}
	for i, line := range topLines {
		j := start + i
		if j >= len(baseLines) {
			break
		}
		left := lipgloss.NewStyle().MaxWidth(keep).Render(baseLines[j])
		if pad := keep - lipgloss.Width(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		baseLines[j] = left + lipgloss.NewStyle().MaxWidth(topW).Render(line)
	}
	return strings.Join(baseLines, "\n")
}

// toastRect is where the toast stack is drawn, or the zero rect.
func (m *Model) toastRect() rect {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return rect{}
	}
	stack := renderToasts(toasts)
	w, h := lipgloss.Width(stack), lipgloss.Height(stack)
	main := m.regions.main
	return rect{main.X + main.W - w, main.Y + main.H - h, w, h}
}

func renderToasts(toasts []components.Toast) string {
	return components.RenderToastStack(toasts, 0, 0, now())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
