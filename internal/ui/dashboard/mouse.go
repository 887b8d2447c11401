// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
)

// wheelStep is how many lines one wheel notch scrolls.
const wheelStep = 3

// =============================================================================
// MOUSE HANDLING
// =============================================================================

// handleMouse routes a mouse event. While a sidebar drag is active every
// event belongs to the drag.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.capture {
		return m.dragMouse(msg)
	}

	x, y := msg.X, msg.Y
	r := m.regions

	switch msg.Type {
	case tea.MouseWheelUp, tea.MouseWheelDown:
		delta := wheelStep
		if msg.Type == tea.MouseWheelUp {
			delta = -wheelStep
		}
		m.scrollAt(x, y, delta)
		return nil

	case tea.MouseMotion:
		m.handleHot = r.handle.Contains(x, y)
		if m.tab == TabMap {
			m.hoverAt(x, y)
		}
		return nil

	case tea.MouseLeft:
		return m.clickAt(x, y)
	}
	return nil
}

func (m *Model) dragMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Type {
	case tea.MouseMotion, tea.MouseLeft:
		if _, changed := m.resizer.Move(msg.X); changed {
			m.resize()
		}
	case tea.MouseRelease:
		m.applyTransition(m.resizer.End())
		m.handleHot = m.regions.handle.Contains(msg.X, msg.Y)
	}
	return nil
}

func (m *Model) scrollAt(x, y, delta int) {
	r := m.regions
	switch {
	case r.sidebar.Contains(x, y):
		m.global.Scroll(delta)
	case m.tab == TabMap && m.sel.Selected() != "" && r.cards.Contains(x, y):
		if delta < 0 {
			m.cards.LineUp(-delta)
		} else {
			m.cards.LineDown(delta)
		}
	case m.tab == TabMap && m.sel.Selected() != "" && r.panelChat.Contains(x, y):
		m.panelChat.Scroll(delta)
	case m.tab == TabTrends && r.trendsChat.Contains(x, y):
		m.trendsChat.Scroll(delta)
	}
}

// hoverAt updates the hovered state. Leaving the map clears the hover.
func (m *Model) hoverAt(x, y int) {
	a := m.regions.mapArea
	if !a.Contains(x, y) || !m.regions.main.Contains(x, y) {
		m.sel.Leave()
		return
	}
	if t, ok := m.layout.HitTest(m.grid, x-a.X, y-a.Y); ok {
		m.sel.Hover(t.Code)
		return
	}
	m.sel.Leave()
}

func (m *Model) clickAt(x, y int) tea.Cmd {
	r := m.regions

	if tr := m.toastRect(); tr.Contains(x, y) {
		m.toasts.DismissAll()
		return nil
	}

	switch {
	case r.header.Contains(x, y):
		// Tabs are on the second header line.
		if y == r.header.Y+1 {
			if tab := m.header.TabAt(x - r.header.X); tab >= 0 {
				return m.setTab(Tab(tab))
			}
		}
		return nil

	case !m.narrow && r.handle.Contains(x, y):
		m.applyTransition(m.resizer.Begin(x))
		return nil

	case r.sidebar.Contains(x, y):
		var focus tea.Cmd
		if m.focus != FocusSidebar {
			focus = m.setFocus(FocusSidebar)
		}
		cmd := m.global.Click(x-r.sidebar.X, y-r.sidebar.Y)
		m.resize()
		if !m.global.Visible() && m.focus == FocusSidebar {
			focus = m.setFocus(m.focusOrder()[0])
		}
		return tea.Batch(focus, cmd)
	}

	if !r.main.Contains(x, y) {
		return nil
	}
	if m.tab == TabTrends {
		return m.clickTrends(x, y)
	}
	return m.clickMap(x, y)
}

func (m *Model) clickMap(x, y int) tea.Cmd {
	r := m.regions

	if r.mapArea.Contains(x, y) {
		t, ok := m.layout.HitTest(m.grid, x-r.mapArea.X, y-r.mapArea.Y)
		if !ok {
			return nil
		}
		return tea.Batch(m.setFocus(FocusMap), m.clickState(t.Code))
	}

	if m.sel.Selected() == "" {
		if code, ok := m.pickerAt(x, y); ok && r.picker.Contains(x, y) {
			return m.clickState(code)
		}
		return nil
	}

	switch {
	case r.panelChat.Contains(x, y):
		return m.setFocus(FocusPanelChat)
	case r.cards.Contains(x, y):
		return m.setFocus(FocusMap)
	}
	return nil
}

func (m *Model) clickTrends(x, y int) tea.Cmd {
	r := m.regions
	switch {
	case r.filters.Contains(x, y):
		field, ok := m.filterAt(x)
		if !ok {
			return nil
		}
		focus := m.setFocus(FocusFilters)
		m.filters.SetFocus(field)
		if m.filters.Cycle(field, 1) {
			return tea.Batch(focus, m.fetchTrends())
		}
		return focus
	case r.trendsChat.Contains(x, y):
		return m.setFocus(FocusTrendsChat)
	}
	return nil
}
