// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/mapview"
	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/components"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// Map tab text.
const (
	MapDescription = "Hover or move the cursor over a state to see its AI education policy status. Select a state for details."
	InsetTitle     = "Northeast"

	PanelPrompt       = "Select a state to view its AI education policies."
	PanelLoading      = "Loading policies..."
	PanelError        = "Error loading policies."
	PickerLoading     = "Loading states..."
	PickerError       = "Error loading states."
	pickerChipWidth   = 5
	tooltipBoxMinRoom = 26
)

// PanelEmpty is shown when a state has no policies.
func PanelEmpty(state string) string {
	return "No AI education policies found for " + state + "."
}

// =============================================================================
// SELECTION
// =============================================================================

// Selected returns the selected state code, or "".
func (m *Model) Selected() string {
	return m.sel.Selected()
}

// stateFor returns the record of code, when known.
func (m *Model) stateFor(code string) (model.State, bool) {
	t, ok := m.grid.ByCode(code)
	if !ok {
		return model.State{}, false
	}
	return m.index.For(t)
}

// stateName returns the display name of code, falling back to the code.
func (m *Model) stateName(code string) string {
	if s, ok := m.stateFor(code); ok && s.Name != "" {
		return s.Name
	}
	return code
}

// clickState applies a click on code: select it, or deselect it when it is
// already selected.
func (m *Model) clickState(code string) tea.Cmd {
	return m.onSelection(m.sel.Click(code))
}

// SelectState selects code, or clears the selection when code is "".
func (m *Model) SelectState(code string) tea.Cmd {
	if code == m.sel.Selected() {
		return nil
	}
	if code == "" {
		m.sel.Clear()
	} else {
		m.sel.Select(code)
	}
	return m.onSelection(code)
}

func (m *Model) onSelection(code string) tea.Cmd {
	var cmds []tea.Cmd
	if code != "" {
		m.cursor.MoveTo(code)
		m.panelChat.SetContext(m.stateName(code))
	} else {
		m.panelChat.SetContext("")
		if m.focus == FocusPanelChat {
			cmds = append(cmds, m.setFocus(FocusMap))
		}
	}
	cmds = append(cmds, m.fetchPolicies(code))
	m.resize()
	return tea.Batch(cmds...)
}

// hoverCode is the state the tooltip describes: the pointer's, else the
// keyboard cursor's while the map has focus.
func (m *Model) hoverCode() string {
	if code := m.sel.Hovered(); code != "" {
		return code
	}
	if m.focus == FocusMap && m.tab == TabMap {
		return m.cursor.Code()
	}
	return ""
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m *Model) mapKey(msg tea.KeyMsg) tea.Cmd {
	move := func(dir mapview.Direction) tea.Cmd {
		m.sel.Leave()
		m.cursor.Move(dir)
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		return move(mapview.DirUp)
	case key.Matches(msg, m.keys.Down):
		return move(mapview.DirDown)
	case key.Matches(msg, m.keys.Left):
		return move(mapview.DirLeft)
	case key.Matches(msg, m.keys.Right):
		return move(mapview.DirRight)
	case key.Matches(msg, m.keys.Select):
		return m.clickState(m.cursor.Code())
	case key.Matches(msg, m.keys.Clear):
		return m.SelectState("")
	case key.Matches(msg, m.keys.ScrollUp):
		m.cards.ViewUp()
	case key.Matches(msg, m.keys.ScrollDown):
		m.cards.ViewDown()
	}
	return nil
}

// =============================================================================
// MAP RENDERING
// =============================================================================

func (m *Model) mapTabView() string {
	r := m.regions
	mapBlock := lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.mapView(),
		components.Legend(m.theme, false),
		m.tooltipLine(r.tooltip.W),
	)
	mapBlock = lipgloss.NewStyle().PaddingLeft(1).Render(mapBlock)

	panel := box(m.panelView(), r.panel.W, r.panel.H)
	if r.panel.Y == r.main.Y {
		left := box(mapBlock, r.panel.X-r.main.X, r.main.H)
		return lipgloss.JoinHorizontal(lipgloss.Top, left, panel)
	}

	// Panel below: the tooltip card fits beside the map when there is room.
	if room := r.main.W - 1 - m.layout.MapWidth(); room >= tooltipBoxMinRoom {
		if code := m.hoverCode(); code != "" {
			if s, ok := m.stateFor(code); ok {
				mapBlock = lipgloss.JoinHorizontal(lipgloss.Top, mapBlock, " ", components.Tooltip(m.theme, s))
			}
		}
	}
	top := box(mapBlock, r.main.W, r.panel.Y-r.main.Y)
	return lipgloss.JoinVertical(lipgloss.Left, top, panel)
}

// mapView draws the tile grid and the inset list.
func (m *Model) mapView() string {
	g, l := m.grid, m.layout
	hover := m.hoverCode()

	lines := make([]string, l.GridHeight(g))
	for row := 0; row < g.Rows; row++ {
		for dy := 0; dy < l.TileHeight; dy++ {
			var b strings.Builder
			for col := 0; col < g.Cols; col++ {
				t, ok := g.At(row, col)
				if !ok {
					b.WriteString(strings.Repeat(" ", l.TileWidth))
					continue
				}
				b.WriteString(m.tileCell(t, dy, hover))
			}
			lines[row*l.TileHeight+dy] = b.String()
		}
	}

	lines[0] = padTo(lines[0], l.InsetX) + m.theme.InsetTitle.Render(InsetTitle)
	for i, t := range g.Inset() {
		y := l.InsetY + i
		if y >= len(lines) {
			break
		}
		lines[y] = padTo(lines[y], l.InsetX) + m.insetEntry(t, hover)
	}
	return strings.Join(lines, "\n")
}

// tileCell renders line dy of a tile: its code on top, its status glyph
// below, and a one-column gutter.
func (m *Model) tileCell(t mapview.Tile, dy int, hover string) string {
	status := m.index.Status(t)
	style := m.theme.TileStyle(styles.FillFor(status), styles.TextFor(status), m.sel.IsSelected(t.Code), hover == t.Code)

	inner := m.layout.TileWidth - 1
	text := t.Code
	if dy > 0 {
		text = ""
		if dy == 1 {
			text = styles.StatusGlyph[status]
		}
	}
	return style.Render(util.CenterWidth(text, inner)) + " "
}

func (m *Model) insetEntry(t mapview.Tile, hover string) string {
	status := m.index.Status(t)
	name := t.Code
	if s, ok := m.index.For(t); ok && s.Name != "" {
		name = s.Name
	}
	label := util.TruncateWidth(t.Code+" "+name, m.layout.InsetWidth-3)
	style := m.theme.TileStyle(styles.FillFor(status), styles.TextFor(status), m.sel.IsSelected(t.Code), hover == t.Code)
	return styles.RenderSwatch(status) + " " + style.Render(label)
}

// tooltipLine is the one-line description of the hovered state, or the
// map description when nothing is hovered.
func (m *Model) tooltipLine(width int) string {
	code := m.hoverCode()
	s, ok := m.stateFor(code)
	if code == "" || !ok {
		return m.theme.Description.Render(util.TruncateWidth(MapDescription, width))
	}
	parts := []string{m.theme.TooltipTitle.Render(s.Name), s.Status().Label()}
	if line := components.TooltipCountLine(s.PolicyCount); line != "" {
		parts = append(parts, line)
	}
	return util.TruncateWidth(strings.Join(parts, " · "), width)
}

func padTo(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// =============================================================================
// POLICY PANEL
// =============================================================================

func (m *Model) panelView() string {
	r := m.regions
	sep := m.theme.SidebarHandle.Render(strings.Repeat("─", max(r.panel.W, 0)))
	code := m.sel.Selected()

	if code == "" {
		title := m.theme.PanelTitle.Render(" Policies")
		return lipgloss.JoinVertical(lipgloss.Left, sep, title,
			lipgloss.NewStyle().PaddingLeft(1).Render(m.pickerView()))
	}

	name := m.stateName(code)
	title := " " + name + " Policies"
	if res := m.data.policies; res.Loaded() && !res.Loading && res.Err == nil {
		title += " (" + itoa(len(res.Data)) + ")"
	}

	cards := box(m.cardsView(name), r.cards.W, r.cards.H)
	chat := box(m.panelChat.View(), r.panelChat.W, r.panelChat.H)
	var content string
	if r.panelChat.Y == r.cards.Y {
		content = lipgloss.JoinHorizontal(lipgloss.Top, cards, " ", chat)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, cards, chat)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sep, m.theme.PanelTitle.Render(title),
		lipgloss.NewStyle().PaddingLeft(1).Render(content))
}

func (m *Model) cardsView(name string) string {
	res := m.data.policies
	switch {
	case res.Loading:
		return m.theme.PanelMessage.Render(PanelLoading)
	case res.Err != nil:
		return m.theme.ErrorStyle.Render(PanelError)
	case len(res.Data) == 0:
		return m.theme.PanelMessage.Render(PanelEmpty(name))
	}
	return m.cards.View()
}

// resetCards re-renders the policy cards for the current width.
func (m *Model) resetCards() {
	res := m.data.policies
	if len(res.Data) == 0 || m.cards.Width <= 0 {
		m.cards.SetContent("")
		return
	}
	cards := make([]string, 0, len(res.Data))
	for _, p := range res.Data {
		cards = append(cards, components.PolicyCard(m.theme, p, m.cards.Width))
	}
	m.cards.SetContent(strings.Join(cards, "\n"))
	if key := res.Key(); key != m.cardsOf {
		m.cardsOf = key
		m.cards.GotoTop()
	}
}

// pickerStates returns the picker's states in display order.
func (m *Model) pickerStates() []model.State {
	return model.SortStatesByCode(m.data.states.Data)
}

func (m *Model) pickerView() string {
	res := m.data.states
	switch {
	case res.Err != nil && !res.Loaded():
		return m.theme.ErrorStyle.Render(PickerError)
	case !res.Loaded():
		return m.theme.PanelMessage.Render(PickerLoading)
	}

	perRow := max(m.regions.picker.W/pickerChipWidth, 1)
	states := m.pickerStates()
	active := m.hoverCode()

	lines := []string{m.theme.PanelMessage.Render(PanelPrompt)}
	var row []string
	for i, s := range states {
		style := m.theme.PickerItem
		if s.Code == active {
			style = m.theme.PickerActive
		}
		row = append(row, style.Render(util.PadWidth(s.Code, 2))+" ")
		if len(row) == perRow || i == len(states)-1 {
			lines = append(lines, strings.Join(row, ""))
			row = row[:0]
		}
	}
	return strings.Join(lines, "\n")
}

// pickerAt returns the state under cell (x, y) of the picker, whose first
// line is the prompt.
func (m *Model) pickerAt(x, y int) (string, bool) {
	p := m.regions.picker
	row := y - p.Y - 1
	col := (x - p.X) / pickerChipWidth
	perRow := max(p.W/pickerChipWidth, 1)
	if row < 0 || col < 0 || col >= perRow {
		return "", false
	}
	i := row*perRow + col
	states := m.pickerStates()
	if i >= len(states) {
		return "", false
	}
	return states[i].Code, true
}
