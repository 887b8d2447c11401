// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	chatstate "github.com/jeranaias/statescope/internal/chat"
	"github.com/jeranaias/statescope/internal/logging"
	"github.com/jeranaias/statescope/internal/ui/components"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// Global chat text.
const (
	GlobalEmptyText = "Ask about AI education policy across all 50 states"
	ListToggleText  = "Continue Previous Conversations"
	NewChatText     = "+ New"
	CollapsedToggle = "Let's chat · AI"
	ExpandedToggle  = "x Close"
)

const (
	headerLines            = 2
	inputLines             = 2
	deleteGlyph            = "x"
	defaultPlaceholderTick = 4 * time.Second
)

// =============================================================================
// GLOBAL CHAT MODEL
// =============================================================================

// Global is the multi-conversation chat sidebar.
type Global struct {
	session *chatstate.Session
	asker   chatstate.Asker
	log     *logging.Logger
	theme   *styles.Theme
	keys    KeyMap
	md      markdown

	input  textinput.Model
	view   viewport.Model
	typing components.Spinner

	width   int
	height  int
	focused bool
	narrow  bool

	listCursor int
	suggestion int

	interval time.Duration
	tickGen  int
}

// NewGlobal creates the sidebar over a fresh session. interval is the
// placeholder rotation period.
func NewGlobal(asker chatstate.Asker, theme *styles.Theme, log *logging.Logger, interval time.Duration) *Global {
	if interval <= 0 {
		interval = defaultPlaceholderTick
	}
	if log == nil {
		log = logging.NewNop()
	}

	g := &Global{
		session:    chatstate.NewSession(),
		asker:      asker,
		log:        log.Named("chat"),
		theme:      theme,
		keys:       DefaultKeyMap(),
		input:      textinput.New(),
		view:       viewport.New(0, 0),
		typing:     components.NewTypingSpinner(),
		suggestion: -1,
		interval:   interval,
	}
	g.input.Prompt = "> "
	g.input.CharLimit = 2000
	g.applyTheme()
	g.input.Placeholder = g.session.Placeholder()
	g.width, g.height = 42, 20
	g.resize()
	return g
}

// Init starts the placeholder rotation.
func (g *Global) Init() tea.Cmd {
	return placeholderTick(g.interval, g.tickGen)
}

// Session exposes the conversation state.
func (g *Global) Session() *chatstate.Session {
	return g.session
}

// Focused reports whether keystrokes go to the sidebar.
func (g *Global) Focused() bool {
	return g.focused
}

// SetFocused gives or takes keyboard focus.
func (g *Global) SetFocused(focused bool) tea.Cmd {
	g.focused = focused
	if focused {
		return g.input.Focus()
	}
	g.input.Blur()
	return nil
}

// SetNarrow switches between sidebar and collapsible layout.
func (g *Global) SetNarrow(narrow bool) {
	g.narrow = narrow
	g.resize()
}

// Visible reports whether the full widget (not just the toggle) shows.
func (g *Global) Visible() bool {
	return !g.narrow || g.session.Expanded()
}

// SetSize sets the widget size in cells.
func (g *Global) SetSize(width, height int) {
	g.width, g.height = width, height
	g.resize()
}

// SetTheme restyles the widget after a config reload.
func (g *Global) SetTheme(theme *styles.Theme) {
	g.theme = theme
	g.applyTheme()
	g.refresh()
}

// SetPlaceholderInterval changes the rotation period. The previous timer
// chain is abandoned.
func (g *Global) SetPlaceholderInterval(d time.Duration) tea.Cmd {
	if d <= 0 || d == g.interval {
		return nil
	}
	g.interval = d
	g.tickGen++
	return placeholderTick(d, g.tickGen)
}

// Help returns the key help for the status bar.
func (g *Global) Help() GlobalHelp {
	return GlobalHelp{g.keys}
}

func (g *Global) applyTheme() {
	g.input.PromptStyle = g.theme.InputPrompt
	g.input.PlaceholderStyle = g.theme.InputPlaceholder
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a message and returns a command.
func (g *Global) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AnswerMsg:
		if msg.Widget != WidgetGlobal {
			return nil
		}
		return g.complete(msg)

	case PlaceholderTickMsg:
		if msg.Gen != g.tickGen {
			return nil
		}
		g.session.AdvancePlaceholder()
		g.input.Placeholder = g.session.Placeholder()
		return placeholderTick(g.interval, g.tickGen)

	case spinner.TickMsg:
		if !g.session.InFlight() {
			return nil
		}
		var cmd tea.Cmd
		g.typing, cmd = g.typing.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !g.focused {
			return nil
		}
		return g.handleKey(msg)
	}
	return nil
}

func (g *Global) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, g.keys.Collapse):
		g.session.ToggleExpanded()
		g.resize()
		return nil

	case key.Matches(msg, g.keys.ToggleList):
		g.session.ToggleList()
		g.listCursor = g.session.ActiveIndex()
		g.resize()
		return nil

	case key.Matches(msg, g.keys.NewChat):
		g.session.NewConversation()
		g.afterSwitch()
		return nil
	}

	if g.session.ShowList() {
		return g.handleListKey(msg)
	}

	switch {
	case key.Matches(msg, g.keys.Submit):
		text := g.input.Value()
		if util.IsBlank(text) && g.session.Active().IsEmpty() && g.suggestion >= 0 {
			text = chatstate.Suggestions[g.suggestion]
		}
		return g.send(text)

	case key.Matches(msg, g.keys.Suggestion):
		if g.session.Active().IsEmpty() {
			g.suggestion = (g.suggestion + 1) % len(chatstate.Suggestions)
		}
		return nil

	case key.Matches(msg, g.keys.Copy):
		return copyLastAnswerCmd(WidgetGlobal, g.session.Active())

	case key.Matches(msg, g.keys.Up):
		g.view.LineUp(1)
		return nil
	case key.Matches(msg, g.keys.Down):
		g.view.LineDown(1)
		return nil
	case key.Matches(msg, g.keys.PageUp):
		g.view.ViewUp()
		return nil
	case key.Matches(msg, g.keys.PageDown):
		g.view.ViewDown()
		return nil
	}

	var cmd tea.Cmd
	g.input, cmd = g.input.Update(msg)
	g.session.Input = g.input.Value()
	return cmd
}

func (g *Global) handleListKey(msg tea.KeyMsg) tea.Cmd {
	convs := g.session.Conversations()
	switch {
	case key.Matches(msg, g.keys.Up):
		if g.listCursor > 0 {
			g.listCursor--
		}
	case key.Matches(msg, g.keys.Down):
		if g.listCursor < len(convs)-1 {
			g.listCursor++
		}
	case key.Matches(msg, g.keys.Submit):
		if g.listCursor >= 0 && g.listCursor < len(convs) {
			g.session.Switch(convs[g.listCursor].ID)
			g.afterSwitch()
		}
	case key.Matches(msg, g.keys.Delete):
		g.deleteAt(g.listCursor)
	case key.Matches(msg, g.keys.CloseOverlay):
		g.session.CloseList()
		g.resize()
	}
	return nil
}

// deleteAt deletes the conversation at list position i when the delete
// affordance is offered.
func (g *Global) deleteAt(i int) {
	convs := g.session.Conversations()
	if !g.session.CanDelete() || i < 0 || i >= len(convs) {
		return
	}
	g.session.Delete(convs[i].ID)
	if g.listCursor >= g.session.Len() {
		g.listCursor = g.session.Len() - 1
	}
	g.afterSwitch()
}

func (g *Global) afterSwitch() {
	g.suggestion = -1
	g.resize()
}

// Send submits question as if typed. It is a no-op while a question is in
// flight or when question is blank.
func (g *Global) Send(question string) tea.Cmd {
	return g.send(question)
}

func (g *Global) send(question string) tea.Cmd {
	p, ok := g.session.BeginSend(question)
	if !ok {
		return nil
	}
	g.input.SetValue("")
	g.suggestion = -1
	g.resize()
	g.log.Debug("question sent", zap.Int("conversation", p.ConvID))
	return tea.Batch(askCmd(WidgetGlobal, g.asker, p), g.typing.Tick())
}

func (g *Global) complete(msg AnswerMsg) tea.Cmd {
	appended := g.session.CompleteSend(msg.Pending, msg.Response, msg.Err)
	if !appended {
		g.log.Debug("answer dropped", zap.Int("conversation", msg.Pending.ConvID))
	}
	g.resize()

	if msg.Err == nil {
		return nil
	}
	g.log.Warn("ask failed",
		zap.String("widget", WidgetGlobal.String()),
		zap.Int("conversation", msg.Pending.ConvID),
		zap.Error(msg.Err))
	return func() tea.Msg {
		return ErrorMsg{Widget: WidgetGlobal, Message: msg.Err.Error()}
	}
}

// Scroll moves the transcript by delta lines.
func (g *Global) Scroll(delta int) {
	if delta < 0 {
		g.view.LineUp(-delta)
	} else {
		g.view.LineDown(delta)
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

// chrome returns the number of lines above the body and the body height.
func (g *Global) chrome() (top, body int) {
	if g.narrow {
		top++
	}
	top += headerLines
	if g.session.ShowList() {
		top += g.session.Len()
	}
	bottom := inputLines
	if g.session.InFlight() {
		bottom++
	}
	body = g.height - top - bottom
	if body < 1 {
		body = 1
	}
	return top, body
}

func (g *Global) contentWidth() int {
	if g.width < 12 {
		return 12
	}
	return g.width
}

func (g *Global) resize() {
	w := g.contentWidth()
	_, body := g.chrome()
	g.view.Width = w
	g.view.Height = body
	g.input.Width = w - lipgloss.Width(g.input.Prompt) - 1
	g.refresh()
}

func (g *Global) refresh() {
	conv := g.session.Active()
	g.view.SetContent(renderTranscript(g.theme, &g.md, conv.Messages(), g.contentWidth()))
	g.view.GotoBottom()
}

// emptyBody renders the empty-conversation body. suggestions maps body line
// index to suggestion index.
func (g *Global) emptyBody() (lines []string, suggestions map[int]int) {
	w := g.contentWidth()
	text := g.theme.ChatEmpty.Width(w).Render(GlobalEmptyText)
	lines = append(lines, "")
	lines = append(lines, strings.Split(text, "\n")...)
	lines = append(lines, "")

	suggestions = make(map[int]int, len(chatstate.Suggestions))
	for i, s := range chatstate.Suggestions {
		style := g.theme.Suggestion
		if i == g.suggestion {
			style = g.theme.SuggestionActive
		}
		suggestions[len(lines)] = i
		lines = append(lines, style.Render(util.TruncateWidth(s, w-2)))
	}
	return lines, suggestions
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the widget.
func (g *Global) View() string {
	w := g.contentWidth()
	var lines []string

	if g.narrow {
		label := CollapsedToggle
		if g.session.Expanded() {
			label = ExpandedToggle
		}
		lines = append(lines, g.theme.SuggestionActive.Width(w).Render(label))
		if !g.session.Expanded() {
			return strings.Join(lines, "\n")
		}
	}

	lines = append(lines, g.headerView(w))
	if g.session.ShowList() {
		lines = append(lines, g.listView(w)...)
	}

	_, body := g.chrome()
	var bodyView string
	if g.session.Active().IsEmpty() {
		empty, _ := g.emptyBody()
		bodyView = lipgloss.NewStyle().Height(body).MaxHeight(body).Render(strings.Join(empty, "\n"))
	} else {
		bodyView = g.view.View()
	}
	lines = append(lines, bodyView)

	if g.session.InFlight() {
		lines = append(lines, g.typing.View())
	}
	lines = append(lines, g.theme.InputContainer.Width(w).Render(g.input.View()))

	return g.theme.Sidebar.Width(w).Height(g.height).MaxHeight(g.height).Render(strings.Join(lines, "\n"))
}

func (g *Global) headerView(w int) string {
	chevron := "v"
	if g.session.ShowList() {
		chevron = "^"
	}
	left := util.TruncateWidth(ListToggleText, w-lipgloss.Width(NewChatText)-4) + " " + chevron
	gap := w - util.StringWidth(left) - util.StringWidth(NewChatText)
	if gap < 1 {
		gap = 1
	}
	return g.theme.ChatHeader.Width(w).Render(left + strings.Repeat(" ", gap) + g.theme.InputPrompt.Render(NewChatText))
}

func (g *Global) listView(w int) []string {
	convs := g.session.Conversations()
	out := make([]string, 0, len(convs))
	for i, c := range convs {
		style := g.theme.ConvItem
		if c.ID == g.session.ActiveID() {
			style = g.theme.ConvItemActive
		}
		cursor := "  "
		if i == g.listCursor {
			cursor = "> "
		}
		nameWidth := w - 6
		line := cursor + util.PadWidth(util.TruncateWidth(c.Name, nameWidth), nameWidth)
		if g.session.CanDelete() {
			line += " " + g.theme.ConvDelete.Render(deleteGlyph)
		}
		out = append(out, style.Render(line))
	}
	return out
}

// =============================================================================
// MOUSE
// =============================================================================

// Click handles a left click at widget-relative cell (x, y).
func (g *Global) Click(x, y int) tea.Cmd {
	w := g.contentWidth()
	row := y

	if g.narrow {
		if row == 0 {
			g.session.ToggleExpanded()
			g.resize()
			return nil
		}
		if !g.session.Expanded() {
			return nil
		}
		row--
	}

	if row < headerLines {
		if row == 0 && x >= w-util.StringWidth(NewChatText)-1 {
			g.session.NewConversation()
			g.afterSwitch()
		} else if row == 0 {
			g.session.ToggleList()
			g.listCursor = g.session.ActiveIndex()
			g.resize()
		}
		return nil
	}
	row -= headerLines

	if g.session.ShowList() {
		convs := g.session.Conversations()
		if row < len(convs) {
			if x >= w-2 && g.session.CanDelete() {
				g.deleteAt(row)
			} else {
				g.session.Switch(convs[row].ID)
				g.afterSwitch()
			}
			return nil
		}
		row -= len(convs)
	}

	if g.session.Active().IsEmpty() {
		_, suggestions := g.emptyBody()
		if i, ok := suggestions[row]; ok {
			return g.send(chatstate.Suggestions[i])
		}
	}
	return nil
}
