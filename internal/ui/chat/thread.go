// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

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
)

// Embedded chat text.
const (
	TrendsHeader      = "Ask about trends"
	TrendsEmptyText   = "Ask questions about policy trends, comparisons, or data insights."
	TrendsPlaceholder = "Ask about trends..."
)

// PanelHeader is the policy panel chat title for a state.
func PanelHeader(state string) string {
	return fmt.Sprintf("Let's chat about %s!", state)
}

// PanelPlaceholder is the policy panel input hint for a state.
func PanelPlaceholder(state string) string {
	return fmt.Sprintf("Ask about %s policies...", state)
}

// =============================================================================
// THREAD MODEL
// =============================================================================

// Thread is a single-conversation chat embedded in the policy panel or the
// trends view.
type Thread struct {
	id     WidgetID
	thread *chatstate.Thread
	asker  chatstate.Asker
	log    *logging.Logger
	theme  *styles.Theme
	keys   KeyMap
	md     markdown

	input  textinput.Model
	view   viewport.Model
	typing components.Spinner

	width   int
	height  int
	focused bool
}

// NewPanel creates the state-scoped chat. Questions are sent as
// "Regarding <state>: <question>".
func NewPanel(asker chatstate.Asker, theme *styles.Theme, log *logging.Logger, state string) *Thread {
	return newThread(WidgetPanel, chatstate.NewStateThread(state), asker, theme, log)
}

// NewTrends creates the trends chat. Questions are sent unchanged.
func NewTrends(asker chatstate.Asker, theme *styles.Theme, log *logging.Logger) *Thread {
	return newThread(WidgetTrends, chatstate.NewThread(), asker, theme, log)
}

func newThread(id WidgetID, th *chatstate.Thread, asker chatstate.Asker, theme *styles.Theme, log *logging.Logger) *Thread {
	if log == nil {
		log = logging.NewNop()
	}
	t := &Thread{
		id:     id,
		thread: th,
		asker:  asker,
		log:    log.Named("chat").With(zap.String("widget", id.String())),
		theme:  theme,
		keys:   DefaultKeyMap(),
		input:  textinput.New(),
		view:   viewport.New(0, 0),
		typing: components.NewTypingSpinner(),
		width:  40,
		height: 12,
	}
	t.input.Prompt = "> "
	t.input.CharLimit = 2000
	t.applyTheme()
	t.resize()
	return t
}

// ID identifies the widget in routed messages.
func (t *Thread) ID() WidgetID {
	return t.id
}

// State exposes the conversation state.
func (t *Thread) State() *chatstate.Thread {
	return t.thread
}

// Focused reports whether keystrokes go to this widget.
func (t *Thread) Focused() bool {
	return t.focused
}

// SetFocused gives or takes keyboard focus.
func (t *Thread) SetFocused(focused bool) tea.Cmd {
	t.focused = focused
	if focused {
		return t.input.Focus()
	}
	t.input.Blur()
	return nil
}

// SetContext points a panel chat at another state. Switching discards the
// history and any reply still on its way; it reports whether that happened.
func (t *Thread) SetContext(state string) bool {
	if !t.thread.SetContext(state) {
		return false
	}
	t.input.SetValue("")
	t.applyTheme()
	t.resize()
	return true
}

// Clear empties the history.
func (t *Thread) Clear() {
	t.thread.Clear()
	t.input.SetValue("")
	t.resize()
}

// SetSize sets the widget size in cells.
func (t *Thread) SetSize(width, height int) {
	t.width, t.height = width, height
	t.resize()
}

// SetTheme restyles the widget after a config reload.
func (t *Thread) SetTheme(theme *styles.Theme) {
	t.theme = theme
	t.applyTheme()
	t.refresh()
}

// Help returns the key help for the status bar.
func (t *Thread) Help() ThreadHelp {
	return ThreadHelp{t.keys}
}

// Title is the header text.
func (t *Thread) Title() string {
	if t.id == WidgetTrends {
		return TrendsHeader
	}
	return PanelHeader(t.thread.Context())
}

func (t *Thread) placeholder() string {
	if t.id == WidgetTrends {
		return TrendsPlaceholder
	}
	return PanelPlaceholder(t.thread.Context())
}

func (t *Thread) emptyText() string {
	if t.id == WidgetTrends {
		return TrendsEmptyText
	}
	return ""
}

func (t *Thread) applyTheme() {
	t.input.Placeholder = t.placeholder()
	t.input.PromptStyle = t.theme.InputPrompt
	t.input.PlaceholderStyle = t.theme.InputPlaceholder
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles a message and returns a command.
func (t *Thread) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AnswerMsg:
		if msg.Widget != t.id {
			return nil
		}
		return t.complete(msg)

	case spinner.TickMsg:
		if !t.thread.InFlight() {
			return nil
		}
		var cmd tea.Cmd
		t.typing, cmd = t.typing.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !t.focused {
			return nil
		}
		return t.handleKey(msg)
	}
	return nil
}

func (t *Thread) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, t.keys.Submit):
		return t.Send(t.input.Value())
	case key.Matches(msg, t.keys.Clear):
		t.Clear()
		return nil
	case key.Matches(msg, t.keys.Copy):
		return copyLastAnswerCmd(t.id, t.thread.Conversation())
	case key.Matches(msg, t.keys.Up):
		t.view.LineUp(1)
		return nil
	case key.Matches(msg, t.keys.Down):
		t.view.LineDown(1)
		return nil
	case key.Matches(msg, t.keys.PageUp):
		t.view.ViewUp()
		return nil
	case key.Matches(msg, t.keys.PageDown):
		t.view.ViewDown()
		return nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.thread.Input = t.input.Value()
	return cmd
}

// Send submits question as if typed.
func (t *Thread) Send(question string) tea.Cmd {
	p, ok := t.thread.BeginSend(question)
	if !ok {
		return nil
	}
	t.input.SetValue("")
	t.resize()
	return tea.Batch(askCmd(t.id, t.asker, p), t.typing.Tick())
}

func (t *Thread) complete(msg AnswerMsg) tea.Cmd {
	if !t.thread.CompleteSend(msg.Pending, msg.Response, msg.Err) {
		t.log.Debug("answer dropped")
		return nil
	}
	t.resize()
	if msg.Err == nil {
		return nil
	}
	t.log.Warn("ask failed", zap.String("context", t.thread.Context()), zap.Error(msg.Err))
	return func() tea.Msg {
		return ErrorMsg{Widget: t.id, Message: msg.Err.Error()}
	}
}

// Scroll moves the transcript by delta lines.
func (t *Thread) Scroll(delta int) {
	if delta < 0 {
		t.view.LineUp(-delta)
	} else {
		t.view.LineDown(delta)
	}
}

// =============================================================================
// VIEW
// =============================================================================

func (t *Thread) bodyHeight() int {
	h := t.height - headerLines - inputLines
	if t.thread.InFlight() {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (t *Thread) contentWidth() int {
	if t.width < 12 {
		return 12
	}
	return t.width
}

func (t *Thread) resize() {
	w := t.contentWidth()
	t.view.Width = w
	t.view.Height = t.bodyHeight()
	t.input.Width = w - lipgloss.Width(t.input.Prompt) - 1
	t.refresh()
}

func (t *Thread) refresh() {
	t.view.SetContent(renderTranscript(t.theme, &t.md, t.thread.Messages(), t.contentWidth()))
	t.view.GotoBottom()
}

// View renders the widget.
func (t *Thread) View() string {
	w := t.contentWidth()
	lines := []string{t.theme.ChatHeader.Width(w).Render(t.Title())}

	body := t.bodyHeight()
	if t.thread.IsEmpty() {
		lines = append(lines, t.theme.ChatEmpty.Width(w).Height(body).MaxHeight(body).Render(t.emptyText()))
	} else {
		lines = append(lines, t.view.View())
	}

	if t.thread.InFlight() {
		lines = append(lines, t.typing.View())
	}
	lines = append(lines, t.theme.InputContainer.Width(w).Render(t.input.View()))
	return strings.Join(lines, "\n")
}
