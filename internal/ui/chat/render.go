// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdown caches a glamour renderer for one width and background.
type markdown struct {
	width    int
	dark     bool
	renderer *glamour.TermRenderer
}

// Render renders content as markdown wrapped at width. It returns the
// content unchanged when glamour cannot render it.
func (m *markdown) Render(content string, width int, dark bool) string {
	if width < 10 {
		width = 10
	}
	if m.renderer == nil || m.width != width || m.dark != dark {
		style := "light"
		if dark {
			style = "dark"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer, m.width, m.dark = r, width, dark
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// SourceLine formats one source as "title · state (status)".
func SourceLine(s model.Source) string {
	line := s.Title
	if s.State != "" {
		line += " · " + s.State
	}
	if s.Status != "" {
		line += " (" + s.Status + ")"
	}
	return line
}

// renderTranscript renders messages for a width-cell column.
func renderTranscript(theme *styles.Theme, md *markdown, msgs []model.Message, width int) string {
	if width < 12 {
		width = 12
	}
	var blocks []string
	for _, msg := range msgs {
		blocks = append(blocks, renderMessage(theme, md, msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

func renderMessage(theme *styles.Theme, md *markdown, msg model.Message, width int) string {
	label := theme.RoleLabel.Render(msg.Role.DisplayName())

	if msg.IsUser() {
		body := theme.UserBubble.Width(width - 2).Render(msg.Content)
		return lipgloss.JoinVertical(lipgloss.Right, label, body)
	}

	if msg.Failed {
		return label + "\n" + theme.FailedBubble.Width(width-2).Render(msg.Content)
	}

	body := md.Render(msg.Content, width-4, theme.IsDark)
	out := label + "\n" + theme.AssistantBubble.Render(body)
	if len(msg.Sources) > 0 {
		lines := []string{"Sources:"}
		for _, s := range msg.Sources {
			lines = append(lines, "· "+SourceLine(s))
			if s.URL != "" {
				lines = append(lines, "  "+theme.LinkStyle.Render(s.URL))
			}
		}
		out += "\n" + theme.Sources.Width(width-2).Render(strings.Join(lines, "\n"))
	}
	return out
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// copyToClipboard copies text to the system clipboard.
var copyToClipboard = clipboard.WriteAll

// copyLastAnswerCmd copies the last assistant answer of conv.
func copyLastAnswerCmd(widget WidgetID, conv *model.Conversation) tea.Cmd {
	last, ok := conv.LastAssistant()
	if !ok || last.Content == "" {
		return func() tea.Msg {
			return ErrorMsg{Widget: widget, Message: "No answer to copy"}
		}
	}
	content := last.Content
	return func() tea.Msg {
		err := copyToClipboard(content)
		return CopiedMsg{Widget: widget, Chars: len(content), Err: err}
	}
}
