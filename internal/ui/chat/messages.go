// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	chatstate "github.com/jeranaias/statescope/internal/chat"
	"github.com/jeranaias/statescope/internal/model"
)

// WidgetID addresses a chat widget.
type WidgetID int

const (
	WidgetGlobal WidgetID = iota
	WidgetPanel
	WidgetTrends
)

// String returns the widget name used in logs.
func (w WidgetID) String() string {
	switch w {
	case WidgetGlobal:
		return "global"
	case WidgetPanel:
		return "panel"
	case WidgetTrends:
		return "trends"
	default:
		return "unknown"
	}
}

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// AnswerMsg carries the result of one question back to its widget.
type AnswerMsg struct {
	Widget   WidgetID
	Pending  chatstate.Pending
	Response *model.AskResponse
	Err      error
}

// ErrorMsg asks the dashboard to show an error toast.
type ErrorMsg struct {
	Widget  WidgetID
	Message string
}

// askCmd performs the request for p off the event loop.
func askCmd(widget WidgetID, asker chatstate.Asker, p chatstate.Pending) tea.Cmd {
	return func() tea.Msg {
		resp, err := chatstate.Ask(context.Background(), asker, p.Transmit)
		return AnswerMsg{Widget: widget, Pending: p, Response: resp, Err: err}
	}
}

// =============================================================================
// COSMETIC MESSAGES
// =============================================================================

// PlaceholderTickMsg rotates the global placeholder. Gen ties the tick to
// the timer chain that scheduled it.
type PlaceholderTickMsg struct {
	Gen int
}

func placeholderTick(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PlaceholderTickMsg{Gen: gen}
	})
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Widget WidgetID
	Chars  int
	Err    error
}
