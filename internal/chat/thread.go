// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/jeranaias/statescope/internal/model"
)

// Thread is a single implicit conversation, optionally tied to a context
// such as the selected state.
type Thread struct {
	conv     *model.Conversation
	context  string
	template string

	inFlight bool
	seq      uint64

	// Input is the text currently typed into the widget.
	Input string
}

// NewThread creates a thread that sends questions unchanged.
func NewThread() *Thread {
	return &Thread{conv: model.NewConversation(1)}
}

// NewStateThread creates a thread that sends "Regarding <state>: <question>"
// while displaying only the question.
func NewStateThread(stateName string) *Thread {
	t := NewThread()
	t.template = "Regarding %s: %s"
	t.context = stateName
	return t
}

// Context returns the current context (state name), if any.
func (t *Thread) Context() string {
	return t.context
}

// SetContext switches the thread to a new context. When it differs from
// the current one the history, input and in-flight request are discarded.
// It returns whether anything changed.
func (t *Thread) SetContext(ctx string) bool {
	if ctx == t.context {
		return false
	}
	t.context = ctx
	t.reset()
	return true
}

// Clear empties the history without changing context. A question in flight
// is abandoned.
func (t *Thread) Clear() {
	t.reset()
}

func (t *Thread) reset() {
	t.conv.Clear()
	t.Input = ""
	t.inFlight = false
	t.seq++
}

// Messages returns the history.
func (t *Thread) Messages() []model.Message {
	return t.conv.Messages()
}

// Conversation exposes the underlying conversation.
func (t *Thread) Conversation() *model.Conversation {
	return t.conv
}

// IsEmpty reports whether nothing was asked yet.
func (t *Thread) IsEmpty() bool {
	return t.conv.IsEmpty()
}

// InFlight reports whether a question awaits its answer.
func (t *Thread) InFlight() bool {
	return t.inFlight
}

// transmit builds what the backend receives for q.
func (t *Thread) transmit(q string) string {
	if t.template == "" || t.context == "" {
		return q
	}
	return fmt.Sprintf(t.template, t.context, q)
}

// BeginSend starts a turn. Blank questions and questions while another is
// in flight are ignored.
func (t *Thread) BeginSend(question string) (Pending, bool) {
	q, ok := normalize(question)
	if !ok || t.inFlight {
		return Pending{}, false
	}
	t.conv.Append(model.NewUserMessage(q))
	t.Input = ""
	t.inFlight = true
	t.seq++
	return Pending{ConvID: t.conv.ID, Question: q, Transmit: t.transmit(q), seq: t.seq}, true
}

// CompleteSend appends the answer, or the fallback text on error, for the
// turn p. Results for a turn abandoned by SetContext or Clear are dropped,
// as are repeated completions of the same turn.
func (t *Thread) CompleteSend(p Pending, resp *model.AskResponse, err error) bool {
	if !t.inFlight || p.seq != t.seq {
		return false
	}
	t.inFlight = false
	t.conv.Append(replyMessage(resp, err, Fallback))
	return true
}

// Send runs a whole turn synchronously.
func (t *Thread) Send(ctx context.Context, asker Asker, question string) error {
	p, ok := t.BeginSend(question)
	if !ok {
		return nil
	}
	resp, err := Ask(ctx, asker, p.Transmit)
	t.CompleteSend(p, resp, err)
	return err
}
