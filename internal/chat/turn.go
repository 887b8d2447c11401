// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/statescope/internal/model"
)

const (
	// Fallback replaces the answer when a question fails.
	Fallback = "Sorry, something went wrong."

	// NameLimit is how many characters of the first question name a
	// conversation.
	NameLimit = 30
)

// Asker answers questions. *api.Client satisfies it.
type Asker interface {
	Ask(ctx context.Context, question string) (*model.AskResponse, error)
}

// AskerFunc adapts a function to Asker.
type AskerFunc func(ctx context.Context, question string) (*model.AskResponse, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context, question string) (*model.AskResponse, error) {
	return f(ctx, question)
}

// Pending is a question that has been shown to the user and awaits its
// answer. Transmit is what goes to the backend; it can carry more context
// than Question.
type Pending struct {
	ConvID   int
	Question string
	Transmit string
	seq      uint64
}

// normalize trims input and reports whether anything is left to send.
func normalize(input string) (string, bool) {
	q := strings.TrimSpace(input)
	return q, q != ""
}

// replyMessage builds the assistant message for a finished request.
// A nil response counts as a failure as well.
func replyMessage(resp *model.AskResponse, err error, fallback string) model.Message {
	if err != nil || resp == nil {
		return model.NewFallbackMessage(fallback)
	}
	return model.NewAssistantMessage(resp.Answer, resp.Sources)
}

// Ask calls asker and turns a panic into an error, so a turn always
// completes.
func Ask(ctx context.Context, asker Asker, question string) (resp *model.AskResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, fmt.Errorf("ask panicked: %v", r)
		}
	}()
	return asker.Ask(ctx, question)
}
