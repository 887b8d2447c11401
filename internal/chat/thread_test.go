// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/statescope/internal/model"
)

func TestThread_PlainTransmit(t *testing.T) {
	th := NewThread()
	asker := &fakeAsker{}
	require.NoError(t, th.Send(context.Background(), asker, "How are policies trending?"))

	assert.Equal(t, []string{"How are policies trending?"}, asker.got)
	msgs := th.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "How are policies trending?", msgs[0].Content)
	assert.Equal(t, "answer: How are policies trending?", msgs[1].Content)
}

func TestThread_StatePrefix(t *testing.T) {
	th := NewStateThread("California")
	asker := &fakeAsker{}
	th.Send(context.Background(), asker, "What bills passed?")

	require.Len(t, asker.got, 1)
	assert.Equal(t, "Regarding California: What bills passed?", asker.got[0])

	msgs := th.Messages()
	assert.Equal(t, "What bills passed?", msgs[0].Content, "display shows the bare question")
}

func TestThread_StateWithoutContext(t *testing.T) {
	th := NewStateThread("")
	asker := &fakeAsker{}
	th.Send(context.Background(), asker, "hello")
	assert.Equal(t, []string{"hello"}, asker.got)
}

func TestThread_FailureFallback(t *testing.T) {
	th := NewThread()
	err := th.Send(context.Background(), &fakeAsker{fail: true}, "q")
	require.Error(t, err)

	last, ok := th.Conversation().Last()
	require.True(t, ok)
	assert.Equal(t, Fallback, last.Content)
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.False(t, th.InFlight())
}

func TestThread_BlankAndInFlightIgnored(t *testing.T) {
	th := NewThread()
	_, ok := th.BeginSend("   ")
	assert.False(t, ok)

	p, ok := th.BeginSend("one")
	require.True(t, ok)
	_, ok = th.BeginSend("two")
	assert.False(t, ok)
	assert.Len(t, th.Messages(), 1)

	th.CompleteSend(p, &model.AskResponse{Answer: "a"}, nil)
	assert.Len(t, th.Messages(), 2)
}

func TestThread_CompleteSendOnce(t *testing.T) {
	th := NewStateThread("California")
	p, ok := th.BeginSend("q")
	require.True(t, ok)

	require.True(t, th.CompleteSend(p, &model.AskResponse{Answer: "a"}, nil))
	assert.False(t, th.CompleteSend(p, &model.AskResponse{Answer: "again"}, nil))
	assert.False(t, th.CompleteSend(p, nil, assert.AnError))
	assert.Len(t, th.Messages(), 2)
}

func TestThread_SetContextResets(t *testing.T) {
	th := NewStateThread("California")
	th.Send(context.Background(), &fakeAsker{}, "first")
	th.Input = "half typed"
	require.False(t, th.IsEmpty())

	assert.False(t, th.SetContext("California"), "same context keeps history")
	assert.False(t, th.IsEmpty())

	assert.True(t, th.SetContext("Texas"))
	assert.True(t, th.IsEmpty())
	assert.Empty(t, th.Input)
	assert.Equal(t, "Texas", th.Context())
}

func TestThread_SetContextDropsInFlightReply(t *testing.T) {
	th := NewStateThread("California")
	p, ok := th.BeginSend("what about CA?")
	require.True(t, ok)

	th.SetContext("Texas")
	assert.False(t, th.InFlight())
	assert.False(t, th.CompleteSend(p, &model.AskResponse{Answer: "CA answer"}, nil))
	assert.True(t, th.IsEmpty(), "a reply for the previous state must not appear")
}

func TestThread_Clear(t *testing.T) {
	th := NewThread()
	th.Send(context.Background(), &fakeAsker{}, "q")
	p, _ := th.BeginSend("pending")
	th.Clear()

	assert.True(t, th.IsEmpty())
	assert.False(t, th.CompleteSend(p, &model.AskResponse{Answer: "late"}, nil))

	_, ok := th.BeginSend("again")
	assert.True(t, ok)
}
