// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/statescope/internal/model"
)

// fakeAsker answers with "answer: <question>" or fails on demand.
type fakeAsker struct {
	fail  bool
	panic bool
	got   []string
}

func (f *fakeAsker) Ask(ctx context.Context, q string) (*model.AskResponse, error) {
	f.got = append(f.got, q)
	if f.panic {
		panic("backend exploded")
	}
	if f.fail {
		return nil, errors.New("dial tcp: connection refused")
	}
	return &model.AskResponse{
		Answer:  "answer: " + q,
		Sources: []model.Source{{Title: "AB 2876", State: "CA", Status: "enacted"}},
	}, nil
}

// =============================================================================
// INITIAL STATE
// =============================================================================

func TestNewSession(t *testing.T) {
	s := NewSession()
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.ActiveID())
	assert.Equal(t, "New chat", s.Active().Name)
	assert.False(t, s.InFlight())
	assert.False(t, s.CanDelete())
	assert.Equal(t, Placeholders[0], s.Placeholder())
}

// =============================================================================
// SEND
// =============================================================================

func TestSend_OrderingAndInFlight(t *testing.T) {
	s := NewSession()
	asker := &fakeAsker{}
	questions := []string{"first", "second", "third"}

	require.False(t, s.InFlight())
	for _, q := range questions {
		require.NoError(t, s.Send(context.Background(), asker, q))
	}
	require.False(t, s.InFlight())

	msgs := s.Active().Messages()
	require.Len(t, msgs, 6)
	for i, q := range questions {
		user, reply := msgs[2*i], msgs[2*i+1]
		assert.Equal(t, model.RoleUser, user.Role)
		assert.Equal(t, q, user.Content)
		assert.Equal(t, model.RoleAssistant, reply.Role)
		assert.Equal(t, "answer: "+q, reply.Content)
		assert.Len(t, reply.Sources, 1)
	}
}

func TestSend_IgnoresBlankInput(t *testing.T) {
	s := NewSession()
	asker := &fakeAsker{}

	for _, q := range []string{"", "   ", "\n\t"} {
		assert.NoError(t, s.Send(context.Background(), asker, q))
	}
	assert.Empty(t, asker.got)
	assert.True(t, s.Active().IsEmpty())
	assert.Equal(t, "New chat", s.Active().Name)
}

func TestSend_TrimsQuestion(t *testing.T) {
	s := NewSession()
	asker := &fakeAsker{}
	s.Send(context.Background(), asker, "  Which states?  ")
	assert.Equal(t, []string{"Which states?"}, asker.got)
}

func TestBeginSend_RefusesWhileInFlight(t *testing.T) {
	s := NewSession()
	s.Input = "typed"
	p, ok := s.BeginSend("one")
	require.True(t, ok)
	assert.True(t, s.InFlight())
	assert.Empty(t, s.Input, "input is cleared on send")

	_, ok = s.BeginSend("two")
	assert.False(t, ok, "second send while in flight must be a no-op")
	assert.Equal(t, 1, s.Active().Len())

	s.CompleteSend(p, &model.AskResponse{Answer: "done"}, nil)
	assert.False(t, s.InFlight())

	_, ok = s.BeginSend("three")
	assert.True(t, ok, "sending works again after completion")
}

func TestSend_FailureAppendsFallback(t *testing.T) {
	s := NewSession()
	err := s.Send(context.Background(), &fakeAsker{fail: true}, "will fail")
	require.Error(t, err)

	msgs := s.Active().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Sorry, something went wrong.", msgs[1].Content)
	assert.True(t, msgs[1].Failed)
	assert.False(t, s.InFlight())

	// A failure never blocks future questions.
	require.NoError(t, s.Send(context.Background(), &fakeAsker{}, "retry"))
	assert.Equal(t, 4, s.Active().Len())
}

func TestSend_PanicStillClearsInFlight(t *testing.T) {
	s := NewSession()
	err := s.Send(context.Background(), &fakeAsker{panic: true}, "boom")
	require.Error(t, err)
	assert.False(t, s.InFlight())
	last, _ := s.Active().Last()
	assert.Equal(t, Fallback, last.Content)
}

func TestCompleteSend_NilResponseIsFailure(t *testing.T) {
	s := NewSession()
	p, _ := s.BeginSend("q")
	s.CompleteSend(p, nil, nil)
	last, _ := s.Active().Last()
	assert.Equal(t, Fallback, last.Content)
}

func TestCompleteSend_StalePendingIgnored(t *testing.T) {
	s := NewSession()
	p, _ := s.BeginSend("q")
	require.True(t, s.CompleteSend(p, &model.AskResponse{Answer: "a"}, nil))
	assert.False(t, s.CompleteSend(p, &model.AskResponse{Answer: "again"}, nil))
	assert.Equal(t, 2, s.Active().Len())
}

// =============================================================================
// RENAMING
// =============================================================================

func TestSend_RenamesFromFirstQuestion(t *testing.T) {
	s := NewSession()
	q := "What is California doing about AI in schools and does this question exceed thirty characters"
	s.Send(context.Background(), &fakeAsker{}, q)

	name := s.Active().Name
	assert.Equal(t, q[:30]+"...", name)
	assert.Equal(t, "What is California doing about...", name)

	s.Send(context.Background(), &fakeAsker{}, "second question does not rename")
	assert.Equal(t, "What is California doing about...", s.Active().Name)
}

func TestSend_ShortQuestionNameUnchanged(t *testing.T) {
	s := NewSession()
	s.Send(context.Background(), &fakeAsker{}, "Texas?")
	assert.Equal(t, "Texas?", s.Active().Name)
}

// =============================================================================
// NEW / DELETE / SWITCH
// =============================================================================

func TestNewConversation(t *testing.T) {
	s := NewSession()
	s.ToggleList()
	require.True(t, s.ShowList())

	id := s.NewConversation()
	assert.Equal(t, 2, id)
	assert.Equal(t, id, s.ActiveID())
	assert.Equal(t, "New chat", s.Active().Name)
	assert.False(t, s.ShowList(), "creating a conversation closes the list")
	assert.Equal(t, 2, s.Len())
}

func TestDelete_OnlyConversation(t *testing.T) {
	s := NewSession()
	s.Send(context.Background(), &fakeAsker{}, "something")

	require.True(t, s.Delete(1))
	require.Equal(t, 1, s.Len())
	c := s.Active()
	assert.Equal(t, "New chat", c.Name)
	assert.True(t, c.IsEmpty())
	assert.NotEqual(t, 1, c.ID, "ids are never reused")
	assert.Equal(t, c.ID, s.ActiveID())
}

func TestDelete_ActiveActivatesLast(t *testing.T) {
	s := NewSession()
	s.NewConversation() // 2
	s.NewConversation() // 3
	s.NewConversation() // 4
	s.Switch(2)

	require.True(t, s.Delete(2))
	assert.Equal(t, 4, s.ActiveID(), "last remaining conversation in list order")
	assert.Equal(t, 3, s.Len())
}

func TestDelete_InactiveKeepsActive(t *testing.T) {
	s := NewSession()
	s.NewConversation() // 2
	s.Switch(1)

	require.True(t, s.Delete(2))
	assert.Equal(t, 1, s.ActiveID())
}

func TestDelete_UnknownID(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Delete(99))
	assert.Equal(t, 1, s.Len())
}

func TestIDs_NeverReused(t *testing.T) {
	s := NewSession()
	seen := map[int]bool{1: true}
	for i := 0; i < 20; i++ {
		id := s.NewConversation()
		require.False(t, seen[id], "id %d reused", id)
		seen[id] = true
		if i%2 == 0 {
			s.Delete(id)
		}
	}

	// Draining every conversation still produces a fresh id.
	for _, c := range s.Conversations() {
		s.Delete(c.ID)
	}
	require.Equal(t, 1, s.Len())
	assert.False(t, seen[s.ActiveID()])
}

func TestSwitch(t *testing.T) {
	s := NewSession()
	s.NewConversation()
	s.ToggleList()

	require.True(t, s.Switch(1))
	assert.Equal(t, 1, s.ActiveID())
	assert.False(t, s.ShowList())
	assert.False(t, s.Switch(42))
	assert.Equal(t, 1, s.ActiveID())
}

func TestReplyGoesToOriginatingConversation(t *testing.T) {
	s := NewSession()
	p, ok := s.BeginSend("about conversation one")
	require.True(t, ok)

	s.NewConversation() // user switches away while waiting
	s.CompleteSend(p, &model.AskResponse{Answer: "reply"}, nil)

	one, _ := s.Get(1)
	assert.Equal(t, 2, one.Len())
	assert.True(t, s.Active().IsEmpty())
	assert.False(t, s.InFlight())
}

func TestReplyToDeletedConversationDropped(t *testing.T) {
	s := NewSession()
	s.NewConversation() // 2
	s.Switch(1)
	p, _ := s.BeginSend("question")
	s.Delete(1)

	assert.False(t, s.CompleteSend(p, &model.AskResponse{Answer: "late"}, nil))
	assert.False(t, s.InFlight(), "in-flight must clear even when the reply is dropped")
	for _, c := range s.Conversations() {
		assert.True(t, c.IsEmpty(), "conversation %d should not receive the reply", c.ID)
	}
}

// =============================================================================
// COSMETICS
// =============================================================================

func TestPlaceholderRotation(t *testing.T) {
	s := NewSession()
	var seen []string
	for i := 0; i < len(Placeholders)+1; i++ {
		seen = append(seen, s.Placeholder())
		s.AdvancePlaceholder()
	}
	assert.Equal(t, Placeholders[0], seen[len(Placeholders)], "rotation wraps around")
	assert.Equal(t, Placeholders[1], seen[1])
}

func TestToggleExpanded(t *testing.T) {
	s := NewSession()
	assert.True(t, s.Expanded())
	s.ToggleExpanded()
	assert.False(t, s.Expanded())
}

func ExampleSession_Send() {
	s := NewSession()
	asker := AskerFunc(func(ctx context.Context, q string) (*model.AskResponse, error) {
		return &model.AskResponse{Answer: "Twelve states."}, nil
	})
	s.Send(context.Background(), asker, "How many states require AI literacy?")
	for _, m := range s.Active().Messages() {
		fmt.Printf("%s: %s\n", m.Role.DisplayName(), m.Content)
	}
	fmt.Println(s.Active().Name)
	// Output:
	// You: How many states require AI literacy?
	// Assistant: Twelve states.
	// How many states require AI lit...
}
