// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/util"
)

// Placeholders rotate through the empty input of the global chat.
var Placeholders = []string{
	"Which states have AI literacy laws?",
	"Compare California and Texas AI policies",
	"What bills were introduced in 2024?",
	"Which states have pending AI education bills?",
}

// Suggestions are offered on an empty conversation.
var Suggestions = []string{
	"Which states require AI literacy?",
	"Compare California and Texas policies",
	"What's the most common policy topic?",
	"Which states have pending legislation?",
}

// Session is the state of the multi-conversation chat widget.
//
// A Session always holds at least one conversation and exactly one of them
// is active. Conversation ids come from a counter owned by the Session and
// are never reused. At most one question is in flight at a time.
type Session struct {
	convs    []*model.Conversation
	activeID int
	nextID   int

	inFlight bool
	seq      uint64

	// Input is the text currently typed into the widget.
	Input string

	showList       bool
	expanded       bool
	placeholderIdx int
}

// NewSession creates a session with one empty conversation (id 1).
func NewSession() *Session {
	s := &Session{nextID: 1, expanded: true}
	s.activeID = s.add()
	return s
}

func (s *Session) add() int {
	id := s.nextID
	s.nextID++
	s.convs = append(s.convs, model.NewConversation(id))
	return id
}

func (s *Session) indexOf(id int) int {
	for i, c := range s.convs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversations returns the conversations in list order.
func (s *Session) Conversations() []*model.Conversation {
	out := make([]*model.Conversation, len(s.convs))
	copy(out, s.convs)
	return out
}

// Len returns the number of conversations.
func (s *Session) Len() int {
	return len(s.convs)
}

// Get returns the conversation with id.
func (s *Session) Get(id int) (*model.Conversation, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.convs[i], true
	}
	return nil, false
}

// Active returns the active conversation.
func (s *Session) Active() *model.Conversation {
	c, _ := s.Get(s.activeID)
	return c
}

// ActiveID returns the id of the active conversation.
func (s *Session) ActiveID() int {
	return s.activeID
}

// ActiveIndex returns the list position of the active conversation.
func (s *Session) ActiveIndex() int {
	return s.indexOf(s.activeID)
}

// InFlight reports whether a question awaits its answer.
func (s *Session) InFlight() bool {
	return s.inFlight
}

// CanDelete reports whether the delete affordance should be offered.
// Delete itself works on the last conversation too.
func (s *Session) CanDelete() bool {
	return len(s.convs) > 1
}

// ShowList reports whether the conversation dropdown is open.
func (s *Session) ShowList() bool {
	return s.showList
}

// Expanded reports whether the widget is expanded on narrow screens.
func (s *Session) Expanded() bool {
	return s.expanded
}

// =============================================================================
// CONVERSATION MANAGEMENT
// =============================================================================

// NewConversation appends an empty conversation named "New chat", makes it
// active and closes the dropdown. It returns the new id.
func (s *Session) NewConversation() int {
	id := s.add()
	s.activeID = id
	s.showList = false
	return id
}

// Delete removes a conversation. Deleting the last one replaces it with a
// fresh conversation under a new id. Deleting the active one while others
// remain activates the last conversation in list order. It returns false
// if id is unknown.
func (s *Session) Delete(id int) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.convs = append(s.convs[:i], s.convs[i+1:]...)

	if len(s.convs) == 0 {
		s.activeID = s.add()
		return true
	}
	if id == s.activeID {
		s.activeID = s.convs[len(s.convs)-1].ID
	}
	return true
}

// Switch makes id active and closes the dropdown. It returns false if id is
// unknown.
func (s *Session) Switch(id int) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	s.showList = false
	return true
}

// ToggleList opens or closes the conversation dropdown.
func (s *Session) ToggleList() {
	s.showList = !s.showList
}

// CloseList closes the conversation dropdown.
func (s *Session) CloseList() {
	s.showList = false
}

// ToggleExpanded collapses or expands the widget.
func (s *Session) ToggleExpanded() {
	s.expanded = !s.expanded
}

// =============================================================================
// PLACEHOLDER ROTATION
// =============================================================================

// Placeholder returns the current input placeholder.
func (s *Session) Placeholder() string {
	return Placeholders[s.placeholderIdx%len(Placeholders)]
}

// AdvancePlaceholder moves to the next placeholder.
func (s *Session) AdvancePlaceholder() {
	s.placeholderIdx = (s.placeholderIdx + 1) % len(Placeholders)
}

// =============================================================================
// SENDING
// =============================================================================

// BeginSend starts a turn with question. It does nothing and returns false
// if the question is blank or another one is in flight. Otherwise the
// active conversation is renamed from the question if it was empty, the
// user message is appended, the input is cleared and the in-flight flag is
// set.
func (s *Session) BeginSend(question string) (Pending, bool) {
	q, ok := normalize(question)
	if !ok || s.inFlight {
		return Pending{}, false
	}

	conv := s.Active()
	if conv.IsEmpty() {
		conv.Name = util.Abbreviate(q, NameLimit)
	}
	conv.Append(model.NewUserMessage(q))

	s.Input = ""
	s.inFlight = true
	s.seq++
	return Pending{ConvID: conv.ID, Question: q, Transmit: q, seq: s.seq}, true
}

// CompleteSend finishes the turn started by p. The answer, or the fallback
// text when err is set, goes to the conversation that was active when the
// turn started. If that conversation was deleted meanwhile the answer is
// discarded. The in-flight flag is cleared either way. A turn completes once;
// later calls with the same p are ignored. It returns whether a message was
// appended.
func (s *Session) CompleteSend(p Pending, resp *model.AskResponse, err error) bool {
	if !s.inFlight || p.seq != s.seq {
		return false
	}
	s.inFlight = false

	conv, ok := s.Get(p.ConvID)
	if !ok {
		return false
	}
	conv.Append(replyMessage(resp, err, Fallback))
	return true
}

// Send runs a whole turn synchronously. The returned error is the request
// failure, already converted into the fallback message; it is nil when
// nothing was sent or the answer arrived.
func (s *Session) Send(ctx context.Context, asker Asker, question string) error {
	p, ok := s.BeginSend(question)
	if !ok {
		return nil
	}
	resp, err := Ask(ctx, asker, p.Transmit)
	s.CompleteSend(p, resp, err)
	return err
}
