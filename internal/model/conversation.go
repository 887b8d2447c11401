// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// DefaultConversationName is the name of a conversation before its first
// question.
const DefaultConversationName = "New chat"

// Conversation is one chat thread. Messages are append-only.
type Conversation struct {
	ID       int
	Name     string
	messages []Message
}

// NewConversation creates an empty conversation named "New chat".
func NewConversation(id int) *Conversation {
	return &Conversation{ID: id, Name: DefaultConversationName}
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the message history.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// IsEmpty returns true if no messages were sent yet.
func (c *Conversation) IsEmpty() bool {
	return len(c.messages) == 0
}

// Last returns the newest message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastAssistant returns the newest assistant message.
func (c *Conversation) LastAssistant() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].IsAssistant() {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

// Clear drops all messages. The name is kept.
func (c *Conversation) Clear() {
	c.messages = nil
}
