// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat holds the in-memory state of the question/answer widgets.
//
// Session is the multi-conversation widget: an ordered list of
// conversations with one active, a monotonic id counter, and a single
// in-flight guard. Thread is the single-conversation widget, optionally
// tied to an external context (a selected state) whose change resets it.
//
// Sending is split in two so the UI event loop never blocks:
//
//	p, ok := session.BeginSend(input)   // appends the user message
//	resp, err := chat.Ask(ctx, asker, p.Transmit)
//	session.CompleteSend(p, resp, err)  // appends answer or fallback
//
// Send does all three synchronously for the REPL and tests.
package chat
