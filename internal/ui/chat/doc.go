// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat widgets of the StateScope TUI.

# Widgets

Global (global.go) is the multi-conversation sidebar. It drives a
chatstate.Session: conversation dropdown, "+ New", rotating placeholder,
suggestion chips on an empty conversation, and a collapsed/expanded toggle
on narrow terminals.

Thread (thread.go) is the single-conversation widget. NewPanel ties it to
the selected state and prefixes every question with the state name;
NewTrends sends questions unchanged.

# Requests

Widgets never block the event loop. A submit calls BeginSend, and the
returned tea.Cmd performs the request and comes back as an AnswerMsg
addressed to the widget that sent it. Failures become the fallback
assistant message, are logged at warn level, and raise an error toast
through ErrorMsg.

Assistant answers are markdown rendered with glamour at the widget width.
*/
package chat
