// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/statescope/internal/logging"
)

func newTestPanel(t *testing.T, r *recorder, state string) *Thread {
	t.Helper()
	th := NewPanel(r, testTheme(), logging.NewNop(), state)
	th.SetSize(80, 20)
	th.SetFocused(true)
	return th
}

func TestPanel_SendsWithStatePrefix(t *testing.T) {
	r := &recorder{}
	th := newTestPanel(t, r, "California")
	assert.Equal(t, "Let's chat about California!", th.Title())
	assert.Equal(t, "Ask about California policies...", th.input.Placeholder)

	th.Update(keyRunes("What passed?"))
	answer := answerIn(t, th.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, WidgetPanel, answer.Widget)
	th.Update(answer)

	assert.Equal(t, []string{"Regarding California: What passed?"}, r.asked())
	msgs := th.State().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "What passed?", msgs[0].Content)
	assert.False(t, th.State().InFlight())
}

func TestPanel_SetContextDropsReply(t *testing.T) {
	th := newTestPanel(t, &recorder{}, "California")
	answer := answerIn(t, th.Send("Anything new?"))

	assert.True(t, th.SetContext("Texas"))
	assert.False(t, th.SetContext("Texas"))
	assert.Equal(t, "Let's chat about Texas!", th.Title())
	assert.Equal(t, "Ask about Texas policies...", th.input.Placeholder)

	assert.Nil(t, th.Update(answer))
	assert.True(t, th.State().IsEmpty())
	assert.False(t, th.State().InFlight())
}

func TestPanel_IgnoresOtherWidgets(t *testing.T) {
	th := newTestPanel(t, &recorder{}, "Ohio")
	answer := answerIn(t, th.Send("q"))
	answer.Widget = WidgetGlobal

	th.Update(answer)
	assert.True(t, th.State().InFlight())
}

func TestTrends_EmptyAndFailure(t *testing.T) {
	r := &recorder{err: errors.New("down")}
	th := NewTrends(r, testTheme(), logging.NewNop())
	th.SetSize(90, 20)
	th.SetFocused(true)

	assert.Equal(t, TrendsHeader, th.Title())
	assert.Contains(t, th.View(), TrendsEmptyText)

	cmd := th.Update(answerIn(t, th.Send("Compare states")))
	require.NotNil(t, cmd)
	errMsg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.Equal(t, WidgetTrends, errMsg.Widget)
	assert.Equal(t, []string{"Compare states"}, r.asked())

	msgs := th.State().Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[1].Failed)
}

func TestThread_ClearKey(t *testing.T) {
	th := newTestPanel(t, &recorder{}, "Utah")
	th.Update(answerIn(t, th.Send("q")))
	require.False(t, th.State().IsEmpty())

	th.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.True(t, th.State().IsEmpty())
}
