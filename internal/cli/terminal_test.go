// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"sync"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/statescope/internal/config"
)

func TestForceColorsEnabled(t *testing.T) {
	t.Cleanup(func() { colorsEnabledOnce = sync.Once{} })

	ForceColorsEnabled(false)
	assert.False(t, ColorsEnabled())
	assert.Equal(t, termenv.Ascii, GetColorProfile())

	// Markdown stays plain without colors, even on a terminal.
	env := &Env{Config: config.Default(), TTY: true}
	assert.Equal(t, "**bold**", renderMarkdown(env, "**bold**"))

	ForceColorsEnabled(true)
	assert.True(t, ColorsEnabled())
}

func TestRenderWidth_Bounds(t *testing.T) {
	w := renderWidth()
	assert.GreaterOrEqual(t, w, MinTerminalWidth)
	assert.LessOrEqual(t, w, MaxRenderWidth)
}
