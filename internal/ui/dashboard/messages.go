// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/statescope/internal/config"
)

// ConfigReloadedMsg carries one config.Watcher delivery into the event loop.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// waitForReload blocks on the next watcher delivery. It returns nil once
// the channel is closed, ending the chain.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: r.Config, Err: r.Err}
	}
}
