// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-dashboard commands
// for statescope.
//
// With no command statescope starts the dashboard. Every other command
// talks to the policy API directly and writes to stdout.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Env: Output streams, config, API client and logger a command runs against
//
// # Usage
//
//	cmd, args := cli.Parse()
//	env := cli.NewEnv(cfg, log, args)
//	if err := cli.Run(ctx, env, cmd, args); err != nil {
//	    cli.DisplayError(os.Stderr, err)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - ask: One question, one answer, optionally about one state
//   - chat: Interactive multi-conversation chat
//   - states, policies, policy: Browse the policy records
//   - trends: Aggregate charts (timeline, topics, status, level)
//   - status: API health check
//   - config: Show, initialize and query the config file
//
// All data commands support --json.
package cli
