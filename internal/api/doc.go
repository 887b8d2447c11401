// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the StateScope policy API.
//
// The API serves JSON under a configurable base URL (default
// http://localhost:5001/api). Two verbs are used: GetJSON for reads and
// PostJSON for questions. Any non-2xx response becomes a *ClientError
// wrapping a *StatusError that carries the status code; error bodies are
// never parsed.
//
// # Usage
//
//	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.API.BaseURL})
//	states, err := client.States(ctx)
//	resp, err := client.Ask(ctx, "Which states require AI literacy?")
//
// Trend queries omit empty filter values entirely:
//
//	client.Timeline(ctx, api.TrendFilters{State: "CA", TopicID: "3"})
//	// GET /trends/timeline?state=CA&topic_id=3
package api
