// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the API client, the
// chat state and the views.
//
// # Key Types
//
//   - State, Policy, Topic: records served by the policy API
//   - TimelineRow, TopicCount, StatusCount, LevelCount: trend aggregates
//   - AskResponse, Source: question answering results
//   - Message, Conversation: in-memory chat history
//
// Status values received from the API are kept verbatim on the records;
// the Status methods normalize them and fall back to a default when the
// value is not one the dashboard knows how to draw.
package model
