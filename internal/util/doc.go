// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across statescope.
//
// String Utilities:
//   - Abbreviate: keep a leading run of characters and mark the cut with "..."
//   - TruncateWidth, PadWidth, StringWidth: display-width aware helpers for
//     laying text into fixed terminal cells
//   - Plural: "policy" vs "policies" style count labels
//
// File Operations:
//   - AtomicWriteFile: temp file, fsync, rename
package util
