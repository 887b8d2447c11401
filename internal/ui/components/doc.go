// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the StateScope
dashboard.

Components are plain render helpers or small stateful types; none of them
issue requests. The dashboard and chat models own all data.

# Display Components

Header (header.go) - Title bar with tabs and API health.
StatusBar (statusbar.go) - Bottom bar with key hints.
Legend and Tooltip (legend.go, tooltip.go) - Map legend and hover card.
PolicyCard (policycard.go) - One policy record with its status badge.
BarChart (barchart.go) - Horizontal bars drawn with bubbles/progress.

# Feedback

Spinner (spinner.go) - Typing and loading indicators.
ToastManager (toast.go) - Non-blocking notifications in the bottom-right
corner that auto-dismiss.
*/
package components
