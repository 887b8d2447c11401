// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard is the root Bubble Tea model of the statescope TUI.
//
// The screen has a header with the Map and Trends tabs, the active tab's
// content, a resizable chat sidebar on the right and a status bar:
//
//	+------------------------------------------------+-+------------+
//	| StateScope                          API: ok    | |            |
//	| [Map] [Trends]                                 | |  Global    |
//	+------------------------------------------------+ |  chat      |
//	|  tile map + inset          | legend, tooltip   | |            |
//	|----------------------------+-------------------| |            |
//	|  policy cards / picker     |  panel chat       | |            |
//	+------------------------------------------------+-+------------+
//	| key hints                                          status     |
//	+----------------------------------------------------------------+
//
// Below the narrow breakpoint the sidebar collapses into a toggle line and
// the resize handle is disabled.
//
// Every fetch goes through a resource.Resource so a slow response for a
// superseded key is discarded. Every chat request is routed back to its
// widget by chat.WidgetID.
package dashboard
