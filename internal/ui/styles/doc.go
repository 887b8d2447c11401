// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the StateScope TUI.

# Color System (colors.go)

Chrome colors (Teal, Ink, Indigo, Rose, Amber, surfaces and text) are
lipgloss.AdaptiveColor values. The map tints in StatusFill and the policy
badges in Badges are fixed hex colors:

	enacted  #2A9D8F    pending  #E9A820    guidance #6C7EC4
	failed   #F4B4B4    none     #E8E4DF

FillFor and BadgeFor fall back to the "none" tint and the "active" badge
for values outside the known sets.

# Theme (theme.go)

NewTheme builds every lipgloss.Style the views use. The mode argument is
the ui.theme config value: "dark" and "light" force the background,
"auto" asks termenv.

# Animations (animations.go)

SpinnerConfig values convert into bubbles spinner definitions.
*/
package styles
