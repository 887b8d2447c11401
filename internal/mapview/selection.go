// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mapview

// Selection holds the two independent map axes: the hovered state and the
// selected state, both by state code. Hover never changes the selection.
type Selection struct {
	hovered  string
	selected string
}

// Hover marks code as hovered.
func (s *Selection) Hover(code string) {
	s.hovered = code
}

// Leave clears the hover.
func (s *Selection) Leave() {
	s.hovered = ""
}

// Hovered returns the hovered state code, or "".
func (s *Selection) Hovered() string {
	return s.hovered
}

// Click toggles code: clicking the selected state deselects it, any other
// state replaces the selection. It returns the new selection.
func (s *Selection) Click(code string) string {
	if code == "" {
		return s.selected
	}
	if s.selected == code {
		s.selected = ""
	} else {
		s.selected = code
	}
	return s.selected
}

// Select sets the selection without toggling, as the panel picker does.
func (s *Selection) Select(code string) {
	s.selected = code
}

// Clear removes the selection.
func (s *Selection) Clear() {
	s.selected = ""
}

// Selected returns the selected state code, or "".
func (s *Selection) Selected() string {
	return s.selected
}

// IsSelected reports whether code is the selected state.
func (s *Selection) IsSelected(code string) bool {
	return code != "" && s.selected == code
}
