// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme_Modes(t *testing.T) {
	tests := []struct {
		mode     string
		wantMode string
		wantDark *bool
	}{
		{ModeDark, ModeDark, boolPtr(true)},
		{ModeLight, ModeLight, boolPtr(false)},
		{ModeAuto, ModeAuto, nil},
		{"neon", ModeAuto, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			theme := NewTheme(tt.mode)
			if theme.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", theme.Mode, tt.wantMode)
			}
			if tt.wantDark != nil && theme.IsDark != *tt.wantDark {
				t.Errorf("IsDark = %v, want %v", theme.IsDark, *tt.wantDark)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme(ModeLight)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"TabActive", theme.TabActive},
		{"Card", theme.Card},
		{"UserBubble", theme.UserBubble},
		{"AssistantBubble", theme.AssistantBubble},
		{"ChartBox", theme.ChartBox},
		{"StatusBar", theme.StatusBar},
	}

	for _, s := range styles {
		if rendered := s.style.Render("test"); rendered == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme(ModeDark)
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{60, LayoutNarrow},
		{99, LayoutNarrow},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(100); got != tt.want {
			t.Errorf("width %d: mode = %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestSpinnerConfig(t *testing.T) {
	s := DotsSpinner.Spinner()
	if len(s.Frames) != len(DotsSpinner.Frames) {
		t.Errorf("frames = %d", len(s.Frames))
	}
	if s.FPS != time.Second/6 {
		t.Errorf("FPS = %v", s.FPS)
	}
	if (SpinnerConfig{}).Duration() != time.Second {
		t.Error("zero FPS should fall back to one second")
	}
}
