// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import "testing"

func sidebar() *Resizer {
	return NewResizer(Config{Min: 280, Max: 650, Default: 420, Side: SideRight})
}

func TestResizer_RightSide(t *testing.T) {
	r := sidebar()
	if got := r.Begin(500); got != TransitionAttach {
		t.Fatalf("Begin = %v, want attach", got)
	}

	if w, _ := r.Move(450); w != 470 {
		t.Errorf("Move(450) width = %d, want 470", w)
	}
	if w, _ := r.Move(800); w != 280 {
		t.Errorf("Move(800) width = %d, want 280 (clamped)", w)
	}
	if w, _ := r.Move(0); w != 650 {
		t.Errorf("Move(0) width = %d, want 650 (clamped)", w)
	}
}

func TestResizer_LeftSide(t *testing.T) {
	r := NewResizer(Config{Min: 280, Max: 650, Default: 420, Side: SideLeft})
	r.Begin(500)
	if w, _ := r.Move(550); w != 470 {
		t.Errorf("width = %d, want 470", w)
	}
	if w, _ := r.Move(100); w != 280 {
		t.Errorf("width = %d, want 280", w)
	}
}

func TestResizer_EndStopsChanges(t *testing.T) {
	r := sidebar()
	r.Begin(500)
	r.Move(450)
	if got := r.End(); got != TransitionDetach {
		t.Fatalf("End = %v, want detach", got)
	}
	if _, changed := r.Move(300); changed {
		t.Error("Move after End should not change width")
	}
	if w, _ := r.Width(); w != 470 {
		t.Errorf("width = %d, want 470", w)
	}
	if got := r.End(); got != TransitionNone {
		t.Errorf("second End = %v, want none", got)
	}
}

func TestResizer_NextDragStartsFromCurrentWidth(t *testing.T) {
	r := sidebar()
	r.Begin(500)
	r.Move(450) // 470
	r.End()

	r.Begin(100)
	if w, _ := r.Move(90); w != 480 {
		t.Errorf("width = %d, want 480", w)
	}
}

func TestResizer_Disabled(t *testing.T) {
	r := NewResizer(Config{Min: 280, Max: 650, Default: 420, Disabled: true})
	if _, ok := r.Width(); ok {
		t.Error("disabled resizer must not report a width")
	}
	if got := r.Begin(10); got != TransitionNone {
		t.Errorf("Begin while disabled = %v, want none", got)
	}
	if r.Dragging() {
		t.Error("Begin while disabled armed the drag")
	}
}

func TestResizer_DisableDuringDragDetaches(t *testing.T) {
	r := sidebar()
	r.Begin(500)
	if got := r.SetDisabled(true); got != TransitionDetach {
		t.Fatalf("SetDisabled = %v, want detach", got)
	}
	if r.Dragging() {
		t.Error("still dragging after disable")
	}
	if got := r.SetDisabled(false); got != TransitionNone {
		t.Errorf("re-enable = %v, want none", got)
	}
	if w, ok := r.Width(); !ok || w != 420 {
		t.Errorf("Width = %d,%v want 420,true", w, ok)
	}
}

func TestResizer_AttachDetachBalanced(t *testing.T) {
	tests := []struct {
		name string
		exit func(*Resizer) Transition
	}{
		{"end", (*Resizer).End},
		{"close", (*Resizer).Close},
		{"disable", func(r *Resizer) Transition { return r.SetDisabled(true) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sidebar()
			attached := 0
			count := func(tr Transition) {
				switch tr {
				case TransitionAttach:
					attached++
				case TransitionDetach:
					attached--
				}
			}
			count(r.Begin(1))
			count(r.Begin(2)) // already armed
			count(tt.exit(r))
			count(r.End())
			count(r.Close())
			if attached != 0 {
				t.Errorf("unbalanced listener count %d", attached)
			}
		})
	}
}

func TestResizer_CloseIsFinal(t *testing.T) {
	r := sidebar()
	r.Close()
	if got := r.Begin(5); got != TransitionNone {
		t.Errorf("Begin after Close = %v", got)
	}
}

func TestResizer_SetBounds(t *testing.T) {
	r := sidebar()
	r.SetBounds(28, 65, 42)
	if w, _ := r.Width(); w != 65 {
		t.Errorf("width = %d, want 65", w)
	}
	r.Reset()
	if w, _ := r.Width(); w != 42 {
		t.Errorf("width after Reset = %d, want 42", w)
	}
}
