// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout holds pointer-driven layout state.
//
// Resizer is an explicit idle/dragging state machine. Each call that
// changes the state returns a Transition so the caller can acquire the
// global pointer stream on Attach and release it on Detach. Every path out
// of dragging (End, SetDisabled, Close) yields exactly one Detach.
package layout

// Side is where the resized panel is docked.
type Side int

const (
	// SideRight is a panel docked on the right; moving the pointer right
	// shrinks it.
	SideRight Side = iota
	// SideLeft is a panel docked on the left; moving right grows it.
	SideLeft
)

// Transition tells the caller what to do with the pointer stream.
type Transition int

const (
	// TransitionNone requires no action.
	TransitionNone Transition = iota
	// TransitionAttach means start listening for global pointer motion.
	TransitionAttach
	// TransitionDetach means stop listening.
	TransitionDetach
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case TransitionAttach:
		return "attach"
	case TransitionDetach:
		return "detach"
	default:
		return "none"
	}
}

// Config bounds a Resizer.
type Config struct {
	Min      int
	Max      int
	Default  int
	Side     Side
	Disabled bool
}

// Resizer tracks the width of a panel resized by dragging.
type Resizer struct {
	cfg   Config
	width int

	dragging   bool
	startX     int
	startWidth int
	closed     bool
}

// NewResizer creates an idle resizer at the configured default width.
func NewResizer(cfg Config) *Resizer {
	if cfg.Max < cfg.Min {
		cfg.Max = cfg.Min
	}
	r := &Resizer{cfg: cfg}
	r.width = r.clamp(cfg.Default)
	return r
}

func (r *Resizer) clamp(w int) int {
	if w < r.cfg.Min {
		return r.cfg.Min
	}
	if w > r.cfg.Max {
		return r.cfg.Max
	}
	return w
}

// Config returns the current bounds.
func (r *Resizer) Config() Config {
	return r.cfg
}

// Dragging reports whether a drag is in progress.
func (r *Resizer) Dragging() bool {
	return r.dragging
}

// Width returns the current width. The second value is false while the
// resizer is disabled; the caller then uses its own layout.
func (r *Resizer) Width() (int, bool) {
	if r.cfg.Disabled {
		return 0, false
	}
	return r.width, true
}

// Begin arms a drag at pointer column x. It is inert while disabled, after
// Close, or when a drag is already armed.
func (r *Resizer) Begin(x int) Transition {
	if r.cfg.Disabled || r.closed || r.dragging {
		return TransitionNone
	}
	r.dragging = true
	r.startX = x
	r.startWidth = r.width
	return TransitionAttach
}

// Move updates the width from pointer column x while armed and returns the
// new width and whether it changed.
func (r *Resizer) Move(x int) (int, bool) {
	if !r.dragging {
		return r.width, false
	}
	delta := x - r.startX
	var w int
	if r.cfg.Side == SideRight {
		w = r.startWidth - delta
	} else {
		w = r.startWidth + delta
	}
	w = r.clamp(w)
	changed := w != r.width
	r.width = w
	return w, changed
}

// End disarms the drag.
func (r *Resizer) End() Transition {
	return r.release()
}

// SetDisabled enables or disables resizing. Disabling during a drag ends
// it.
func (r *Resizer) SetDisabled(disabled bool) Transition {
	r.cfg.Disabled = disabled
	if disabled {
		return r.release()
	}
	return TransitionNone
}

// SetBounds replaces min, max and default, keeping the current width when
// it still fits.
func (r *Resizer) SetBounds(min, max, def int) {
	if max < min {
		max = min
	}
	r.cfg.Min, r.cfg.Max, r.cfg.Default = min, max, def
	r.width = r.clamp(r.width)
}

// Reset returns to the default width.
func (r *Resizer) Reset() {
	r.width = r.clamp(r.cfg.Default)
}

// Close tears the resizer down. Later Begin calls are inert.
func (r *Resizer) Close() Transition {
	r.closed = true
	return r.release()
}

func (r *Resizer) release() Transition {
	if !r.dragging {
		return TransitionNone
	}
	r.dragging = false
	return TransitionDetach
}
