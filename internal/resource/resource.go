// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resource tracks the {data, loading, error} state of a fetch that
// is re-issued whenever its key changes.
//
// Every Start hands out a Ticket carrying a generation number. Complete
// only applies a result whose ticket is still the newest one, so a slow
// response for a superseded key can never overwrite fresher state. Start
// also cancels the context of the request it supersedes.
package resource

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Ticket identifies one issued request.
type Ticket struct {
	Gen uint64
	Key string
	Ctx context.Context
}

// Resource holds the latest applied result of a keyed fetch.
// It is not safe for concurrent use; drive it from the UI event loop.
type Resource[T any] struct {
	Data    T
	Loading bool
	Err     error

	key    string
	gen    uint64
	loaded bool
	cancel context.CancelFunc
}

// New returns an idle resource.
func New[T any]() *Resource[T] {
	return &Resource[T]{}
}

// Key returns the key of the newest request.
func (r *Resource[T]) Key() string {
	return r.key
}

// Loaded reports whether any result has been applied since the last Reset.
func (r *Resource[T]) Loaded() bool {
	return r.loaded
}

// Start begins a request for key. Previous data stays visible until the new
// result arrives; the previous error is cleared.
func (r *Resource[T]) Start(key string) Ticket {
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.gen++
	r.key = key
	r.Loading = true
	r.Err = nil
	return Ticket{Gen: r.gen, Key: key, Ctx: ctx}
}

// Current reports whether t belongs to the newest request.
func (r *Resource[T]) Current(t Ticket) bool {
	return t.Gen == r.gen
}

// Complete applies a result. It returns false and changes nothing when t
// was superseded by a later Start or Reset.
func (r *Resource[T]) Complete(t Ticket, data T, err error) bool {
	if !r.Current(t) {
		return false
	}
	r.Loading = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if err != nil {
		r.Err = err
		return true
	}
	r.Data = data
	r.Err = nil
	r.loaded = true
	return true
}

// Reset abandons any in-flight request and clears all state.
func (r *Resource[T]) Reset() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	var zero T
	r.gen++
	r.key = ""
	r.Data = zero
	r.Loading = false
	r.Err = nil
	r.loaded = false
}

// =============================================================================
// BUBBLE TEA GLUE
// =============================================================================

// Result is the message produced by Fetch.
type Result[T any] struct {
	Name   string
	Ticket Ticket
	Data   T
	Err    error
}

// Fetch runs fn off the event loop and delivers its outcome as a Result.
func Fetch[T any](name string, t Ticket, fn func(ctx context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		data, err := fn(t.Ctx)
		return Result[T]{Name: name, Ticket: t, Data: data, Err: err}
	}
}

// Apply feeds a Result into r, returning whether it was current.
func (r *Resource[T]) Apply(res Result[T]) bool {
	return r.Complete(res.Ticket, res.Data, res.Err)
}
