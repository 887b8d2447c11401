// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resource

import (
	"context"
	"errors"
	"testing"
)

func TestResource_AppliesCurrentResult(t *testing.T) {
	r := New[[]string]()
	ticket := r.Start("CA")

	if !r.Loading {
		t.Fatal("Start should set Loading")
	}
	if !r.Complete(ticket, []string{"AB 2876"}, nil) {
		t.Fatal("current result should apply")
	}
	if r.Loading || r.Err != nil || len(r.Data) != 1 || !r.Loaded() {
		t.Errorf("after complete: loading=%v err=%v data=%v", r.Loading, r.Err, r.Data)
	}
}

func TestResource_DropsStaleResult(t *testing.T) {
	r := New[string]()
	slow := r.Start("CA")
	fast := r.Start("TX")

	if !r.Complete(fast, "texas", nil) {
		t.Fatal("newest result should apply")
	}
	if r.Complete(slow, "california", nil) {
		t.Error("superseded result must be dropped")
	}
	if r.Data != "texas" || r.Key() != "TX" {
		t.Errorf("Data = %q, Key = %q", r.Data, r.Key())
	}
}

func TestResource_StaleResultDoesNotClearLoading(t *testing.T) {
	r := New[int]()
	old := r.Start("a")
	r.Start("b")

	r.Complete(old, 1, errors.New("boom"))
	if !r.Loading {
		t.Error("a stale completion must not clear Loading of the newer request")
	}
	if r.Err != nil {
		t.Error("a stale error must not surface")
	}
}

func TestResource_StartCancelsSuperseded(t *testing.T) {
	r := New[int]()
	first := r.Start("a")
	r.Start("b")

	select {
	case <-first.Ctx.Done():
	default:
		t.Error("superseded request context should be canceled")
	}
	if !errors.Is(first.Ctx.Err(), context.Canceled) {
		t.Errorf("ctx err = %v", first.Ctx.Err())
	}
}

func TestResource_ErrorKeepsPreviousData(t *testing.T) {
	r := New[string]()
	r.Complete(r.Start("a"), "first", nil)

	fail := errors.New("API error: 500")
	r.Complete(r.Start("b"), "", fail)

	if r.Err != fail {
		t.Errorf("Err = %v", r.Err)
	}
	if r.Data != "first" {
		t.Errorf("Data = %q, want previous data kept", r.Data)
	}
	if r.Loading {
		t.Error("Loading should be false after an error")
	}
}

func TestResource_Reset(t *testing.T) {
	r := New[string]()
	inflight := r.Start("CA")
	r.Reset()

	if r.Complete(inflight, "late", nil) {
		t.Error("result after Reset must be dropped")
	}
	if r.Loading || r.Data != "" || r.Key() != "" || r.Loaded() {
		t.Error("Reset should clear all state")
	}
}

func TestFetch_DeliversResult(t *testing.T) {
	r := New[int]()
	ticket := r.Start("k")

	cmd := Fetch("count", ticket, func(ctx context.Context) (int, error) { return 42, nil })
	msg := cmd()

	res, ok := msg.(Result[int])
	if !ok {
		t.Fatalf("msg type = %T", msg)
	}
	if res.Name != "count" {
		t.Errorf("Name = %q", res.Name)
	}
	if !r.Apply(res) || r.Data != 42 {
		t.Errorf("Apply failed, Data = %d", r.Data)
	}
}
