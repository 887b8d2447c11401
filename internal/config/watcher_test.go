// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	load := func() (*Config, error) { return LoadFromPath(path) }
	w, err := NewWatcherFor(dir, load, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcherFor: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-w.Updates():
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.UI.Theme != "light" {
			t.Errorf("Theme = %q, want light", r.Config.UI.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	load := func() (*Config, error) {
		calls++
		return Default(), nil
	}
	w, err := NewWatcherFor(dir, load, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcherFor: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "chat_history"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Updates():
		t.Fatal("unexpected reload for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("Updates should be closed after Close")
	}
	if calls != 0 {
		t.Errorf("load called %d times", calls)
	}
}
