// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING TESTS
// =============================================================================

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "Hello", 30, "Hello"},
		{"exact", "123456789012345678901234567890", 30, "123456789012345678901234567890"},
		{"long", "What is California doing about AI in schools", 30, "What is California doing about..."},
		{"unicode", "héllo wörld", 5, "héllo..."},
		{"zero", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Abbreviate(tt.in, tt.n); got != tt.want {
				t.Errorf("Abbreviate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("California", 20); got != "California" {
		t.Errorf("TruncateWidth fits = %q", got)
	}
	got := TruncateWidth("Massachusetts", 8)
	if StringWidth(got) > 8 {
		t.Errorf("TruncateWidth width = %d, want <= 8", StringWidth(got))
	}
	if got != "Massa..." {
		t.Errorf("TruncateWidth = %q, want %q", got, "Massa...")
	}
	if got := TruncateWidth("abc", 0); got != "" {
		t.Errorf("TruncateWidth zero = %q", got)
	}
}

func TestPadWidth(t *testing.T) {
	if got := PadWidth("CA", 4); got != "CA  " {
		t.Errorf("PadWidth = %q, want %q", got, "CA  ")
	}
	if got := CenterWidth("CA", 6); got != "  CA  " {
		t.Errorf("CenterWidth = %q, want %q", got, "  CA  ")
	}
}

func TestPlural(t *testing.T) {
	if Plural(1, "policy", "policies") != "policy" {
		t.Error("Plural(1) should be singular")
	}
	if Plural(0, "policy", "policies") != "policies" {
		t.Error("Plural(0) should be plural")
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	if err := AtomicWriteFile(path, []byte("first"), 0600); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("second"), 0600); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want %q", content, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
