// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"strings"
	"testing"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"timeline", "--state", "CA"},
			wantSub: "timeline",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("state") != "CA" {
					t.Errorf("Flag(state) = %q, want %q", p.Flag("state"), "CA")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"topics", "--type=executive_order"},
			wantSub: "topics",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("type") != "executive_order" {
					t.Errorf("Flag(type) = %q, want %q", p.Flag("type"), "executive_order")
				}
			},
		},
		{
			name:    "boolean flag",
			args:    []string{"show", "--json"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
			},
		},
		{
			name:    "explicit boolean value",
			args:    []string{"show", "--json=false"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be false")
				}
				if !p.HasFlag("json") {
					t.Error("HasFlag(json) should be true")
				}
			},
		},
		{
			name:    "multiple positional args",
			args:    []string{"get", "api", "base_url"},
			wantSub: "get",
			validate: func(t *testing.T, p *ArgParser) {
				if p.PositionalCount() != 3 {
					t.Errorf("PositionalCount() = %d, want 3", p.PositionalCount())
				}
				joined := strings.Join(p.PositionalFrom(1), " ")
				if joined != "api base_url" {
					t.Errorf("PositionalFrom(1) joined = %q, want %q", joined, "api base_url")
				}
			},
		},
		{
			name:    "mixed flags and positional",
			args:    []string{"timeline", "--topic", "3", "extra"},
			wantSub: "timeline",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("topic") != "3" {
					t.Errorf("Flag(topic) = %q, want %q", p.Flag("topic"), "3")
				}
				if p.Positional(1) != "extra" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "extra")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args)
			if parser.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", parser.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, parser)
			}
		})
	}
}

func TestArgParser_HasFlag(t *testing.T) {
	parser := NewArgParser([]string{"cmd", "--verbose", "--state", "TX"})

	if !parser.HasFlag("verbose") {
		t.Error("HasFlag(verbose) should be true")
	}
	if !parser.HasFlag("--state") {
		t.Error("HasFlag(--state) should be true")
	}
	if parser.HasFlag("nonexistent") {
		t.Error("HasFlag(nonexistent) should be false")
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"12", 12, false},
		{"1", 1, false},
		{"", 0, true},
		{"0", 0, true},
		{"-4", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePositiveInt(tt.in, "policy id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePositiveInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePositiveInt(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParse_Integration(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no command starts the dashboard",
			args:        []string{"statescope"},
			wantCommand: CmdTUI,
		},
		{
			name:        "ask command",
			args:        []string{"statescope", "ask", "Which states require AI literacy?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Query != "Which states require AI literacy?" {
					t.Errorf("Query = %q", a.Query)
				}
			},
		},
		{
			name:        "ask with state flag",
			args:        []string{"statescope", "ask", "--state", "ca", "Is", "there", "a", "rule?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.State != "CA" {
					t.Errorf("State = %q, want CA", a.State)
				}
				if a.Query != "Is there a rule?" {
					t.Errorf("Query = %q, want %q", a.Query, "Is there a rule?")
				}
			},
		},
		{
			name:        "unknown ask flags are not question text",
			args:        []string{"statescope", "ask", "--model", "x", "hello"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Query != "x hello" {
					t.Errorf("Query = %q, want %q", a.Query, "x hello")
				}
			},
		},
		{
			name:        "bare question is an ask",
			args:        []string{"statescope", "What", "changed?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Query != "What changed?" {
					t.Errorf("Query = %q", a.Query)
				}
			},
		},
		{
			name:        "bare question keeps its case",
			args:        []string{"statescope", "Status of Texas bills?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Query != "Status of Texas bills?" {
					t.Errorf("Query = %q, want %q", a.Query, "Status of Texas bills?")
				}
			},
		},
		{
			name:        "ask with quiet flag",
			args:        []string{"statescope", "ask", "-q", "Question"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if !a.Quiet {
					t.Error("Quiet should be true")
				}
			},
		},
		{
			name:        "chat command",
			args:        []string{"statescope", "chat"},
			wantCommand: CmdChat,
		},
		{
			name:        "policies uppercases the state",
			args:        []string{"statescope", "policies", "tx", "--json"},
			wantCommand: CmdPolicies,
			validate: func(t *testing.T, a Args) {
				if a.State != "TX" || !a.JSON {
					t.Errorf("State = %q, JSON = %v", a.State, a.JSON)
				}
			},
		},
		{
			name:        "policy id",
			args:        []string{"statescope", "policy", "12"},
			wantCommand: CmdPolicy,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "12" {
					t.Errorf("Subcommand = %q, want 12", a.Subcommand)
				}
			},
		},
		{
			name:        "trends with filters",
			args:        []string{"statescope", "trends", "Topics", "--state", "ny", "--topic", "3", "--type", "BILL"},
			wantCommand: CmdTrends,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "topics" || a.State != "NY" || a.Topic != "3" || a.Type != "bill" {
					t.Errorf("got %+v", a)
				}
			},
		},
		{
			name:        "status alias",
			args:        []string{"statescope", "s"},
			wantCommand: CmdStatus,
		},
		{
			name:        "config get",
			args:        []string{"statescope", "config", "get", "ui.theme"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "get" || a.ConfigKey != "ui.theme" {
					t.Errorf("Subcommand = %q, ConfigKey = %q", a.Subcommand, a.ConfigKey)
				}
			},
		},
		{
			name:        "-v alone is version",
			args:        []string{"statescope", "-v"},
			wantCommand: CmdVersion,
		},
		{
			name:        "-v after a command is verbose",
			args:        []string{"statescope", "status", "-v"},
			wantCommand: CmdStatus,
			validate: func(t *testing.T, a Args) {
				if !a.Verbose {
					t.Error("Verbose should be true")
				}
			},
		},
		{
			name:        "api url override",
			args:        []string{"statescope", "--api-url=http://example.test/api", "states"},
			wantCommand: CmdStates,
			validate: func(t *testing.T, a Args) {
				if a.APIURL != "http://example.test/api" {
					t.Errorf("APIURL = %q", a.APIURL)
				}
			},
		},
		{
			name:        "help",
			args:        []string{"statescope", "--help"},
			wantCommand: CmdHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cmd, args := Parse()
			if cmd != tt.wantCommand {
				t.Errorf("Parse() command = %v, want %v", cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	if CmdTUI.String() != "tui" {
		t.Errorf("CmdTUI.String() = %q", CmdTUI.String())
	}
	if Command(999).String() != "unknown" {
		t.Errorf("Command(999).String() = %q", Command(999).String())
	}
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestArgParser_EmptyArgs(t *testing.T) {
	parser := NewArgParser([]string{})
	if parser.Subcommand() != "" {
		t.Errorf("Subcommand() = %q, want empty", parser.Subcommand())
	}
	if parser.PositionalCount() != 0 {
		t.Errorf("PositionalCount() = %d, want 0", parser.PositionalCount())
	}
	if parser.PositionalFrom(3) != nil {
		t.Error("PositionalFrom past the end should be nil")
	}
}

func TestArgParser_OnlyFlags(t *testing.T) {
	parser := NewArgParser([]string{"--verbose", "--json"})
	if parser.Subcommand() != "" {
		t.Errorf("Subcommand() = %q, want empty", parser.Subcommand())
	}
	if !parser.BoolFlag("verbose") {
		t.Error("BoolFlag(verbose) should be true")
	}
	if !parser.BoolFlag("json") {
		t.Error("BoolFlag(json) should be true")
	}
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	parser := NewArgParser([]string{"cmd", "--present", "value"})

	if parser.FlagOrDefault("present", "default") != "value" {
		t.Error("FlagOrDefault should return actual value when present")
	}
	if parser.FlagOrDefault("missing", "default") != "default" {
		t.Error("FlagOrDefault should return default when missing")
	}
}

// =============================================================================
// BENCHMARKS
// =============================================================================

func BenchmarkArgParser_Simple(b *testing.B) {
	args := []string{"trends", "timeline"}
	for i := 0; i < b.N; i++ {
		NewArgParser(args)
	}
}

func BenchmarkArgParser_Complex(b *testing.B) {
	args := []string{"trends", "topics", "--state", "CA", "--topic=3", "--type", "bill", "--json"}
	for i := 0; i < b.N; i++ {
		NewArgParser(args)
	}
}
