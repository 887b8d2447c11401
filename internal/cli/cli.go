// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for statescope.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/config"
	"github.com/jeranaias/statescope/internal/logging"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStates
	CmdPolicies
	CmdPolicy
	CmdTrends
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:      "tui",
	CmdAsk:      "ask",
	CmdChat:     "chat",
	CmdStates:   "states",
	CmdPolicies: "policies",
	CmdPolicy:   "policy",
	CmdTrends:   "trends",
	CmdStatus:   "status",
	CmdConfig:   "config",
	CmdVersion:  "version",
	CmdHelp:     "help",
}

// String returns the command name as typed.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool
	Quiet   bool
	Verbose bool
	APIURL  string

	// Command-specific
	Query      string
	State      string
	Topic      string
	Type       string
	Subcommand string
	ConfigKey  string

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `statescope - AI education policy across the 50 states

Usage:
  statescope                         Start the dashboard (default)
  statescope tui                     Start the dashboard
  statescope ask "question"          Ask a single question
      --state CODE                   Ask about one state
  statescope chat                    Interactive multi-conversation chat
  statescope states                  List states and their policy status
  statescope policies CODE           List the policies of a state
  statescope policy ID               Show one policy
  statescope trends [KIND]           Show an aggregate: timeline, topics, status, level
      --state CODE                   Filter by state (timeline, topics)
      --topic ID|NAME                Filter by topic (timeline)
      --type TYPE                    Filter by bill, guidance or executive_order
  statescope status, s               Check the API
  statescope config [show|path|init|get KEY|keys]
                                     Configuration
  statescope version                 Show version
  statescope help                    Show this help

Global flags:
  --json                             Machine-readable output
  --api-url URL                      Override api.base_url for this run
  -q, --quiet                        Less output
  -v, --verbose                      Debug logging to the log file

Chat commands:
  /new                               Start a conversation
  /list                              List conversations
  /switch N                          Switch to conversation N
  /delete N                          Delete conversation N
  /clear                             Clear the screen
  /help                              Show chat commands
  /quit                              Leave

Environment:
  STATESCOPE_API_URL                 API root (default http://localhost:5001/api)
  STATESCOPE_THEME                   auto, dark or light
  STATESCOPE_NO_MOUSE                Disable mouse support in the dashboard
  NO_COLOR                           Disable colored output
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "statescope %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", BuildDate)
	fmt.Fprintf(w, "  go:     %s\n", runtime.Version())
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	first := remaining[0]
	cmd := strings.ToLower(first)
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "ask":
		parseAskArgs(&parsed, remaining)
		return CmdAsk, parsed

	case "chat":
		return CmdChat, parsed

	case "states":
		return CmdStates, parsed

	case "policies":
		p := NewArgParser(remaining)
		parsed.State = strings.ToUpper(p.Subcommand())
		return CmdPolicies, parsed

	case "policy":
		p := NewArgParser(remaining)
		parsed.Subcommand = p.Subcommand()
		return CmdPolicy, parsed

	case "trends", "trend":
		p := NewArgParser(remaining)
		parsed.Subcommand = strings.ToLower(p.Subcommand())
		parsed.State = strings.ToUpper(p.Flag("state"))
		parsed.Topic = p.Flag("topic")
		parsed.Type = strings.ToLower(p.Flag("type"))
		return CmdTrends, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "config":
		p := NewArgParser(remaining)
		parsed.Subcommand = strings.ToLower(p.Subcommand())
		parsed.ConfigKey = p.Positional(1)
		return CmdConfig, parsed

	case "version", "-v", "--version":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		// A bare question is a one-shot ask.
		parseAskArgs(&parsed, append([]string{first}, remaining...))
		return CmdAsk, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--json":
			parsed.JSON = true
		case arg == "-q" || arg == "--quiet":
			parsed.Quiet = true
		case arg == "--verbose":
			parsed.Verbose = true
		case arg == "-v" && len(remaining) > 0:
			// Alone, -v is the version command.
			parsed.Verbose = true
		case arg == "--api-url" && i+1 < len(args):
			i++
			parsed.APIURL = args[i]
		case strings.HasPrefix(arg, "--api-url="):
			parsed.APIURL = strings.TrimPrefix(arg, "--api-url=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--state" && i+1 < len(remaining):
			i++
			args.State = strings.ToUpper(remaining[i])
		case strings.HasPrefix(arg, "--state="):
			args.State = strings.ToUpper(strings.TrimPrefix(arg, "--state="))
		case strings.HasPrefix(arg, "-") && arg != "-":
			// Unknown flags are ignored rather than sent as question text.
		default:
			query = append(query, arg)
		}
	}
	args.Query = strings.Join(query, " ")
}

// =============================================================================
// DISPATCH
// =============================================================================

// Env is what a command runs against.
type Env struct {
	Out    io.Writer
	Err    io.Writer
	Config *config.Config
	Client *api.Client
	Log    *logging.Logger

	// TTY reports whether Out is an interactive terminal.
	TTY bool
}

// NewEnv builds the environment for the real process: stdout, stderr, the
// loaded config and an API client.
func NewEnv(cfg *config.Config, log *logging.Logger, args Args) *Env {
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	return &Env{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Config: cfg,
		Client: api.NewClientWithConfig(api.ConfigFrom(cfg, log)),
		Log:    log,
		TTY:    IsStdoutTTY(),
	}
}

// Run executes a non-TUI command.
func Run(ctx context.Context, env *Env, cmd Command, args Args) error {
	switch cmd {
	case CmdAsk:
		return HandleAsk(ctx, env, args)
	case CmdChat:
		return HandleChat(ctx, env, args)
	case CmdStates:
		return HandleStates(ctx, env, args)
	case CmdPolicies:
		return HandlePolicies(ctx, env, args)
	case CmdPolicy:
		return HandlePolicy(ctx, env, args)
	case CmdTrends:
		return HandleTrends(ctx, env, args)
	case CmdStatus:
		return HandleStatus(ctx, env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdVersion:
		return HandleVersion(env, args)
	case CmdHelp:
		PrintUsage(env.Out)
		return nil
	default:
		return fmt.Errorf("command %s cannot run outside the dashboard", cmd)
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(env.Out)
	}
	PrintVersion(env.Out)
	return nil
}
