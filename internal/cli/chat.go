// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - The interactive "chat" command.
//
// A line-editing REPL over the same multi-conversation session the
// dashboard sidebar uses.
//
// Commands:
//
//	/new                Start a conversation
//	/list, /l           List conversations
//	/switch N, /s N     Switch to conversation N
//	/delete N, /d N     Delete conversation N
//	/clear, /c          Clear the screen
//	/help, /h, /?       Show commands
//	/quit, /exit, /q    Leave

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/chat"
	"github.com/jeranaias/statescope/internal/config"
)

// =============================================================================
// INPUT WITH HISTORY
// =============================================================================

// lineReader reads one line of input.
type lineReader interface {
	ReadInput(prompt string) (string, error)
	Close()
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file (0600).
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleChat handles the "chat" command.
func HandleChat(ctx context.Context, env *Env, args Args) error {
	in := NewChatCLI()
	defer in.Close()
	return runChat(ctx, env, args, in)
}

// chatREPL is the state of one chat command.
type chatREPL struct {
	env     *Env
	session *chat.Session
	quiet   bool
}

func runChat(ctx context.Context, env *Env, args Args, in lineReader) error {
	r := &chatREPL{env: env, session: chat.NewSession(), quiet: args.Quiet}
	if !r.quiet {
		r.printWelcome()
	}

	for {
		line, err := in.ReadInput(r.prompt())
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			fmt.Fprintln(env.Out)
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(env.Out)
			return nil
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}

		quit, err := r.handle(ctx, line)
		if err != nil {
			DisplayError(env.Err, err)
		}
		if quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (r *chatREPL) prompt() string {
	return fmt.Sprintf("[%d] you> ", r.session.ActiveID())
}

// handle processes one input line and reports whether to quit.
func (r *chatREPL) handle(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.HasPrefix(line, "/") {
		return r.command(line)
	}
	return false, r.send(ctx, line)
}

func (r *chatREPL) send(ctx context.Context, question string) error {
	if !r.quiet {
		fmt.Fprintln(r.env.Out, DimStyle.Render("thinking..."))
	}
	err := r.session.Send(ctx, r.env.Client, question)
	if err != nil {
		r.env.Log.Warn("ask failed", zap.Int("conversation", r.session.ActiveID()), zap.Error(err))
	}

	// The fallback text is shown even on failure.
	if msg, ok := r.session.Active().LastAssistant(); ok {
		fmt.Fprintln(r.env.Out, renderMarkdown(r.env, msg.Content))
		printSources(r.env.Out, msg.Sources)
		fmt.Fprintln(r.env.Out)
	}
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	return nil
}

func (r *chatREPL) command(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, rest := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help", "/h", "/?":
		r.printHelp()

	case "/new", "/n":
		id := r.session.NewConversation()
		fmt.Fprintf(r.env.Out, "%s conversation %d\n", SuccessStyle.Render("Started"), id)

	case "/list", "/l":
		r.printList()

	case "/switch", "/s":
		id, err := conversationArg(cmd, rest)
		if err != nil {
			return false, err
		}
		if !r.session.Switch(id) {
			return false, &NotFoundError{Resource: "conversation", ID: strconv.Itoa(id)}
		}
		fmt.Fprintf(r.env.Out, "Switched to conversation %d\n", id)

	case "/delete", "/d":
		id, err := conversationArg(cmd, rest)
		if err != nil {
			return false, err
		}
		// Deleting the last conversation replaces it with a fresh one.
		if !r.session.Delete(id) {
			return false, &NotFoundError{Resource: "conversation", ID: strconv.Itoa(id)}
		}
		fmt.Fprintf(r.env.Out, "Deleted conversation %d, now on %d\n", id, r.session.ActiveID())

	case "/clear", "/c":
		fmt.Fprint(r.env.Out, "\033[H\033[2J")

	default:
		return false, usageErr(cmd, "unknown command", "/help")
	}
	return false, nil
}

func conversationArg(cmd string, rest []string) (int, error) {
	if len(rest) == 0 {
		return 0, usageErr(cmd, "a conversation number is required", cmd+" 2")
	}
	id, err := ParsePositiveInt(rest[0], "conversation number")
	if err != nil {
		return 0, usageErr(cmd, err.Error(), cmd+" 2")
	}
	return id, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *chatREPL) printWelcome() {
	w := r.env.Out
	fmt.Fprintln(w, TitleStyle.Render("StateScope chat"))
	fmt.Fprintln(w, DimStyle.Render("Ask about AI education policy across all 50 states. /help for commands."))
	fmt.Fprintln(w, DimStyle.Render("Try: "+chat.Suggestions[0]))
	fmt.Fprintln(w)
}

func (r *chatREPL) printList() {
	w := r.env.Out
	for _, c := range r.session.Conversations() {
		marker := "  "
		if c.ID == r.session.ActiveID() {
			marker = PromptStyle.Render("* ")
		}
		fmt.Fprintf(w, "%s%d  %s %s\n", marker, c.ID, c.Name,
			DimStyle.Render(fmt.Sprintf("(%d messages)", c.Len())))
	}
}

func (r *chatREPL) printHelp() {
	w := r.env.Out
	cmds := []struct{ cmd, desc string }{
		{"/new", "Start a conversation"},
		{"/list, /l", "List conversations"},
		{"/switch N, /s N", "Switch to conversation N"},
		{"/delete N, /d N", "Delete conversation N"},
		{"/clear, /c", "Clear the screen"},
		{"/help, /h", "Show this help"},
		{"/quit, /q", "Leave"},
	}
	fmt.Fprintln(w, SectionStyle.Render("Commands"))
	for _, c := range cmds {
		fmt.Fprintf(w, "  %s %s\n", RenderLabel(c.cmd), c.desc)
	}
}
