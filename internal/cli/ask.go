// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - The one-shot "ask" command.
//
// Usage:
//
//	statescope ask "Which states require AI literacy?"
//	statescope ask --state CA "Is there a disclosure rule?"
//	statescope ask --json "What bills were introduced in 2024?"
//
// Answers are markdown. On a terminal they are rendered with glamour;
// piped output gets the raw markdown.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/chat"
	"github.com/jeranaias/statescope/internal/model"
	chatui "github.com/jeranaias/statescope/internal/ui/chat"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// HandleAsk handles the "ask" command.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	if strings.TrimSpace(args.Query) == "" {
		return usageErr("ask", "a question is required", `statescope ask "Which states require AI literacy?"`)
	}

	thread := chat.NewThread()
	if args.State != "" {
		name, err := resolveStateName(ctx, env, args.State)
		if err != nil {
			return err
		}
		thread = chat.NewStateThread(name)
	}

	p, ok := thread.BeginSend(args.Query)
	if !ok {
		return usageErr("ask", "a question is required", "")
	}

	start := time.Now()
	resp, err := chat.Ask(ctx, env.Client, p.Transmit)
	elapsed := time.Since(start)
	thread.CompleteSend(p, resp, err)
	if err != nil {
		env.Log.Warn("ask failed", zap.String("state", args.State), zap.Error(err))
		if args.JSON {
			_ = NewJSONErrorResponse("ask", err).Print(env.Out)
		}
		return fmt.Errorf("ask: %w", err)
	}

	if args.JSON {
		return NewJSONResponse("ask", AskData{
			Question:   p.Transmit,
			Answer:     resp.Answer,
			Sources:    resp.Sources,
			Model:      resp.Model,
			DurationMs: elapsed.Milliseconds(),
		}).Print(env.Out)
	}

	printAnswer(env, resp)
	if !args.Quiet {
		fmt.Fprintln(env.Out, DimStyle.Render(fmt.Sprintf("answered in %.1fs", elapsed.Seconds())))
	}
	return nil
}

// resolveStateName turns a postal code into the state name the backend
// expects in the question prefix.
func resolveStateName(ctx context.Context, env *Env, code string) (string, error) {
	states, err := env.Client.States(ctx)
	if err != nil {
		return "", fmt.Errorf("loading states: %w", err)
	}
	s, ok := model.FindState(states, strings.ToUpper(code))
	if !ok {
		return "", &NotFoundError{Resource: "state", ID: code}
	}
	return s.Name, nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// printAnswer writes an answer and its sources.
func printAnswer(env *Env, resp *model.AskResponse) {
	fmt.Fprintln(env.Out, renderMarkdown(env, resp.Answer))
	printSources(env.Out, resp.Sources)
}

func printSources(w io.Writer, sources []model.Source) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w, SectionStyle.Render("Sources"))
	for _, s := range sources {
		fmt.Fprintf(w, "  • %s\n", chatui.SourceLine(s))
		if s.URL != "" {
			fmt.Fprintf(w, "    %s\n", DimStyle.Render(s.URL))
		}
	}
}

// renderMarkdown renders content for a terminal, or returns it unchanged
// when output is not a terminal or glamour fails.
func renderMarkdown(env *Env, content string) string {
	if !env.TTY || !ColorsEnabled() {
		return content
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(renderWidth())}
	switch env.Config.UI.Theme {
	case styles.ModeDark, styles.ModeLight:
		opts = append(opts, glamour.WithStandardStyle(env.Config.UI.Theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
