// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// browse.go - Read-only data commands.
//
// Usage:
//
//	statescope states [--json]
//	statescope policies CODE [--json]
//	statescope policy ID [--json]
//	statescope trends [timeline|topics|status|level] [--state CODE] [--topic ID|NAME] [--type TYPE]

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/components"
	"github.com/jeranaias/statescope/internal/ui/styles"
	"github.com/jeranaias/statescope/internal/util"
)

// =============================================================================
// STATES
// =============================================================================

// HandleStates handles the "states" command.
func HandleStates(ctx context.Context, env *Env, args Args) error {
	if args.JSON {
		return outputJSON(env.Out, "states", func() (interface{}, error) {
			states, err := env.Client.States(ctx)
			if err != nil {
				return nil, err
			}
			return model.SortStatesByCode(states), nil
		})
	}

	states, err := env.Client.States(ctx)
	if err != nil {
		return fmt.Errorf("loading states: %w", err)
	}
	states = model.SortStatesByCode(states)

	w := env.Out
	if !args.Quiet {
		fmt.Fprintln(w, TitleStyle.Render("States"))
		fmt.Fprintln(w, RenderSeparator(48))
	}
	for _, s := range states {
		fmt.Fprintf(w, "%-3s %s %s %s\n",
			s.Code,
			ValueStyle.Render(util.PadWidth(s.Name, 22)),
			padCell(RenderStateStatus(s.Status()), 20),
			DimStyle.Render(strconv.Itoa(s.PolicyCount)))
	}
	if !args.Quiet {
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("%d states, %d with policies",
			len(states), len(model.StatesWithPolicies(states)))))
	}
	return nil
}

// =============================================================================
// POLICIES
// =============================================================================

// HandlePolicies handles the "policies" command.
func HandlePolicies(ctx context.Context, env *Env, args Args) error {
	if args.State == "" {
		return usageErr("policies", "a state code is required", "statescope policies CA")
	}

	fetch := func() (interface{}, error) {
		return env.Client.StatePolicies(ctx, args.State)
	}
	if args.JSON {
		return outputJSON(env.Out, "policies", fetch)
	}

	policies, err := env.Client.StatePolicies(ctx, args.State)
	if err != nil {
		return fmt.Errorf("loading %s policies: %w", args.State, err)
	}

	w := env.Out
	if !args.Quiet {
		fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s Policies (%d)", args.State, len(policies))))
	}
	if len(policies) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No policies recorded for this state."))
		return nil
	}
	printPolicies(env, policies)
	return nil
}

// printPolicies renders cards on a terminal and one line per policy otherwise.
func printPolicies(env *Env, policies []model.Policy) {
	if env.TTY {
		theme := styles.NewTheme(env.Config.UI.Theme)
		for _, p := range policies {
			fmt.Fprintln(env.Out, components.PolicyCard(theme, p, renderWidth()))
		}
		return
	}
	for _, p := range policies {
		fmt.Fprintf(env.Out, "%d\t%s\t%s\t%s\n", p.ID, p.Status(), p.Title, components.PolicyMetaLine(p))
	}
}

// HandlePolicy handles the "policy" command.
func HandlePolicy(ctx context.Context, env *Env, args Args) error {
	if args.Subcommand == "" {
		return usageErr("policy", "a policy id is required", "statescope policy 12")
	}
	id, err := ParsePositiveInt(args.Subcommand, "policy id")
	if err != nil {
		return usageErr("policy", err.Error(), "statescope policy 12")
	}

	if args.JSON {
		return outputJSON(env.Out, "policy", func() (interface{}, error) {
			return env.Client.Policy(ctx, id)
		})
	}

	p, err := env.Client.Policy(ctx, id)
	if err != nil {
		return fmt.Errorf("loading policy %d: %w", id, err)
	}

	w := env.Out
	fmt.Fprintln(w, TitleStyle.Render(p.Title))
	fmt.Fprintln(w, RenderSeparator(renderWidth()))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%s%s\n", RenderLabel(label), ValueStyle.Render(value))
		}
	}
	field("Status", string(p.Status()))
	field("Type", model.PolicyTypeLabel(p.PolicyType))
	field("Level", p.Level)
	field("Bill", p.BillNumber)
	field("Sponsor", p.Sponsor)
	field("Introduced", p.DateIntroduced)
	field("Enacted", p.DateEnacted)
	field("Source", p.SourceURL)

	text := p.SummaryText
	if text == "" {
		text = p.Description
	}
	if text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderMarkdown(env, text))
	}
	return nil
}

// =============================================================================
// TRENDS
// =============================================================================

// HandleTrends handles the "trends" command.
func HandleTrends(ctx context.Context, env *Env, args Args) error {
	kind := api.TrendKind(args.Subcommand)
	if kind == "" {
		kind = api.TrendTimeline
	}
	switch kind {
	case api.TrendTimeline, api.TrendTopics, api.TrendStatus, api.TrendLevel:
	default:
		return usageErr("trends", fmt.Sprintf("unknown trend %q (timeline, topics, status, level)", kind), "statescope trends topics")
	}

	filters, err := trendFilters(ctx, env, args)
	if err != nil {
		return err
	}
	if !filters.IsZero() && (kind == api.TrendStatus || kind == api.TrendLevel) {
		return usageErr("trends", fmt.Sprintf("the %s trend does not take filters", kind), "statescope trends "+string(kind))
	}

	if args.JSON {
		return outputJSON(env.Out, "trends", func() (interface{}, error) {
			return fetchTrend(ctx, env.Client, kind, filters)
		})
	}

	data, err := fetchTrend(ctx, env.Client, kind, filters)
	if err != nil {
		return fmt.Errorf("loading %s trend: %w", kind, err)
	}

	var (
		title     string
		bars      []model.Bar
		highlight bool
	)
	switch rows := data.(type) {
	case []model.TimelineRow:
		title, bars = "Policies introduced per year", model.TimelineBars(rows)
	case []model.TopicCount:
		title, bars, highlight = "Policies by topic", model.TopicBars(rows), true
	case []model.StatusCount:
		title = "Policies by status"
		for _, r := range rows {
			bars = append(bars, model.Bar{Label: r.Status, Count: r.Count})
		}
	case []model.LevelCount:
		title = "Policies by level"
		for _, r := range rows {
			bars = append(bars, model.Bar{Label: r.Level, Count: r.Count})
		}
	}

	if !env.TTY {
		for _, b := range bars {
			fmt.Fprintf(env.Out, "%s\t%d\n", b.Label, b.Count)
		}
		return nil
	}
	chart := components.NewBarChart(styles.NewTheme(env.Config.UI.Theme), title, highlight)
	fmt.Fprintln(env.Out, chart.View(bars, false, renderWidth()))
	return nil
}

// trendFilters validates the filter flags. A non-numeric --topic is
// resolved by name against the topic list.
func trendFilters(ctx context.Context, env *Env, args Args) (api.TrendFilters, error) {
	f := api.TrendFilters{State: args.State, PolicyType: args.Type}

	if f.PolicyType != "" && !validPolicyType(f.PolicyType) {
		return f, usageErr("trends", fmt.Sprintf("unknown policy type %q (%s)", f.PolicyType,
			strings.Join(model.PolicyTypes, ", ")), "statescope trends --type bill")
	}

	if args.Topic == "" {
		return f, nil
	}
	if _, err := strconv.Atoi(args.Topic); err == nil {
		f.TopicID = args.Topic
		return f, nil
	}
	topics, err := env.Client.Topics(ctx)
	if err != nil {
		return f, fmt.Errorf("loading topics: %w", err)
	}
	for _, t := range topics {
		if strings.EqualFold(t.Name, args.Topic) {
			f.TopicID = strconv.Itoa(t.ID)
			return f, nil
		}
	}
	return f, &NotFoundError{Resource: "topic", ID: args.Topic}
}

func validPolicyType(t string) bool {
	for _, pt := range model.PolicyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

func fetchTrend(ctx context.Context, c *api.Client, kind api.TrendKind, f api.TrendFilters) (interface{}, error) {
	switch kind {
	case api.TrendTopics:
		return c.TopicTrends(ctx, f)
	case api.TrendStatus:
		return c.StatusTrends(ctx)
	case api.TrendLevel:
		return c.LevelTrends(ctx)
	default:
		return c.Timeline(ctx, f)
	}
}
