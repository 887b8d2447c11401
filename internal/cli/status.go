// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HandleStatus handles the "status" command. It reports whether the policy
// API answers its health check and how long it took.
func HandleStatus(ctx context.Context, env *Env, args Args) error {
	start := time.Now()
	h, err := env.Client.Health(ctx)
	latency := time.Since(start)

	data := StatusData{
		BaseURL:   env.Client.BaseURL(),
		Reachable: err == nil,
		LatencyMs: latency.Milliseconds(),
	}
	if err != nil {
		data.Error = err.Error()
		env.Log.Debug("health check failed", zap.String("base_url", data.BaseURL), zap.Error(err))
	} else {
		data.Status = h.Status
		data.PolicyCount = h.PolicyCount
	}

	if args.JSON {
		if perr := NewJSONResponse("status", data).Print(env.Out); perr != nil {
			return perr
		}
		if err != nil {
			return fmt.Errorf("api unreachable: %w", err)
		}
		return nil
	}

	w := env.Out
	if !args.Quiet {
		fmt.Fprintln(w, TitleStyle.Render("StateScope Status"))
		fmt.Fprintln(w, RenderSeparator(41))
	}
	fmt.Fprintf(w, "%s%s\n", RenderLabel("API"), ValueStyle.Render(data.BaseURL))
	if err != nil {
		fmt.Fprintf(w, "%s%s\n", RenderLabel("Health"), ErrorStyle.Render("unreachable"))
		return fmt.Errorf("api unreachable: %w", err)
	}
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Health"),
		SuccessStyle.Render(fmt.Sprintf("%s · %d policies", data.Status, data.PolicyCount)))
	fmt.Fprintf(w, "%s%s\n", RenderLabel("Latency"), DimStyle.Render(fmt.Sprintf("%dms", data.LatencyMs)))
	return nil
}
