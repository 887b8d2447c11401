// statescope - AI education policy across the 50 states, in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/cli"
	"github.com/jeranaias/statescope/internal/config"
	"github.com/jeranaias/statescope/internal/logging"
	"github.com/jeranaias/statescope/internal/ui/dashboard"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	config.SetGlobal(cfg)

	log := openLogger(cfg, args)
	defer log.Close()
	logging.SetGlobal(log)

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg, log, args); err != nil {
			log.Error("dashboard exited", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error running statescope: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.NewEnv(cfg, log, args)
	if err := cli.Run(ctx, env, cmd, args); err != nil {
		log.Debug("command failed", zap.String("command", cmd.String()), zap.Error(err))
		cli.DisplayError(os.Stderr, err)
		stop()
		log.Close()
		os.Exit(cli.GetExitCode(err))
	}
}

// openLogger opens the file logger, falling back to a no-op logger when the
// file cannot be opened.
func openLogger(cfg *config.Config, args cli.Args) *logging.Logger {
	level := cfg.Log.Level
	if args.Verbose {
		level = "debug"
	}
	path, err := cfg.LogPath()
	if err != nil {
		return logging.NewNop()
	}
	log, err := logging.New(level, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (logging disabled)\n", err)
		return logging.NewNop()
	}
	return log
}

// runTUI starts the dashboard and blocks until it exits.
func runTUI(cfg *config.Config, log *logging.Logger, args cli.Args) error {
	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
	}
	if err := cli.RequiresTTY("the dashboard"); err != nil {
		return err
	}

	opts := dashboard.Options{
		Config: cfg,
		Source: api.NewClientWithConfig(api.ConfigFrom(cfg, log)),
		Logger: log,
	}

	// Live reload is optional; the dashboard runs without it.
	w, err := config.NewWatcher()
	if err != nil {
		log.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer w.Close()
		opts.Reloads = w.Updates()
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}

	log.Info("dashboard starting", zap.String("base_url", cfg.API.BaseURL), zap.Bool("mouse", cfg.UI.Mouse))
	_, err = tea.NewProgram(dashboard.New(opts), programOpts...).Run()
	return err
}
