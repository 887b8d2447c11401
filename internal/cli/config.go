// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The "config" command.
//
// Usage:
//
//	statescope config [show]     Print the effective configuration
//	statescope config path       Print the config file path
//	statescope config init       Write a default config file
//	statescope config get KEY    Print one value (dot notation)
//	statescope config keys       List every key

package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/statescope/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(env, args)
	case "path":
		path, _, err := configFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Out, path)
		return nil
	case "init":
		return handleConfigInit(env)
	case "get":
		return handleConfigGet(env, args)
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(env.Out, k)
		}
		return nil
	default:
		return usageErr("config", fmt.Sprintf("unknown config subcommand: %s", args.Subcommand), "statescope config show")
	}
}

// configFile returns the file Load reads from and whether it exists. When
// neither file exists the TOML path is returned.
func configFile() (string, bool, error) {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, true, nil
	}
	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, true, nil
	}
	return tomlPath, false, nil
}

func handleConfigShow(env *Env, args Args) error {
	path, exists, err := configFile()
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Exists: exists, Config: env.Config}).Print(env.Out)
	}

	if !args.Quiet {
		fmt.Fprintln(env.Out, TitleStyle.Render("StateScope Configuration"))
		source := path
		if !exists {
			source = "built-in defaults (" + path + " not found)"
		}
		fmt.Fprintln(env.Out, DimStyle.Render("# "+source))
		fmt.Fprintln(env.Out)
	}
	if err := toml.NewEncoder(env.Out).Encode(env.Config); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func handleConfigInit(env *Env) error {
	path, exists, err := configFile()
	if err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(env.Out, "%s %s\n", WarningStyle.Render("Config already exists:"), path)
		return nil
	}
	if err := config.Save(config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%s %s\n", SuccessStyle.Render("Wrote"), path)
	return nil
}

func handleConfigGet(env *Env, args Args) error {
	if args.ConfigKey == "" {
		return usageErr("config get", "a key is required", "statescope config get api.base_url")
	}
	v, err := env.Config.Get(args.ConfigKey)
	if err != nil {
		return &NotFoundError{Resource: "config key", ID: args.ConfigKey}
	}
	if args.JSON {
		return NewJSONResponse("config", map[string]interface{}{args.ConfigKey: v}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, v)
	return nil
}
