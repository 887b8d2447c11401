// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for statescope.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.statescope/config.toml
//   - ~/.statescope/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/statescope/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete statescope configuration.
type Config struct {
	API APIConfig `toml:"api" json:"api"`
	UI  UIConfig  `toml:"ui" json:"ui"`
	Log LogConfig `toml:"log" json:"log"`
}

// APIConfig describes how to reach the policy API.
type APIConfig struct {
	// BaseURL is the API root; endpoint paths such as /states are appended.
	BaseURL string `toml:"base_url" json:"base_url"`

	// TimeoutSecs bounds every GET request.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// AskTimeoutSecs bounds a single /ask round trip. Answers are generated
	// by a model on the server and take longer than plain reads.
	AskTimeoutSecs int `toml:"ask_timeout_secs" json:"ask_timeout_secs"`

	// AskPerMinute caps questions sent per minute. 0 disables the limiter.
	AskPerMinute int `toml:"ask_per_minute" json:"ask_per_minute"`

	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// UIConfig contains dashboard settings. Widths are terminal cells.
type UIConfig struct {
	Theme                   string `toml:"theme" json:"theme"`
	ChatWidth               int    `toml:"chat_width" json:"chat_width"`
	ChatMinWidth            int    `toml:"chat_min_width" json:"chat_min_width"`
	ChatMaxWidth            int    `toml:"chat_max_width" json:"chat_max_width"`
	NarrowBreakpoint        int    `toml:"narrow_breakpoint" json:"narrow_breakpoint"`
	PlaceholderIntervalSecs int    `toml:"placeholder_interval_secs" json:"placeholder_interval_secs"`
	Mouse                   bool   `toml:"mouse" json:"mouse"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	// Path of the log file. Empty means statescope.log in the config dir.
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

const (
	DefaultBaseURL      = "http://localhost:5001/api"
	DefaultTimeoutSecs  = 30
	DefaultAskTimeout   = 60
	DefaultAskPerMinute = 10
	DefaultChatWidth    = 42
	DefaultChatMin      = 28
	DefaultChatMax      = 65
	DefaultNarrow       = 100
	DefaultPlaceholder  = 4
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSecs:    DefaultTimeoutSecs,
			AskTimeoutSecs: DefaultAskTimeout,
			AskPerMinute:   DefaultAskPerMinute,
			UserAgent:      "statescope",
		},
		UI: UIConfig{
			Theme:                   "auto",
			ChatWidth:               DefaultChatWidth,
			ChatMinWidth:            DefaultChatMin,
			ChatMaxWidth:            DefaultChatMax,
			NarrowBreakpoint:        DefaultNarrow,
			PlaceholderIntervalSecs: DefaultPlaceholder,
			Mouse:                   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the GET timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// AskTimeout returns the /ask timeout as a duration.
func (a APIConfig) AskTimeout() time.Duration {
	return time.Duration(a.AskTimeoutSecs) * time.Second
}

// PlaceholderInterval returns the rotation period of chat placeholders.
func (u UIConfig) PlaceholderInterval() time.Duration {
	return time.Duration(u.PlaceholderIntervalSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the statescope configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".statescope"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// LogPath resolves the log file location.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "statescope.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that exists but cannot be decoded is reported alongside the
// defaults so callers can warn and continue.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file, choosing the codec
// from the extension, then applies env overrides, defaults and validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# statescope configuration file\n")
	b.WriteString("# Generated by statescope - edit with care\n")
	b.WriteString("#\n")
	b.WriteString("# Environment overrides: STATESCOPE_API_URL, STATESCOPE_THEME, STATESCOPE_LOG_LEVEL\n")
	b.WriteString("\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"auto": true, "dark": true, "light": true}
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, ValidationError{"api.base_url", err.Error()})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{"api.base_url", "scheme must be http or https"})
	} else if u.Host == "" {
		errs = append(errs, ValidationError{"api.base_url", "missing host"})
	}

	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{"api.timeout_secs", "must be positive"})
	}
	if c.API.AskTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{"api.ask_timeout_secs", "must be positive"})
	}
	if c.API.AskPerMinute < 0 {
		errs = append(errs, ValidationError{"api.ask_per_minute", "must be zero or positive"})
	}

	if !validThemes[c.UI.Theme] {
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("unknown theme %q (auto, dark, light)", c.UI.Theme)})
	}
	if c.UI.ChatMinWidth <= 0 {
		errs = append(errs, ValidationError{"ui.chat_min_width", "must be positive"})
	}
	if c.UI.ChatMinWidth > c.UI.ChatMaxWidth {
		errs = append(errs, ValidationError{"ui.chat_max_width", "must not be smaller than chat_min_width"})
	}
	if c.UI.ChatWidth < c.UI.ChatMinWidth || c.UI.ChatWidth > c.UI.ChatMaxWidth {
		errs = append(errs, ValidationError{"ui.chat_width", fmt.Sprintf("must be within [%d, %d]", c.UI.ChatMinWidth, c.UI.ChatMaxWidth)})
	}
	if c.UI.PlaceholderIntervalSecs <= 0 {
		errs = append(errs, ValidationError{"ui.placeholder_interval_secs", "must be positive"})
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	d := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = d.API.TimeoutSecs
	}
	if c.API.AskTimeoutSecs == 0 {
		c.API.AskTimeoutSecs = d.API.AskTimeoutSecs
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = d.API.UserAgent
	}

	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.ChatMinWidth == 0 {
		c.UI.ChatMinWidth = d.UI.ChatMinWidth
	}
	if c.UI.ChatMaxWidth == 0 {
		c.UI.ChatMaxWidth = d.UI.ChatMaxWidth
	}
	if c.UI.ChatWidth == 0 {
		c.UI.ChatWidth = d.UI.ChatWidth
	}
	if c.UI.NarrowBreakpoint == 0 {
		c.UI.NarrowBreakpoint = d.UI.NarrowBreakpoint
	}
	if c.UI.PlaceholderIntervalSecs == 0 {
		c.UI.PlaceholderIntervalSecs = d.UI.PlaceholderIntervalSecs
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - STATESCOPE_API_URL: overrides api.base_url (VITE_API_URL is honored too)
//   - STATESCOPE_TIMEOUT: overrides api.timeout_secs
//   - STATESCOPE_THEME: overrides ui.theme
//   - STATESCOPE_NO_MOUSE: "1" or "true" disables mouse handling
//   - STATESCOPE_LOG_LEVEL: overrides log.level
//   - STATESCOPE_LOG_PATH: overrides log.path
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("VITE_API_URL"); u != "" {
		c.API.BaseURL = u
	}
	if u := os.Getenv("STATESCOPE_API_URL"); u != "" {
		c.API.BaseURL = u
	}

	if timeout := os.Getenv("STATESCOPE_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.API.TimeoutSecs = secs
		}
	}

	if theme := os.Getenv("STATESCOPE_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}

	if noMouse := os.Getenv("STATESCOPE_NO_MOUSE"); noMouse != "" {
		c.UI.Mouse = !(noMouse == "1" || strings.ToLower(noMouse) == "true")
	}

	if level := os.Getenv("STATESCOPE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if path := os.Getenv("STATESCOPE_LOG_PATH"); path != "" {
		c.Log.Path = path
	}
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	v := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if v.Kind() != reflect.Struct {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		v = field
	}
	return v.Interface(), nil
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns all leaf configuration keys in dot notation.
func Keys() []string {
	var keys []string
	var walk func(prefix string, t reflect.Type)
	walk = func(prefix string, t reflect.Type) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if prefix != "" {
				name = prefix + "." + name
			}
			if f.Type.Kind() == reflect.Struct {
				walk(name, f.Type)
				continue
			}
			keys = append(keys, name)
		}
	}
	walk("", reflect.TypeOf(Config{}))
	return keys
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
