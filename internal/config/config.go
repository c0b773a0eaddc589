// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for simchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.simchat/config.toml
//   - ~/.simchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete simchat configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// DeepSeek API configuration
	DeepSeek DeepSeekConfig `toml:"deepseek" json:"deepseek"`

	// Chat behavior configuration
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Panel geometry configuration
	Panel PanelConfig `toml:"panel" json:"panel"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// DeepSeekConfig contains DeepSeek API client configuration.
type DeepSeekConfig struct {
	// BaseURL is the API base URL. A trailing slash is trimmed on load.
	// The DEEPSEEK_BASE_URL environment variable overrides this value.
	BaseURL string `toml:"base_url" json:"base_url"`
	// Model is the chat model identifier sent with each request.
	Model string `toml:"model" json:"model"`
	// Temperature is the sampling temperature for completions.
	Temperature float64 `toml:"temperature" json:"temperature"`
}

// ChatConfig contains chat session configuration.
type ChatConfig struct {
	// Prefill is the draft placed in the input box when a session starts.
	Prefill string `toml:"prefill" json:"prefill"`
	// HistoryEnabled persists transcripts to the local database.
	HistoryEnabled bool `toml:"history_enabled" json:"history_enabled"`
	// HistoryPath is the transcript database path (empty = ~/.simchat/chat.db).
	HistoryPath string `toml:"history_path" json:"history_path"`
	// ReplHistoryPath is the REPL readline history file (empty = ~/.simchat/repl_history).
	ReplHistoryPath string `toml:"repl_history_path" json:"repl_history_path"`
}

// PanelConfig contains the chat panel's initial geometry. Both values are
// percentages of the window; resizing in a session does not write back here.
type PanelConfig struct {
	// WidthPct is the initial panel width, clamped to 15-50.
	WidthPct int `toml:"width_pct" json:"width_pct"`
	// HeightPct is the initial panel height, clamped to 15-60.
	HeightPct int `toml:"height_pct" json:"height_pct"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// MouseEnabled turns on mouse tracking for hover focus and buttons.
	MouseEnabled bool `toml:"mouse_enabled" json:"mouse_enabled"`
	// Markdown renders replies through glamour in repl and ask output.
	Markdown bool `toml:"markdown" json:"markdown"`
}

// LogConfig contains structured logging configuration.
type LogConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string `toml:"level" json:"level"`
	// Path is the log file path (empty = ~/.simchat/simchat.log).
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultPrefill is the draft question seeded into a fresh chat input.
const DefaultPrefill = "I want to evaluate how different ride-hailing vehicle quotas " +
	"(from 1,000 to 10,000) affect road traffic congestion in Hong Kong."

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		DeepSeek: DeepSeekConfig{
			BaseURL:     "https://api.deepseek.com/v1",
			Model:       "deepseek-chat",
			Temperature: 0.2,
		},

		Chat: ChatConfig{
			Prefill:        DefaultPrefill,
			HistoryEnabled: true,
		},

		Panel: PanelConfig{
			WidthPct:  35,
			HeightPct: 35,
		},

		UI: UIConfig{
			Theme:        "auto",
			MouseEnabled: true,
			Markdown:     true,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the simchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".simchat"), nil
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
	return os.MkdirAll(dir, 0o700)
}

// HistoryDBPath returns the transcript database path for this config.
func (c *Config) HistoryDBPath() (string, error) {
	if c.Chat.HistoryPath != "" {
		return c.Chat.HistoryPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chat.db"), nil
}

// ReplHistoryPath returns the REPL readline history path for this config.
func (c *Config) ReplHistoryPath() (string, error) {
	if c.Chat.ReplHistoryPath != "" {
		return c.Chat.ReplHistoryPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repl_history"), nil
}

// LogPath returns the log file path for this config.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "simchat.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// finishLoad applies env overrides, normalization, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Normalize()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if mode := info.Mode().Perm(); mode != 0o600 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
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
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# simchat configuration file\n")
	sb.WriteString("# Generated by simchat - edit with care\n")
	sb.WriteString("\n")

	encoder := toml.NewEncoder(&sb)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0o600); err != nil {
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
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// DeepSeek settings
	if c.DeepSeek.BaseURL != "" {
		if u, err := url.Parse(c.DeepSeek.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "deepseek.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.DeepSeek.BaseURL),
			})
		}
	}
	if c.DeepSeek.Temperature < 0 || c.DeepSeek.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "deepseek.temperature",
			Message: fmt.Sprintf("must be between 0.0 and 2.0, got %g", c.DeepSeek.Temperature),
		})
	}

	// Panel geometry. The session clamps to the same bounds on every resize
	// click, so out-of-range config values are rejected rather than clamped.
	if c.Panel.WidthPct < 15 || c.Panel.WidthPct > 50 {
		errs = append(errs, ValidationError{
			Field:   "panel.width_pct",
			Message: fmt.Sprintf("must be 15-50, got %d", c.Panel.WidthPct),
		})
	}
	if c.Panel.HeightPct < 15 || c.Panel.HeightPct > 60 {
		errs = append(errs, ValidationError{
			Field:   "panel.height_pct",
			Message: fmt.Sprintf("must be 15-60, got %d", c.Panel.HeightPct),
		})
	}

	// UI settings
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// Log settings
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.DeepSeek.BaseURL == "" {
		c.DeepSeek.BaseURL = defaults.DeepSeek.BaseURL
	}
	if c.DeepSeek.Model == "" {
		c.DeepSeek.Model = defaults.DeepSeek.Model
	}
	if c.DeepSeek.Temperature == 0 {
		c.DeepSeek.Temperature = defaults.DeepSeek.Temperature
	}

	if c.Chat.Prefill == "" {
		c.Chat.Prefill = defaults.Chat.Prefill
	}

	if c.Panel.WidthPct == 0 {
		c.Panel.WidthPct = defaults.Panel.WidthPct
	}
	if c.Panel.HeightPct == 0 {
		c.Panel.HeightPct = defaults.Panel.HeightPct
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Normalize cleans up values that are legal but inconvenient. The API base
// URL loses its trailing slash so path joins never produce "//".
func (c *Config) Normalize() {
	c.DeepSeek.BaseURL = strings.TrimRight(strings.TrimSpace(c.DeepSeek.BaseURL), "/")
	c.DeepSeek.Model = strings.TrimSpace(c.DeepSeek.Model)
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - DEEPSEEK_BASE_URL: overrides deepseek.base_url
//   - SIMCHAT_MODEL: overrides deepseek.model
//   - SIMCHAT_PREFILL: overrides chat.prefill
//   - SIMCHAT_THEME: overrides ui.theme
//   - SIMCHAT_NO_HISTORY: set to "1" or "true" to disable transcript persistence
//   - SIMCHAT_LOG_LEVEL: overrides log.level
//
// DEEPSEEK_API_KEY is deliberately not a config field; the API client reads
// it at request time so the credential never lands in a config file.
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("DEEPSEEK_BASE_URL"); baseURL != "" {
		c.DeepSeek.BaseURL = baseURL
	}

	if model := os.Getenv("SIMCHAT_MODEL"); model != "" {
		c.DeepSeek.Model = model
	}

	if prefill := os.Getenv("SIMCHAT_PREFILL"); prefill != "" {
		c.Chat.Prefill = prefill
	}

	if theme := os.Getenv("SIMCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if noHistory := os.Getenv("SIMCHAT_NO_HISTORY"); noHistory != "" {
		if noHistory == "1" || strings.ToLower(noHistory) == "true" {
			c.Chat.HistoryEnabled = false
		}
	}

	if level := os.Getenv("SIMCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
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
			cfg = Default()
		}
		globalConfig = cfg
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
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
