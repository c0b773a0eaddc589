// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// DEFAULTS TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DeepSeek.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("BaseURL = %q, want DeepSeek v1 endpoint", cfg.DeepSeek.BaseURL)
	}
	if cfg.DeepSeek.Model != "deepseek-chat" {
		t.Errorf("Model = %q, want %q", cfg.DeepSeek.Model, "deepseek-chat")
	}
	if cfg.DeepSeek.Temperature != 0.2 {
		t.Errorf("Temperature = %g, want 0.2", cfg.DeepSeek.Temperature)
	}
	if cfg.Panel.WidthPct != 35 || cfg.Panel.HeightPct != 35 {
		t.Errorf("Panel = %d%%x%d%%, want 35%%x35%%", cfg.Panel.WidthPct, cfg.Panel.HeightPct)
	}
	if !strings.Contains(cfg.Chat.Prefill, "ride-hailing vehicle quotas") {
		t.Errorf("Prefill = %q, want the quota evaluation draft", cfg.Chat.Prefill)
	}
	if !cfg.Chat.HistoryEnabled {
		t.Error("HistoryEnabled should default to true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() should validate cleanly: %v", err)
	}
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[deepseek]
base_url = "https://example.test/v2/"
model = "deepseek-reasoner"

[panel]
width_pct = 45
height_pct = 20

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	// Trailing slash is trimmed on load.
	if cfg.DeepSeek.BaseURL != "https://example.test/v2" {
		t.Errorf("BaseURL = %q, want trimmed %q", cfg.DeepSeek.BaseURL, "https://example.test/v2")
	}
	if cfg.DeepSeek.Model != "deepseek-reasoner" {
		t.Errorf("Model = %q, want %q", cfg.DeepSeek.Model, "deepseek-reasoner")
	}
	if cfg.Panel.WidthPct != 45 || cfg.Panel.HeightPct != 20 {
		t.Errorf("Panel = %d%%x%d%%, want 45%%x20%%", cfg.Panel.WidthPct, cfg.Panel.HeightPct)
	}

	// Unset fields fall back to defaults.
	if cfg.DeepSeek.Temperature != 0.2 {
		t.Errorf("Temperature = %g, want default 0.2", cfg.DeepSeek.Temperature)
	}
	if cfg.Chat.Prefill == "" {
		t.Error("Prefill should fall back to the default draft")
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"deepseek": {"model": "deepseek-chat"}, "ui": {"theme": "light"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.UI.Theme, "light")
	}
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[panel]
width_pct = 80
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected validation error for width_pct = 80")
	}
}

// =============================================================================
// ENV OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("DEEPSEEK_BASE_URL", "https://proxy.internal/llm/")
	t.Setenv("SIMCHAT_MODEL", "deepseek-reasoner")
	t.Setenv("SIMCHAT_NO_HISTORY", "1")
	t.Setenv("SIMCHAT_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.Normalize()

	if cfg.DeepSeek.BaseURL != "https://proxy.internal/llm" {
		t.Errorf("BaseURL = %q, want env override (trimmed)", cfg.DeepSeek.BaseURL)
	}
	if cfg.DeepSeek.Model != "deepseek-reasoner" {
		t.Errorf("Model = %q, want env override", cfg.DeepSeek.Model)
	}
	if cfg.Chat.HistoryEnabled {
		t.Error("HistoryEnabled should be disabled by SIMCHAT_NO_HISTORY=1")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"temperature too high", func(c *Config) { c.DeepSeek.Temperature = 2.5 }, true},
		{"negative temperature", func(c *Config) { c.DeepSeek.Temperature = -0.1 }, true},
		{"width below floor", func(c *Config) { c.Panel.WidthPct = 10 }, true},
		{"width above ceiling", func(c *Config) { c.Panel.WidthPct = 55 }, true},
		{"height above ceiling", func(c *Config) { c.Panel.HeightPct = 65 }, true},
		{"width at floor", func(c *Config) { c.Panel.WidthPct = 15 }, false},
		{"height at ceiling", func(c *Config) { c.Panel.HeightPct = 60 }, false},
		{"bad base url", func(c *Config) { c.DeepSeek.BaseURL = "not a url" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Panel.WidthPct = 40
	cfg.UI.Theme = "dark"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat config: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
		}
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Panel.WidthPct != 40 {
		t.Errorf("WidthPct = %d, want 40", loaded.Panel.WidthPct)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", loaded.UI.Theme, "dark")
	}
}

// =============================================================================
// GLOBAL SINGLETON TESTS
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and
// ReloadGlobal() can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_GlobalInitialization(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.DeepSeek.Model == "" {
		t.Error("Model should not be empty after initialization")
	}
}
