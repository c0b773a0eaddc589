// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for simchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - DeepSeekConfig: API endpoint, model, and temperature
//   - ChatConfig: Prefill draft and transcript persistence
//   - PanelConfig: Initial chat panel geometry
//   - Watcher: fsnotify-based live reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (DEEPSEEK_BASE_URL, SIMCHAT_*)
//   - ~/.simchat/config.toml
//   - ~/.simchat/config.json
//   - Built-in defaults
//
// The DeepSeek API key is never a config field; see internal/deepseek for
// credential resolution.
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	model := cfg.DeepSeek.Model
//	width := cfg.Panel.WidthPct
package config
