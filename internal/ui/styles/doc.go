// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the simchat TUI.
//
// Colors are defined as Lip Gloss AdaptiveColor pairs so every style picks
// the right shade for light and dark terminals automatically. The Theme
// struct bundles the configured styles the components render with, and
// ApplyColorMode pins the palette when the config asks for an explicit
// "dark" or "light" mode instead of terminal detection.
//
// # Key Types
//
//   - Theme: all configured lipgloss styles plus terminal capabilities
//   - SpinnerConfig: ASCII animation frames with a frame rate
//   - StatusIndicatorSet: ASCII shape indicators for colorblind accessibility
//
// # Usage
//
//	styles.ApplyColorMode(cfg.UI.Theme)
//	theme := styles.NewTheme()
//	fmt.Println(theme.TranscriptUser.Render("You: add more traffic"))
package styles
