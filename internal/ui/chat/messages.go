// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel host for the TUI.
//
// This file defines the Bubble Tea message types the host consumes beyond
// the framework's own key, mouse, and window-size events.
package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simchat-tui/internal/config"
)

// =============================================================================
// FRAME LOOP MESSAGES
// =============================================================================

// FrameInterval is the cadence of the frame tick, roughly 20 frames per
// second. Every controller and clock mutation happens on this tick or on an
// input event, so the whole session stays confined to the program goroutine.
const FrameInterval = 50 * time.Millisecond

// FrameTickMsg drives one frame: step the sim clock, poll the outstanding
// completion, and drain the directive mailbox.
type FrameTickMsg time.Time

// FrameTick schedules the next frame.
func FrameTick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly reloaded configuration from the file
// watcher. The host re-applies display preferences without restarting.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}
