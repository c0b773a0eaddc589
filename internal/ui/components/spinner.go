// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simchat-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner wraps the bubbles spinner with an ASCII frame set. The send
// button embeds its raw frames while a completion fetch is pending.
type Spinner struct {
	spinner   spinner.Model
	active    bool
	startTime time.Time
}

// NewSpinner creates a spinner from an ASCII frame configuration.
func NewSpinner(cfg styles.SpinnerConfig) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: cfg.Frames,
		FPS:    cfg.Duration(),
	}
	return Spinner{spinner: s}
}

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.active
}

// Elapsed returns the duration since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation while active.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Frame returns the current unstyled frame for embedding in other views.
func (s Spinner) Frame() string {
	return s.spinner.View()
}

// View renders the styled spinner character, empty while inactive.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render(s.spinner.View())
}
