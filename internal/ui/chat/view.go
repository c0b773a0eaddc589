// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel host for the TUI.
//
// This file contains all rendering logic: the header and status bar that
// frame the simulation surface, and the chat panel floated over it with its
// title row, transcript window, and input row.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/ui/components"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete frame.
// Layout: header (1 line) + canvas with the floating panel + status bar
// (1 line). Total height equals the terminal height exactly.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderCanvas(),
		m.renderStatusBar(),
	)
}

// renderCanvas renders the simulation surface rows with the chat panel
// spliced in at its computed position. Rows outside the panel stay blank;
// the simulation map owns that space in the full application.
func (m Model) renderCanvas() string {
	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}

	panelLines := strings.Split(m.renderPanel(), "\n")
	indent := strings.Repeat(" ", m.lay.panelX)

	lines := make([]string, rows)
	for i := range lines {
		rel := (i + 1) - m.lay.panelY
		if rel >= 0 && rel < len(panelLines) {
			lines[i] = indent + panelLines[rel]
		}
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the top bar with the app name, the completion model,
// and a state indicator. Always 1 line high.
func (m Model) renderHeader() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	title := m.theme.HeaderTitle.Render("simchat")

	var info string
	if m.modelName != "" {
		info = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" | " + m.modelName)
	}

	var statusIcon string
	if m.ctrl.IsAwaiting() {
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(" " + styles.StatusIndicators.Pending)
	} else {
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Render(" " + styles.StatusIndicators.Success)
	}

	return m.theme.Header.Width(width).Render(title + info + statusIcon)
}

// =============================================================================
// CHAT PANEL
// =============================================================================

// renderPanel renders the bordered chat panel. The interior stacks the
// title row, the transcript window, and the input row, which together fill
// the interior height exactly.
func (m Model) renderPanel() string {
	parts := []string{m.renderTitleRow()}
	if m.lay.transcriptH > 0 {
		parts = append(parts, m.renderTranscript())
	}
	parts = append(parts, m.renderInputRow())

	return m.theme.ChatPanel.
		Width(m.lay.panelW - 2).
		Height(m.lay.panelH - 2).
		Render(strings.Join(parts, "\n"))
}

// renderTitleRow renders the heading with the resize buttons beside it.
// The spacing here matches the button positions in computeLayout.
func (m Model) renderTitleRow() string {
	return m.theme.HeaderTitle.Render(PanelTitle) +
		"  " + m.shrinkBtn.View() +
		" " + m.growBtn.View()
}

// renderTranscript renders the display window of recent messages, each
// wrapped to the transcript width and colored by role. Overflow drops the
// oldest lines; the block is padded to its exact height so the input row
// stays put.
func (m Model) renderTranscript() string {
	var lines []string
	for _, msg := range m.ctrl.DisplayMessages() {
		lines = append(lines, m.renderTranscriptEntry(msg)...)
	}

	if len(lines) > m.lay.transcriptH {
		lines = lines[len(lines)-m.lay.transcriptH:]
	}
	for len(lines) < m.lay.transcriptH {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderTranscriptEntry renders one message into wrapped, styled lines.
// Assistant replies containing fenced code switch to the highlighted code
// block renderer under a bare prefix line, unless markdown display is off.
func (m Model) renderTranscriptEntry(msg *model.Message) []string {
	if m.markdown && msg.Role == model.RoleAssistant && strings.Contains(msg.Content, "```") {
		lines := []string{m.theme.TranscriptAssistant.Render(strings.TrimSpace(msg.Role.DisplayPrefix()))}
		body := components.RenderReplyBody(msg.Content, m.lay.wrapW)
		return append(lines, strings.Split(body, "\n")...)
	}

	var style lipgloss.Style
	switch msg.Role {
	case model.RoleUser:
		style = m.theme.TranscriptUser
	case model.RoleAssistant:
		style = m.theme.TranscriptAssistant
	default:
		style = m.theme.TranscriptSystem
	}

	wrapped := util.WrapWidth(msg.DisplayLine(), m.lay.wrapW)
	raw := strings.Split(wrapped, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		lines = append(lines, style.Render(ln))
	}
	return lines
}

// renderInputRow renders the input widget with the send button beside it,
// vertically centered on the widget.
func (m Model) renderInputRow() string {
	inputLines := strings.Split(m.input.View(), "\n")
	mid := (len(inputLines) - 1) / 2
	gap := strings.Repeat(" ", inputButtonGap)

	for i := range inputLines {
		if i == mid {
			inputLines[i] += gap + m.sendBtn.View()
		}
	}
	return strings.Join(inputLines, "\n")
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar renders the bottom bar: sim clock and session state on
// the left, keyboard shortcuts on the right. Narrow terminals fall back to
// a compact shortcut list.
func (m Model) renderStatusBar() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	clockStr := m.clock.StatusLine()
	var clockPart string
	if m.clock.IsPaused() {
		clockPart = m.theme.StatusPaused.Render(clockStr)
	} else {
		clockPart = m.theme.StatusClock.Render(clockStr)
	}

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	statePart := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(m.ctrl.State().String())

	left := clockPart + sep + statePart
	shortcuts := [][2]string{
		{"ctrl+s", "send"},
		{"alt+-/=", "resize"},
		{"ctrl+q", "quit"},
	}
	if m.theme.GetLayoutMode() == styles.LayoutNarrow {
		left = clockPart
		shortcuts = [][2]string{
			{"^S", "send"},
			{"^Q", "quit"},
		}
	}

	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts, m.theme.ShortcutKey.Render(sc[0])+" "+m.theme.ShortcutDesc.Render(sc[1]))
	}
	right := strings.Join(parts, sep)

	maxContent := width - 4
	padding := maxContent - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Not enough room for shortcuts; the clock wins.
		return m.theme.StatusBar.Width(width).Render(left)
	}

	return m.theme.StatusBar.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}
