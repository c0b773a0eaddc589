// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for simchat CLI output.
//
// Colors are automatically disabled for non-TTY output and respect the
// NO_COLOR environment variable (https://no-color.org/).

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simchat-tui/internal/ui/styles"
)

// init configures the lipgloss color profile from terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// promptStyle is the REPL input prompt
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// headerStyle is used for section headers
	headerStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// infoStyle is used for labels and secondary information
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// dimStyle is used for de-emphasized hints
	dimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	// commandStyle is used for values and confirmations
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// warningStyle is used for warnings and the paused clock
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// errorStyle is used for failures
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// simStyle marks simulation state changes
	simStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
)

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// PrintError writes a styled error line to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
}

// printSimEcho writes a simulation state change line, e.g. "[sim] paused".
func printSimEcho(text string) {
	fmt.Printf("%s %s\n", simStyle.Render("[sim]"), text)
}

// separatorLine renders a dim horizontal rule of the given width.
func separatorLine(width int) string {
	if width <= 0 {
		width = 20
	}
	return infoStyle.Render(strings.Repeat("─", width))
}
