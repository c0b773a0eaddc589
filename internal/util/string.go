// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the simchat application.
package util

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// DISPLAY WIDTH
// =============================================================================

// StringWidth returns the display width of s in terminal cells.
// Double-width characters (CJK, some emoji) count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// =============================================================================
// TRUNCATION
// =============================================================================

// TruncateRunes truncates a string to at most maxRunes runes, appending
// "..." when something was cut. Safe for multi-byte UTF-8 text.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to at most maxWidth display cells,
// appending "..." when something was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// =============================================================================
// PADDING
// =============================================================================

// PadWidth pads s with trailing spaces to exactly width display cells.
// Strings already wider than width are returned unchanged.
func PadWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// =============================================================================
// WRAPPING
// =============================================================================

// WrapWidth wraps s so that no line exceeds width display cells. Existing
// newlines are preserved and words longer than the width are hard-split.
// A width of zero or less returns s unchanged.
func WrapWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

// wrapLine wraps a single newline-free line to the given cell width.
func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var lines []string
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		switch {
		case curWidth == 0 && w <= width:
			cur.WriteString(word)
			curWidth = w
		case curWidth+1+w <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + w
		default:
			if curWidth > 0 {
				flush()
			}
			for w > width {
				head, rest := splitAtWidth(word, width)
				lines = append(lines, head)
				word = rest
				w = runewidth.StringWidth(word)
			}
			cur.WriteString(word)
			curWidth = w
		}
	}
	if cur.Len() > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// splitAtWidth splits s at the widest prefix not exceeding width cells.
// The prefix always contains at least one rune so callers make progress
// even when a single rune is wider than the budget.
func splitAtWidth(s string, width int) (string, string) {
	curWidth := 0
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if curWidth+w > width {
			if i == 0 {
				_, size := utf8.DecodeRuneInString(s)
				return s[:size], s[size:]
			}
			return s[:i], s[i:]
		}
		curWidth += w
	}
	return s, ""
}
