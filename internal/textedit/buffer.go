// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textedit implements the cursor-addressed edit buffer behind the
// chat input.
package textedit

import "strings"

// =============================================================================
// BUFFER TYPE
// =============================================================================

// Buffer is a multi-line text buffer with a single insertion cursor. The
// cursor is a rune index into the text, never a byte offset, so multi-byte
// characters move and delete as single units. The cursor always satisfies
// 0 <= cursor <= Len().
type Buffer struct {
	runes  []rune
	cursor int
}

// New creates an empty buffer with the cursor at position 0.
func New() *Buffer {
	return &Buffer{}
}

// NewWithValue creates a buffer holding s with the cursor at the end.
func NewWithValue(s string) *Buffer {
	b := New()
	b.SetValue(s)
	return b
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Value returns the buffer content as a string.
func (b *Buffer) Value() string {
	return string(b.runes)
}

// Cursor returns the cursor position as a rune index.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// IsEmpty returns true when the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.runes) == 0
}

// IsBlank returns true when the buffer holds only whitespace.
func (b *Buffer) IsBlank() bool {
	return strings.TrimSpace(string(b.runes)) == ""
}

// =============================================================================
// EDITING
// =============================================================================

// InsertRune inserts r at the cursor and advances the cursor past it.
// Returns true since the content always changes.
func (b *Buffer) InsertRune(r rune) bool {
	b.runes = append(b.runes, 0)
	copy(b.runes[b.cursor+1:], b.runes[b.cursor:])
	b.runes[b.cursor] = r
	b.cursor++
	return true
}

// InsertString inserts s rune by rune at the cursor.
// Returns true if s was non-empty.
func (b *Buffer) InsertString(s string) bool {
	changed := false
	for _, r := range s {
		b.InsertRune(r)
		changed = true
	}
	return changed
}

// InsertNewline inserts a line break at the cursor.
func (b *Buffer) InsertNewline() bool {
	return b.InsertRune('\n')
}

// DeleteBackward removes the rune before the cursor and moves the cursor
// back one position. At the start of the buffer it does nothing and
// returns false.
func (b *Buffer) DeleteBackward() bool {
	if b.cursor == 0 {
		return false
	}
	copy(b.runes[b.cursor-1:], b.runes[b.cursor:])
	b.runes = b.runes[:len(b.runes)-1]
	b.cursor--
	return true
}

// SetValue replaces the content and moves the cursor to the end.
func (b *Buffer) SetValue(s string) {
	b.runes = []rune(s)
	b.cursor = len(b.runes)
}

// Clear empties the buffer and resets the cursor to 0.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
	b.cursor = 0
}

// =============================================================================
// CURSOR MOVEMENT
// =============================================================================

// MoveLeft moves the cursor one rune left, stopping at 0.
func (b *Buffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight moves the cursor one rune right, stopping at the end.
func (b *Buffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

// MoveToStart moves the cursor to position 0.
func (b *Buffer) MoveToStart() {
	b.cursor = 0
}

// MoveToEnd moves the cursor past the last rune.
func (b *Buffer) MoveToEnd() {
	b.cursor = len(b.runes)
}

// =============================================================================
// RENDERING SUPPORT
// =============================================================================

// ValueWithCursor returns the content with the cursor glyph inserted at
// the cursor position. The transcript-style input panel renders this
// directly instead of drawing a separate caret.
func (b *Buffer) ValueWithCursor(glyph rune) string {
	var sb strings.Builder
	sb.Grow(len(b.runes) + 4)
	sb.WriteString(string(b.runes[:b.cursor]))
	sb.WriteRune(glyph)
	sb.WriteString(string(b.runes[b.cursor:]))
	return sb.String()
}
