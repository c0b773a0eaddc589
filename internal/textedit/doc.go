// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textedit implements the cursor-addressed edit buffer behind the
// chat input.
//
// The buffer holds multi-line text with a single insertion cursor measured
// in runes, so multi-byte characters insert, move, and delete as single
// units. Mutating operations report whether the buffer changed, which is
// what the input widget forwards as its redraw signal.
//
// # Usage
//
//	buf := textedit.NewWithValue("Pause the simulation")
//	buf.MoveToEnd()
//	buf.InsertRune('?')
//	text := buf.Value()
//
// ValueWithCursor renders the text with the cursor glyph spliced in for
// display; the buffer itself never contains the glyph.
package textedit
