// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textedit implements the cursor-addressed edit buffer behind the
// chat input.
package textedit

import "testing"

// =============================================================================
// INSERT TESTS
// =============================================================================

func TestBuffer_InsertRune(t *testing.T) {
	b := New()
	for _, r := range "abc" {
		if !b.InsertRune(r) {
			t.Fatalf("InsertRune(%q) returned false", r)
		}
	}

	if b.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", b.Value(), "abc")
	}
	if b.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", b.Cursor())
	}
}

func TestBuffer_InsertAtCursor(t *testing.T) {
	b := NewWithValue("ac")
	b.MoveLeft()
	b.InsertRune('b')

	if b.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", b.Value(), "abc")
	}
	if b.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", b.Cursor())
	}
}

func TestBuffer_InsertNewline(t *testing.T) {
	b := NewWithValue("ab")
	b.MoveLeft()
	b.InsertNewline()

	if b.Value() != "a\nb" {
		t.Errorf("Value() = %q, want %q", b.Value(), "a\nb")
	}
	if b.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", b.Cursor())
	}
}

func TestBuffer_InsertMultibyte(t *testing.T) {
	b := New()
	b.InsertRune('日')
	b.InsertRune('本')

	if b.Value() != "日本" {
		t.Errorf("Value() = %q, want %q", b.Value(), "日本")
	}
	if b.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2 (rune index, not bytes)", b.Cursor())
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestBuffer_InsertString(t *testing.T) {
	b := New()
	if !b.InsertString("hi 世界") {
		t.Fatal("InsertString returned false for non-empty input")
	}
	if b.InsertString("") {
		t.Error("InsertString returned true for empty input")
	}
	if b.Value() != "hi 世界" {
		t.Errorf("Value() = %q, want %q", b.Value(), "hi 世界")
	}
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestBuffer_DeleteBackward(t *testing.T) {
	b := NewWithValue("abc")

	if !b.DeleteBackward() {
		t.Fatal("first DeleteBackward returned false")
	}
	if !b.DeleteBackward() {
		t.Fatal("second DeleteBackward returned false")
	}

	if b.Value() != "a" {
		t.Errorf("Value() = %q, want %q", b.Value(), "a")
	}
	if b.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", b.Cursor())
	}
}

func TestBuffer_DeleteBackwardAtStart(t *testing.T) {
	b := New()
	if b.DeleteBackward() {
		t.Error("DeleteBackward on empty buffer returned true")
	}

	b.SetValue("xy")
	b.MoveToStart()
	if b.DeleteBackward() {
		t.Error("DeleteBackward at position 0 returned true")
	}
	if b.Value() != "xy" {
		t.Errorf("Value() = %q, want unchanged %q", b.Value(), "xy")
	}
}

func TestBuffer_DeleteBackwardMidText(t *testing.T) {
	b := NewWithValue("abc")
	b.MoveLeft()
	b.DeleteBackward()

	if b.Value() != "ac" {
		t.Errorf("Value() = %q, want %q", b.Value(), "ac")
	}
	if b.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", b.Cursor())
	}
}

// =============================================================================
// CURSOR MOVEMENT TESTS
// =============================================================================

func TestBuffer_MoveClampsAtEdges(t *testing.T) {
	b := NewWithValue("ab")

	b.MoveRight()
	if b.Cursor() != 2 {
		t.Errorf("Cursor() = %d after MoveRight at end, want 2", b.Cursor())
	}

	b.MoveToStart()
	b.MoveLeft()
	if b.Cursor() != 0 {
		t.Errorf("Cursor() = %d after MoveLeft at start, want 0", b.Cursor())
	}
}

func TestBuffer_SetValueMovesCursorToEnd(t *testing.T) {
	b := New()
	b.SetValue("hello 世界")

	if b.Cursor() != 8 {
		t.Errorf("Cursor() = %d, want 8", b.Cursor())
	}
	b.MoveRight()
	if b.Cursor() != 8 {
		t.Errorf("Cursor() = %d after MoveRight at end, want 8", b.Cursor())
	}
}

func TestBuffer_Clear(t *testing.T) {
	b := NewWithValue("hello")
	b.Clear()

	if b.Value() != "" {
		t.Errorf("Value() = %q, want empty", b.Value())
	}
	if b.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", b.Cursor())
	}
	if !b.IsEmpty() {
		t.Error("IsEmpty() = false after Clear")
	}
}

// TestBuffer_CursorInvariant drives a mixed edit sequence and checks the
// cursor never escapes [0, Len()].
func TestBuffer_CursorInvariant(t *testing.T) {
	b := New()
	ops := []func(){
		func() { b.InsertRune('a') },
		func() { b.MoveLeft() },
		func() { b.InsertRune('b') },
		func() { b.MoveRight() },
		func() { b.MoveRight() },
		func() { b.DeleteBackward() },
		func() { b.DeleteBackward() },
		func() { b.DeleteBackward() },
		func() { b.InsertNewline() },
		func() { b.SetValue("日本語") },
		func() { b.MoveLeft() },
		func() { b.DeleteBackward() },
		func() { b.Clear() },
		func() { b.DeleteBackward() },
	}

	for i, op := range ops {
		op()
		if b.Cursor() < 0 || b.Cursor() > b.Len() {
			t.Fatalf("after op %d: cursor %d outside [0,%d]", i, b.Cursor(), b.Len())
		}
	}
}

// =============================================================================
// BLANK AND RENDER TESTS
// =============================================================================

func TestBuffer_IsBlank(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t ", true},
		{"a", false},
		{" a ", false},
	}

	for _, tc := range tests {
		b := NewWithValue(tc.value)
		if got := b.IsBlank(); got != tc.want {
			t.Errorf("IsBlank() for %q = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestBuffer_ValueWithCursor(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Buffer
		want  string
	}{
		{
			name:  "cursor at end",
			setup: func() *Buffer { return NewWithValue("ab") },
			want:  "ab|",
		},
		{
			name: "cursor mid text",
			setup: func() *Buffer {
				b := NewWithValue("ab")
				b.MoveLeft()
				return b
			},
			want: "a|b",
		},
		{
			name:  "empty buffer",
			setup: func() *Buffer { return New() },
			want:  "|",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.setup().ValueWithCursor('|'); got != tc.want {
				t.Errorf("ValueWithCursor('|') = %q, want %q", got, tc.want)
			}
		})
	}
}
