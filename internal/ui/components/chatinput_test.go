// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simchat-tui/internal/textedit"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
)

func newTestInput(t *testing.T, width, height int) *ChatInput {
	t.Helper()
	return NewChatInput(styles.NewTheme(), textedit.New(), width, height)
}

func motionAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Type: tea.MouseMotion}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// FOCUS TESTS
// =============================================================================

func TestChatInputHoverFocus(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(10, 4)

	if input.IsFocused() {
		t.Fatal("new input should start unfocused")
	}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 15, 6, true},
		{"top left corner", 10, 4, true},
		{"bottom right corner", 29, 8, true},
		{"past right edge", 30, 6, false},
		{"past bottom edge", 15, 9, false},
		{"left of widget", 9, 6, false},
		{"above widget", 15, 3, false},
	}

	for _, tt := range tests {
		input.HandleEvent(motionAt(tt.x, tt.y))
		if got := input.IsFocused(); got != tt.want {
			t.Errorf("%s: focus after motion to (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestChatInputFocusRecomputedEveryMotion(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)

	input.HandleEvent(motionAt(5, 2))
	if !input.IsFocused() {
		t.Fatal("motion inside should focus")
	}

	input.HandleEvent(motionAt(50, 50))
	if input.IsFocused() {
		t.Error("motion outside should unfocus")
	}
}

func TestChatInputAutofocusPinned(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.SetAutofocus(true)

	if !input.IsFocused() {
		t.Fatal("autofocus input should start focused")
	}

	input.HandleEvent(motionAt(100, 100))
	if !input.IsFocused() {
		t.Error("autofocus input should stay focused when the pointer leaves")
	}
}

// =============================================================================
// KEY HANDLING TESTS
// =============================================================================

func TestChatInputUnfocusedIgnoresKeys(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)

	outcome := input.HandleEvent(keyRunes("a"))
	if outcome.Consumed || outcome.Changed {
		t.Errorf("unfocused key outcome = %+v, want unconsumed", outcome)
	}
	if input.Value() != "" {
		t.Errorf("unfocused typing mutated buffer to %q", input.Value())
	}
}

func TestChatInputTyping(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))

	outcome := input.HandleEvent(keyRunes("hi"))
	if !outcome.Consumed || !outcome.Changed {
		t.Errorf("typing outcome = %+v, want consumed and changed", outcome)
	}
	if input.Value() != "hi" {
		t.Errorf("Value() = %q, want %q", input.Value(), "hi")
	}

	outcome = input.HandleEvent(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !outcome.Consumed || !outcome.Changed {
		t.Errorf("space outcome = %+v, want consumed and changed", outcome)
	}
	input.HandleEvent(keyRunes("there"))
	if input.Value() != "hi there" {
		t.Errorf("Value() = %q, want %q", input.Value(), "hi there")
	}
}

func TestChatInputArrowsMoveWithoutChange(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("ab"))

	outcome := input.HandleEvent(tea.KeyMsg{Type: tea.KeyLeft})
	if !outcome.Consumed || outcome.Changed {
		t.Errorf("left arrow outcome = %+v, want consumed without change", outcome)
	}
	if input.Buffer().Cursor() != 1 {
		t.Errorf("cursor = %d after left, want 1", input.Buffer().Cursor())
	}

	outcome = input.HandleEvent(tea.KeyMsg{Type: tea.KeyRight})
	if !outcome.Consumed || outcome.Changed {
		t.Errorf("right arrow outcome = %+v, want consumed without change", outcome)
	}
	if input.Buffer().Cursor() != 2 {
		t.Errorf("cursor = %d after right, want 2", input.Buffer().Cursor())
	}
}

func TestChatInputBackspace(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("abc"))

	outcome := input.HandleEvent(tea.KeyMsg{Type: tea.KeyBackspace})
	if !outcome.Consumed || !outcome.Changed {
		t.Errorf("backspace outcome = %+v, want consumed and changed", outcome)
	}
	if input.Value() != "ab" {
		t.Errorf("Value() = %q, want %q", input.Value(), "ab")
	}
}

func TestChatInputBackspaceAtStart(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))

	// Consumed but nothing to delete
	outcome := input.HandleEvent(tea.KeyMsg{Type: tea.KeyBackspace})
	if !outcome.Consumed {
		t.Error("backspace should be consumed even at the start")
	}
	if outcome.Changed {
		t.Error("backspace at start should not report a change")
	}
}

func TestChatInputEnterInsertsNewline(t *testing.T) {
	input := newTestInput(t, 20, 6)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("one"))

	outcome := input.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	if !outcome.Consumed || !outcome.Changed {
		t.Errorf("enter outcome = %+v, want consumed and changed", outcome)
	}

	input.HandleEvent(keyRunes("two"))
	if input.Value() != "one\ntwo" {
		t.Errorf("Value() = %q, want %q", input.Value(), "one\ntwo")
	}
}

func TestChatInputAltKeysPassThrough(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))

	// alt+- and alt+= are host resize shortcuts
	outcome := input.HandleEvent(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}, Alt: true})
	if outcome.Consumed {
		t.Error("alt-modified keys should pass through unconsumed")
	}
	if input.Value() != "" {
		t.Errorf("alt key mutated buffer to %q", input.Value())
	}
}

func TestChatInputUntranslatableKeysPassThrough(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))

	for _, key := range []tea.KeyType{tea.KeyUp, tea.KeyDown, tea.KeyTab, tea.KeyEsc, tea.KeyCtrlA} {
		outcome := input.HandleEvent(tea.KeyMsg{Type: key})
		if outcome.Consumed {
			t.Errorf("key type %v should pass through unconsumed", key)
		}
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestChatInputViewShowsCursor(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("ab"))

	if view := input.View(); !strings.Contains(view, "ab|") {
		t.Errorf("view should render cursor after content, got:\n%s", view)
	}

	input.HandleEvent(tea.KeyMsg{Type: tea.KeyLeft})
	if view := input.View(); !strings.Contains(view, "a|b") {
		t.Errorf("view should render cursor between runes, got:\n%s", view)
	}
}

func TestChatInputViewCursorShownUnfocused(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)

	// The cursor glyph renders regardless of focus, only the plate dims.
	if view := input.View(); !strings.Contains(view, "|") {
		t.Errorf("unfocused view should still show the cursor glyph, got:\n%s", view)
	}
}

func TestChatInputViewWrapsLongLines(t *testing.T) {
	input := newTestInput(t, 9, 6)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("abcdefghij"))

	view := input.View()
	if strings.Contains(view, "abcdef") {
		t.Errorf("long line should wrap at the interior width, got:\n%s", view)
	}
	if !strings.Contains(view, "abcde") || !strings.Contains(view, "fghij") {
		t.Errorf("wrapped segments missing from view:\n%s", view)
	}
}

func TestChatInputViewFixedHeight(t *testing.T) {
	input := newTestInput(t, 20, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))

	// Overflowing content is clipped, never scrolled, so the outer height
	// stays fixed.
	for i := 0; i < 10; i++ {
		input.HandleEvent(keyRunes("line"))
		input.HandleEvent(tea.KeyMsg{Type: tea.KeyEnter})
	}

	gotLines := strings.Count(input.View(), "\n") + 1
	if gotLines != 5 {
		t.Errorf("view height = %d lines, want 5", gotLines)
	}
}

func TestChatInputRebuildCarriesContent(t *testing.T) {
	buffer := textedit.New()
	theme := styles.NewTheme()

	input := NewChatInput(theme, buffer, 30, 5)
	input.SetPos(0, 0)
	input.HandleEvent(motionAt(1, 1))
	input.HandleEvent(keyRunes("carried"))

	// Panel resize rebuilds the widget around the same buffer.
	rebuilt := NewChatInput(theme, buffer, 40, 7)
	if rebuilt.Value() != "carried" {
		t.Errorf("rebuilt widget Value() = %q, want %q", rebuilt.Value(), "carried")
	}
}

func TestChatInputMinimumDims(t *testing.T) {
	input := newTestInput(t, 1, 1)
	w, h := input.Dims()
	if w < 5 || h < 3 {
		t.Errorf("Dims() = (%d,%d), want at least (5,3)", w, h)
	}
}
