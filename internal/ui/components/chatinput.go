// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simchat-tui/internal/textedit"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// CHAT INPUT WIDGET - Hover-focused multiline text entry
// =============================================================================

// CursorGlyph is rendered at the cursor offset inside the input text.
const CursorGlyph = '|'

// ChatInput is a fixed-size multiline input widget over a shared edit buffer.
//
// Focus follows the mouse: the widget is Focused exactly while the pointer
// lies within its bounds, recomputed on every motion event. An autofocus
// widget is pinned Focused and skips the hover test. While Unfocused every
// key event passes through unconsumed.
//
// The buffer is owned by the session controller; the widget is rebuilt on
// panel resize and the content carries over through the shared buffer.
type ChatInput struct {
	buffer    *textedit.Buffer
	theme     *styles.Theme
	width     int
	height    int
	x, y      int
	autofocus bool
	focus     Focus
}

// NewChatInput creates an input widget of the given outer dimensions.
func NewChatInput(theme *styles.Theme, buffer *textedit.Buffer, width, height int) *ChatInput {
	// Room for the border plus at least one text cell.
	if width < 5 {
		width = 5
	}
	if height < 3 {
		height = 3
	}
	return &ChatInput{
		buffer: buffer,
		theme:  theme,
		width:  width,
		height: height,
	}
}

// SetAutofocus pins the widget Focused and disables the hover test.
func (c *ChatInput) SetAutofocus(on bool) {
	c.autofocus = on
	if on {
		c.focus = Focused
	}
}

// Dims returns the fixed outer dimensions.
func (c *ChatInput) Dims() (int, int) {
	return c.width, c.height
}

// SetPos assigns the top-left screen cell.
func (c *ChatInput) SetPos(x, y int) {
	c.x = x
	c.y = y
}

// Focus returns the current focus state.
func (c *ChatInput) Focus() Focus {
	if c.autofocus {
		return Focused
	}
	return c.focus
}

// IsFocused reports whether keys are currently routed to the buffer.
func (c *ChatInput) IsFocused() bool {
	return c.Focus() == Focused
}

// Buffer returns the shared edit buffer.
func (c *ChatInput) Buffer() *textedit.Buffer {
	return c.buffer
}

// Value returns the buffer content.
func (c *ChatInput) Value() string {
	return c.buffer.Value()
}

// HandleEvent routes mouse motion to the hover test and keys to the buffer.
func (c *ChatInput) HandleEvent(msg tea.Msg) Outcome {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if c.autofocus || msg.Type != tea.MouseMotion {
			return Outcome{}
		}
		bounds := Bounds{X: c.x, Y: c.y, W: c.width, H: c.height}
		if bounds.Contains(msg.X, msg.Y) {
			c.focus = Focused
		} else {
			c.focus = Unfocused
		}
		// Motion is ambient: other widgets hover-test the same event.
		return Outcome{}

	case tea.KeyMsg:
		if !c.IsFocused() {
			return Outcome{}
		}
		return c.handleKey(msg)
	}

	return Outcome{}
}

// handleKey applies the fixed key precedence: arrows, backspace, enter,
// then printable runes. Anything else passes through unconsumed.
func (c *ChatInput) handleKey(msg tea.KeyMsg) Outcome {
	// Alt-modified keys are host shortcuts (panel resize), never text.
	if msg.Alt {
		return Outcome{}
	}

	switch msg.Type {
	case tea.KeyLeft:
		c.buffer.MoveLeft()
		return Outcome{Consumed: true}

	case tea.KeyRight:
		c.buffer.MoveRight()
		return Outcome{Consumed: true}

	case tea.KeyBackspace:
		return Outcome{Consumed: true, Changed: c.buffer.DeleteBackward()}

	case tea.KeyEnter:
		// Enter inserts a newline. Sending is the host's trigger.
		return Outcome{Consumed: true, Changed: c.buffer.InsertNewline()}

	case tea.KeySpace:
		return Outcome{Consumed: true, Changed: c.buffer.InsertRune(' ')}

	case tea.KeyRunes:
		changed := false
		for _, r := range msg.Runes {
			if c.buffer.InsertRune(r) {
				changed = true
			}
		}
		return Outcome{Consumed: true, Changed: changed}
	}

	return Outcome{}
}

// View renders the content with the cursor glyph on the bordered plate.
// Lines wrap to the interior width; overflow past the interior height is
// clipped, never scrolled.
func (c *ChatInput) View() string {
	interiorWidth := c.width - 4 // border and horizontal padding
	if interiorWidth < 1 {
		interiorWidth = 1
	}
	interiorHeight := c.height - 2
	if interiorHeight < 1 {
		interiorHeight = 1
	}

	var wrapped []string
	for _, line := range strings.Split(c.buffer.ValueWithCursor(CursorGlyph), "\n") {
		wrapped = append(wrapped, strings.Split(util.WrapWidth(line, interiorWidth), "\n")...)
	}
	if len(wrapped) > interiorHeight {
		wrapped = wrapped[:interiorHeight]
	}

	plate := c.theme.InputBox
	if c.IsFocused() {
		plate = c.theme.InputBoxFocused
	}
	return plate.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(wrapped, "\n"))
}
