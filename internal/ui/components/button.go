// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simchat-tui/internal/ui/styles"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// BUTTON COMPONENT - Hoverable, clickable label
// =============================================================================

// Button is a one-row clickable label. Hover state follows mouse motion,
// a left press inside the bounds registers a click, drained with TakeClick.
type Button struct {
	label    string
	theme    *styles.Theme
	width    int
	x, y     int
	hovered  bool
	disabled bool
	clicked  bool
}

// NewButton creates a button sized to its label plus padding.
func NewButton(theme *styles.Theme, label string) *Button {
	b := &Button{theme: theme}
	b.SetLabel(label)
	return b
}

// SetLabel swaps the label and resizes the button to fit it.
func (b *Button) SetLabel(label string) {
	b.label = label
	b.width = util.StringWidth(label) + 2
}

// Label returns the current label.
func (b *Button) Label() string {
	return b.label
}

// SetDisabled toggles the inert busy state. A disabled button never
// registers clicks and renders dimmed.
func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.hovered = false
	}
}

// Disabled reports whether the button ignores clicks.
func (b *Button) Disabled() bool {
	return b.disabled
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool {
	return b.hovered
}

// TakeClick drains the click registered since the last call.
func (b *Button) TakeClick() bool {
	clicked := b.clicked
	b.clicked = false
	return clicked
}

// Dims returns the fixed dimensions.
func (b *Button) Dims() (int, int) {
	return b.width, 1
}

// SetPos assigns the top-left screen cell.
func (b *Button) SetPos(x, y int) {
	b.x = x
	b.y = y
}

// HandleEvent tracks hover on motion and registers left clicks in bounds.
func (b *Button) HandleEvent(msg tea.Msg) Outcome {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return Outcome{}
	}

	bounds := Bounds{X: b.x, Y: b.y, W: b.width, H: 1}
	switch mouse.Type {
	case tea.MouseMotion:
		b.hovered = !b.disabled && bounds.Contains(mouse.X, mouse.Y)
		return Outcome{}

	case tea.MouseLeft:
		if b.disabled {
			return Outcome{}
		}
		if bounds.Contains(mouse.X, mouse.Y) {
			b.clicked = true
			return Outcome{Consumed: true}
		}
	}

	return Outcome{}
}

// View renders the button in its normal, hovered, or disabled style.
func (b *Button) View() string {
	style := b.theme.Button
	switch {
	case b.disabled:
		style = b.theme.ButtonBusy
	case b.hovered:
		style = b.theme.ButtonHover
	}
	return style.Render(b.label)
}
