// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import tea "github.com/charmbracelet/bubbletea"

// =============================================================================
// WIDGET CONTRACT
// =============================================================================

// Widget is the contract panels compose: fixed dims chosen at construction,
// a host-assigned position, event handling, and a rendered view.
type Widget interface {
	Dims() (w, h int)
	SetPos(x, y int)
	HandleEvent(msg tea.Msg) Outcome
	View() string
}

// Outcome reports how a widget handled an event.
type Outcome struct {
	Consumed bool // the event was used and should not propagate
	Changed  bool // widget content mutated
}

// Focus is a widget's focus state.
type Focus int

const (
	Unfocused Focus = iota
	Focused
)

// String returns the display string for the focus state.
func (f Focus) String() string {
	if f == Focused {
		return "focused"
	}
	return "unfocused"
}

// =============================================================================
// SCREEN GEOMETRY
// =============================================================================

// Bounds is a rectangle in screen cells.
type Bounds struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies within the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}
