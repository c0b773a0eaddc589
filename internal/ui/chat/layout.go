// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel host for the TUI.
//
// This file computes the panel geometry. Everything is derived from the
// terminal size and the controller's panel percentages, so the same numbers
// feed both rendering and mouse hit testing.
package chat

import (
	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// GEOMETRY CONSTANTS
// =============================================================================

// PanelTitle is the heading shown in the panel's title row.
const PanelTitle = "LLM Chat (Sylvia's Team)"

const (
	// Panel anchoring, as percentages of the terminal. The panel's left
	// edge sits at 2% of the width and its top edge at 65% of the height,
	// clamped to keep the whole panel between the header and status rows.
	panelLeftPct = 2
	panelTopPct  = 65

	// Input widget share of the panel, with cell floors so the input
	// stays usable when the panel shrinks.
	inputWidthPct  = 65
	inputHeightPct = 30
	minInputWidth  = 28
	minInputHeight = 4

	// Transcript lines wrap to this share of the panel interior.
	wrapPct      = 90
	minWrapWidth = 10

	// Panel floors. Width fits the title row and the input row with the
	// send button beside it; height fits title, transcript, and input.
	minPanelWidth  = 40
	minPanelHeight = 9

	// Send button geometry: "Send" plus one cell of padding each side,
	// and a one-cell gap between the input box and the button.
	sendButtonWidth = 6
	inputButtonGap  = 1
)

// =============================================================================
// LAYOUT
// =============================================================================

// layout is the resolved panel geometry in terminal cells. All positions
// are absolute terminal coordinates, zero-based, matching mouse events.
type layout struct {
	// Panel outer box, border included.
	panelX, panelY int
	panelW, panelH int

	// Interior content area, inside border and padding.
	interiorX, interiorY int
	interiorW, interiorH int

	// Title row.
	titleY  int
	shrinkX int
	growX   int

	// Transcript block.
	transcriptH int
	wrapW       int

	// Input row. The send button centers on the input box vertically.
	inputRowY      int
	inputW, inputH int
	sendX, sendY   int
}

// roundPct scales v by pct percent, rounding half up.
func roundPct(v, pct int) int {
	return (v*pct + 50) / 100
}

// computeLayout resolves the panel geometry for a terminal of termW x termH
// cells. Row 0 is the header and the last row is the status bar; the panel
// floats over the canvas between them.
func computeLayout(termW, termH, widthPct, heightPct int) layout {
	var lay layout
	if termW <= 0 || termH <= 0 {
		return lay
	}

	canvasH := termH - 2
	if canvasH < 1 {
		canvasH = 1
	}

	// Panel size from the controller's percentages, floored so the fixed
	// rows always fit, capped at the terminal.
	lay.panelW = roundPct(termW, widthPct)
	if lay.panelW < minPanelWidth {
		lay.panelW = minPanelWidth
	}
	if lay.panelW > termW {
		lay.panelW = termW
	}

	lay.panelH = roundPct(termH, heightPct)
	if lay.panelH < minPanelHeight {
		lay.panelH = minPanelHeight
	}
	if lay.panelH > canvasH {
		lay.panelH = canvasH
	}

	// Panel position. Clamp so the panel never overlaps the header or
	// status rows and never runs off the right edge.
	lay.panelX = roundPct(termW, panelLeftPct)
	if lay.panelX+lay.panelW > termW {
		lay.panelX = termW - lay.panelW
	}
	if lay.panelX < 0 {
		lay.panelX = 0
	}

	lay.panelY = roundPct(termH, panelTopPct)
	if lay.panelY+lay.panelH > termH-1 {
		lay.panelY = termH - 1 - lay.panelH
	}
	if lay.panelY < 1 {
		lay.panelY = 1
	}

	// Interior: one border cell plus one padding cell each side, border
	// rows top and bottom.
	lay.interiorX = lay.panelX + 2
	lay.interiorY = lay.panelY + 1
	lay.interiorW = lay.panelW - 4
	if lay.interiorW < 1 {
		lay.interiorW = 1
	}
	lay.interiorH = lay.panelH - 2
	if lay.interiorH < 1 {
		lay.interiorH = 1
	}

	// Title row with the resize buttons after the heading.
	lay.titleY = lay.interiorY
	lay.shrinkX = lay.interiorX + util.StringWidth(PanelTitle) + 2
	lay.growX = lay.shrinkX + 3 + 1

	// Input widget share of the panel, floored, then capped so the send
	// button still fits beside it.
	lay.inputW = roundPct(lay.panelW, inputWidthPct)
	if lay.inputW < minInputWidth {
		lay.inputW = minInputWidth
	}
	if limit := lay.interiorW - sendButtonWidth - inputButtonGap; lay.inputW > limit {
		lay.inputW = limit
	}

	lay.inputH = roundPct(lay.panelH, inputHeightPct)
	if lay.inputH < minInputHeight {
		lay.inputH = minInputHeight
	}
	if limit := lay.interiorH - 2; lay.inputH > limit {
		lay.inputH = limit
	}
	if lay.inputH < 1 {
		lay.inputH = 1
	}

	// Transcript fills the space between title row and input row.
	lay.transcriptH = lay.interiorH - 1 - lay.inputH
	if lay.transcriptH < 0 {
		lay.transcriptH = 0
	}

	lay.wrapW = roundPct(lay.interiorW, wrapPct)
	if lay.wrapW < minWrapWidth {
		lay.wrapW = minWrapWidth
	}

	lay.inputRowY = lay.interiorY + 1 + lay.transcriptH
	lay.sendX = lay.interiorX + lay.inputW + inputButtonGap
	lay.sendY = lay.inputRowY + (lay.inputH-1)/2

	return lay
}
