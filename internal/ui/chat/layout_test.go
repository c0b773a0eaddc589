// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
)

func TestComputeLayout_KnownSizes(t *testing.T) {
	tests := []struct {
		name           string
		termW, termH   int
		widthPct       int
		heightPct      int
		panelX, panelY int
		panelW, panelH int
		inputW, inputH int
		transcriptH    int
		wrapW          int
	}{
		{
			// 35% of 100 cols is under the panel floor, so the floor wins.
			name:  "default percentages on a medium terminal",
			termW: 100, termH: 40, widthPct: 35, heightPct: 35,
			panelX: 2, panelY: 25, panelW: 40, panelH: 14,
			inputW: 28, inputH: 4, transcriptH: 7, wrapW: 32,
		},
		{
			name:  "maximum percentages on a large terminal",
			termW: 200, termH: 60, widthPct: 50, heightPct: 60,
			panelX: 4, panelY: 23, panelW: 100, panelH: 36,
			inputW: 65, inputH: 11, transcriptH: 22, wrapW: 86,
		},
		{
			name:  "minimum percentages on a small terminal",
			termW: 50, termH: 12, widthPct: 15, heightPct: 15,
			panelX: 1, panelY: 2, panelW: 40, panelH: 9,
			inputW: 28, inputH: 4, transcriptH: 2, wrapW: 32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lay := computeLayout(tt.termW, tt.termH, tt.widthPct, tt.heightPct)

			if lay.panelX != tt.panelX || lay.panelY != tt.panelY {
				t.Errorf("panel position = (%d,%d), want (%d,%d)",
					lay.panelX, lay.panelY, tt.panelX, tt.panelY)
			}
			if lay.panelW != tt.panelW || lay.panelH != tt.panelH {
				t.Errorf("panel size = %dx%d, want %dx%d",
					lay.panelW, lay.panelH, tt.panelW, tt.panelH)
			}
			if lay.inputW != tt.inputW || lay.inputH != tt.inputH {
				t.Errorf("input size = %dx%d, want %dx%d",
					lay.inputW, lay.inputH, tt.inputW, tt.inputH)
			}
			if lay.transcriptH != tt.transcriptH {
				t.Errorf("transcript height = %d, want %d", lay.transcriptH, tt.transcriptH)
			}
			if lay.wrapW != tt.wrapW {
				t.Errorf("wrap width = %d, want %d", lay.wrapW, tt.wrapW)
			}
		})
	}
}

func TestComputeLayout_Invariants(t *testing.T) {
	sizes := []struct{ w, h int }{
		{80, 24}, {100, 30}, {120, 40}, {160, 50}, {200, 60}, {60, 20},
	}
	pcts := []struct{ w, h int }{
		{15, 15}, {35, 35}, {50, 60}, {20, 50}, {50, 15},
	}

	for _, size := range sizes {
		for _, pct := range pcts {
			lay := computeLayout(size.w, size.h, pct.w, pct.h)

			// Panel stays between the header row and the status row.
			if lay.panelY < 1 {
				t.Errorf("size %dx%d pct %d/%d: panelY = %d, overlaps header",
					size.w, size.h, pct.w, pct.h, lay.panelY)
			}
			if lay.panelY+lay.panelH > size.h-1 {
				t.Errorf("size %dx%d pct %d/%d: panel bottom = %d, overlaps status row",
					size.w, size.h, pct.w, pct.h, lay.panelY+lay.panelH)
			}
			if lay.panelX < 0 || lay.panelX+lay.panelW > size.w {
				t.Errorf("size %dx%d pct %d/%d: panel x span [%d,%d) exceeds width",
					size.w, size.h, pct.w, pct.h, lay.panelX, lay.panelX+lay.panelW)
			}

			// Interior rows are fully assigned: title + transcript + input.
			if got := 1 + lay.transcriptH + lay.inputH; got != lay.interiorH {
				t.Errorf("size %dx%d pct %d/%d: rows %d, interior %d",
					size.w, size.h, pct.w, pct.h, got, lay.interiorH)
			}

			// The send button fits beside the input box.
			if lay.inputW+inputButtonGap+sendButtonWidth > lay.interiorW {
				t.Errorf("size %dx%d pct %d/%d: input row %d wider than interior %d",
					size.w, size.h, pct.w, pct.h,
					lay.inputW+inputButtonGap+sendButtonWidth, lay.interiorW)
			}

			// Floors hold whenever the panel is at or above its own floor.
			if lay.panelW >= minPanelWidth && lay.inputW < minInputWidth {
				t.Errorf("size %dx%d pct %d/%d: input width %d below floor",
					size.w, size.h, pct.w, pct.h, lay.inputW)
			}
			if lay.inputH < minInputHeight && lay.panelH >= minPanelHeight {
				t.Errorf("size %dx%d pct %d/%d: input height %d below floor",
					size.w, size.h, pct.w, pct.h, lay.inputH)
			}
		}
	}
}

func TestComputeLayout_ZeroTerminal(t *testing.T) {
	lay := computeLayout(0, 0, 35, 35)
	if lay.panelW != 0 || lay.panelH != 0 {
		t.Errorf("zero terminal produced panel %dx%d, want zero", lay.panelW, lay.panelH)
	}
}

func TestComputeLayout_ResizeStepChangesGeometry(t *testing.T) {
	before := computeLayout(200, 60, 35, 35)
	after := computeLayout(200, 60, 40, 40)

	if after.panelW <= before.panelW {
		t.Errorf("grown panel width = %d, want > %d", after.panelW, before.panelW)
	}
	if after.panelH <= before.panelH {
		t.Errorf("grown panel height = %d, want > %d", after.panelH, before.panelH)
	}
	if after.inputW <= before.inputW {
		t.Errorf("grown input width = %d, want > %d", after.inputW, before.inputW)
	}
}

func TestRoundPct(t *testing.T) {
	tests := []struct {
		v, pct, want int
	}{
		{100, 35, 35},
		{100, 2, 2},
		{41, 90, 37}, // 36.9 rounds up
		{40, 65, 26},
		{3, 65, 2}, // 1.95 rounds up
	}
	for _, tt := range tests {
		if got := roundPct(tt.v, tt.pct); got != tt.want {
			t.Errorf("roundPct(%d, %d) = %d, want %d", tt.v, tt.pct, got, tt.want)
		}
	}
}
