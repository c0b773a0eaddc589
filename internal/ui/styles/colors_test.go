// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the simchat TUI.
package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// COLOR DEFINITION TESTS
// =============================================================================

func TestPaletteColors(t *testing.T) {
	colors := []struct {
		name  string
		light string
		dark  string
	}{
		{"Cyan", Cyan.Light, Cyan.Dark},
		{"CyanDeep", CyanDeep.Light, CyanDeep.Dark},
		{"Purple", Purple.Light, Purple.Dark},
		{"Emerald", Emerald.Light, Emerald.Dark},
		{"Rose", Rose.Light, Rose.Dark},
		{"Amber", Amber.Light, Amber.Dark},
		{"Surface", Surface.Light, Surface.Dark},
		{"SurfaceDim", SurfaceDim.Light, SurfaceDim.Dark},
		{"SurfaceBright", SurfaceBright.Light, SurfaceBright.Dark},
		{"Overlay", Overlay.Light, Overlay.Dark},
		{"OverlayDim", OverlayDim.Light, OverlayDim.Dark},
		{"TextPrimary", TextPrimary.Light, TextPrimary.Dark},
		{"TextSecondary", TextSecondary.Light, TextSecondary.Dark},
		{"TextMuted", TextMuted.Light, TextMuted.Dark},
		{"TextInverse", TextInverse.Light, TextInverse.Dark},
		{"TranscriptUser", TranscriptUser.Light, TranscriptUser.Dark},
		{"TranscriptAssistant", TranscriptAssistant.Light, TranscriptAssistant.Dark},
		{"TranscriptSystem", TranscriptSystem.Light, TranscriptSystem.Dark},
		{"FocusRing", FocusRing.Light, FocusRing.Dark},
	}

	for _, c := range colors {
		if c.light == "" || c.dark == "" {
			t.Errorf("%s should define both light and dark shades", c.name)
		}
		if !strings.HasPrefix(c.light, "#") || !strings.HasPrefix(c.dark, "#") {
			t.Errorf("%s should use hex shades, got light=%q dark=%q", c.name, c.light, c.dark)
		}
	}
}

func TestTranscriptColorsDistinct(t *testing.T) {
	// The three transcript roles must be tellable apart in both modes.
	if TranscriptUser.Dark == TranscriptAssistant.Dark {
		t.Error("user and assistant transcript colors should differ in dark mode")
	}
	if TranscriptUser.Light == TranscriptSystem.Light {
		t.Error("user and system transcript colors should differ in light mode")
	}
	if TranscriptAssistant.Dark == TranscriptSystem.Dark {
		t.Error("assistant and system transcript colors should differ in dark mode")
	}
}

// =============================================================================
// STATUS INDICATORS TESTS
// =============================================================================

func TestStatusIndicators(t *testing.T) {
	indicators := []struct {
		name  string
		value string
	}{
		{"Success", StatusIndicators.Success},
		{"Error", StatusIndicators.Error},
		{"Warning", StatusIndicators.Warning},
		{"Info", StatusIndicators.Info},
		{"Pending", StatusIndicators.Pending},
		{"Active", StatusIndicators.Active},
	}

	seen := make(map[string]string)
	for _, ind := range indicators {
		if ind.value == "" {
			t.Errorf("StatusIndicators.%s should be defined", ind.name)
		}
		if prev, dup := seen[ind.value]; dup {
			t.Errorf("indicator %q used for both %s and %s", ind.value, ind.name, prev)
		}
		seen[ind.value] = ind.name

		// ASCII only for maximum terminal compatibility
		for _, r := range ind.value {
			if r > 127 {
				t.Errorf("StatusIndicators.%s contains non-ASCII rune %q", ind.name, r)
			}
		}
	}
}

// =============================================================================
// RENDER FUNCTION TESTS
// =============================================================================

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name      string
		render    func(string) string
		indicator string
	}{
		{"RenderSuccess", RenderSuccess, StatusIndicators.Success},
		{"RenderError", RenderError, StatusIndicators.Error},
		{"RenderWarning", RenderWarning, StatusIndicators.Warning},
		{"RenderInfo", RenderInfo, StatusIndicators.Info},
	}

	for _, tt := range tests {
		msg := "simulation state changed"
		result := tt.render(msg)

		if result == "" {
			t.Errorf("%s() should return non-empty string", tt.name)
		}
		if !strings.Contains(result, msg) {
			t.Errorf("%s() = %q, should contain %q", tt.name, result, msg)
		}
		if !strings.Contains(result, tt.indicator) {
			t.Errorf("%s() should contain indicator %q", tt.name, tt.indicator)
		}
	}
}

func TestRenderStatus(t *testing.T) {
	msg := "credential stored"

	result := RenderStatus(true, msg)
	if !strings.Contains(result, StatusIndicators.Success) {
		t.Error("RenderStatus(true, msg) should use success indicator")
	}

	result = RenderStatus(false, msg)
	if !strings.Contains(result, StatusIndicators.Error) {
		t.Error("RenderStatus(false, msg) should use error indicator")
	}
}

func TestRenderFunctionsEmptyString(t *testing.T) {
	funcs := []struct {
		name   string
		result string
	}{
		{"RenderSuccess", RenderSuccess("")},
		{"RenderError", RenderError("")},
		{"RenderWarning", RenderWarning("")},
		{"RenderInfo", RenderInfo("")},
	}

	for _, f := range funcs {
		// Should still contain the indicator even with empty message
		if f.result == "" {
			t.Errorf("%s(\"\") should return non-empty (at least the indicator)", f.name)
		}
	}
}
