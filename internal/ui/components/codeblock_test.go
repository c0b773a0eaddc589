// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
package components

import (
	"strings"
	"testing"
)

// =============================================================================
// INLINE CODE TESTS
// =============================================================================

func TestParseInlineCode(t *testing.T) {
	result := ParseInlineCode("run `pause` now")

	if !strings.Contains(result, "pause") {
		t.Errorf("result should contain the code text, got %q", result)
	}
	if strings.Contains(result, "`") {
		t.Errorf("balanced backticks should be stripped, got %q", result)
	}
}

func TestParseInlineCodeUnclosed(t *testing.T) {
	input := "tick `unclosed"
	result := ParseInlineCode(input)

	if result != input {
		t.Errorf("unclosed backtick should render literally, got %q", result)
	}
}

func TestParseInlineCodePlainText(t *testing.T) {
	input := "no code here"
	if result := ParseInlineCode(input); result != input {
		t.Errorf("plain text should pass through, got %q", result)
	}
}

// =============================================================================
// REPLY BODY TESTS
// =============================================================================

func TestRenderReplyBodyPlainText(t *testing.T) {
	result := RenderReplyBody("Slowing the simulation down.", 80)
	if !strings.Contains(result, "Slowing the simulation down.") {
		t.Errorf("plain reply should pass through, got %q", result)
	}
}

func TestRenderReplyBodyFencedBlock(t *testing.T) {
	reply := "Here is the loop:\n```go\nfor i := 0; i < 3; i++ {\n\tfmt.Println(i)\n}\n```\nDone."
	result := RenderReplyBody(reply, 80)

	if !strings.Contains(result, "Here is the loop:") {
		t.Error("prose before the fence should survive")
	}
	if !strings.Contains(result, "Done.") {
		t.Error("prose after the fence should survive")
	}
	if !strings.Contains(result, "Println") {
		t.Error("code content should be rendered")
	}
	if strings.Contains(result, "```") {
		t.Error("fence markers should be consumed")
	}
}

func TestRenderReplyBodyUnclosedFence(t *testing.T) {
	reply := "```python\nprint('hi')"
	result := RenderReplyBody(reply, 80)

	if !strings.Contains(result, "print") {
		t.Errorf("unclosed fence should still render the code, got %q", result)
	}
}

// =============================================================================
// CODE BLOCK TESTS
// =============================================================================

func TestNewCodeBlockDefaults(t *testing.T) {
	cb := NewCodeBlock("go", "package main")
	if cb.MaxWidth != 80 {
		t.Errorf("default MaxWidth = %d, want 80", cb.MaxWidth)
	}
}

func TestCodeBlockRenderWithLanguage(t *testing.T) {
	cb := NewCodeBlock("go", "package main\n\nfunc main() {}")
	result := cb.Render()

	if !strings.Contains(result, "go") {
		t.Error("render should include the language badge")
	}
	if !strings.Contains(result, "main") {
		t.Error("render should include the code")
	}
}

func TestCodeBlockRenderUnknownLanguage(t *testing.T) {
	cb := NewCodeBlock("", "just some text without a clear language")
	result := cb.Render()

	if !strings.Contains(result, "text without") {
		t.Errorf("fallback render should keep the content, got %q", result)
	}
}

func TestCodeBlockNarrowWidthFloor(t *testing.T) {
	cb := NewCodeBlock("go", "x := 1")
	cb.SetMaxWidth(5)

	// Floor keeps the box renderable instead of collapsing
	if result := cb.Render(); result == "" {
		t.Error("narrow render should not collapse to empty")
	}
}
