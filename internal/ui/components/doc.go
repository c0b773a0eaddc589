// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the simchat TUI.
//
// Widgets follow a narrow contract: fixed dimensions chosen at construction,
// a host-assigned screen position, per-event handling reporting an Outcome,
// and a rendered view. Focus follows the mouse. A non-autofocus widget is
// Focused exactly while the pointer lies within its bounds, recomputed on
// every motion event, and ignores keys otherwise.
//
// # Key Types
//
//   - Widget: the measure/layout/event/draw contract
//   - ChatInput: hover-focused multiline text entry over a shared edit buffer
//   - Button: hoverable clickable label with a drain-read click slot
//   - Spinner: bubbles spinner with ASCII frames for the busy send slot
//   - CodeBlock: chroma-highlighted fenced code in assistant replies
//
// # Usage
//
//	input := components.NewChatInput(theme, ctrl.Input(), 40, 6)
//	input.SetPos(2, 10)
//	outcome := input.HandleEvent(msg)
//	if outcome.Changed {
//	    // content mutated
//	}
package components
