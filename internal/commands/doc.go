// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands extracts simulation directives from assistant replies.
//
// The chat system prompt asks the model to include "ACTION: pause" or
// "ACTION: resume" lines when it wants to control the simulation clock.
// This package recognizes those markers, plus a few looser forms models
// actually emit, and maps them to a Directive.
//
// # Recognized Forms
//
//   - "ACTION: pause" / "ACTION: resume" anywhere in the reply
//   - a reply that is exactly "pause" or "resume"
//   - "/pause", "/resume", "/play" anywhere in the reply
//
// Matching is case-insensitive. A reply matching both directives resolves
// to pause.
//
// # Usage
//
//	if d, ok := commands.Parse(reply); ok {
//	    controller.Apply(d)
//	}
package commands
