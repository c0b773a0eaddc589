// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands extracts simulation directives from assistant replies.
package commands

import "strings"

// =============================================================================
// DIRECTIVE TYPE
// =============================================================================

// Directive is a simulation control action recognized in an assistant reply.
type Directive int

const (
	DirectiveNone Directive = iota
	DirectivePause
	DirectiveResume
)

// String returns the directive name for logs and status lines.
func (d Directive) String() string {
	switch d {
	case DirectivePause:
		return "pause"
	case DirectiveResume:
		return "resume"
	default:
		return "none"
	}
}

// =============================================================================
// PARSER
// =============================================================================

// Parse scans an assistant reply for a simulation directive. Matching is
// case-insensitive and substring-based, so markers survive being embedded
// in prose. The model is prompted to emit "ACTION: pause" or
// "ACTION: resume" lines, but bare "pause"/"resume" replies and slash
// forms are accepted too. When a reply matches both, pause wins.
func Parse(reply string) (Directive, bool) {
	lower := strings.ToLower(reply)
	trimmed := strings.TrimSpace(lower)

	switch {
	case strings.Contains(lower, "action: pause"),
		trimmed == "pause",
		strings.Contains(lower, "/pause"):
		return DirectivePause, true

	case strings.Contains(lower, "action: resume"),
		trimmed == "resume",
		strings.Contains(lower, "/resume"),
		strings.Contains(lower, "/play"):
		return DirectiveResume, true
	}

	return DirectiveNone, false
}
