// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for the simchat CLI.
//
// Handles "simchat ask", one exchange with the model: submit the
// question, block until the reply lands, print it, and note any
// simulation directive the reply carried. The reply body goes to
// stdout; everything else goes to stderr so piped output stays clean.
//
// Command: ask [question]
//
// Examples:
//   simchat ask "Why pause the simulation at rush hour?"
//   simchat ask --plain "question" > reply.md
//   simchat ask --model deepseek-chat "question"

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/session"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer shared by ask and the REPL.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain text when the renderer cannot be built
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply prints a reply body, markdown-rendered on a TTY unless
// plain output was requested.
func displayReply(response string, plain bool) {
	if !plain && IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
		return
	}
	fmt.Println(response)
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// RunAsk handles the "ask" command.
func RunAsk(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return fmt.Errorf("usage: simchat ask \"question\"")
	}

	cfg, err := LoadConfigFor(args)
	if err != nil {
		return err
	}

	ctrl := session.NewController(buildWorker(cfg, args), session.Config{})
	if !ctrl.Submit(query) {
		return fmt.Errorf("nothing to ask")
	}

	for !ctrl.PollCompletion() {
		time.Sleep(pollInterval)
	}

	last := ctrl.History().Last()
	if last == nil {
		return fmt.Errorf("no reply received")
	}
	if last.Role == model.RoleSystem {
		// The transcript failure line, e.g. "LLM error: ..."
		return fmt.Errorf("%s", last.Content)
	}

	displayReply(last.Content, args.Plain || !cfg.UI.Markdown)

	if d, ok := ctrl.TakeDirective(); ok {
		fmt.Fprintf(os.Stderr, "%s directive: %s\n", simStyle.Render("[sim]"), d)
	}

	return nil
}
