// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Saved transcript command handler for the simchat CLI.
//
// Handles "simchat history", which lists and replays the transcripts
// the TUI and REPL persist to the sqlite store. Sessions are addressed
// by 1-based list index or by full ID.
//
// Command: history [list|show|export|delete]
//
// Examples:
//   simchat history                   List saved sessions
//   simchat history list --limit 10   Most recent 10 sessions
//   simchat history show 1            Replay the newest session
//   simchat history show chat_ab12cd34-...
//   simchat history export 1 --format html
//   simchat history export 2 --out notes/session.md
//   simchat history delete 3 --confirm

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/simchat-tui/internal/config"
	"github.com/jeranaias/simchat-tui/internal/export"
	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/storage"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// defaultListLimit caps "history list" output.
const defaultListLimit = 20

// RunHistory handles the "history" command.
func RunHistory(args Args) error {
	cfg, err := LoadConfigFor(args)
	if err != nil {
		return err
	}

	store, err := openTranscriptStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list":
		return historyList(store, parser.FlagIntOrDefault("limit", defaultListLimit))
	case "show":
		return historyShow(store, parser.Positional(1), args, cfg)
	case "export":
		return historyExport(store, parser.Positional(1), parser)
	case "delete":
		return historyDelete(store, parser.Positional(1), parser.BoolFlag("confirm"))
	default:
		return fmt.Errorf("unknown history subcommand: %s\nUsage: simchat history [list|show|export|delete]", parser.Subcommand())
	}
}

// openTranscriptStore opens the transcript database at the configured path.
// Reading saved sessions works even when saving is disabled.
func openTranscriptStore(cfg *config.Config) (*storage.Store, error) {
	path, err := cfg.HistoryDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve transcript path: %w", err)
	}
	return storage.Open(path)
}

// =============================================================================
// HISTORY LIST
// =============================================================================

// historyList prints the saved sessions, newest first.
func historyList(store *storage.Store, limit int) error {
	sessions, err := store.ListSessions(limit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println()
		fmt.Println("No saved sessions found.")
		fmt.Println()
		fmt.Println("Sessions are saved while you chat in the TUI or REPL.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Saved Sessions"))
	fmt.Println(separatorLine(64))
	fmt.Println()

	fmt.Printf("%-4s %-16s %-6s %-14s %s\n", "#", "ID", "Msgs", "Updated", "Preview")
	fmt.Println(strings.Repeat("-", 64))

	for i, s := range sessions {
		id := util.TruncateRunes(s.ID, 16)
		updated := formatTimeAgo(s.UpdatedAt)
		if len(updated) > 13 {
			updated = s.UpdatedAt.Format("01/02 15:04")
		}
		preview := util.TruncateRunes(strings.ReplaceAll(s.Preview, "\n", " "), 24)

		fmt.Printf("%-4d %-16s %-6d %-14s %s\n", i+1, id, s.MessageCount, updated, preview)
	}

	fmt.Println()
	fmt.Printf("Total: %d session(s)\n", len(sessions))
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  simchat history show <n>              Replay a transcript")
	fmt.Println("  simchat history export <n>            Export to md, html, or json")
	fmt.Println("  simchat history delete <n> --confirm  Delete a session")
	fmt.Println()

	return nil
}

// =============================================================================
// HISTORY SHOW
// =============================================================================

// historyShow replays one saved transcript.
func historyShow(store *storage.Store, idOrIndex string, args Args, cfg *config.Config) error {
	if idOrIndex == "" {
		return fmt.Errorf("session required\nUsage: simchat history show <n|id>")
	}

	h, err := loadSessionByIDOrIndex(store, idOrIndex)
	if err != nil {
		return err
	}

	plain := args.Plain || !cfg.UI.Markdown

	fmt.Println()
	fmt.Printf("%s %s\n",
		headerStyle.Render("Transcript"),
		dimStyle.Render(h.ID))
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d messages, started %s",
		h.Len(), h.CreatedAt.Format("2006-01-02 15:04"))))
	fmt.Println(separatorLine(64))
	fmt.Println()

	userLabel := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	llmLabel := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)

	for _, msg := range h.Messages {
		switch msg.Role {
		case model.RoleUser:
			fmt.Printf("%s %s\n", userLabel.Render("You:"), msg.Content)
		case model.RoleAssistant:
			fmt.Println(llmLabel.Render("LLM:"))
			displayReply(msg.Content, plain)
		default:
			fmt.Println(dimStyle.Render(msg.Content))
		}
		fmt.Println()
	}

	return nil
}

// =============================================================================
// HISTORY EXPORT
// =============================================================================

// historyExport writes one saved transcript to a shareable document.
func historyExport(store *storage.Store, idOrIndex string, parser *ArgParser) error {
	if idOrIndex == "" {
		return fmt.Errorf("session required\nUsage: simchat history export <n|id> [--format md|html|json] [--out path]")
	}

	h, err := loadSessionByIDOrIndex(store, idOrIndex)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	exporter, err := export.ExporterFor(parser.FlagOrDefault("format", "md"), opts)
	if err != nil {
		return err
	}

	var path string
	if out := parser.Flag("out"); out != "" {
		path, err = export.ExportToPath(h, exporter, out)
	} else {
		path, err = export.ExportToFile(h, exporter, opts)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s exported %s\n", commandStyle.Render("[OK]"), path)
	return nil
}

// =============================================================================
// HISTORY DELETE
// =============================================================================

// historyDelete removes one saved session.
func historyDelete(store *storage.Store, idOrIndex string, confirm bool) error {
	if idOrIndex == "" {
		return fmt.Errorf("session required\nUsage: simchat history delete <n|id> --confirm")
	}
	if !confirm {
		return fmt.Errorf("deletion requires --confirm\nUsage: simchat history delete <n|id> --confirm")
	}

	h, err := loadSessionByIDOrIndex(store, idOrIndex)
	if err != nil {
		return err
	}

	if err := store.DeleteSession(h.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	fmt.Printf("%s deleted %s\n", commandStyle.Render("[OK]"), h.ID)
	return nil
}

// =============================================================================
// LOOKUP
// =============================================================================

// loadSessionByIDOrIndex loads a session by 1-based list index or by ID.
func loadSessionByIDOrIndex(store *storage.Store, idOrIndex string) (*model.History, error) {
	if idx, err := strconv.Atoi(idOrIndex); err == nil {
		sessions, err := store.ListSessions(idx)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		if idx < 1 || idx > len(sessions) {
			return nil, fmt.Errorf("session #%d not found", idx)
		}
		return store.LoadHistory(sessions[idx-1].ID)
	}

	h, err := store.LoadHistory(idOrIndex)
	if err != nil {
		return nil, fmt.Errorf("session '%s' not found", idOrIndex)
	}
	return h, nil
}

// formatTimeAgo renders a relative timestamp for the list table.
func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case duration < 7*24*time.Hour:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
