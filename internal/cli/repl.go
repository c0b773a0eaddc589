// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive REPL command handler for the simchat CLI.
//
// Handles "simchat repl", a readline-style loop over the same session
// controller the TUI panel uses. Replies are rendered with glamour on a
// TTY, and simulation directives carried by a reply are applied to the
// local sim clock and echoed as [sim] paused / [sim] resumed.
//
// Command: repl
// Aliases: chat
//
// Examples:
//   simchat repl                      Start the REPL (configured model)
//   simchat repl --model deepseek-chat
//   simchat repl --plain              Disable markdown rendering
//
// Interactive commands:
//   /help, /h           Show available commands
//   /history            Show conversation history
//   /status, /s         Show session status
//   /pause, /resume     Drive the simulation clock manually
//   /quit, /q           Exit (also: quit, exit, Ctrl+D)

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/simchat-tui/internal/commands"
	"github.com/jeranaias/simchat-tui/internal/config"
	"github.com/jeranaias/simchat-tui/internal/deepseek"
	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/session"
	"github.com/jeranaias/simchat-tui/internal/sim"
	"github.com/jeranaias/simchat-tui/internal/storage"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// pollInterval is how often the blocking wait checks the reply mailbox.
const pollInterval = 50 * time.Millisecond

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ReplCLI provides input history and line editing for the REPL.
type ReplCLI struct {
	line        *liner.State
	historyFile string
}

// NewReplCLI creates a ReplCLI persisting prompt history at historyFile.
func NewReplCLI(historyFile string) *ReplCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	cli := &ReplCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads prompt history from file.
func (c *ReplCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ReplCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists prompt history with owner-only permissions.
func (c *ReplCLI) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ReplCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ReplSession holds the state for an interactive REPL session.
type ReplSession struct {
	Ctrl  *session.Controller
	Clock *sim.Clock

	// Configuration
	Config   *config.Config
	Model    string
	Quiet    bool
	Markdown bool

	// Tracking
	StartTime time.Time
	Queries   int

	// Transcript persistence, nil when history is disabled
	Store *storage.Store

	// Input history handler
	InputCLI *ReplCLI

	// Closed wait loops on Ctrl+C
	interrupt chan os.Signal
}

// NewReplSession builds the REPL session from config and CLI args.
func NewReplSession(cfg *config.Config, args Args) *ReplSession {
	worker := buildWorker(cfg, args)

	modelName := cfg.DeepSeek.Model
	if args.Model != "" {
		modelName = args.Model
	}

	// The REPL types its own lines, so no prefill in the shared buffer
	ctrl := session.NewController(worker, session.Config{
		WidthPct:  cfg.Panel.WidthPct,
		HeightPct: cfg.Panel.HeightPct,
	})

	var store *storage.Store
	if cfg.Chat.HistoryEnabled {
		if path, err := cfg.HistoryDBPath(); err == nil {
			if st, err := storage.Open(path); err == nil {
				store = st
			} else {
				slog.Warn("transcript store unavailable", "error", err)
			}
		}
	}

	historyPath, err := cfg.ReplHistoryPath()
	if err != nil {
		historyPath = filepath.Join(os.TempDir(), "simchat_repl_history")
	}

	return &ReplSession{
		Ctrl:      ctrl,
		Clock:     sim.NewClock(),
		Config:    cfg,
		Model:     modelName,
		Quiet:     args.Quiet,
		Markdown:  !args.Plain && cfg.UI.Markdown,
		StartTime: time.Now(),
		Store:     store,
		InputCLI:  NewReplCLI(historyPath),
	}
}

// =============================================================================
// REPL HANDLER
// =============================================================================

// RunREPL handles the "repl" command.
func RunREPL(args Args) error {
	cfg, err := LoadConfigFor(args)
	if err != nil {
		return err
	}

	s := NewReplSession(cfg, args)
	defer s.InputCLI.Close()
	if s.Store != nil {
		defer s.Store.Close()
	}

	if !s.Quiet {
		s.printWelcome()
	}

	// Ctrl+C during a wait abandons the wait; the late reply is delivered
	// at the next prompt. While liner owns the terminal it consumes Ctrl+C
	// itself and aborts the prompt.
	s.interrupt = make(chan os.Signal, 1)
	signal.Notify(s.interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.interrupt)

	for {
		s.Clock.Step()

		// Deliver a reply whose wait was abandoned
		if s.Ctrl.PollCompletion() {
			s.deliverReply(0)
		}

		input, err := s.InputCLI.ReadInput(promptStyle.Render("simchat> "))
		if err != nil {
			// ErrPromptAborted is Ctrl+C, anything else is EOF (Ctrl+D)
			fmt.Println()
			s.printExitSummary()
			s.persist()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldContinue, err := s.handleSlashCommand(input)
			if err != nil {
				PrintError(err)
			}
			if !shouldContinue {
				s.printExitSummary()
				s.persist()
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			s.printExitSummary()
			s.persist()
			return nil
		}

		if err := s.processMessage(input); err != nil {
			PrintError(err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage submits one user line and blocks until the reply lands
// or the wait is interrupted.
func (s *ReplSession) processMessage(input string) error {
	if !s.Ctrl.Submit(input) {
		if s.Ctrl.IsAwaiting() {
			return fmt.Errorf("still waiting for the previous reply")
		}
		return nil
	}
	s.persist()

	start := time.Now()
	if !s.waitForReply() {
		return nil
	}
	s.deliverReply(time.Since(start))
	return nil
}

// waitForReply polls the completion mailbox until the reply arrives.
// Returns false when the wait was abandoned by Ctrl+C.
func (s *ReplSession) waitForReply() bool {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Clock.Step()
			if s.Ctrl.PollCompletion() {
				return true
			}
		case <-s.interrupt:
			fmt.Println()
			fmt.Println(warningStyle.Render("[Cancelled]") + dimStyle.Render(" the reply lands at your next prompt"))
			return false
		}
	}
}

// deliverReply prints the newest transcript line, applies any directive to
// the sim clock, and persists the transcript. elapsed 0 skips the stats line.
func (s *ReplSession) deliverReply(elapsed time.Duration) {
	s.Queries++
	s.persist()

	last := s.Ctrl.History().Last()
	if last == nil {
		return
	}

	fmt.Println()
	switch last.Role {
	case model.RoleAssistant:
		displayReply(last.Content, !s.Markdown)
	case model.RoleSystem:
		fmt.Println(errorStyle.Render(last.Content))
	}

	if d, ok := s.Ctrl.TakeDirective(); ok {
		if s.Clock.Apply(d) {
			s.echoDirective(d)
		} else {
			fmt.Println(dimStyle.Render(fmt.Sprintf("[sim] %s ignored, clock unchanged", d)))
		}
	}
	fmt.Println()

	if !s.Quiet && elapsed > 0 {
		fmt.Fprintf(os.Stderr, "%s %s | %s\n",
			infoStyle.Render("[stats]"),
			s.Clock.StatusLine(),
			elapsed.Round(10*time.Millisecond))
	}
}

// echoDirective announces an applied directive.
func (s *ReplSession) echoDirective(d commands.Directive) {
	switch d {
	case commands.DirectivePause:
		printSimEcho("paused")
	case commands.DirectiveResume:
		printSimEcho("resumed")
	}
}

// persist saves the transcript best-effort.
func (s *ReplSession) persist() {
	if s.Store == nil {
		return
	}
	if err := s.Store.SaveHistory(s.Ctrl.History()); err != nil {
		slog.Warn("transcript save failed", "error", err)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func (s *ReplSession) handleSlashCommand(cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}

	switch strings.ToLower(parts[0]) {
	case "/help", "/h", "/?", "/":
		printReplHelp()
		return true, nil

	case "/history":
		s.printHistory()
		return true, nil

	case "/status", "/s":
		s.printStatus()
		return true, nil

	case "/pause":
		s.Clock.Step()
		if s.Clock.Pause() {
			printSimEcho("paused")
		} else {
			fmt.Println(dimStyle.Render("[sim] already paused"))
		}
		return true, nil

	case "/resume":
		s.Clock.Step()
		if s.Clock.Resume() {
			printSimEcho("resumed")
		} else {
			fmt.Println(dimStyle.Render("[sim] already running"))
		}
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", parts[0])
	}
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func (s *ReplSession) printWelcome() {
	fmt.Println()
	fmt.Println(headerStyle.Render("simchat repl"))
	fmt.Println(separatorLine(30))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(s.Model))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Sim:"),
		commandStyle.Render(s.Clock.StatusLine()))

	if _, err := deepseek.ResolveAPIKey(); err != nil {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Credential:"),
			warningStyle.Render("missing (set DEEPSEEK_API_KEY or run 'simchat login')"))
	} else {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Credential:"),
			commandStyle.Render("configured"))
	}

	if s.Store != nil {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Transcript:"),
			dimStyle.Render(s.Store.Path()))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printReplHelp prints available commands.
func printReplHelp() {
	fmt.Println()
	fmt.Println(headerStyle.Render("Available Commands"))
	fmt.Println(separatorLine(20))
	fmt.Println()

	replCommands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/history", "Show conversation history"},
		{"/status, /s", "Show session status"},
		{"/pause", "Pause the simulation clock"},
		{"/resume", "Resume the simulation clock"},
		{"/quit, /q", "Exit"},
	}

	for _, c := range replCommands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-15s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: replies saying ACTION: pause or ACTION: resume drive the clock too"))
	fmt.Println()
}

// printStatus prints session statistics.
func (s *ReplSession) printStatus() {
	s.Clock.Step()
	elapsed := time.Since(s.StartTime).Round(time.Second)

	fmt.Println()
	fmt.Println(headerStyle.Render("Session Status"))
	fmt.Println(separatorLine(20))
	fmt.Println()

	simLine := s.Clock.StatusLine()
	simStyled := commandStyle.Render(simLine)
	if s.Clock.IsPaused() {
		simStyled = warningStyle.Render(simLine)
	}

	markdown := "off"
	if s.Markdown {
		markdown = "on"
	}

	fmt.Printf("  %s %s\n", infoStyle.Render("Model:"), commandStyle.Render(s.Model))
	fmt.Printf("  %s %s\n", infoStyle.Render("Markdown:"), markdown)
	fmt.Printf("  %s %s\n", infoStyle.Render("Sim:"), simStyled)
	fmt.Printf("  %s %s\n", infoStyle.Render("State:"), s.Ctrl.State().String())
	fmt.Printf("  %s %d messages\n", infoStyle.Render("History:"), s.Ctrl.History().Len())
	fmt.Printf("  %s %d\n", infoStyle.Render("Queries:"), s.Queries)
	fmt.Printf("  %s %s\n", infoStyle.Render("Duration:"), elapsed.String())
	if s.Store != nil {
		fmt.Printf("  %s %s\n", infoStyle.Render("Transcript:"), dimStyle.Render(s.Store.Path()))
	}

	fmt.Println()
}

// printHistory prints the conversation history.
func (s *ReplSession) printHistory() {
	msgs := s.Ctrl.History().Messages
	if len(msgs) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Conversation History"))
	fmt.Println(separatorLine(25))
	fmt.Println()

	for i, msg := range msgs {
		var role string
		switch msg.Role {
		case model.RoleUser:
			role = lipgloss.NewStyle().Foreground(styles.Cyan).Render("You")
		case model.RoleAssistant:
			role = lipgloss.NewStyle().Foreground(styles.Purple).Render("LLM")
		default:
			role = lipgloss.NewStyle().Foreground(styles.Amber).Render("System")
		}

		content := strings.ReplaceAll(msg.Content, "\n", " ")
		content = util.TruncateRunes(content, 100)

		fmt.Printf("  %d. %s: %s\n", i+1, role, content)
	}

	fmt.Println()
}

// printExitSummary prints the session summary on exit.
func (s *ReplSession) printExitSummary() {
	if s.Queries == 0 {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return
	}

	elapsed := time.Since(s.StartTime).Round(time.Second)

	fmt.Println()
	fmt.Println(headerStyle.Render("Session Summary"))
	fmt.Println(separatorLine(15))

	fmt.Printf("  %s %d\n", infoStyle.Render("Queries:"), s.Queries)
	fmt.Printf("  %s %d messages\n", infoStyle.Render("History:"), s.Ctrl.History().Len())
	fmt.Printf("  %s %s\n", infoStyle.Render("Sim:"), s.Clock.StatusLine())
	fmt.Printf("  %s %s\n", infoStyle.Render("Duration:"), elapsed.String())

	fmt.Println()
	fmt.Println(infoStyle.Render("Goodbye!"))
}
