// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for simchat.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/simchat-tui/internal/config"
	"github.com/jeranaias/simchat-tui/internal/deepseek"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdREPL
	CmdAsk
	CmdHistory
	CmdLogin
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Plain      bool   // disable markdown rendering of replies
	Model      string // override the configured model
	ConfigPath string // load configuration from this path

	// Command-specific
	Query      string
	Subcommand string

	// Raw args (remaining after command extraction)
	Raw []string
}

const usageText = `simchat - chat control surface for a running traffic simulation

Simchat talks to a DeepSeek-compatible chat endpoint from the terminal.
Replies may carry simulation directives (ACTION: pause / ACTION: resume)
which are applied to the simulation clock.

Usage:
  simchat                    Start the TUI panel (default)
  simchat repl               Interactive REPL chat (alias: chat)
  simchat ask "question"     Ask a single question
  simchat history [cmd]      Saved transcript management
  simchat login [cmd]        API key management
  simchat version            Show version information
  simchat help               Show this help

History Commands:
  simchat history list            List saved sessions (default)
    --limit N                     Show at most N sessions (default: 20)
  simchat history show <id>       Replay a saved transcript
  simchat history export <id>     Export a transcript to a file
    --format md|html|json         Output format (default: md)
    --out PATH                    Write to PATH instead of a generated name
  simchat history delete <id>     Delete a saved session
    --confirm                     Required confirmation flag

Login Commands:
  simchat login                   Prompt for the API key (hidden input)
  simchat login status            Show whether a credential is stored
  simchat login clear             Delete the stored credential

REPL Commands (during repl):
  /help, /h           Show available commands
  /history            Show conversation history
  /status, /s         Show session status
  /pause, /resume     Drive the simulation clock manually
  /quit, /q           Exit

Global Flags:
  -q, --quiet     Minimal output
  --plain         Disable markdown rendering of replies
  --model NAME    Override the configured model
  --config PATH   Load configuration from PATH

Environment:
  DEEPSEEK_API_KEY   API key (takes precedence over the stored credential)
  DEEPSEEK_BASE_URL  Override the API endpoint
  NO_COLOR           Disable colored output

Examples:
  simchat                             Start the TUI panel
  simchat ask "Why pause the sim?"    One-shot question
  simchat ask --plain "question" > reply.md
  simchat repl --model deepseek-chat  REPL with a specific model
  simchat history list --limit 10     Recent saved sessions
  simchat history show chat_ab12cd34  Replay one transcript
  simchat history export 1 --format html

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("simchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsedArgs := parseGlobalFlags(args)

	// No remaining args, default to the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "repl", "chat":
		parseREPLArgs(&parsedArgs, remaining)
		return CmdREPL, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "history", "sessions":
		// Detailed argument parsing is done in history.go
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdHistory, parsedArgs

	case "login", "auth":
		// Detailed argument parsing is done in login.go
		if len(remaining) > 0 {
			parsedArgs.Subcommand = remaining[0]
		}
		return CmdLogin, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command, default to the TUI with the raw args preserved
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--plain", "--no-markdown":
			parsedArgs.Plain = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--model="):
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
	}

	args.Query = strings.Join(query, " ")
}

// parseREPLArgs parses repl command specific arguments.
func parseREPLArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			}
		}
	}
}

// =============================================================================
// SHARED COMMAND PLUMBING
// =============================================================================

// LoadConfigFor resolves the configuration for a CLI command, honoring the
// --config override. The resolved config becomes the process global.
func LoadConfigFor(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", args.ConfigPath, err)
		}
		config.SetGlobal(cfg)
		return cfg, nil
	}
	return config.Global(), nil
}

// buildWorker constructs the background fetch worker for repl and ask,
// honoring the --model override.
func buildWorker(cfg *config.Config, args Args) *deepseek.Worker {
	modelName := cfg.DeepSeek.Model
	if args.Model != "" {
		modelName = args.Model
	}
	return deepseek.NewWorker(cfg.DeepSeek.BaseURL, modelName, cfg.DeepSeek.Temperature)
}

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
