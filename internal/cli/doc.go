// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for simchat.
//
// This package implements every terminal entry point of the application:
// the argument parser, the line-mode REPL, one-shot queries, transcript
// management, and credential login. Running with no command starts the
// full-screen TUI.
//
// # Key Types
//
//   - Command: enumeration of all available CLI commands
//   - Args: parsed command-line arguments with global and command flags
//   - ArgParser: positional/flag access for subcommand grammars
//   - ReplCLI: the interactive line-mode session
//
// # Usage
//
// Parse and dispatch commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    return cli.RunAsk(args)
//	case cli.CmdREPL:
//	    return cli.RunREPL(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Core commands:
//   - (none): full-screen TUI with the floating chat panel
//   - repl: interactive line-mode chat with slash commands
//   - ask: single question, reply on stdout
//   - history: list, show, export, and delete saved transcripts
//   - login: store, inspect, or clear the DeepSeek API key
//
// Global flags --model, --config, --plain, and -q apply before the
// command word. Output renders markdown only when stdout is a terminal.
package cli
