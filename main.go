// simchat - a terminal chat control surface for a running traffic simulation.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jeranaias/simchat-tui/internal/cli"
	"github.com/jeranaias/simchat-tui/internal/config"
	"github.com/jeranaias/simchat-tui/internal/deepseek"
	"github.com/jeranaias/simchat-tui/internal/session"
	"github.com/jeranaias/simchat-tui/internal/sim"
	"github.com/jeranaias/simchat-tui/internal/storage"
	"github.com/jeranaias/simchat-tui/internal/ui/chat"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for the config watcher
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdREPL:
		runOrExit(cli.RunREPL, args)
	case cli.CmdAsk:
		runOrExit(cli.RunAsk, args)
	case cli.CmdHistory:
		runOrExit(cli.RunHistory, args)
	case cli.CmdLogin:
		runOrExit(cli.RunLogin, args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runOrExit runs a CLI handler and exits non-zero on failure.
func runOrExit(handler func(cli.Args) error, args cli.Args) {
	if err := handler(args); err != nil {
		cli.PrintError(err)
		os.Exit(1)
	}
}

// runTUI starts the TUI panel.
func runTUI(args cli.Args) {
	cfg, err := cli.LoadConfigFor(args)
	if err != nil {
		cli.PrintError(err)
		os.Exit(1)
	}

	// Log lines would corrupt the alternate screen, so slog goes to a file
	setupLogging(cfg)

	styles.ApplyColorMode(cfg.UI.Theme)
	theme := styles.NewTheme()

	modelName := cfg.DeepSeek.Model
	if args.Model != "" {
		modelName = args.Model
	}
	worker := deepseek.NewWorker(cfg.DeepSeek.BaseURL, modelName, cfg.DeepSeek.Temperature)

	ctrl := session.NewController(worker, session.Config{
		Prefill:   cfg.Chat.Prefill,
		WidthPct:  cfg.Panel.WidthPct,
		HeightPct: cfg.Panel.HeightPct,
	})
	clock := sim.NewClock()

	// Transcript persistence is best-effort; the panel runs without it
	var store *storage.Store
	if cfg.Chat.HistoryEnabled {
		if path, err := cfg.HistoryDBPath(); err == nil {
			if store, err = storage.Open(path); err != nil {
				slog.Warn("transcript store unavailable", "error", err)
			}
		}
	}
	if store != nil {
		defer store.Close()
	}

	m := chat.NewWithStore(theme, ctrl, clock, store, modelName, cfg.UI.Markdown)

	// All-motion tracking is required for hover focus
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, opts...)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Hot-reload display preferences when the config file changes on disk
	watcher, err := config.NewWatcher(500*time.Millisecond, func(reloaded *config.Config) {
		programMu.Lock()
		ref := programRef
		programMu.Unlock()
		if ref != nil {
			ref.Send(chat.ConfigReloadedMsg{Cfg: reloaded})
		}
	})
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else if err := watcher.Watch(); err != nil {
		slog.Warn("config watcher failed to start", "error", err)
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running simchat: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging routes slog to a rotating file under the config directory.
func setupLogging(cfg *config.Config) {
	path, err := cfg.LogPath()
	if err != nil {
		return
	}

	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     28, // days
	}

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, opts)))
}

// parseLogLevel maps the config log level onto slog levels.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
