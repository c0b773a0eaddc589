// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat panel host for the simchat TUI.

The chat package implements the top-level Bubble Tea model: a simulation
status frame with the LLM chat panel floating over it. The panel drives a
traffic-simulation clock through directives parsed from assistant replies.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model:
  - Session controller ownership (submit, poll, directive drain)
  - Simulation clock stepping, once per frame
  - Panel widgets: hover-focused input, resize buttons, send button
  - Transcript persistence, best effort, on every change

## Frame Loop (messages.go)

A ~20 fps tick drives clock stepping, completion polling, and directive
application, all on the program goroutine. The background fetch worker
communicates only through its result mailbox, so no session state is ever
locked.

## Layout (layout.go)

Panel geometry derives from the terminal size and the controller's panel
percentages. Rendering and mouse hit testing share the same numbers.

## View Rendering (view.go)

Rendering logic for the complete frame:
  - Header with the completion model and session state
  - Floating panel: title row, role-colored transcript, input row
  - Code block highlighting for fenced assistant replies
  - Status bar with sim clock, state, and shortcuts

# Usage

	ctrl := session.NewController(worker, session.DefaultConfig())
	clock := sim.NewClock()
	m := chat.New(styles.NewTheme(), ctrl, clock)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
*/
package chat
