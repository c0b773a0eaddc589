// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat session controller that mediates
// between the input surface, the transcript, and the background fetch worker.
package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/simchat-tui/internal/commands"
	"github.com/jeranaias/simchat-tui/internal/deepseek"
	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/textedit"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// Presentation and geometry constants.
const (
	// DisplayWindow is the number of trailing transcript entries rendered
	// per frame. The full history is retained for request context.
	DisplayWindow = 6

	// ResizeStep is how many percentage points one resize click moves the
	// chat panel, applied to width and height together.
	ResizeStep = 5

	// Panel percentage bounds. Width and height clamp independently.
	MinWidthPct  = 15
	MaxWidthPct  = 50
	MinHeightPct = 15
	MaxHeightPct = 60
)

// ReadyNotice is the system line seeded into a fresh transcript.
const ReadyNotice = "Chatbox ready."

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the controller's request state.
type State int

const (
	// StateIdle means no request is outstanding; submit is accepted.
	StateIdle State = iota

	// StateAwaitingReply means one fetch is in flight; submit is refused
	// until its result has been polled.
	StateAwaitingReply
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting reply"
	default:
		return "unknown"
	}
}

// ResizeDirection selects which way a resize click moves the panel.
type ResizeDirection int

const (
	// Shrink reduces both panel percentages by ResizeStep, to the floors.
	Shrink ResizeDirection = iota

	// Grow raises both panel percentages by ResizeStep, to the ceilings.
	Grow
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the transcript, the input buffer, and the single
// outstanding fetch. It is confined to the frame loop goroutine: the worker
// communicates only through its mailbox, so no locking is needed here.
type Controller struct {
	history *model.History
	input   *textedit.Buffer
	fetcher deepseek.Fetcher

	state   State
	pending *deepseek.Pending

	// Directive mailbox. Refilled by each successfully parsed reply,
	// drained by TakeDirective.
	directive    commands.Directive
	hasDirective bool

	widthPct  int
	heightPct int
}

// Config holds construction parameters for the controller.
type Config struct {
	// Prefill is the initial input buffer content, cursor at the end.
	Prefill string

	// WidthPct and HeightPct seed the panel geometry. Zero values fall
	// back to the defaults.
	WidthPct  int
	HeightPct int
}

// DefaultConfig returns the default controller configuration.
func DefaultConfig() Config {
	return Config{
		WidthPct:  35,
		HeightPct: 35,
	}
}

// NewController creates a controller with a ready notice in the transcript
// and the prefill text loaded into the input buffer.
func NewController(fetcher deepseek.Fetcher, cfg Config) *Controller {
	if cfg.WidthPct == 0 {
		cfg.WidthPct = DefaultConfig().WidthPct
	}
	if cfg.HeightPct == 0 {
		cfg.HeightPct = DefaultConfig().HeightPct
	}

	history := model.NewHistory()
	history.AppendSystem(ReadyNotice)

	return &Controller{
		history:   history,
		input:     textedit.NewWithValue(cfg.Prefill),
		fetcher:   fetcher,
		state:     StateIdle,
		widthPct:  clamp(cfg.WidthPct, MinWidthPct, MaxWidthPct),
		heightPct: clamp(cfg.HeightPct, MinHeightPct, MaxHeightPct),
	}
}

// =============================================================================
// SUBMIT / POLL / DRAIN
// =============================================================================

// Submit sends text as a user message. It returns false without side
// effects when the trimmed text is empty or a fetch is already outstanding.
//
// On acceptance it appends the user message to the transcript, clears the
// input buffer, and starts exactly one background fetch carrying a snapshot
// of the transcript as it stood before this message.
func (c *Controller) Submit(text string) bool {
	trimmed := strings.TrimSpace(norm.NFC.String(text))
	if trimmed == "" || c.state == StateAwaitingReply {
		return false
	}

	snapshot := c.history.Snapshot(deepseek.ContextWindow)
	c.history.AppendUser(trimmed)
	c.input.Clear()

	c.pending = c.fetcher.Fetch(snapshot, trimmed)
	c.state = StateAwaitingReply
	return true
}

// SubmitInput submits the current input buffer content.
func (c *Controller) SubmitInput() bool {
	return c.Submit(c.input.Value())
}

// PollCompletion checks the outstanding fetch without blocking. It returns
// true when a result was consumed and the transcript changed.
//
// A successful reply is appended as an assistant message and re-parsed for
// a pause/resume directive, replacing the mailbox contents (or clearing the
// mailbox when no marker matches). A failure is appended as a system line
// and leaves the mailbox untouched. Either way the controller returns to
// idle and the next submit is accepted.
func (c *Controller) PollCompletion() bool {
	if c.pending == nil {
		return false
	}
	res, ok := c.pending.Poll()
	if !ok {
		return false
	}

	c.pending = nil
	c.state = StateIdle

	if res.Err != nil {
		c.history.AppendSystem(fmt.Sprintf("LLM error: %v", res.Err))
		return true
	}

	c.history.AppendAssistant(res.Reply)
	if d, ok := commands.Parse(res.Reply); ok {
		c.directive = d
		c.hasDirective = true
	} else {
		c.directive = commands.DirectiveNone
		c.hasDirective = false
	}
	return true
}

// TakeDirective drains the directive mailbox. The second call after any
// parse event reports false until a new reply refills the mailbox.
func (c *Controller) TakeDirective() (commands.Directive, bool) {
	if !c.hasDirective {
		return commands.DirectiveNone, false
	}
	d := c.directive
	c.directive = commands.DirectiveNone
	c.hasDirective = false
	return d, true
}

// =============================================================================
// PANEL GEOMETRY
// =============================================================================

// Resize moves both panel percentages one step in the given direction,
// clamping width to [15, 50] and height to [15, 60]. It returns true when
// either percentage changed.
func (c *Controller) Resize(dir ResizeDirection) bool {
	w, h := c.widthPct, c.heightPct

	switch dir {
	case Shrink:
		c.widthPct = clamp(w-ResizeStep, MinWidthPct, MaxWidthPct)
		c.heightPct = clamp(h-ResizeStep, MinHeightPct, MaxHeightPct)
	case Grow:
		c.widthPct = clamp(w+ResizeStep, MinWidthPct, MaxWidthPct)
		c.heightPct = clamp(h+ResizeStep, MinHeightPct, MaxHeightPct)
	}

	return c.widthPct != w || c.heightPct != h
}

// PanelWidthPct returns the panel width as a percentage of the viewport.
func (c *Controller) PanelWidthPct() int {
	return c.widthPct
}

// PanelHeightPct returns the panel height as a percentage of the viewport.
func (c *Controller) PanelHeightPct() int {
	return c.heightPct
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the controller's request state.
func (c *Controller) State() State {
	return c.state
}

// IsAwaiting reports whether a fetch is outstanding.
func (c *Controller) IsAwaiting() bool {
	return c.state == StateAwaitingReply
}

// History returns the full transcript.
func (c *Controller) History() *model.History {
	return c.history
}

// Input returns the input buffer. The buffer is shared with the input
// widget; content survives widget rebuilds on resize.
func (c *Controller) Input() *textedit.Buffer {
	return c.input
}

// DisplayMessages returns the transcript entries rendered per frame, the
// most recent DisplayWindow of them.
func (c *Controller) DisplayMessages() []*model.Message {
	return c.history.Tail(DisplayWindow)
}

// TranscriptLines returns the display window formatted with role prefixes.
func (c *Controller) TranscriptLines() []string {
	msgs := c.DisplayMessages()
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.DisplayLine())
	}
	return lines
}

// Status summarizes the controller for footers and logs.
type Status struct {
	State        State
	Messages     int
	WidthPct     int
	HeightPct    int
	HasDirective bool
}

// GetStatus returns the current controller status.
func (c *Controller) GetStatus() Status {
	return Status{
		State:        c.state,
		Messages:     c.history.Len(),
		WidthPct:     c.widthPct,
		HeightPct:    c.heightPct,
		HasDirective: c.hasDirective,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
