// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat panel host for the TUI.
//
// The host is the top-level Bubble Tea model. It owns the session
// controller, the simulation clock, and the panel widgets, and drives all
// of them from input events and a single frame tick, so none of that state
// needs locking.
package chat

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/simchat-tui/internal/session"
	"github.com/jeranaias/simchat-tui/internal/sim"
	"github.com/jeranaias/simchat-tui/internal/storage"
	"github.com/jeranaias/simchat-tui/internal/ui/components"
	"github.com/jeranaias/simchat-tui/internal/ui/styles"
)

// SendLabel is the send button's idle label. While a fetch is pending the
// label shows the busy spinner frames instead.
const SendLabel = "Send"

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model hosting the chat panel over the simulation
// surface.
type Model struct {
	// ==========================================================================
	// CORE DEPENDENCIES
	// ==========================================================================

	theme *styles.Theme
	ctrl  *session.Controller
	clock *sim.Clock
	store *storage.Store // nil disables transcript persistence

	// ==========================================================================
	// UI COMPONENTS
	// ==========================================================================

	// Widgets are rebuilt against the current geometry on every resize;
	// the input's text survives rebuilds through the shared buffer.
	input     *components.ChatInput
	shrinkBtn *components.Button
	growBtn   *components.Button
	sendBtn   *components.Button
	spinner   components.Spinner

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	width  int
	height int
	lay    layout

	// ==========================================================================
	// DISPLAY STATE
	// ==========================================================================

	modelName string
	markdown  bool // highlight fenced code in assistant replies
	quitting  bool
}

// New creates the chat host. The controller and clock are owned by the
// caller and may be shared with the plain REPL path.
func New(theme *styles.Theme, ctrl *session.Controller, clock *sim.Clock) Model {
	return NewWithStore(theme, ctrl, clock, nil, "", true)
}

// NewWithStore creates the chat host with transcript persistence and a
// model name for the header. A nil store disables persistence.
func NewWithStore(theme *styles.Theme, ctrl *session.Controller, clock *sim.Clock, store *storage.Store, modelName string, markdown bool) Model {
	m := Model{
		theme:     theme,
		ctrl:      ctrl,
		clock:     clock,
		store:     store,
		spinner:   components.NewSpinner(styles.DotsSpinner),
		modelName: modelName,
		markdown:  markdown,
	}
	m.rebuildLayout()
	return m
}

// Init schedules the first frame.
func (m Model) Init() tea.Cmd {
	return FrameTick()
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameTickMsg:
		return m.handleFrameTick(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncSendButton()
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)
	}

	return m, nil
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

// handleFrameTick advances one frame: step the clock, poll the outstanding
// completion, and apply at most one directive.
func (m Model) handleFrameTick(_ FrameTickMsg) (tea.Model, tea.Cmd) {
	m.clock.Step()

	if m.ctrl.PollCompletion() {
		m.spinner.Stop()
		m.persistTranscript()
	}
	if d, ok := m.ctrl.TakeDirective(); ok {
		if m.clock.Apply(d) {
			slog.Info("sim directive applied", "directive", d.String())
		}
	}

	m.syncSendButton()
	return m, FrameTick()
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	if m.theme != nil {
		m.theme.SetSize(msg.Width, msg.Height)
	}
	m.rebuildLayout()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+q", "ctrl+c":
		m.persistTranscript()
		m.quitting = true
		return m, tea.Quit

	case "ctrl+s":
		return m.submit()

	case "alt+-", "alt+_":
		return m.resizePanel(session.Shrink)

	case "alt+=", "alt++":
		return m.resizePanel(session.Grow)
	}

	// Everything else belongs to the input widget, which ignores keys
	// while unfocused.
	m.input.HandleEvent(msg)
	return m, nil
}

// handleMouse broadcasts the event to every widget, then acts on clicks.
// Motion events recompute hover focus; they are never consumed, so one
// motion can update the input plate and all three buttons at once.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.input.HandleEvent(msg)
	m.shrinkBtn.HandleEvent(msg)
	m.growBtn.HandleEvent(msg)
	m.sendBtn.HandleEvent(msg)

	if m.shrinkBtn.TakeClick() {
		return m.resizePanel(session.Shrink)
	}
	if m.growBtn.TakeClick() {
		return m.resizePanel(session.Grow)
	}
	if m.sendBtn.TakeClick() {
		return m.submit()
	}
	return m, nil
}

// handleConfigReload re-applies display preferences from a live config
// reload without restarting the program.
func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Cfg == nil {
		return m, nil
	}
	styles.ApplyColorMode(msg.Cfg.UI.Theme)
	m.theme = styles.NewTheme()
	m.theme.SetSize(m.width, m.height)
	m.modelName = msg.Cfg.DeepSeek.Model
	m.markdown = msg.Cfg.UI.Markdown
	m.rebuildLayout()
	slog.Info("display preferences reloaded",
		"theme", msg.Cfg.UI.Theme, "markdown", msg.Cfg.UI.Markdown)
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// submit sends the input buffer as a user message. The controller refuses
// empty input and double submits, so clicks while busy are no-ops.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.ctrl.SubmitInput() {
		return m, nil
	}
	m.persistTranscript()
	m.syncSendButton()
	return m, m.spinner.Start()
}

// resizePanel moves the panel percentages one step and rebuilds the
// widgets against the new geometry.
func (m Model) resizePanel(dir session.ResizeDirection) (tea.Model, tea.Cmd) {
	if !m.ctrl.Resize(dir) {
		return m, nil
	}
	m.rebuildLayout()
	return m, nil
}

// rebuildLayout recomputes the geometry and recreates the panel widgets.
// A fresh input widget starts unfocused; the next mouse motion restores
// hover focus, and the shared buffer carries the draft text over.
func (m *Model) rebuildLayout() {
	m.lay = computeLayout(m.width, m.height, m.ctrl.PanelWidthPct(), m.ctrl.PanelHeightPct())

	m.input = components.NewChatInput(m.theme, m.ctrl.Input(), m.lay.inputW, m.lay.inputH)
	m.input.SetPos(m.lay.interiorX, m.lay.inputRowY)

	m.shrinkBtn = components.NewButton(m.theme, "-")
	m.shrinkBtn.SetPos(m.lay.shrinkX, m.lay.titleY)

	m.growBtn = components.NewButton(m.theme, "+")
	m.growBtn.SetPos(m.lay.growX, m.lay.titleY)

	m.sendBtn = components.NewButton(m.theme, SendLabel)
	m.sendBtn.SetPos(m.lay.sendX, m.lay.sendY)

	m.syncSendButton()
}

// syncSendButton mirrors the controller state onto the send button: busy
// shows the spinner frames and refuses clicks, idle restores the label.
func (m *Model) syncSendButton() {
	if m.ctrl.IsAwaiting() {
		m.sendBtn.SetLabel(m.spinner.Frame())
		m.sendBtn.SetDisabled(true)
		return
	}
	if m.sendBtn.Disabled() {
		m.sendBtn.SetLabel(SendLabel)
		m.sendBtn.SetDisabled(false)
	}
}

// persistTranscript writes the transcript to the store, best effort. A
// failed save never interrupts the session.
func (m Model) persistTranscript() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveHistory(m.ctrl.History()); err != nil {
		slog.Warn("transcript save failed", "session", m.ctrl.History().ID, "error", err)
	}
}
