// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"testing"
	"time"

	"github.com/jeranaias/simchat-tui/internal/commands"
	"github.com/jeranaias/simchat-tui/internal/deepseek"
	"github.com/jeranaias/simchat-tui/internal/model"
)

// scriptedFetcher records Fetch calls and lets the test complete them
// synchronously.
type scriptedFetcher struct {
	calls    int
	history  []model.Message
	userMsg  string
	complete func(deepseek.Result)
}

func (f *scriptedFetcher) Fetch(history []model.Message, userMessage string) *deepseek.Pending {
	f.calls++
	f.history = history
	f.userMsg = userMessage
	pending, complete := deepseek.NewPending()
	f.complete = complete
	return pending
}

func newTestController(prefill string) (*Controller, *scriptedFetcher) {
	f := &scriptedFetcher{}
	c := NewController(f, Config{Prefill: prefill})
	return c, f
}

// exchange drives one full submit/reply/poll cycle.
func exchange(t *testing.T, c *Controller, f *scriptedFetcher, text, reply string) {
	t.Helper()
	if !c.Submit(text) {
		t.Fatalf("Submit(%q) refused", text)
	}
	f.complete(deepseek.Result{Reply: reply})
	if !c.PollCompletion() {
		t.Fatal("PollCompletion() missed the completed result")
	}
}

func TestNewController_SeedsReadyNotice(t *testing.T) {
	c, _ := newTestController("try the quota question")

	if c.History().Len() != 1 {
		t.Fatalf("history length = %d, want 1", c.History().Len())
	}
	first := c.History().Last()
	if first.Role != model.RoleSystem || first.Content != ReadyNotice {
		t.Errorf("seed message = %s %q, want system ready notice", first.Role, first.Content)
	}
	if c.Input().Value() != "try the quota question" {
		t.Errorf("input = %q, want prefill", c.Input().Value())
	}
	if c.Input().Cursor() != c.Input().Len() {
		t.Errorf("cursor = %d, want end of prefill", c.Input().Cursor())
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestSubmit_AppendsAndStartsFetch(t *testing.T) {
	c, f := newTestController("leftover prefill")

	if !c.Submit("  hello  ") {
		t.Fatal("Submit refused a valid message")
	}

	last := c.History().Last()
	if last.Role != model.RoleUser || last.Content != "hello" {
		t.Errorf("last message = %s %q, want trimmed user message", last.Role, last.Content)
	}
	if c.State() != StateAwaitingReply {
		t.Errorf("state = %v, want awaiting reply", c.State())
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", f.calls)
	}
	if f.userMsg != "hello" {
		t.Errorf("fetched user message = %q, want %q", f.userMsg, "hello")
	}
	if !c.Input().IsEmpty() {
		t.Errorf("input = %q, want cleared on accept", c.Input().Value())
	}
}

func TestSubmit_RejectsBlank(t *testing.T) {
	c, f := newTestController("")

	if c.Submit("   \n\t ") {
		t.Error("Submit accepted whitespace-only text")
	}
	if c.History().Len() != 1 {
		t.Errorf("history length = %d, want unchanged", c.History().Len())
	}
	if f.calls != 0 {
		t.Errorf("fetch calls = %d, want 0", f.calls)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestSubmit_RejectsWhileAwaiting(t *testing.T) {
	c, f := newTestController("")

	// Park a directive in the mailbox first so we can check it survives.
	exchange(t, c, f, "slow down", "ACTION: pause")

	if !c.Submit("first") {
		t.Fatal("first Submit refused")
	}
	lenBefore := c.History().Len()

	if c.Submit("second") {
		t.Error("Submit accepted while awaiting reply")
	}
	if c.History().Len() != lenBefore {
		t.Errorf("history length = %d, want %d (unchanged)", c.History().Len(), lenBefore)
	}
	if f.calls != 2 {
		t.Errorf("fetch calls = %d, want 2 (no second spawn)", f.calls)
	}
	if d, ok := c.TakeDirective(); !ok || d != commands.DirectivePause {
		t.Errorf("TakeDirective() = %v, %v, want parked pause intact", d, ok)
	}
}

func TestSubmit_NormalizesComposedForm(t *testing.T) {
	c, _ := newTestController("")

	// "cafe" + combining acute accent, NFD form.
	if !c.Submit("café") {
		t.Fatal("Submit refused")
	}
	if got := c.History().Last().Content; got != "café" {
		t.Errorf("stored content = %q, want composed form %q", got, "café")
	}
}

func TestSubmit_SnapshotExcludesNewMessage(t *testing.T) {
	c, f := newTestController("")

	exchange(t, c, f, "first question", "first answer")

	if !c.Submit("second question") {
		t.Fatal("Submit refused")
	}

	// Snapshot holds the transcript as it stood before this message.
	if len(f.history) != 3 {
		t.Fatalf("snapshot length = %d, want 3 (ready, user, reply)", len(f.history))
	}
	if f.history[len(f.history)-1].Content != "first answer" {
		t.Errorf("snapshot tail = %q, want the prior reply", f.history[len(f.history)-1].Content)
	}
	for _, m := range f.history {
		if m.Content == "second question" {
			t.Error("snapshot contains the message being submitted")
		}
	}
}

func TestSubmit_SnapshotCapped(t *testing.T) {
	c, f := newTestController("")

	for i := 0; i < 5; i++ {
		exchange(t, c, f, "question", "answer")
	}
	// 1 seed + 10 exchange entries in the transcript.
	if c.History().Len() != 11 {
		t.Fatalf("history length = %d, want 11", c.History().Len())
	}

	if !c.Submit("one more") {
		t.Fatal("Submit refused")
	}
	if len(f.history) != deepseek.ContextWindow {
		t.Errorf("snapshot length = %d, want %d", len(f.history), deepseek.ContextWindow)
	}
}

func TestPollCompletion_NoPending(t *testing.T) {
	c, _ := newTestController("")
	if c.PollCompletion() {
		t.Error("PollCompletion() reported a change with nothing pending")
	}
}

func TestPollCompletion_NotReady(t *testing.T) {
	c, _ := newTestController("")
	if !c.Submit("hello") {
		t.Fatal("Submit refused")
	}
	if c.PollCompletion() {
		t.Error("PollCompletion() reported a change before the worker finished")
	}
	if c.State() != StateAwaitingReply {
		t.Errorf("state = %v, want still awaiting", c.State())
	}
}

func TestPollCompletion_Success(t *testing.T) {
	c, f := newTestController("")

	exchange(t, c, f, "slow the traffic", "Sure, ACTION: pause now")

	last := c.History().Last()
	if last.Role != model.RoleAssistant || last.Content != "Sure, ACTION: pause now" {
		t.Errorf("last message = %s %q, want assistant reply", last.Role, last.Content)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle after poll", c.State())
	}

	d, ok := c.TakeDirective()
	if !ok || d != commands.DirectivePause {
		t.Errorf("TakeDirective() = %v, %v, want pause", d, ok)
	}
	// Drain semantics: gone on the second call.
	if _, ok := c.TakeDirective(); ok {
		t.Error("TakeDirective() delivered the directive twice")
	}
}

func TestPollCompletion_Failure(t *testing.T) {
	c, f := newTestController("")

	// Park a pause directive, undrained.
	exchange(t, c, f, "halt", "ACTION: pause")

	if !c.Submit("status?") {
		t.Fatal("Submit refused")
	}
	f.complete(deepseek.Result{Err: errors.New("boom")})
	if !c.PollCompletion() {
		t.Fatal("PollCompletion() missed the failure")
	}

	last := c.History().Last()
	if last.Role != model.RoleSystem || last.Content != "LLM error: boom" {
		t.Errorf("last message = %s %q, want system failure line", last.Role, last.Content)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle for immediate retry", c.State())
	}
	// Failures leave the mailbox untouched.
	if d, ok := c.TakeDirective(); !ok || d != commands.DirectivePause {
		t.Errorf("TakeDirective() = %v, %v, want parked pause intact", d, ok)
	}
}

func TestPollCompletion_PlainReplyClearsMailbox(t *testing.T) {
	c, f := newTestController("")

	exchange(t, c, f, "halt", "ACTION: pause")
	exchange(t, c, f, "thanks", "You're welcome.")

	if d, ok := c.TakeDirective(); ok {
		t.Errorf("TakeDirective() = %v, want mailbox cleared by plain reply", d)
	}
}

func TestResize_ShrinkStopsAtFloor(t *testing.T) {
	c, _ := newTestController("")

	if c.PanelWidthPct() != 35 || c.PanelHeightPct() != 35 {
		t.Fatalf("initial panel = %d%%/%d%%, want 35/35",
			c.PanelWidthPct(), c.PanelHeightPct())
	}

	for i := 0; i < 10; i++ {
		c.Resize(Shrink)
		if c.PanelWidthPct() < MinWidthPct || c.PanelHeightPct() < MinHeightPct {
			t.Fatalf("panel %d%%/%d%% fell below the floor after %d shrinks",
				c.PanelWidthPct(), c.PanelHeightPct(), i+1)
		}
	}
	if c.PanelWidthPct() != MinWidthPct || c.PanelHeightPct() != MinHeightPct {
		t.Errorf("panel = %d%%/%d%%, want %d/%d after repeated shrinks",
			c.PanelWidthPct(), c.PanelHeightPct(), MinWidthPct, MinHeightPct)
	}
	if c.Resize(Shrink) {
		t.Error("Resize(Shrink) reported a change at the floor")
	}
}

func TestResize_GrowStopsAtCeiling(t *testing.T) {
	c, _ := newTestController("")

	for i := 0; i < 10; i++ {
		c.Resize(Grow)
	}
	if c.PanelWidthPct() != MaxWidthPct || c.PanelHeightPct() != MaxHeightPct {
		t.Errorf("panel = %d%%/%d%%, want %d/%d after repeated grows",
			c.PanelWidthPct(), c.PanelHeightPct(), MaxWidthPct, MaxHeightPct)
	}
	if c.Resize(Grow) {
		t.Error("Resize(Grow) reported a change at the ceiling")
	}
}

func TestResize_DimensionsClampIndependently(t *testing.T) {
	c := NewController(&scriptedFetcher{}, Config{WidthPct: 50, HeightPct: 35})

	if !c.Resize(Grow) {
		t.Fatal("Resize(Grow) reported no change with height below ceiling")
	}
	if c.PanelWidthPct() != 50 {
		t.Errorf("width = %d%%, want capped at 50", c.PanelWidthPct())
	}
	if c.PanelHeightPct() != 40 {
		t.Errorf("height = %d%%, want 40", c.PanelHeightPct())
	}
}

func TestDisplayMessages_Window(t *testing.T) {
	c, f := newTestController("")

	for i := 0; i < 5; i++ {
		exchange(t, c, f, "question", "answer")
	}

	msgs := c.DisplayMessages()
	if len(msgs) != DisplayWindow {
		t.Fatalf("display window = %d messages, want %d", len(msgs), DisplayWindow)
	}
	if msgs[len(msgs)-1].Content != "answer" {
		t.Errorf("newest displayed = %q, want latest reply", msgs[len(msgs)-1].Content)
	}
	// Full history stays retained behind the window.
	if c.History().Len() != 11 {
		t.Errorf("history length = %d, want 11", c.History().Len())
	}
}

func TestTranscriptLines_Prefixes(t *testing.T) {
	c, f := newTestController("")

	exchange(t, c, f, "hello", "hi there")

	lines := c.TranscriptLines()
	want := []string{"Chatbox ready.", "You: hello", "LLM: hi there"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestGetStatus(t *testing.T) {
	c, f := newTestController("")
	exchange(t, c, f, "halt", "ACTION: pause")

	st := c.GetStatus()
	if st.State != StateIdle {
		t.Errorf("Status.State = %v, want idle", st.State)
	}
	if st.Messages != 3 {
		t.Errorf("Status.Messages = %d, want 3", st.Messages)
	}
	if st.WidthPct != 35 || st.HeightPct != 35 {
		t.Errorf("Status panel = %d%%/%d%%, want 35/35", st.WidthPct, st.HeightPct)
	}
	if !st.HasDirective {
		t.Error("Status.HasDirective = false, want parked directive visible")
	}
}

// TestSubmit_MissingCredentialEndToEnd runs the real worker with no key
// configured and checks the transcript failure line verbatim.
func TestSubmit_MissingCredentialEndToEnd(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	worker := deepseek.NewWorker("", "", deepseek.DefaultTemperature)
	c := NewController(worker, Config{})

	if !c.Submit("hello") {
		t.Fatal("Submit refused")
	}

	deadline := time.After(2 * time.Second)
	for !c.PollCompletion() {
		select {
		case <-deadline:
			t.Fatal("completion never arrived")
		case <-time.After(5 * time.Millisecond):
		}
	}

	last := c.History().Last()
	if last.Role != model.RoleSystem {
		t.Fatalf("last message role = %s, want system", last.Role)
	}
	if last.Content != "LLM error: Missing DEEPSEEK_API_KEY env var" {
		t.Errorf("failure line = %q, want exact missing-key text", last.Content)
	}
	if _, ok := c.TakeDirective(); ok {
		t.Error("mailbox gained a directive from a failed fetch")
	}
	if c.History().Len() != 3 {
		t.Errorf("history length = %d, want seed + user + failure", c.History().Len())
	}
}
