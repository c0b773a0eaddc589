// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the DeepSeek chat-completion client and the
// background fetch worker used by the chat session.
package deepseek

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/simchat-tui/internal/model"
)

// SystemPrompt is the fixed instruction prepended to every completion
// request. It tells the model it may emit pause/resume directive lines.
const SystemPrompt = "You are controlling a traffic simulation. " +
	"You may include lines like ACTION: pause or ACTION: resume. Keep replies short."

// ContextWindow is the number of trailing transcript entries sent with each
// request, not counting the system instruction or the new user message.
const ContextWindow = 8

// EmptyReplyPlaceholder is shown when the API returns no completion choices.
const EmptyReplyPlaceholder = "(empty reply)"

// Result is the outcome of one background fetch. Exactly one of Reply or
// Err is meaningful.
type Result struct {
	Reply string
	Err   error
}

// Pending is a single-use mailbox for one in-flight fetch. The session polls
// it once per frame; the worker goroutine completes it exactly once.
type Pending struct {
	ch chan Result
}

// NewPending creates a mailbox and its completion function. The channel is
// buffered so the completion function never blocks, even if the session
// stops polling.
func NewPending() (*Pending, func(Result)) {
	ch := make(chan Result, 1)
	complete := func(r Result) {
		ch <- r
	}
	return &Pending{ch: ch}, complete
}

// Poll returns the result if the fetch has completed. It never blocks, and
// after delivering a result once it reports false forever.
func (p *Pending) Poll() (Result, bool) {
	select {
	case r := <-p.ch:
		return r, true
	default:
		return Result{}, false
	}
}

// Fetcher starts background completion fetches. The session depends on this
// interface so tests can substitute a scripted implementation.
type Fetcher interface {
	Fetch(history []model.Message, userMessage string) *Pending
}

// Worker performs one-shot completion fetches against the DeepSeek API.
// Endpoint settings are fixed at construction; the credential is resolved
// per fetch.
type Worker struct {
	baseURL     string
	modelName   string
	temperature float64
}

// NewWorker creates a worker for the given endpoint settings. Empty values
// fall back to the package defaults.
func NewWorker(baseURL, modelName string, temperature float64) *Worker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Worker{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		modelName:   modelName,
		temperature: temperature,
	}
}

// BuildMessages assembles the request message list: the system instruction,
// then the last ContextWindow entries of history in original order, then the
// new user message. The history slice is the transcript as it stood before
// the new message was appended.
func BuildMessages(history []model.Message, userMessage string) []ChatMessage {
	tail := history
	if len(tail) > ContextWindow {
		tail = tail[len(tail)-ContextWindow:]
	}

	msgs := make([]ChatMessage, 0, len(tail)+2)
	msgs = append(msgs, NewSystemMessage(SystemPrompt))
	for _, m := range tail {
		msgs = append(msgs, ChatMessage{Role: m.Role.String(), Content: m.Content})
	}
	return append(msgs, NewUserMessage(userMessage))
}

// Fetch starts a completion request in the background and returns its
// mailbox immediately. Configuration, transport, and response-shape problems
// all surface as the failure value; the goroutine never panics the program.
func (w *Worker) Fetch(history []model.Message, userMessage string) *Pending {
	pending, complete := NewPending()
	msgs := BuildMessages(history, userMessage)

	go func() {
		reqID := uuid.NewString()

		key, err := ResolveAPIKey()
		if err != nil {
			complete(Result{Err: err})
			return
		}

		client := NewClient(key).
			WithBaseURL(w.baseURL).
			WithModel(w.modelName).
			WithTemperature(w.temperature)

		slog.Debug("completion fetch started", "request_id", reqID, "model", w.modelName, "messages", len(msgs))
		resp, err := client.Chat(context.Background(), msgs)
		if err != nil {
			slog.Debug("completion fetch failed", "request_id", reqID, "error", err)
			complete(Result{Err: err})
			return
		}

		reply := EmptyReplyPlaceholder
		if len(resp.Choices) > 0 {
			reply = resp.Choices[0].Message.Content
		}
		slog.Debug("completion fetch finished", "request_id", reqID, "reply_len", len(reply))
		complete(Result{Reply: reply})
	}()

	return pending
}
