// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// HISTORY TYPE
// =============================================================================

// History is the append-only transcript of a chat session. Messages are
// never edited, reordered, or removed after being appended; the trailing
// windows for display and network context are views, not truncation.
type History struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Messages, oldest first
	Messages []*Message `json:"messages"`
}

// NewHistory creates an empty transcript with a generated ID.
func NewHistory() *History {
	return &History{
		ID:        "chat_" + uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the transcript.
func (h *History) Append(msg *Message) {
	h.Messages = append(h.Messages, msg)
	h.UpdatedAt = time.Now()
	h.updateTitle()
}

// AppendUser creates and appends a user message.
func (h *History) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	h.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message.
func (h *History) AppendAssistant(content string) *Message {
	msg := NewAssistantMessage(content)
	h.Append(msg)
	return msg
}

// AppendSystem creates and appends a system message.
func (h *History) AppendSystem(content string) *Message {
	msg := NewSystemMessage(content)
	h.Append(msg)
	return msg
}

// Last returns the most recent message, or nil if empty.
func (h *History) Last() *Message {
	if len(h.Messages) == 0 {
		return nil
	}
	return h.Messages[len(h.Messages)-1]
}

// Len returns the number of messages.
func (h *History) Len() int {
	return len(h.Messages)
}

// IsEmpty returns true if there are no messages.
func (h *History) IsEmpty() bool {
	return len(h.Messages) == 0
}

// =============================================================================
// WINDOWS AND SNAPSHOTS
// =============================================================================

// Tail returns the most recent n messages, oldest first. The returned slice
// shares backing storage with the transcript; callers must not mutate it.
func (h *History) Tail(n int) []*Message {
	if n <= 0 {
		return nil
	}
	if len(h.Messages) <= n {
		return h.Messages
	}
	return h.Messages[len(h.Messages)-n:]
}

// Snapshot returns value copies of the most recent n messages, oldest
// first. Copies are safe to hand to a background worker while the
// transcript keeps growing.
func (h *History) Snapshot(n int) []Message {
	tail := h.Tail(n)
	out := make([]Message, len(tail))
	for i, msg := range tail {
		out[i] = *msg
	}
	return out
}

// =============================================================================
// TITLE AND PREVIEW
// =============================================================================

// updateTitle auto-generates a title from the first user message if not set.
func (h *History) updateTitle() {
	if h.Title != "" {
		return
	}
	for _, msg := range h.Messages {
		if msg.Role == RoleUser {
			h.Title = msg.Preview(50)
			return
		}
	}
}

// SetTitle manually sets the transcript title.
func (h *History) SetTitle(title string) {
	h.Title = title
	h.UpdatedAt = time.Now()
}

// GetTitle returns the transcript title or a default.
func (h *History) GetTitle() string {
	if h.Title != "" {
		return h.Title
	}
	return "New Chat"
}

// Preview returns a short preview of the transcript for listings.
func (h *History) Preview() string {
	if len(h.Messages) == 0 {
		return "Empty chat"
	}
	for i := len(h.Messages) - 1; i >= 0; i-- {
		if h.Messages[i].Role == RoleUser {
			return h.Messages[i].Preview(100)
		}
	}
	return h.Messages[0].Preview(100)
}

// Meta returns lightweight metadata for listing saved chats.
func (h *History) Meta() HistoryMeta {
	return HistoryMeta{
		ID:           h.ID,
		Title:        h.GetTitle(),
		MessageCount: len(h.Messages),
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
		Preview:      h.Preview(),
	}
}

// HistoryMeta holds lightweight metadata for listing saved chats.
type HistoryMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Preview      string    `json:"preview"`
}

