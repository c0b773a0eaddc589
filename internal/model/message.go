// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/simchat-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayPrefix returns the transcript prefix for the role. System lines
// carry no prefix so status notices read as plain text.
func (r Role) DisplayPrefix() string {
	switch r {
	case RoleUser:
		return "You: "
	case RoleAssistant:
		return "LLM: "
	case RoleSystem:
		return ""
	default:
		return string(r) + ": "
	}
}

// Valid reports whether the role is one of the known senders.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) *Message {
	return NewMessage(RoleAssistant, content)
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// DisplayLine returns the prefixed transcript line for the message.
func (m *Message) DisplayLine() string {
	return m.Role.DisplayPrefix() + m.Content
}

// Preview returns a truncated single-line preview of the message content.
func (m *Message) Preview(maxRunes int) string {
	content := m.Content
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			content = content[:i]
			break
		}
	}
	return util.TruncateRunes(content, maxRunes)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}
