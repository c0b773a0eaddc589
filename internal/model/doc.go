// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat transcripts.
//
// This package defines the core domain types used throughout the application
// for representing chat sessions and their messages.
//
// # Key Types
//
//   - History: append-only transcript of a chat session
//   - Message: single entry with role, content, and timestamp
//   - Role: message sender enumeration (user, assistant, system)
//
// # Usage
//
// Create a transcript and append to it:
//
//	hist := model.NewHistory()
//	hist.AppendSystem("Chatbox ready.")
//	hist.AppendUser("How is traffic?")
//
// Take a value-copy snapshot for a background worker:
//
//	window := hist.Snapshot(8)
package model
