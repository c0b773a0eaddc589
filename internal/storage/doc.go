// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat transcripts to SQLite.
//
// # Key Types
//
//   - Store: the transcript database. One session row per chat, message
//     rows in submission order, WAL journaling, a single connection.
//
// # Key Functions
//
//   - Open: opens or creates the database and applies the schema.
//   - SaveHistory / LoadHistory: full-transcript write and read.
//   - ListSessions: metadata for `simchat history`, newest first.
//   - DeleteSession / Prune: removal, with cascade to messages.
//
// # Usage
//
//	store, err := storage.Open(cfg.HistoryDBPath())
//	if err != nil { ... }
//	defer store.Close()
//	store.SaveHistory(ctrl.History())
//
// Saving is best effort at session end: a failed save is logged and the
// chat carries on, since the live transcript is the source of truth.
package storage
