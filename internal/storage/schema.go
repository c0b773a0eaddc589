// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat transcripts to SQLite.
package storage

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

// Schema is the transcript database layout. A session row per chat, a
// message row per transcript entry, ordered by seq within its session.
const Schema = `
-- Metadata table for schema version and store state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Sessions table: one row per chat transcript
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    created_at INTEGER NOT NULL, -- Unix millis
    updated_at INTEGER NOT NULL  -- Unix millis
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);

-- Messages table: transcript entries in submission order
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    role TEXT NOT NULL,          -- user, assistant, system
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL, -- Unix millis
    FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_messages_session_seq ON messages(session_id, seq);
`

// InitMetadata seeds the schema version on first open.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
