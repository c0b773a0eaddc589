// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat transcripts to SQLite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/simchat-tui/internal/model"
	"github.com/jeranaias/simchat-tui/internal/util"
)

// DefaultListLimit bounds ListSessions when the caller passes no limit.
const DefaultListLimit = 20

// ErrNotFound is returned when a session ID has no stored transcript.
var ErrNotFound = errors.New("session not found")

// =============================================================================
// STORE
// =============================================================================

// Store is a SQLite-backed transcript store. A single connection serializes
// writers, which SQLite requires anyway.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the transcript database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON", // cascade deletes depend on this
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates the tables and seeds the metadata.
func (s *Store) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Close closes the store and releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// SaveHistory writes the full transcript, replacing any prior rows for the
// same session. Transcripts are capped upstream, so a full rewrite stays
// cheap and keeps the stored order exactly the in-memory order.
func (s *Store) SaveHistory(h *model.History) error {
	if h == nil || h.ID == "" {
		return errors.New("history has no session ID")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, title, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		h.ID, h.GetTitle(), h.CreatedAt.UnixMilli(), h.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE session_id = ?`, h.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (id, session_id, seq, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range h.Messages {
		if _, err := stmt.Exec(m.ID, h.ID, i, string(m.Role), m.Content, m.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("failed to save message %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadHistory reads a stored transcript back into a History.
func (s *Store) LoadHistory(id string) (*model.History, error) {
	h := &model.History{ID: id}

	var created, updated int64
	err := s.db.QueryRow(
		`SELECT title, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&h.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	h.CreatedAt = time.UnixMilli(created)
	h.UpdatedAt = time.UnixMilli(updated)

	rows, err := s.db.Query(
		`SELECT id, role, content, created_at FROM messages
		 WHERE session_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Message
		var role string
		var at int64
		if err := rows.Scan(&m.ID, &role, &m.Content, &at); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = model.Role(role)
		m.CreatedAt = time.UnixMilli(at)
		h.Messages = append(h.Messages, &m)
	}
	return h, rows.Err()
}

// =============================================================================
// LISTING / PRUNING
// =============================================================================

// ListSessions returns stored session metadata, most recently updated
// first. A non-positive limit falls back to DefaultListLimit.
func (s *Store) ListSessions(limit int) ([]model.HistoryMeta, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.title, s.created_at, s.updated_at,
		        (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id),
		        COALESCE((SELECT m.content FROM messages m
		                  WHERE m.session_id = s.id AND m.role = 'user'
		                  ORDER BY m.seq DESC LIMIT 1), '')
		 FROM sessions s
		 ORDER BY s.updated_at DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var metas []model.HistoryMeta
	for rows.Next() {
		var meta model.HistoryMeta
		var created, updated int64
		var lastUser string
		if err := rows.Scan(&meta.ID, &meta.Title, &created, &updated, &meta.MessageCount, &lastUser); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		meta.CreatedAt = time.UnixMilli(created)
		meta.UpdatedAt = time.UnixMilli(updated)
		meta.Preview = util.TruncateRunes(lastUser, 100)
		if meta.Preview == "" {
			meta.Preview = "Empty chat"
		}
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// DeleteSession removes a transcript and its messages.
func (s *Store) DeleteSession(id string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Prune keeps the most recently updated keep sessions and deletes the rest.
func (s *Store) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.Exec(
		`DELETE FROM sessions WHERE id NOT IN
		 (SELECT id FROM sessions ORDER BY updated_at DESC LIMIT ?)`, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune sessions: %w", err)
	}
	return nil
}
