// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/dutybot/dutybot/models"
)

// SQLStore keeps the snapshot JSON in a single-row table. Both sqlite and
// postgres accept $1 placeholders and the excluded upsert form, so the same
// statements serve either driver.
type SQLStore struct {
	db *sql.DB
}

// Safe to call multiple times - uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS snapshot (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    doc TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
`

// OpenSQL connects, verifies the connection and creates the schema.
// dbType must be "sqlite" or "postgres".
func OpenSQL(dbType, dbURL string) (*SQLStore, error) {
	db, err := sql.Open(dbType, dbURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load() (*models.Snapshot, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT doc FROM snapshot WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot row: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot row: %w", err)
	}
	return &snap, nil
}

func (s *SQLStore) Save(snap *models.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshot (id, doc, saved_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = excluded.doc, saved_at = excluded.saved_at
	`, string(raw), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot row: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
