// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"

	"github.com/dutybot/dutybot/models"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store persists the full snapshot document. Save rewrites the entire
// document so a crash between operations never leaves partial state; at
// worst the last write is lost.
type Store interface {
	Load() (*models.Snapshot, error)
	Save(snap *models.Snapshot) error
	Close() error
}

// Open selects a backend by type: "file", "sqlite" or "postgres".
func Open(dbType, dbURL string) (Store, error) {
	switch dbType {
	case "file":
		return NewFileStore(dbURL), nil
	case "sqlite", "postgres":
		return OpenSQL(dbType, dbURL)
	default:
		return nil, fmt.Errorf("unknown database type %q (want file, sqlite or postgres)", dbType)
	}
}
