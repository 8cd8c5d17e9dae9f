// Package settings is a small key/value store for runtime settings such as
// the dashboard theme. Writes are upserts: the last write wins.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/TheLab-ms/styler/db"
)

const migration = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT '',
    module TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    updated INTEGER NOT NULL DEFAULT (unixepoch())
) STRICT;
`

// Store manages application settings with change notification.
type Store struct {
	db        *sql.DB
	mu        sync.RWMutex
	callbacks map[string][]func(string)
}

// New creates a settings store, migrating its table.
func New(database *sql.DB) *Store {
	db.MustMigrate(database, migration)
	return &Store{
		db:        database,
		callbacks: make(map[string][]func(string)),
	}
}

// Get retrieves a setting value. Returns the empty string if it was never set.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Set upserts a setting and notifies all registered callbacks.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated) VALUES (?, ?, unixepoch())
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated
	`, key, value)
	if err != nil {
		return err
	}

	s.mu.RLock()
	cbs := s.callbacks[key]
	s.mu.RUnlock()

	for _, cb := range cbs {
		cb(value)
	}

	slog.Info("setting updated", "key", key)
	return nil
}

// Watch registers a callback for when a setting changes.
// The callback is also invoked immediately with the current value.
func (s *Store) Watch(ctx context.Context, key string, cb func(string)) {
	s.mu.Lock()
	s.callbacks[key] = append(s.callbacks[key], cb)
	s.mu.Unlock()

	value, err := s.Get(ctx, key)
	if err != nil {
		slog.Error("unable to read setting", "key", key, "error", err)
	}
	cb(value)
}
