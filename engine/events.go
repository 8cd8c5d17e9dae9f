package engine

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/TheLab-ms/styler/db"
)

const eventsMigration = `
CREATE TABLE IF NOT EXISTS persistence_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created INTEGER NOT NULL DEFAULT (unixepoch()),
    source TEXT NOT NULL,
    event_type TEXT NOT NULL,
    entity_id TEXT,
    success INTEGER NOT NULL DEFAULT 1,
    details TEXT NOT NULL DEFAULT ''
) STRICT;

CREATE INDEX IF NOT EXISTS persistence_events_source_created_idx
    ON persistence_events (source, created);
`

// Event is a logged persistence event.
type Event struct {
	ID        int64  `json:"id"`
	Created   int64  `json:"created"`
	Source    string `json:"source"`
	EventType string `json:"eventType"`
	EntityID  string `json:"entityId"`
	Success   bool   `json:"success"`
	Details   string `json:"details"`
}

// EventLogger records operator-visible outcomes of background work,
// e.g. a widget save that the store rejected.
type EventLogger struct {
	db *sql.DB
}

// NewEventLogger creates an EventLogger and applies its table migration.
func NewEventLogger(database *sql.DB) *EventLogger {
	db.MustMigrate(database, eventsMigration)
	return &EventLogger{db: database}
}

// LogEvent inserts an event. Failures are logged and otherwise ignored.
func (e *EventLogger) LogEvent(ctx context.Context, source, eventType, entityID string, success bool, details string) {
	if e == nil || e.db == nil {
		return
	}

	var entity any
	if entityID != "" {
		entity = entityID
	}

	_, err := e.db.ExecContext(ctx,
		`INSERT INTO persistence_events (source, event_type, entity_id, success, details) VALUES (?, ?, ?, ?, ?)`,
		source, eventType, entity, success, details)
	if err != nil {
		slog.Error("failed to log persistence event", "error", err, "source", source, "eventType", eventType)
	}
}

// Recent returns the latest events, newest first.
func (e *EventLogger) Recent(ctx context.Context, limit int) ([]*Event, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT id, created, source, event_type, COALESCE(entity_id, ''), success, details
		 FROM persistence_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev := &Event{}
		if err := rows.Scan(&ev.ID, &ev.Created, &ev.Source, &ev.EventType, &ev.EntityID, &ev.Success, &ev.Details); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Prune returns a polling func that drops events older than maxAgeSeconds.
func (e *EventLogger) Prune(maxAgeSeconds int64) PollingFunc {
	return Cleanup(e.db, "persistence events", "DELETE FROM persistence_events WHERE created < unixepoch() - ?", maxAgeSeconds)
}
