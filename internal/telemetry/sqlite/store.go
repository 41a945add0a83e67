// Package sqlite provides a SQLite-backed telemetry event store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/graziososalvare/rescuehub/internal/platform/storage/sqlitemigrate"
	"github.com/graziososalvare/rescuehub/internal/telemetry"
	"github.com/graziososalvare/rescuehub/internal/telemetry/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists telemetry events in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite telemetry store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendEvent inserts one telemetry event.
func (s *Store) AppendEvent(ctx context.Context, evt telemetry.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	timestamp := evt.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (timestamp, severity, source, kind, message)
		 VALUES (?, ?, ?, ?, ?)`,
		toMillis(timestamp),
		string(evt.Severity),
		evt.Source,
		evt.Kind,
		evt.Message,
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]telemetry.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT timestamp, severity, source, kind, message
		 FROM telemetry_events
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	defer rows.Close()

	var events []telemetry.Event
	for rows.Next() {
		var millis int64
		var severity string
		var evt telemetry.Event
		if err := rows.Scan(&millis, &severity, &evt.Source, &evt.Kind, &evt.Message); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		evt.Timestamp = fromMillis(millis)
		evt.Severity = telemetry.Severity(severity)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry events: %w", err)
	}
	return events, nil
}
