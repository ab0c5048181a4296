// Package journal persists one row per tool invocation. Rows are append-only;
// the API only ever inserts and lists, never updates or deletes.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Record is a single journaled invocation.
type Record struct {
	ID         string          `json:"id"`
	Tool       string          `json:"tool"`
	Provider   string          `json:"provider,omitempty"`
	Kind       string          `json:"kind"`
	Outcome    string          `json:"outcome"`
	Error      string          `json:"error,omitempty"`
	Params     json.RawMessage `json:"params"`
	DurationMS int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store reads and writes invocation_log rows.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already-migrated database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const createdAtLayout = "2006-01-02 15:04:05"

// Record inserts one row. The correlation id doubles as primary key, so a
// replayed event is rejected by the database rather than duplicated.
func (s *Store) Record(ctx context.Context, rec Record) error {
	params := rec.Params
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocation_log (id, tool_name, provider, kind, outcome, error, params, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Tool,
		rec.Provider,
		rec.Kind,
		rec.Outcome,
		nullIfEmpty(rec.Error),
		string(params),
		rec.DurationMS,
		createdAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("journal: record %s: %w", rec.ID, err)
	}
	return nil
}

// ListRecent returns up to limit rows, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tool_name, provider, kind, outcome, error, params, duration_ms, created_at
		FROM invocation_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec       Record
			errText   sql.NullString
			params    string
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Tool, &rec.Provider, &rec.Kind, &rec.Outcome,
			&errText, &params, &rec.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		rec.Error = errText.String
		rec.Params = json.RawMessage(params)
		if ts, err := time.ParseInLocation(createdAtLayout, createdAt, time.UTC); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	return out, nil
}

// Count reports the total number of journaled invocations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invocation_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
