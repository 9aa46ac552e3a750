package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SyncRun is one finished sync invocation, recorded for operational
// history. MatchStatus carries the written-vs-reported diagnostic when the
// provider gave a total.
type SyncRun struct {
	ID          string
	Kind        string // dump-calls, sync-leads, sync-calls
	RowsWritten int
	MatchStatus string
	StartedAt   time.Time
	Duration    time.Duration
}

type RunLogRepository struct {
	DB *sql.DB
}

func NewRunLogRepository(db *sql.DB) *RunLogRepository {
	return &RunLogRepository{DB: db}
}

func (r *RunLogRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sync_runs (
			id           UUID PRIMARY KEY,
			kind         TEXT NOT NULL,
			rows_written INTEGER NOT NULL,
			match_status TEXT NOT NULL,
			started_at   TIMESTAMPTZ NOT NULL,
			duration_ms  BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure sync_runs schema: %w", err)
	}
	return nil
}

func (r *RunLogRepository) Record(ctx context.Context, run SyncRun) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sync_runs (id, kind, rows_written, match_status, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.Kind, run.RowsWritten, run.MatchStatus, run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("record sync run: %w", err)
	}
	return nil
}
