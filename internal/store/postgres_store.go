package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"spire-run/internal/models"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	seed BIGINT NOT NULL,
	status TEXT NOT NULL,
	state JSONB NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);`

// PostgresStore keeps each run as a JSONB row in the runs table.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore connects with the lib/pq driver and creates the schema.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return newPostgresStore(ctx, db, logger)
}

func newPostgresStore(ctx context.Context, db *sql.DB, logger *zap.Logger) (*PostgresStore, error) {
	s := &PostgresStore{db: db, logger: logger.Named("store.postgres")}
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	s.logger.Info("postgres store ready")
	return s, nil
}

// SaveRun upserts run.
func (s *PostgresStore) SaveRun(ctx context.Context, run *models.RunState) error {
	state, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run %s: %w", run.ID, err)
	}
	const q = `
	INSERT INTO runs (id, seed, status, state)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (id)
	DO UPDATE SET status = $3, state = $4, updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, q, run.ID, run.Seed, string(run.Status), string(state)); err != nil {
		s.logger.Error("save run failed", zap.String("runID", run.ID), zap.Error(err))
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// LoadRun reads the run with the given id.
func (s *PostgresStore) LoadRun(ctx context.Context, id string) (*models.RunState, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM runs WHERE id = $1`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var run models.RunState
	if err := json.Unmarshal(state, &run); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &run, nil
}

// DeleteRun removes the run row if present.
func (s *PostgresStore) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// ListRuns returns all run ids in sorted order.
func (s *PostgresStore) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
