package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jonathan/resume-tailor/internal/types"
)

// PostgresStore keeps run history in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and applies migrations
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()
	if err := migrate(ctx, db, "postgres", "migrations/postgres"); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// CreateRun implements Store
func (s *PostgresStore) CreateRun(ctx context.Context, position string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO tailor_runs (id, position, status, started_at) VALUES ($1, $2, $3, $4)`,
		id, position, string(types.RunStatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun implements Store
func (s *PostgresStore) CompleteRun(ctx context.Context, id uuid.UUID, templateRoot, pdfPath string) error {
	return s.finish(ctx, id, types.RunStatusSucceeded, templateRoot, pdfPath, "")
}

// FailRun implements Store
func (s *PostgresStore) FailRun(ctx context.Context, id uuid.UUID, templateRoot, message string) error {
	return s.finish(ctx, id, types.RunStatusFailed, templateRoot, "", message)
}

func (s *PostgresStore) finish(ctx context.Context, id uuid.UUID, status types.RunStatus, templateRoot, pdfPath, message string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tailor_runs
		 SET status = $1, template_root = $2, pdf_path = $3, error_message = $4, finished_at = NOW()
		 WHERE id = $5`,
		string(status), templateRoot, pdfPath, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to finish run %s: run not found", id)
	}
	return nil
}

// ListRuns implements Store
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, position, template_root, status, pdf_path, error_message, started_at, finished_at
		 FROM tailor_runs ORDER BY started_at DESC LIMIT $1`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunRecord
	for rows.Next() {
		var run types.RunRecord
		var status string
		if err := rows.Scan(&run.ID, &run.Position, &run.TemplateRoot, &status,
			&run.PDFPath, &run.Error, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Status = types.RunStatus(status)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Close implements Store
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
