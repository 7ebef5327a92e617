package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-tailor/internal/types"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps run history in a local SQLite file
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and applies migrations
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// one connection: a :memory: database exists per connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}
	if err := migrate(ctx, db, "sqlite3", "migrations/sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating sqlite db: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// CreateRun implements Store
func (s *SQLiteStore) CreateRun(ctx context.Context, position string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, position, status, started_at) VALUES (?, ?, ?, ?)`,
		id.String(), position, string(types.RunStatusRunning), s.timestamp(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating run: %w", err)
	}
	return id, nil
}

// CompleteRun implements Store
func (s *SQLiteStore) CompleteRun(ctx context.Context, id uuid.UUID, templateRoot, pdfPath string) error {
	return s.finish(ctx, id, types.RunStatusSucceeded, templateRoot, pdfPath, "")
}

// FailRun implements Store
func (s *SQLiteStore) FailRun(ctx context.Context, id uuid.UUID, templateRoot, message string) error {
	return s.finish(ctx, id, types.RunStatusFailed, templateRoot, "", message)
}

func (s *SQLiteStore) finish(ctx context.Context, id uuid.UUID, status types.RunStatus, templateRoot, pdfPath, message string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, template_root = ?, pdf_path = ?, error_message = ?, finished_at = ?
		 WHERE id = ?`,
		string(status), templateRoot, pdfPath, message, s.timestamp(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finishing run %s: run not found", id)
	}
	return nil
}

// ListRuns implements Store
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, position, template_root, status, pdf_path, error_message, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []types.RunRecord
	for rows.Next() {
		var (
			run      types.RunRecord
			status   string
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Position, &run.TemplateRoot, &status,
			&run.PDFPath, &run.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Status = types.RunStatus(status)
		if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", started, err)
		}
		if finished.Valid {
			t, err := time.Parse(timeLayout, finished.String)
			if err != nil {
				return nil, fmt.Errorf("parsing finished_at %q: %w", finished.String, err)
			}
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Close implements Store
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}
