// Package history records pipeline runs in SQLite or PostgreSQL.
package history

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultListLimit caps ListRuns when no limit is given
const DefaultListLimit = 20

// Store persists run records
type Store interface {
	// CreateRun records a new run in the running state
	CreateRun(ctx context.Context, position string) (uuid.UUID, error)
	// CompleteRun marks a run as succeeded
	CompleteRun(ctx context.Context, id uuid.UUID, templateRoot, pdfPath string) error
	// FailRun marks a run as failed with the error text
	FailRun(ctx context.Context, id uuid.UUID, templateRoot, message string) error
	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error)
	Close() error
}

// Open connects to the store named by url:
//   - "" disables history (NopStore)
//   - postgres:// or postgresql:// opens PostgreSQL
//   - sqlite://<path> or a bare file path opens SQLite
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case url == "":
		return NopStore{}, nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return OpenPostgres(ctx, url)
	default:
		path := strings.TrimPrefix(url, "sqlite://")
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, err
				}
			}
		}
		return OpenSQLite(ctx, path)
	}
}

// NopStore discards every record
type NopStore struct{}

// CreateRun implements Store
func (NopStore) CreateRun(context.Context, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

// CompleteRun implements Store
func (NopStore) CompleteRun(context.Context, uuid.UUID, string, string) error { return nil }

// FailRun implements Store
func (NopStore) FailRun(context.Context, uuid.UUID, string, string) error { return nil }

// ListRuns implements Store
func (NopStore) ListRuns(context.Context, int) ([]types.RunRecord, error) { return nil, nil }

// Close implements Store
func (NopStore) Close() error { return nil }

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
