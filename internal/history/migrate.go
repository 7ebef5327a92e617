package history

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationFiles embed.FS

// goose keeps its base FS and dialect in package globals
var migrateMu sync.Mutex

// migrate applies the embedded migrations for dialect ("sqlite3" or "postgres") from dir
func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	sub, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		return err
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(&gooseLogger{})
	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// gooseLogger routes goose output to zap at debug level
type gooseLogger struct{}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	zap.S().Named("history").Debugf(format, v...)
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	zap.S().Named("history").Fatalf(format, v...)
}
