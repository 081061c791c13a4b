package kv

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/kv/migrations"
	"github.com/pressly/goose/v3"
)

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations for dialect
// ("sqlite3" or "postgres") found in dir.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
