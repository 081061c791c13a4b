package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/dbx"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store over a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens the database at dsn, limits it to one connection and
// applies migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// one writer; also keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db, "sqlite3", "sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

const (
	sqliteSelect = `select value from kv where key = ?`
	sqliteUpsert = `insert into kv (key, value, updated_at) values (?, ?, CURRENT_TIMESTAMP)
		on conflict(key) do update set value = excluded.value, updated_at = excluded.updated_at`
)

// Get returns the value for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	return selectValue(ctx, s.db, sqliteSelect, key)
}

// Put upserts the value for key.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	return upsertValue(ctx, s.db, sqliteUpsert, key, value)
}

// Update runs fn inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return updateValue(ctx, tx, sqliteSelect, sqliteUpsert, key, fn)
	})
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func selectValue(ctx context.Context, db dbx.DBTX, query, key string) ([]byte, error) {
	var v []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select value: %w", err)
	}
	return v, nil
}

func upsertValue(ctx context.Context, db dbx.DBTX, query, key string, value []byte) error {
	if _, err := db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert value: %w", err)
	}
	return nil
}

func updateValue(ctx context.Context, tx dbx.DBTX, selectQuery, upsertQuery, key string, fn UpdateFunc) error {
	cur, err := selectValue(ctx, tx, selectQuery, key)
	found := true
	if errors.Is(err, common.ErrNotFound) {
		found, err = false, nil
	}
	if err != nil {
		return err
	}

	next, err := fn(cur, found)
	if err != nil {
		return err
	}
	return upsertValue(ctx, tx, upsertQuery, key, next)
}
