package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophdiary/internal/dbx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore implements Store over a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an already migrated database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects through the pgx driver and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := RunMigrations(ctx, db, "postgres", "postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStore(db), nil
}

const (
	postgresLock   = `SELECT pg_advisory_xact_lock(hashtext($1))`
	postgresSelect = `SELECT value FROM kv WHERE key = $1`
	postgresUpsert = `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// Get returns the value for key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	return selectValue(ctx, s.db, postgresSelect, key)
}

// Put upserts the value for key.
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	return upsertValue(ctx, s.db, postgresUpsert, key, value)
}

// Update serializes writers on key with a transaction-scoped advisory lock,
// which also covers the case where the row does not exist yet.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, postgresLock, key); err != nil {
			return fmt.Errorf("failed to lock key: %w", err)
		}
		return updateValue(ctx, tx, postgresSelect, postgresUpsert, key, fn)
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
