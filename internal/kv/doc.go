// Package kv provides the key-value backends behind the local entry store.
//
// # Overview
//
// The local store keeps the whole entry collection as one serialized value
// under a single key, so a backend only needs Get, Put and an atomic
// read-modify-write (Update). Implementations:
//
//   - SQLiteStore  : modernc.org/sqlite, table kv, goose migrations
//   - PostgresStore: pgx stdlib driver, table kv, goose migrations
//   - RedisStore   : go-redis, optimistic WATCH/MULTI transactions
//   - MemoryStore  : process-local map, for tests and throwaway sessions
//
// Missing keys are reported as common.ErrNotFound.
//
// Typical usage
//
//	s, err := kv.Open(ctx, "sqlite", "diary.db")
//	defer s.Close()
//	err = s.Update(ctx, "diaries", func(cur []byte, found bool) ([]byte, error) { ... })
package kv
