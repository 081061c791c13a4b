package kv

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Open connects to the named backend. dsn is a file path or SQLite DSN,
// a PostgreSQL connection string, or a redis:// URL; it is ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverRedis:
		return OpenRedis(ctx, dsn)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown kv driver %q", driver)
	}
}
