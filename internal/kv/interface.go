package kv

import "context"

// UpdateFunc receives the current value (found is false when the key is
// absent) and returns the value to store. Returning an error aborts the
// update and leaves the stored value untouched.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a minimal key-value backend.
type Store interface {
	// Get returns the value stored under key or common.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Update atomically replaces the value under key with fn's result.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
