// Package store defines the persistence contract shared by the remote
// object-store adapter and the local key-value adapter.
//
// Failures are reported by wrapping common.ErrRetrieval, common.ErrSave or
// common.ErrDelete, so callers can match them with errors.Is regardless of
// the backend in use.
package store

import (
	"context"

	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Store is the capability set every backend provides.
type Store interface {
	// List returns every entry with tags normalized.
	List(ctx context.Context) ([]models.Entry, error)

	// Save creates or updates an entry and returns the persisted record.
	// Create sets CreatedAt == UpdatedAt; update keeps CreatedAt and
	// refreshes UpdatedAt.
	Save(ctx context.Context, e models.Entry) (models.Entry, error)

	// Delete removes the entry with the given id.
	Delete(ctx context.Context, id string) error
}

// Replacer is implemented by backends that can overwrite the whole
// collection at once. Import uses it as a destructive replace.
type Replacer interface {
	ReplaceAll(ctx context.Context, entries []models.Entry) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
