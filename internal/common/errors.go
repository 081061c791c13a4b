// Package common defines shared constants and sentinel errors used across
// the diary layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors. Adapters wrap the underlying cause with one of these.
	ErrRetrieval = errors.New("retrieval error")
	ErrSave      = errors.New("save error")
	ErrDelete    = errors.New("delete error")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Input errors.
	ErrFormat     = errors.New("invalid file format")
	ErrValidation = errors.New("validation error")

	// Export with an empty collection.
	ErrNothingToExport = errors.New("no diaries to export")
)
