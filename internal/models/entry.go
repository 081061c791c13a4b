// Package models defines the diary entry and the types built around it.
package models

import "time"

// Entry is one diary record.
type Entry struct {
	// ID is assigned by the backend; callers treat it as opaque.
	ID string `json:"id,omitempty"`

	// Date is the user supplied date-only value (YYYY-MM-DD). It drives display order.
	Date string `json:"date"`

	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`

	// CreatedAt is set once, when the entry is first stored.
	CreatedAt time.Time `json:"createdAt,omitzero"`
	// UpdatedAt is refreshed on every save.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Normalize replaces absent tags with an empty sequence.
func (e *Entry) Normalize() {
	if e.Tags == nil {
		e.Tags = []string{}
	}
}

// NormalizeAll normalizes every entry of xs in place and returns xs.
func NormalizeAll(xs []Entry) []Entry {
	for i := range xs {
		xs[i].Normalize()
	}
	return xs
}

// DuplicateID returns the first non-empty id that occurs more than once in xs.
func DuplicateID(xs []Entry) (string, bool) {
	seen := make(map[string]struct{}, len(xs))
	for _, e := range xs {
		if e.ID == "" {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			return e.ID, true
		}
		seen[e.ID] = struct{}{}
	}
	return "", false
}

// Patch copies the user editable fields of src into e.
func (e *Entry) Patch(src Entry) {
	e.Date = src.Date
	e.Title = src.Title
	e.Content = src.Content
	e.Tags = append([]string{}, src.Tags...)
}
