// Package local keeps the whole diary as one JSON array under a single key
// of a kv.Store.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/idx"
	"github.com/dmitrijs2005/gophdiary/internal/kv"
	"github.com/dmitrijs2005/gophdiary/internal/models"
)

// Store implements store.Store, store.Replacer and store.Pinger.
type Store struct {
	kv  kv.Store
	key string
	now func() time.Time
}

func New(backend kv.Store) *Store {
	return &Store{kv: backend, key: common.LocalStorageKey, now: time.Now}
}

// List returns the entries in stored order. An absent key is an empty diary.
func (s *Store) List(ctx context.Context) ([]models.Entry, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, common.ErrNotFound) {
		return []models.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRetrieval, err)
	}

	xs, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRetrieval, err)
	}
	return xs, nil
}

// Save updates the entry with a matching id in place or appends a new one.
func (s *Store) Save(ctx context.Context, e models.Entry) (models.Entry, error) {
	now := s.now().UTC()
	var saved models.Entry

	err := s.kv.Update(ctx, s.key, func(cur []byte, found bool) ([]byte, error) {
		xs, err := decodeFound(cur, found)
		if err != nil {
			return nil, err
		}

		if e.ID != "" {
			for i := range xs {
				if xs[i].ID != e.ID {
					continue
				}
				xs[i].Patch(e)
				xs[i].UpdatedAt = now
				if xs[i].CreatedAt.IsZero() {
					xs[i].CreatedAt = now
				}
				saved = xs[i]
				return json.Marshal(xs)
			}
		}

		var rec models.Entry
		rec.Patch(e)
		rec.ID = idx.NewLocalID(now)
		rec.CreatedAt, rec.UpdatedAt = now, now
		saved = rec
		return json.Marshal(append(xs, rec))
	})
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", common.ErrSave, err)
	}
	return saved, nil
}

// Delete drops every entry with id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.kv.Update(ctx, s.key, func(cur []byte, found bool) ([]byte, error) {
		xs, err := decodeFound(cur, found)
		if err != nil {
			return nil, err
		}
		kept := xs[:0]
		for _, e := range xs {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return json.Marshal(kept)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrDelete, err)
	}
	return nil
}

// ReplaceAll overwrites the stored diary with entries. Entries without an
// id get a fresh one; everything else is written as given. Repeated ids are
// refused and leave the stored diary untouched.
func (s *Store) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	if id, dup := models.DuplicateID(entries); dup {
		return fmt.Errorf("%w: %w: duplicate id %q", common.ErrSave, common.ErrFormat, id)
	}

	now := s.now()
	xs := make([]models.Entry, len(entries))
	copy(xs, entries)
	for i := range xs {
		if xs[i].ID == "" {
			xs[i].ID = idx.NewLocalID(now)
		}
		xs[i].Normalize()
	}

	data, err := json.Marshal(xs)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSave, err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSave, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func decodeFound(raw []byte, found bool) ([]models.Entry, error) {
	if !found {
		return []models.Entry{}, nil
	}
	return decode(raw)
}

func decode(raw []byte) ([]models.Entry, error) {
	var xs []models.Entry
	if err := json.Unmarshal(raw, &xs); err != nil {
		return nil, fmt.Errorf("decode stored diaries: %w", err)
	}
	if xs == nil {
		xs = []models.Entry{}
	}
	return models.NormalizeAll(xs), nil
}
