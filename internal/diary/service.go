// Package diary orders and filters entries for display and drives the
// store for the user facing surfaces.
package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/common"
	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/dmitrijs2005/gophdiary/internal/store"
)

// Service is the entry point used by the CLI and the HTTP API. Every call
// reads through to the store; nothing is cached.
type Service struct {
	store store.Store
	log   logging.Logger
	now   func() time.Time
}

func NewService(s store.Store, log logging.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

// Store returns the backing store.
func (s *Service) Store() store.Store {
	return s.store
}

// List returns all entries in display order.
func (s *Service) List(ctx context.Context) ([]models.Entry, error) {
	return s.Search(ctx, "")
}

// Search filters a fresh listing by keyword and sorts the result for display.
func (s *Service) Search(ctx context.Context, keyword string) ([]models.Entry, error) {
	xs, err := s.store.List(ctx)
	if err != nil {
		s.log.Error(ctx, "list entries failed", "error", err)
		return nil, err
	}
	return SortForDisplay(Filter(xs, keyword)), nil
}

// Get looks the entry up in a full listing.
func (s *Service) Get(ctx context.Context, id string) (models.Entry, error) {
	xs, err := s.store.List(ctx)
	if err != nil {
		s.log.Error(ctx, "list entries failed", "error", err)
		return models.Entry{}, err
	}
	for _, e := range xs {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Entry{}, fmt.Errorf("entry %q: %w", id, common.ErrNotFound)
}

// Save normalizes and validates the draft, then stores it. A draft with an
// id updates that entry.
func (s *Service) Save(ctx context.Context, d models.Draft) (models.Entry, error) {
	d.Normalize(s.now())
	if err := d.Validate(); err != nil {
		return models.Entry{}, err
	}

	e, err := s.store.Save(ctx, d.Entry())
	if err != nil {
		s.log.Error(ctx, "save entry failed", "id", d.ID, "error", err)
		return models.Entry{}, err
	}
	s.log.Debug(ctx, "entry saved", "id", e.ID)
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Error(ctx, "delete entry failed", "id", id, "error", err)
		return err
	}
	s.log.Debug(ctx, "entry deleted", "id", id)
	return nil
}
