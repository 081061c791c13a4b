package kv

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophdiary/internal/common"
)

// MemoryStore keeps values in a map. Values are copied on the way in and out.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = clone(value)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, found := s.data[key]
	next, err := fn(clone(cur), found)
	if err != nil {
		return err
	}
	s.data[key] = clone(next)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
