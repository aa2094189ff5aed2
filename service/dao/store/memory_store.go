package store

import (
	"context"
	"sync"

	"github.com/viant/custard/service/dao"
)

// MemoryStore is a generic in-memory dao.Service. Values are copied on the
// way in and out through the clone function, so callers never share a
// pointer with the store.
type MemoryStore[K comparable, T any] struct {
	mu      sync.RWMutex
	records map[K]*T
	key     func(*T) K
	clone   func(*T) *T
	filter  func(*T, []*dao.Parameter) bool
}

// NewMemoryStore creates a store. filter may be nil to accept everything.
func NewMemoryStore[K comparable, T any](key func(*T) K, clone func(*T) *T, filter func(*T, []*dao.Parameter) bool) *MemoryStore[K, T] {
	if filter == nil {
		filter = func(*T, []*dao.Parameter) bool { return true }
	}
	return &MemoryStore[K, T]{
		records: make(map[K]*T),
		key:     key,
		clone:   clone,
		filter:  filter,
	}
}

// Save stores or overwrites a value.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	var zero K
	k := s.key(v)
	if k == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[k] = s.clone(v)
	return nil
}

// Load returns a copy of the value stored under k.
func (s *MemoryStore[K, T]) Load(_ context.Context, k K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[k]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return s.clone(v), nil
}

// Delete removes the value stored under k.
func (s *MemoryStore[K, T]) Delete(_ context.Context, k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[k]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, k)
	return nil
}

// List returns copies of all values accepted by the filter.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		if s.filter(v, parameters) {
			out = append(out, s.clone(v))
		}
	}
	return out, nil
}
