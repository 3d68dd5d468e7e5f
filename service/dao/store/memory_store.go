// Package store provides a generic in-memory dao.Service.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/memfit/service/dao"
)

// MemoryStore keeps entities of type *T mapped by the key keySelector
// extracts.  List applies the optional matcher and orders the result with
// the optional less function.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector func(*T) K
	matcher     func(*T, []*dao.Parameter) bool
	less        func(a, b *T) bool
}

// StoreOption configures a MemoryStore.
type StoreOption[K comparable, T any] func(*MemoryStore[K, T])

// WithMatcher filters List results.
func WithMatcher[K comparable, T any](matcher func(*T, []*dao.Parameter) bool) StoreOption[K, T] {
	return func(s *MemoryStore[K, T]) {
		s.matcher = matcher
	}
}

// WithOrder sorts List results.
func WithOrder[K comparable, T any](less func(a, b *T) bool) StoreOption[K, T] {
	return func(s *MemoryStore[K, T]) {
		s.less = less
	}
}

// NewMemoryStore creates a MemoryStore.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, options ...StoreOption[K, T]) *MemoryStore[K, T] {
	s := &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	var zero K
	if key == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	var zero K
	if key == zero {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return v, nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns the stored records matching parameters.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		if s.matcher != nil && !s.matcher(v, parameters) {
			continue
		}
		out = append(out, v)
	}
	s.mu.RUnlock()
	if s.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	}
	return out, nil
}
