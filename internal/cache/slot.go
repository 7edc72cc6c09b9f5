package cache

import "sync"

// Slot is a cache with room for exactly one key. Storing a new key evicts
// the previous one, so going back to an earlier key always rebuilds.
type Slot[T any] struct {
	mu    sync.Mutex
	key   string
	data  T
	valid bool
	gen   uint64 // bumped by Invalidate
}

// NewSlot creates an empty single-entry cache
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Get retrieves the value when key is the cached key
func (s *Slot[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.valid || s.key != key {
		return zero, false
	}
	return s.data, true
}

// Set replaces the cached entry
func (s *Slot[T]) Set(key string, data T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
	s.data = data
	s.valid = true
}

// GetOrBuild returns the cached value for key, calling build on a miss.
// build runs without the lock held so it may read from stores that
// invalidate this slot. A value built across an Invalidate is returned
// but not cached.
func (s *Slot[T]) GetOrBuild(key string, build func() T) T {
	s.mu.Lock()
	if s.valid && s.key == key {
		data := s.data
		s.mu.Unlock()
		return data
	}
	gen := s.gen
	s.mu.Unlock()

	data := build()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.key = key
		s.data = data
		s.valid = true
	}
	return data
}

// Invalidate marks the slot stale
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	s.key = ""
	s.data = zero
	s.valid = false
	s.gen++
}

// Key returns the cached key, if any
func (s *Slot[T]) Key() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.valid
}

// Size returns 1 when a value is cached
func (s *Slot[T]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid {
		return 1
	}
	return 0
}
