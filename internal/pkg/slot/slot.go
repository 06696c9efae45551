// Package slot holds a single cached value tagged with the key it was computed for.
//
// A Slot is not a memoizer: storing a value under a new key evicts the previous one, and
// Invalidate empties it. It suits lookups that are repeated with the same argument in a
// tight loop, such as one job title scored against many applications.
package slot

import "sync"

type Slot[K comparable, V any] struct {
	mu    sync.RWMutex
	key   K
	value V
	full  bool
}

// Get returns the stored value when it was stored under key.
func (s *Slot[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.full || s.key != key {
		var zero V
		return zero, false
	}
	return s.value, true
}

// Put replaces the slot content.
func (s *Slot[K, V]) Put(key K, value V) {
	s.mu.Lock()
	s.key = key
	s.value = value
	s.full = true
	s.mu.Unlock()
}

// GetOrCompute returns the cached value for key or computes and stores it.
// compute runs outside the lock; concurrent misses may compute twice, last write wins.
func (s *Slot[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := s.Get(key); ok {
		return v
	}
	v := compute()
	s.Put(key, v)
	return v
}

func (s *Slot[K, V]) Invalidate() {
	s.mu.Lock()
	var zeroK K
	var zeroV V
	s.key = zeroK
	s.value = zeroV
	s.full = false
	s.mu.Unlock()
}
