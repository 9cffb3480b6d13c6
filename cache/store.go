// cache/store.go

package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 50
	DefaultTTL  = 5 * time.Minute
)

// Store is a bounded, time-expiring key/value store. Entries older than the
// ttl are invisible to Get, and the least recently used entry is evicted
// once the capacity bound is reached. Entries are replaced wholesale, never
// mutated. Safe for concurrent use.
type Store[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a store with the given capacity and ttl. Non-positive values
// fall back to the defaults.
func New[V any](size int, ttl time.Duration) *Store[V] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get returns the live value for key. An expired or absent key reports
// false.
func (s *Store[V]) Get(key string) (V, bool) {
	return s.lru.Get(key)
}

// Set stores value under key, evicting the least recently used entry if the
// store is full. It always succeeds.
func (s *Store[V]) Set(key string, value V) {
	s.lru.Add(key, value)
}

// Reset clears all entries. Used on client shutdown.
func (s *Store[V]) Reset() {
	s.lru.Purge()
}

// Len returns the number of entries currently held, expired ones included.
func (s *Store[V]) Len() int {
	return s.lru.Len()
}
