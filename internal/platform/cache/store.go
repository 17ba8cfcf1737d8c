// Package cache provides a small in-process TTL cache used to keep
// identity lookups off the hot path.
package cache

import (
	"sync"
	"time"

	"github.com/aryasetia/dropshot/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a TTL keyed cache. Expired entries are evicted lazily on
// read and loads for the same key are collapsed via single flight.
type Store[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	group   *resilience.SingleFlight[K, V]
	now     func() time.Time
}

func NewStore[K comparable, V any](ttl time.Duration) *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		group:   resilience.NewSingleFlight[K, V](),
		now:     time.Now,
	}
}

func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}
	if s.now().After(item.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()

		var zero V
		return zero, false
	}
	return item.value, true
}

func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or loads it, caching the result.
// Concurrent loads for one key run once.
func (s *Store[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	return s.group.Do(key, func() (V, error) {
		if value, ok := s.Get(key); ok {
			return value, nil
		}
		value, err := load()
		if err != nil {
			var zero V
			return zero, err
		}
		s.Set(key, value)
		return value, nil
	})
}
