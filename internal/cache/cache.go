// Package cache provides a generic in-memory TTL store. Each record kind
// (day fixtures, league summaries, injuries, lineups, team statistics) gets
// its own Store instance with its own TTL; stores are constructed by the
// component that owns them and passed around explicitly — no process-wide
// singletons.
package cache

import (
	"sync"
	"time"
)

// TTLs per record kind.
const (
	TTLDayFixtures = 10 * time.Minute
	TTLLeagues     = 15 * time.Minute
	TTLInjuries    = 30 * time.Minute
	TTLLineups     = 30 * time.Minute
	TTLTeamStats   = 24 * time.Hour
)

// Now is the clock used for entry timestamps and expiry checks. Swapped out
// in tests.
var Now = time.Now

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Store is a thread-safe keyed TTL store for one record kind. An entry older
// than the TTL behaves exactly like a miss: the first Get past expiry removes
// it before returning. There is no eviction beyond that; growth is bounded
// only by the key space actually queried.
type Store[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
}

// NewStore creates a Store with a fixed TTL.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Get retrieves a cached value. A stale entry is deleted and reported as a
// miss.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if Now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value stamped with the current time. Concurrent writers to the
// same key are last-write-wins.
func (s *Store[T]) Set(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry[T]{value: value, storedAt: Now()}
}

// Stats describes the state of a store at a point in time.
type Stats struct {
	TotalKeys   int `json:"total_keys"`
	ActiveKeys  int `json:"active_keys"`
	ExpiredKeys int `json:"expired_keys"`
}

// Stats counts live and expired entries without evicting anything.
func (s *Store[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := Now()
	active := 0
	for _, e := range s.entries {
		if now.Sub(e.storedAt) <= s.ttl {
			active++
		}
	}
	return Stats{
		TotalKeys:   len(s.entries),
		ActiveKeys:  active,
		ExpiredKeys: len(s.entries) - active,
	}
}
