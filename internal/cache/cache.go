// Package cache provides content-addressed caching for extracted quote text.
// The store is bounded and process-lifetime only; a miss is never an error,
// just a reason to re-extract.
package cache

import "sync"

// DefaultCapacity is the default number of extraction results kept in memory.
const DefaultCapacity = 50

// Entry is a cached extraction result, minus the display name: the same
// bytes may be re-uploaded under a different name, so the name belongs to
// the request, not the cache.
type Entry struct {
	MediaType  string
	ByteSize   int64
	Text       string
	TextLength int
}

// Store is a concurrency-safe bounded digest -> Entry map with FIFO
// eviction: inserting beyond capacity evicts the oldest-inserted key, not
// the least recently used one. Get does not affect eviction order.
type Store struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]Entry
	order    []string // insertion order, oldest first
}

// NewStore creates a store holding at most capacity entries.
// A non-positive capacity falls back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		entries:  make(map[string]Entry, capacity),
	}
}

// Get returns the cached entry for digest, if any. No side effects.
func (s *Store) Get(digest string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[digest]
	return e, ok
}

// Put inserts or overwrites the entry for digest. When the store is full
// and the digest is new, the single oldest-inserted key is evicted first.
// The capacity check, eviction and insert happen under one lock so
// concurrent extraction jobs cannot race the store past its capacity.
func (s *Store) Put(digest string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[digest]; exists {
		s.entries[digest] = e
		return
	}

	if len(s.entries) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}

	s.entries[digest] = e
	s.order = append(s.order, digest)
}

// Len returns the current number of cached entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
