// Package snapstore defines the in-process byte store that holds record
// snapshots between reads.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the []byte previously passed to Set for a key (no prepended metadata, no
// re-encoding, no mutation). Values may alias the caller's slice, so callers
// must not modify a value after Set or after Get returns it.
//
// Losing an entry is always safe. A snapshot miss only costs one locked
// re-read of the backing file, so bounded stores are free to evict under
// pressure and Set is allowed to reject writes outright.
package snapstore

import "sync"

// Store is a minimal process-local byte store.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true) on hit, (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Set stores value. Cost approximates the entry's memory footprint for
	// stores that budget by cost; others may ignore it. Returns false when
	// the store rejected the write under pressure.
	Set(key string, value []byte, cost int64) bool

	// Del removes a key (best-effort).
	Del(key string)

	// Close releases resources.
	Close() error
}

// Map is the default Store: a mutex-guarded map with no size bound. Suited
// to the common case of a process holding a handful of state files. Use the
// bigcache or ristretto stores when many cache instances share one Store and
// memory needs a ceiling.
type Map struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ Store = (*Map)(nil)

func NewMap() *Map {
	return &Map{m: make(map[string][]byte)}
}

func (s *Map) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	b, ok := s.m[key]
	s.mu.RUnlock()
	return b, ok
}

func (s *Map) Set(key string, value []byte, _ int64) bool {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return true
}

func (s *Map) Del(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// Close drops all entries. The Map remains usable afterwards; a fresh map is
// installed so late readers see misses rather than stale snapshots.
func (s *Map) Close() error {
	s.mu.Lock()
	s.m = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}
