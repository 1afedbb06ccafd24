package quota

import (
	"hash/fnv"
	"sync"
	"time"
)

// Entry is the live counter-and-expiry state for one principal within one
// window class. An entry whose ResetAt has passed is logically absent; it may
// linger in the store until the Reclaimer collects it.
type Entry struct {
	Count   int64
	ResetAt time.Time
}

// Expired reports whether the entry's window has fully elapsed at now.
func (e Entry) Expired(now time.Time) bool {
	return !now.Before(e.ResetAt)
}

const storeShards = 32

type shard struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// Store is the thread-safe mapping from principal key to Entry for a single
// window class. Keys are hashed across a fixed set of shards so that
// unrelated principals never contend on the same lock.
type Store struct {
	shards [storeShards]*shard
}

// NewStore creates an empty window store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]Entry)}
	}

	return s
}

func (s *Store) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return s.shards[h.Sum32()%storeShards]
}

// Get returns the entry for key if it exists and is still live at now.
// A stale entry behaves as absent but is left in place for the Reclaimer.
func (s *Store) Get(key string, now time.Time) (Entry, bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok || e.Expired(now) {
		return Entry{}, false
	}

	return e, true
}

// Put stores or replaces the entry for key.
func (s *Store) Put(key string, e Entry) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.entries[key] = e
}

// Delete removes the entry for key.
func (s *Store) Delete(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.entries, key)
}

// Update applies fn to the current entry for key under the shard lock,
// making the read-decide-mutate sequence atomic with respect to concurrent
// callers on the same key. fn receives the current entry (zero value when
// absent) and whether it was present; it returns the new entry and whether
// to keep it. Returning keep=false removes the entry (or leaves it absent).
func (s *Store) Update(key string, fn func(e Entry, ok bool) (Entry, bool)) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]

	next, keep := fn(e, ok)
	if keep {
		sh.entries[key] = next
	} else if ok {
		delete(sh.entries, key)
	}
}

// ForEach visits every (key, entry) pair, locking one shard at a time so a
// long enumeration never blocks writers on other shards. Returning false from
// the visitor stops the enumeration.
func (s *Store) ForEach(visit func(key string, e Entry) bool) {
	for _, sh := range s.shards {
		sh.mu.Lock()

		for key, e := range sh.entries {
			if !visit(key, e) {
				sh.mu.Unlock()

				return
			}
		}

		sh.mu.Unlock()
	}
}

// Len returns the number of stored entries, live or stale.
func (s *Store) Len() int {
	total := 0

	for _, sh := range s.shards {
		sh.mu.Lock()
		total += len(sh.entries)
		sh.mu.Unlock()
	}

	return total
}
