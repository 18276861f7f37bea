package dedup

import (
	"log"
	"sort"
	"sync"
)

// Store holds fingerprints in memory, keyed by content hash, together with
// a reverse index from content hash to the caller-assigned content ID.
// A single lock guards both maps: detector scans take the read side via
// Snapshot, mutations (insert plus eviction) are serialized on the write
// side. Fingerprints are created and destroyed only through the owning
// Service; there is no update path.
type Store struct {
	mu           sync.RWMutex
	fingerprints map[string]*ContentFingerprint
	contentIDs   map[string]string
	maxEntries   int
}

// NewStore creates a store bounded to maxEntries fingerprints.
func NewStore(maxEntries int) *Store {
	return &Store{
		fingerprints: make(map[string]*ContentFingerprint),
		contentIDs:   make(map[string]string),
		maxEntries:   maxEntries,
	}
}

// Snapshot returns the current fingerprints as a slice. The slice is a
// fresh copy, safe to scan while other goroutines insert; the fingerprints
// themselves are immutable.
func (s *Store) Snapshot() []*ContentFingerprint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ContentFingerprint, 0, len(s.fingerprints))
	for _, fp := range s.fingerprints {
		out = append(out, fp)
	}
	return out
}

// Insert stores a new fingerprint and its content-ID mapping, evicting the
// oldest entries first when the store is at capacity. An existing
// fingerprint with the same content hash is kept; duplicates never replace
// the original.
func (s *Store) Insert(fp *ContentFingerprint, contentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.fingerprints[fp.ContentHash]; exists {
		return
	}

	if s.maxEntries > 0 && len(s.fingerprints) >= s.maxEntries {
		s.evictOldestLocked()
	}

	s.fingerprints[fp.ContentHash] = fp
	s.contentIDs[fp.ContentHash] = contentID
}

// evictOldestLocked removes the oldest 10% of fingerprints by creation
// time, with a floor of one entry so eviction always makes progress on
// small stores. Caller must hold the write lock.
func (s *Store) evictOldestLocked() {
	count := len(s.fingerprints) / 10
	if count < 1 {
		count = 1
	}

	type entry struct {
		hash string
		fp   *ContentFingerprint
	}
	entries := make([]entry, 0, len(s.fingerprints))
	for hash, fp := range s.fingerprints {
		entries = append(entries, entry{hash: hash, fp: fp})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].fp.CreatedAt.Before(entries[j].fp.CreatedAt)
	})

	for i := 0; i < count && i < len(entries); i++ {
		delete(s.fingerprints, entries[i].hash)
		delete(s.contentIDs, entries[i].hash)
	}

	log.Printf("Evicted %d oldest fingerprint(s); %d remaining", count, len(s.fingerprints))
}

// ResolveContentID looks up the content ID recorded for a content hash.
// The mapping may have been evicted even though a fingerprint matched, in
// which case ok is false and the caller reports an unresolvable origin.
func (s *Store) ResolveContentID(contentHash string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.contentIDs[contentHash]
	return id, ok
}

// Len returns the number of stored fingerprints.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fingerprints)
}

// Clear removes all fingerprints and content-ID mappings.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fingerprints = make(map[string]*ContentFingerprint)
	s.contentIDs = make(map[string]string)
}

// All returns copies of both maps for serialization.
func (s *Store) All() (map[string]*ContentFingerprint, map[string]string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fps := make(map[string]*ContentFingerprint, len(s.fingerprints))
	for hash, fp := range s.fingerprints {
		fps[hash] = fp
	}
	ids := make(map[string]string, len(s.contentIDs))
	for hash, id := range s.contentIDs {
		ids[hash] = id
	}
	return fps, ids
}
