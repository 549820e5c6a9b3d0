package persistence

import (
	"fmt"
	"sync"
)

// MemoryStore keeps stats for the lifetime of the process
type MemoryStore struct {
	mutex   sync.RWMutex
	stats   map[string]*Stats
	records []Record
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stats: make(map[string]*Stats)}
}

// SaveResult adds a match to the profile's stats
func (ms *MemoryStore) SaveResult(r Record) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()

	s, ok := ms.stats[r.Profile]
	if !ok {
		s = &Stats{Profile: r.Profile}
		ms.stats[r.Profile] = s
	}
	s.Add(r)
	ms.records = append(ms.records, r)
	return nil
}

// LoadStats returns a copy of the profile's stats
func (ms *MemoryStore) LoadStats(profile string) (*Stats, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()

	s, ok := ms.stats[profile]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

// Records returns every saved match in order
func (ms *MemoryStore) Records() []Record {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	return append([]Record(nil), ms.records...)
}

// put replaces a profile's stats
func (ms *MemoryStore) put(s *Stats) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.stats[s.Profile] = s
}

// Close does nothing
func (ms *MemoryStore) Close() error {
	return nil
}
