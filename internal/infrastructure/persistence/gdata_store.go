package persistence

import (
	"errors"
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultAppName is the gdata application directory for local results
const DefaultAppName = "legion"

const statsObject = "stats"

// GdataStore keeps stats as YAML in the platform's app data directory.
// Without a manager it runs in memory only.
type GdataStore struct {
	manager *gdata.Manager
	cache   *MemoryStore
}

// NewGdataStore wraps a gdata manager, which may be nil
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager, cache: NewMemoryStore()}
}

// OpenGdataStore opens the app data directory, degrading to memory-only
// storage when it is unavailable
func OpenGdataStore(appName string) *GdataStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Persistence] Warning: local data unavailable: %v (results kept in memory)", err)
		manager = nil
	}
	return NewGdataStore(manager)
}

// Persistent reports whether results outlive the process
func (gs *GdataStore) Persistent() bool {
	return gs.manager != nil
}

// SaveResult adds the match to the profile's stats and writes them back
func (gs *GdataStore) SaveResult(r Record) error {
	s, err := gs.LoadStats(r.Profile)
	if errors.Is(err, ErrNotFound) {
		s, err = &Stats{Profile: r.Profile}, nil
	}
	if err != nil {
		return err
	}
	s.Add(r)
	gs.cache.put(s)

	if gs.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	if err := gs.manager.SaveObjectProp(statsObject, r.Profile, data); err != nil {
		return fmt.Errorf("failed to save stats: %w", err)
	}
	return nil
}

// LoadStats reads the profile's stats
func (gs *GdataStore) LoadStats(profile string) (*Stats, error) {
	if s, err := gs.cache.LoadStats(profile); err == nil {
		return s, nil
	}
	if gs.manager == nil || !gs.manager.ObjectPropExists(statsObject, profile) {
		return nil, fmt.Errorf("profile %s: %w", profile, ErrNotFound)
	}

	data, err := gs.manager.LoadObjectProp(statsObject, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	var s Stats
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	gs.cache.put(&s)
	cp := s
	return &cp, nil
}

// Close does nothing; every save is written through
func (gs *GdataStore) Close() error {
	return nil
}
