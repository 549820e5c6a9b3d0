package persistence

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/younwookim/legion/internal/domain/entity"
)

// ErrNotFound is returned when a profile has no recorded matches
var ErrNotFound = errors.New("not found")

// Stats is a profile's arena record
type Stats struct {
	Profile           string `yaml:"profile"`
	Matches           int    `yaml:"matches"`
	Wins              int    `yaml:"wins"`
	Losses            int    `yaml:"losses"`
	SuddenDeathWins   int    `yaml:"suddenDeathWins"`
	SuddenDeathLosses int    `yaml:"suddenDeathLosses"`
	Kills             int    `yaml:"kills"`
	Deaths            int    `yaml:"deaths"`
}

// Record is one finished match seen from a profile's fighter
type Record struct {
	Profile     string
	Won         bool
	SuddenDeath bool
	BossesWon   bool
	Team        int
	Character   int
	Kills       int
	Deaths      int
	Ticks       int
	PlayedAt    time.Time
}

// Add folds a match record into the stats
func (s *Stats) Add(r Record) {
	s.Matches++
	s.Kills += r.Kills
	s.Deaths += r.Deaths
	if r.Won {
		s.Wins++
		if r.SuddenDeath {
			s.SuddenDeathWins++
		}
		return
	}
	s.Losses++
	if r.SuddenDeath {
		s.SuddenDeathLosses++
	}
}

// Storage defines the interface for result persistence
type Storage interface {
	SaveResult(r Record) error
	LoadStats(profile string) (*Stats, error)
	Close() error
}

// RecordResult scores a finished match for the fighter in slot and saves it.
// A fighter wins when its team wins, or when it is the sole winner of a
// free-for-all.
func RecordResult(store Storage, profile string, slot int, result *entity.MatchResult) (Record, error) {
	if result == nil || slot < 0 || slot >= len(result.Tallies) {
		return Record{}, fmt.Errorf("no tally for slot %d", slot)
	}
	tally := result.Tallies[slot]

	won := !result.BossesWon &&
		(result.Winner == slot || (tally.Team != entity.TeamNone && result.WinningTeam == tally.Team))

	r := Record{
		Profile:     profile,
		Won:         won,
		SuddenDeath: result.SuddenDeath,
		BossesWon:   result.BossesWon,
		Team:        int(tally.Team),
		Character:   tally.Character,
		Kills:       tally.Kills,
		Deaths:      tally.Deaths,
		Ticks:       result.Ticks,
		PlayedAt:    time.Now(),
	}
	if err := store.SaveResult(r); err != nil {
		return r, fmt.Errorf("failed to save result: %w", err)
	}
	return r, nil
}

// Open picks a store from a results location: a postgres URL or DSN opens
// PostgresStore, anything else is a gdata application name.
func Open(location string) (Storage, error) {
	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") ||
		strings.Contains(location, "dbname=") {
		log.Printf("[Persistence] using PostgreSQL")
		return NewPostgresStore(location)
	}
	if location == "" {
		location = DefaultAppName
	}
	log.Printf("[Persistence] using local data for %s", location)
	return OpenGdataStore(location), nil
}
