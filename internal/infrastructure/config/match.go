package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/legion/internal/domain/entity"
)

// MatchConfig is the root config for a match YAML file
type MatchConfig struct {
	Stage           string          `yaml:"stage" json:"stage"`
	Type            string          `yaml:"type" json:"type"`
	Difficulty      string          `yaml:"difficulty" json:"difficulty"`
	Minutes         int             `yaml:"minutes" json:"minutes"`
	Lives           int             `yaml:"lives" json:"lives"`
	ItemProbability int             `yaml:"itemProbability" json:"itemProbability"`
	CrowdPressure   bool            `yaml:"crowdPressure" json:"crowdPressure"`
	Bosses          int             `yaml:"bosses" json:"bosses"`
	MetalFight      bool            `yaml:"metalFight" json:"metalFight"`
	CloakedFight    bool            `yaml:"cloakedFight" json:"cloakedFight"`
	Fighters        []FighterConfig `yaml:"fighters" json:"fighters"`
}

// FighterConfig describes one fighter slot
type FighterConfig struct {
	Character  string `yaml:"character" json:"character"`
	Team       int    `yaml:"team" json:"team"`
	Controller string `yaml:"controller" json:"controller"`
}

const maxFighters = 4

// Validate checks the match description for inconsistent settings
func (m *MatchConfig) Validate() error {
	if m.Stage == "" {
		return errors.New("match has no stage")
	}
	if n := len(m.Fighters); n == 0 || n > maxFighters {
		return fmt.Errorf("match needs 1 to %d fighters, got %d", maxFighters, n)
	}
	mt, err := entity.ParseMatchType(m.Type)
	if err != nil {
		return err
	}
	if _, err := entity.ParseDifficulty(m.Difficulty); err != nil {
		return err
	}
	if mt == entity.MatchStock && m.Lives <= 0 && m.Bosses == 0 {
		return fmt.Errorf("stock match needs positive lives, got %d", m.Lives)
	}
	if mt == entity.MatchTimed && m.Minutes <= 0 {
		return fmt.Errorf("timed match needs positive minutes, got %d", m.Minutes)
	}
	if m.Bosses < 0 || m.Bosses > 2 {
		return fmt.Errorf("bosses must be 0, 1 or 2, got %d", m.Bosses)
	}
	if m.ItemProbability < 0 {
		return fmt.Errorf("item probability must not be negative, got %d", m.ItemProbability)
	}
	for i, fc := range m.Fighters {
		if _, ok := entity.CharacterByName(fc.Character); !ok {
			return fmt.Errorf("fighter %d: unknown character %q", i+1, fc.Character)
		}
		if _, err := fc.ControllerKind(); err != nil {
			return fmt.Errorf("fighter %d: %w", i+1, err)
		}
	}
	return nil
}

// MatchType returns the parsed match type
func (m *MatchConfig) MatchType() entity.MatchType {
	mt, _ := entity.ParseMatchType(m.Type)
	return mt
}

// Level returns the parsed difficulty
func (m *MatchConfig) Level() entity.Difficulty {
	d, err := entity.ParseDifficulty(m.Difficulty)
	if err != nil {
		return entity.Classic
	}
	return d
}

// ControllerKind parses the controller name
func (f FighterConfig) ControllerKind() (entity.ControllerKind, error) {
	switch f.Controller {
	case "human", "":
		return entity.ControlHuman, nil
	case "ai", "cpu":
		return entity.ControlAI, nil
	case "remote":
		return entity.ControlRemote, nil
	default:
		return 0, fmt.Errorf("unknown controller %q", f.Controller)
	}
}
