package entity

import (
	"fmt"
	"strings"
)

// Difficulty is the tie-break denominator: an opportunistic AI action fires
// when rng.Intn(D) == 0, so lower values are harder.
type Difficulty int

const (
	Classic  Difficulty = 9
	Admiral  Difficulty = 7
	Premiere Difficulty = 5
	Elite    Difficulty = 3
)

// ParseDifficulty maps a level name to its Difficulty
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(name) {
	case "classic", "":
		return Classic, nil
	case "admiral":
		return Admiral, nil
	case "premiere":
		return Premiere, nil
	case "elite":
		return Elite, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", name)
	}
}

func (d Difficulty) String() string {
	switch d {
	case Classic:
		return "classic"
	case Admiral:
		return "admiral"
	case Premiere:
		return "premiere"
	case Elite:
		return "elite"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// BossHP returns the primary boss's starting hit points
func (d Difficulty) BossHP() int {
	switch d {
	case Admiral:
		return 300
	case Premiere:
		return 400
	case Elite:
		return 500
	default:
		return 200
	}
}

// SecondaryBossHP returns the secondary boss's starting hit points
func (d Difficulty) SecondaryBossHP() int {
	if d == Elite {
		return Elite.BossHP()
	}
	return Premiere.BossHP()
}

// MatchType selects the win condition
type MatchType int

const (
	MatchStock MatchType = iota
	MatchTimed
)

// ParseMatchType maps a name to its MatchType
func ParseMatchType(name string) (MatchType, error) {
	switch strings.ToLower(name) {
	case "stock", "":
		return MatchStock, nil
	case "timed", "time":
		return MatchTimed, nil
	default:
		return 0, fmt.Errorf("unknown match type %q", name)
	}
}

func (t MatchType) String() string {
	if t == MatchTimed {
		return "timed"
	}
	return "stock"
}

// FighterTally is a fighter's end-of-match line
type FighterTally struct {
	Index       int
	Character   int
	Team        Team
	Controller  ControllerKind
	Kills       int
	Deaths      int
	Percent     int
	DamageTaken int
	Alive       bool
}

// MatchResult is the outcome of a finished match.
// A zero WinningTeam with BossesWon set means the bosses won.
type MatchResult struct {
	WinningTeam Team
	Winner      int // fighter index, -1 for a team or boss result
	SuddenDeath bool
	BossesWon   bool
	Ticks       int
	Tallies     []FighterTally
}
