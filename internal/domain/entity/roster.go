package entity

import "strings"

// SpecialType selects how a character's special attack behaves
type SpecialType int

const (
	SpecialStill SpecialType = iota
	SpecialProjectile
	SpecialMissile
)

func (s SpecialType) String() string {
	switch s {
	case SpecialStill:
		return "still"
	case SpecialProjectile:
		return "projectile"
	case SpecialMissile:
		return "missile"
	default:
		return "unknown"
	}
}

// Character is a selectable roster entry
type Character struct {
	Name    string
	Width   int
	Height  int
	Special SpecialType
}

// Roster lists the selectable characters in menu order
var Roster = [...]Character{
	{"A. Azzurro", 26, 26, SpecialStill},
	{"Axion", 24, 26, SpecialProjectile},
	{"Bowser", 32, 32, SpecialStill},
	{"Capt. Falcon", 24, 28, SpecialStill},
	{"Dr. Mario", 16, 28, SpecialMissile},
	{"Don Dorado", 22, 31, SpecialStill},
	{"Falco", 20, 25, SpecialMissile},
	{"Fox", 20, 25, SpecialStill},
	{"Ganondorf", 32, 32, SpecialStill},
	{"King Boo", 32, 32, SpecialStill},
	{"Kirby", 22, 22, SpecialMissile},
	{"Link", 22, 21, SpecialProjectile},
	{"Luigi", 16, 24, SpecialMissile},
	{"Mario", 16, 20, SpecialMissile},
	{"Marth", 26, 26, SpecialStill},
	{"Metaknight", 22, 22, SpecialStill},
	{"Game n Watch", 18, 18, SpecialProjectile},
	{"Peach", 22, 22, SpecialMissile},
	{"Roy", 26, 26, SpecialMissile},
	{"Samus", 20, 23, SpecialProjectile},
	{"Sonic", 22, 22, SpecialStill},
	{"Wario", 24, 25, SpecialMissile},
	{"Yoshi", 20, 22, SpecialStill},
	{"Zelda", 20, 26, SpecialMissile},
}

// NumCharacters is the roster size
const NumCharacters = len(Roster)

// CharacterByName finds a roster index by case-insensitive name
func CharacterByName(name string) (int, bool) {
	for i, c := range Roster {
		if strings.EqualFold(c.Name, name) {
			return i, true
		}
	}
	return 0, false
}
