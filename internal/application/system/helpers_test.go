package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// floorRows is a 20x8 arena: open air, a cloud platform over tiles 4-7 at
// y=48 and a solid floor from y=96.
var floorRows = []string{
	"....................",
	"....................",
	"....................",
	"....====............",
	"....................",
	"....................",
	"####################",
	"####################",
}

var testMapping = map[string]config.TileMappingConfig{
	".": {Flags: nil, TileIndex: 0},
	"#": {Flags: []string{"solid"}, TileIndex: 1},
	"=": {Flags: []string{"solid", "cloud"}, TileIndex: 2},
	"H": {Flags: []string{"ladder"}, TileIndex: 3},
	"C": {Flags: []string{"solid", "collapsing"}, TileIndex: 4},
	"~": {Flags: []string{"water"}, TileIndex: 5},
	"^": {Flags: []string{"hot"}, TileIndex: 6},
	"P": {Flags: []string{"solid", "partial"}, TileIndex: 7},
	"D": {Flags: []string{"door"}, TileIndex: 8},
	"/": {Flags: []string{"solid", "slopeRight"}, TileIndex: 9},
	"\\": {Flags: []string{"solid", "slopeLeft"}, TileIndex: 10},
}

func testStage(t testing.TB, rows ...string) *entity.Stage {
	t.Helper()
	if len(rows) == 0 {
		rows = floorRows
	}
	stage, err := LoadStage(&config.StageConfig{
		ID:          "test",
		TileSize:    entity.TileSize,
		TileMapping: testMapping,
		Layers:      config.LayersConfig{Collision: rows},
	})
	require.NoError(t, err)
	return stage
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// testFighter creates an in-play fighter standing with its feet on y=96
// and its left edge at x
func testFighter(id int, name string, team entity.Team, x int) *entity.Fighter {
	c, ok := entity.CharacterByName(name)
	if !ok {
		panic("unknown character " + name)
	}
	f := entity.NewFighter(entity.EntityID(id), c, team, entity.ControlAI)
	f.Status = 0
	f.MoveSpeed = 2
	f.X = x
	f.Y = 96 - f.Height - f.HeightOdd()
	return f
}

type testWorld struct {
	rules   *config.RulesConfig
	terrain *Terrain
	physics *PhysicsSystem
	combat  *CombatSystem
	items   *ItemSystem
}

func newTestWorld(t testing.TB, d entity.Difficulty, rows ...string) *testWorld {
	rules := config.DefaultRules()
	terrain := NewTerrain(&rules.Physics, testStage(t, rows...))
	rng := testRNG()
	combat := NewCombatSystem(rules, terrain, rng, d)
	return &testWorld{
		rules:   rules,
		terrain: terrain,
		physics: NewPhysicsSystem(rules, terrain, rng),
		combat:  combat,
		items:   NewItemSystem(rules, terrain, rng, combat),
	}
}

func testMatchConfig(fighters ...config.FighterConfig) *config.MatchConfig {
	return &config.MatchConfig{
		Stage:      "test",
		Type:       "stock",
		Difficulty: "classic",
		Lives:      3,
		Fighters:   fighters,
	}
}
