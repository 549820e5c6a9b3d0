package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// wallRows has a wall over tiles 0-1 with a bottomless pit beside it
var wallRows = []string{
	"##..................",
	"##..................",
	"##..................",
	"##..................",
	"##..................",
	"##..................",
	"##..################",
	"##..################",
}

func newWallMatch(t *testing.T, fc config.FighterConfig) (*Match, *entity.Fighter) {
	t.Helper()
	m, err := NewMatch(testStage(t, wallRows...), config.DefaultRules(), testMatchConfig(fc, cpu("Link", 0)), 1)
	require.NoError(t, err)

	f := m.Fighters()[0]
	inPlay(f, 32)
	f.Y = 40
	f.Loco = entity.Falling
	return m, f
}

func TestHuman_HangsOnAWall(t *testing.T) {
	m, f := newWallMatch(t, human("Mario", 0))
	c, ok := m.Controller(0).(*HumanController)
	require.True(t, ok)

	c.Control(m, f)
	require.Equal(t, entity.Hanging, f.Loco)
	assert.Equal(t, 42, f.Y)

	y := f.Y
	c.Control(m, f)
	assert.Equal(t, entity.Hanging, f.Loco, "holds on without input")
	assert.Equal(t, y, f.Y)

	c.SetInput(InputState{Up: true})
	c.Control(m, f)
	assert.Equal(t, entity.Jumping, f.Loco)
	assert.Equal(t, 36, f.JumpValue)
}

func TestAI_RecoverGrabsAWall(t *testing.T) {
	m, f := newWallMatch(t, cpu("Mario", 0))
	m.physics.CheckFalling(f)
	require.Equal(t, entity.Falling, f.Loco)

	NewAIController().recover(m, f, 0)
	assert.Equal(t, entity.Jumping, f.Loco, "jumps off the wall")
	assert.Equal(t, m.rules.Physics.JumpValue, f.JumpValue)
}
