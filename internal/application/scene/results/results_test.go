package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/application/scene"
	"github.com/younwookim/legion/internal/domain/entity"
)

func mario() int {
	c, _ := entity.CharacterByName("Mario")
	return c
}

func TestHeadline(t *testing.T) {
	tallies := []entity.FighterTally{{Index: 0, Character: mario(), Team: 1}}

	tests := []struct {
		name     string
		result   *entity.MatchResult
		expected string
	}{
		{"none", nil, "NO CONTEST"},
		{"bosses", &entity.MatchResult{BossesWon: true, Winner: -1}, "THE BOSSES WIN"},
		{"fighter", &entity.MatchResult{Winner: 0, Tallies: tallies}, "MARIO WINS"},
		{"team", &entity.MatchResult{WinningTeam: 2, Winner: -1, Tallies: tallies}, "TEAM 2 WINS"},
		{"draw", &entity.MatchResult{Winner: -1}, "NO CONTEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Headline(tt.result))
		})
	}
}

func TestLines(t *testing.T) {
	res := &entity.MatchResult{Tallies: []entity.FighterTally{
		{Character: mario(), Team: 1, Kills: 2, Deaths: 1, DamageTaken: 80},
	}}
	lines := Lines(res)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Mario")
	assert.Contains(t, lines[0], "K2")
	assert.Contains(t, lines[0], "80%")
	assert.Nil(t, Lines(nil))
}

type stubScene struct{ scene.Scene }

func TestResults_Rematch(t *testing.T) {
	next := &stubScene{}
	r := New(nil, nil, 320, 200, func() (scene.Scene, error) { return next, nil })

	pressed := false
	r.rematchPressed = func() bool { return pressed }

	s, err := r.Update(0)
	require.NoError(t, err)
	assert.Nil(t, s)

	pressed = true
	s, err = r.Update(0)
	require.NoError(t, err)
	assert.Same(t, next, s)
}

func TestResults_RematchError(t *testing.T) {
	r := New(nil, nil, 320, 200, func() (scene.Scene, error) { return nil, assert.AnError })
	r.rematchPressed = func() bool { return true }

	_, err := r.Update(0)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestResults_NoRestartStays(t *testing.T) {
	r := New(nil, nil, 320, 200, nil)
	r.rematchPressed = func() bool { return true }

	s, err := r.Update(0)
	assert.NoError(t, err)
	assert.Nil(t, s)
}
