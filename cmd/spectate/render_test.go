package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// grid records what was drawn
type grid struct {
	cells map[[2]int]rune
}

func newGrid() *grid { return &grid{cells: map[[2]int]rune{}} }

func (g *grid) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	g.cells[[2]int{x, y}] = r
}

func (g *grid) row(y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, ok := g.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func loadConfig(t *testing.T, match string) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../game/configs").LoadAll(match, "")
	require.NoError(t, err)
	return cfg
}

func TestNewSpectator_AllComputer(t *testing.T) {
	s, err := newSpectator(loadConfig(t, "link"), 3)
	require.NoError(t, err)

	for i, f := range s.match.Fighters() {
		assert.Equal(t, entity.ControlAI, f.Controller, "fighter %d", i)
	}
	_, ok := s.world.FighterEntity(s.match.Fighters()[0])
	assert.True(t, ok)
}

func TestSpectator_Step(t *testing.T) {
	s, err := newSpectator(loadConfig(t, "exhibition"), 3)
	require.NoError(t, err)

	s.step()
	assert.Equal(t, 1, s.match.Ticks())

	assert.True(t, s.handleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, s.paused)
	s.step()
	assert.Equal(t, 1, s.match.Ticks(), "paused")

	assert.False(t, s.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, s.handleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestRender(t *testing.T) {
	s, err := newSpectator(loadConfig(t, "stock"), 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		s.step()
	}

	g := newGrid()
	used := render(g, s.match, s.world)

	stage := s.match.Stage()
	assert.Equal(t, stage.Height+2, used, "arena rows plus one HUD line per fighter")

	cols := stage.PixelWidth() / cellW
	var arena strings.Builder
	for y := 0; y < stage.Height; y++ {
		arena.WriteString(g.row(y, cols))
	}
	assert.Contains(t, arena.String(), "#", "solid ground is drawn")

	hud := g.row(stage.Height, 40)
	assert.Contains(t, hud, "Mario")
	assert.Contains(t, hud, "x3")
}

func TestTileGlyph(t *testing.T) {
	r, _, ok := tileGlyph(entity.TileSolid)
	assert.True(t, ok)
	assert.Equal(t, '#', r)

	r, _, _ = tileGlyph(entity.TileSolid | entity.TileHot)
	assert.Equal(t, '^', r, "hazards win over plain ground")

	_, _, ok = tileGlyph(entity.TileEmpty)
	assert.False(t, ok)
}
