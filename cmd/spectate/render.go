package main

import (
	"fmt"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/legion/internal/application/system"
	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/ecs"
)

// A terminal cell covers half a tile across and a whole tile down
const (
	cellW = entity.TileSize / 2
	cellH = entity.TileSize
)

// canvas is the part of tcell.Screen the renderer draws on
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var _ canvas = tcell.Screen(nil)

var (
	styleSolid  = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	styleCloud  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleLadder = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleHot    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleWater  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBoss   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func tileGlyph(f entity.TileFlag) (rune, tcell.Style, bool) {
	switch {
	case f.Any(entity.TileHot):
		return '^', styleHot, true
	case f.Any(entity.TileCloud):
		return '-', styleCloud, true
	case f.Any(entity.TileSlopeLeft):
		return '/', styleSolid, true
	case f.Any(entity.TileSlopeRight):
		return '\\', styleSolid, true
	case f.Any(entity.TileSolid):
		return '#', styleSolid, true
	case f.Any(entity.TileLadder):
		return 'H', styleLadder, true
	case f.Any(entity.TileWater):
		return '~', styleWater, true
	default:
		return 0, tcell.StyleDefault, false
	}
}

// render draws the whole arena, the synced world on top of it and a HUD
// below it. It returns the number of rows used.
func render(c canvas, m *system.Match, w *ecs.World) int {
	stage := m.Stage()
	cols := stage.PixelWidth() / cellW
	rows := stage.Height

	for ty := 0; ty < rows; ty++ {
		for col := 0; col < cols; col++ {
			r, st, ok := tileGlyph(stage.FlagsAt(col*cellW/stage.TileSize, ty))
			if !ok {
				r, st = ' ', tcell.StyleDefault
			}
			c.SetContent(col, ty, r, nil, st)
		}
	}

	for _, id := range w.Drawables() {
		pos, ext := w.Position[id], w.Extent[id]
		col := (pos.X + ext.W/2) / cellW
		row := (pos.Y + ext.H/2) / cellH
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		r, st := entityGlyph(w, id)
		c.SetContent(col, row, r, nil, st)
	}

	return rows + drawHUD(c, m, w, rows)
}

func entityGlyph(w *ecs.World, id ecs.EntityID) (rune, tcell.Style) {
	sp := w.Sprite[id]
	st := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(sp.Color.R), int32(sp.Color.G), int32(sp.Color.B)))
	switch w.Kind[id] {
	case ecs.KindFighter:
		r := '?'
		if g, ok := w.Gauge[id]; ok && g.Label != "" {
			r = []rune(g.Label)[0]
		}
		if !w.Facing[id].Right {
			r = unicode.ToLower(r)
		}
		if sp.Flash {
			st = st.Reverse(true)
		}
		return r, st
	case ecs.KindBoss:
		return 'B', styleBoss
	case ecs.KindItem:
		return '*', styleItem
	case ecs.KindExplosion:
		return '@', st
	default:
		return 'o', st
	}
}

func drawHUD(c canvas, m *system.Match, w *ecs.World, top int) int {
	lines := make([]string, 0, 4)
	for _, g := range w.Gauges() {
		line := fmt.Sprintf("%-12s %3d%%", g.Label, g.Percent)
		if m.Config().MatchType() == entity.MatchStock {
			line += fmt.Sprintf(" x%d", g.Lives)
		}
		lines = append(lines, line)
	}
	if m.Config().MatchType() == entity.MatchTimed {
		mins, secs := m.Clock().Remaining()
		lines = append(lines, fmt.Sprintf("time %d:%02d", mins, secs))
	}
	for _, b := range m.Bosses() {
		lines = append(lines, fmt.Sprintf("boss %d", b.HitPoints))
	}
	if m.Finished() {
		lines = append(lines, "finished, press ESC")
	}

	for i, line := range lines {
		putString(c, 0, top+i, line, styleHUD)
	}
	return len(lines)
}

func putString(c canvas, x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(x+i, y, r, nil, st)
	}
}
