package system

import (
	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

// Vertical travel directions for terrain queries
const (
	DirUp   = -1
	DirNone = 0
	DirDown = 1
)

// Terrain answers passability questions against a stage.
// It owns the collapse contact counter and the stage-complete latch.
type Terrain struct {
	stage     *entity.Stage
	threshold int
	dodge     int
	collapse  int
	complete  bool
}

// NewTerrain creates a terrain view of a stage
func NewTerrain(cfg *config.PhysicsConfig, stage *entity.Stage) *Terrain {
	return &Terrain{
		stage:     stage,
		threshold: cfg.CollapseThreshold,
		dodge:     cfg.DodgeDistance,
	}
}

// Stage returns the underlying stage
func (t *Terrain) Stage() *entity.Stage {
	return t.stage
}

// StageComplete reports whether a fighter stood fully on a door tile
func (t *Terrain) StageComplete() bool {
	return t.complete
}

// Collapse returns the current collapse contact count
func (t *Terrain) Collapse() int {
	return t.collapse
}

// Classify decides whether a tile with the given flags can be entered.
// dirY is the vertical travel direction, probeY the queried world y and
// footY the y just beneath the moving fighter.
func (t *Terrain) Classify(flags entity.TileFlag, dirY, probeY, footY int) bool {
	if flags.Has(entity.TileDoor) {
		if footY&15 == 0 {
			t.complete = true
		}
		return true
	}

	if flags.Has(entity.TileCollapsing) {
		t.collapse++
		if t.collapse < t.threshold {
			return false
		}
		return true
	}
	t.collapse = 0

	if flags.Has(entity.TileSolid) {
		cloudPass := flags.Has(entity.TileCloud) && !flags.Any(entity.TileSlope) &&
			(dirY <= DirNone || probeY&15 != 0)
		partialPass := flags.Has(entity.TilePartial) && dirY > DirNone && footY&15 < 8
		if cloudPass || partialPass {
			return true
		}
		return flags.Has(entity.TilePartial) && dirY == DirNone
	}

	if flags.Any(entity.TileSlope) {
		return false
	}
	return true
}

func (t *Terrain) passable(f *entity.Fighter, dirY, px, py int) bool {
	return t.Classify(t.stage.FlagsAtPixel(px, py), dirY, py, f.FootY())
}

// CanMove reports whether f may move one step in (dirX, dirY).
// Fighters outside the arena always may.
func (t *Terrain) CanMove(f *entity.Fighter, dirX, dirY int) bool {
	halfW := f.Width / 2
	odd := f.HalfOdd()
	w, h := t.stage.PixelWidth(), t.stage.PixelHeight()

	if f.X+halfW+7 < 0 || f.X+halfW-8+odd > w || f.Y <= 0 || f.Y > h {
		return true
	}

	reach := f.MoveSpeed
	if f.Is(entity.StatusInvincible) {
		reach += t.dodge
	}
	leftX := f.X + halfW - 7 - reach - odd
	rightX := f.X + halfW + 6 + reach + 2*odd
	lower := f.Y + f.Height - 16

	centered := (f.X+halfW-8+odd)&15 == 0 && lower&15 == 0
	if centered {
		switch {
		case dirX < 0:
			return t.passable(f, dirY, leftX, lower)
		case dirX > 0:
			return t.passable(f, dirY, rightX, lower)
		case dirY < 0:
			return t.passable(f, dirY, f.X+halfW, lower)
		case dirY > 0:
			return t.passable(f, dirY, f.X+halfW, f.FootY())
		}
		return true
	}

	bottom := f.Y + f.Height - 1
	switch {
	case dirX < 0:
		return t.passable(f, dirY, leftX, bottom) && t.passable(f, dirY, leftX, lower)
	case dirX > 0:
		return t.passable(f, dirY, rightX, bottom) && t.passable(f, dirY, rightX, lower)
	case dirY < 0:
		return t.passable(f, dirY, f.X+halfW-8, lower) && t.passable(f, dirY, f.X+halfW+7, lower)
	case dirY > 0:
		return t.passable(f, dirY, f.X+halfW-8, f.FootY()) && t.passable(f, dirY, f.X+halfW+7, f.FootY())
	}
	return true
}

// CanFall reports whether nothing holds f up
func (t *Terrain) CanFall(f *entity.Fighter) bool {
	return t.CanMove(f, 0, DirDown)
}

// FlagsAt returns the flags of the tile containing a world point
func (t *Terrain) FlagsAt(px, py int) entity.TileFlag {
	return t.stage.FlagsAtPixel(px, py)
}

// HasAt reports whether the tile containing a world point carries all bits
func (t *Terrain) HasAt(px, py int, bits entity.TileFlag) bool {
	return t.stage.FlagsAtPixel(px, py).Has(bits)
}

// SolidBeneath reports whether a solid or cloud tile lies anywhere in the
// column below a world point.
func (t *Terrain) SolidBeneath(px, py int) bool {
	for y := py; y < t.stage.PixelHeight(); y += entity.TileSize {
		flags := t.stage.FlagsAtPixel(px, y)
		if flags == entity.TileSolid || flags == entity.TileSolid|entity.TileCloud {
			return true
		}
	}
	return false
}

// InArena reports whether a box lies within the arena bounds
func (t *Terrain) InArena(x, y, w, h int) bool {
	return x >= 0 && y >= 0 && x+w <= t.stage.PixelWidth() && y+h <= t.stage.PixelHeight()
}
