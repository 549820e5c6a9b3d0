package system

import (
	"github.com/younwookim/legion/internal/domain/entity"
)

// Respawn search window, in tiles, and the depth scanned for a floor
const (
	respawnColumns = 8
	respawnRows    = 5
	respawnDepth   = 96
)

// Location is a tile-aligned world point
type Location struct {
	X, Y int
}

// FindRespawn searches the camera window for an empty cell that has solid
// ground somewhere below it and is not already taken by a fighter on the
// respawn platform. It returns false when no cell qualifies.
func (t *Terrain) FindRespawn(camX, camY int, fighters []*entity.Fighter) (Location, bool) {
	startX := camX + (16 - (camX & 15))
	startY := camY + (16 - (camY & 15))
	solid := entity.TileSolid
	cloud := entity.TileSolid | entity.TileCloud

	for row := 0; row < respawnRows; row++ {
		for col := 0; col < respawnColumns; col++ {
			x := startX + col*entity.TileSize
			y := startY + row*entity.TileSize
			if t.stage.FlagsAtPixel(x, y) != entity.TileEmpty || cellTaken(x, y, fighters) {
				continue
			}
			for colY := y + entity.TileSize; colY < startY+respawnDepth; colY += entity.TileSize {
				flags := t.stage.FlagsAtPixel(x, colY)
				if flags == solid || flags == cloud {
					return Location{X: x, Y: y}, true
				}
			}
		}
	}
	return Location{}, false
}

func cellTaken(x, y int, fighters []*entity.Fighter) bool {
	for _, f := range fighters {
		if !f.Is(entity.StatusOnStage) || !f.Alive() {
			continue
		}
		if f.X+f.Width/2-8 == x && f.FootLine() == y {
			return true
		}
	}
	return false
}

// PlaceAt stands f on the cell at loc
func PlaceAt(f *entity.Fighter, loc Location) {
	f.X = loc.X + 8 - f.Width/2
	f.Y = loc.Y - f.Height - f.HeightOdd() + 16
}
