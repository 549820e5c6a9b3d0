package entity

// EntityID is a unique identifier for an entity
type EntityID uint32

// TileSize is the edge length of a square tile in world units
const TileSize = 16

// TileFlag is a terrain behavior bit. A tile kind carries a combination of flags.
type TileFlag uint32

const (
	TileEmpty      TileFlag = 0
	TilePartial    TileFlag = 0x00000001
	TileCloud      TileFlag = 0x00000010
	TileSlopeLeft  TileFlag = 0x00000020
	TileSlopeRight TileFlag = 0x00000040
	TileLadder     TileFlag = 0x00000080
	TileCollapsing TileFlag = 0x00000800
	TileHot        TileFlag = 0x00004000
	TileWater      TileFlag = 0x00008000
	TileDoor       TileFlag = 0x01000000
	TileSolid      TileFlag = 0x20000000
)

// TileSlope matches either slope direction
const TileSlope = TileSlopeLeft | TileSlopeRight

// Has reports whether every bit in bits is set
func (f TileFlag) Has(bits TileFlag) bool {
	return f&bits == bits
}

// Any reports whether at least one bit in bits is set
func (f TileFlag) Any(bits TileFlag) bool {
	return f&bits != 0
}

// SizeClass buckets stages by pixel area
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeBig
)

func (c SizeClass) String() string {
	switch c {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeBig:
		return "big"
	default:
		return "unknown"
	}
}

// Stage is the arena tile map. Tiles holds tile-kind indices and Flags maps
// each kind index to its terrain flags.
type Stage struct {
	Name     string
	Width    int // tiles
	Height   int // tiles
	TileSize int
	Tiles    [][]int
	Flags    []TileFlag
	Moving   bool
}

// PixelWidth returns the arena width in world units
func (s *Stage) PixelWidth() int {
	return s.Width * s.TileSize
}

// PixelHeight returns the arena height in world units
func (s *Stage) PixelHeight() int {
	return s.Height * s.TileSize
}

// TileAt returns the tile-kind index at tile coordinates, or -1 outside the grid
func (s *Stage) TileAt(tx, ty int) int {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return -1
	}
	return s.Tiles[ty][tx]
}

// FlagsAt returns the terrain flags at tile coordinates.
// Cells outside the grid are open air.
func (s *Stage) FlagsAt(tx, ty int) TileFlag {
	kind := s.TileAt(tx, ty)
	if kind < 0 || kind >= len(s.Flags) {
		return TileEmpty
	}
	return s.Flags[kind]
}

// FlagsAtPixel returns the terrain flags of the tile containing a world point
func (s *Stage) FlagsAtPixel(px, py int) TileFlag {
	return s.FlagsAt(floorDiv(px, s.TileSize), floorDiv(py, s.TileSize))
}

// IsSolidAt checks if the tile at pixel coordinates carries the SOLID flag
func (s *Stage) IsSolidAt(px, py int) bool {
	return s.FlagsAtPixel(px, py).Has(TileSolid)
}

// SizeClass classifies the stage by pixel area
func (s *Stage) SizeClass() SizeClass {
	area := s.PixelWidth() * s.PixelHeight()
	switch {
	case area <= 192*128:
		return SizeSmall
	case area <= 320*192:
		return SizeMedium
	default:
		return SizeBig
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
