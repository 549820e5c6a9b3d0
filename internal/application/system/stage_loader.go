package system

import (
	"fmt"
	"unicode/utf8"

	"github.com/younwookim/legion/internal/domain/entity"
	"github.com/younwookim/legion/internal/infrastructure/config"
)

var tileFlagNames = map[string]entity.TileFlag{
	"solid":      entity.TileSolid,
	"cloud":      entity.TileCloud,
	"partial":    entity.TilePartial,
	"slopeLeft":  entity.TileSlopeLeft,
	"slopeRight": entity.TileSlopeRight,
	"ladder":     entity.TileLadder,
	"collapsing": entity.TileCollapsing,
	"hot":        entity.TileHot,
	"water":      entity.TileWater,
	"door":       entity.TileDoor,
}

// ParseTileFlags combines flag names into a flag word
func ParseTileFlags(names []string) (entity.TileFlag, error) {
	var flags entity.TileFlag
	for _, n := range names {
		f, ok := tileFlagNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown tile flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}

// LoadStage converts a StageConfig into a Stage entity.
// Glyphs without a mapping use tile kind 0.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	rows := cfg.Layers.Collision
	if len(rows) == 0 {
		return nil, fmt.Errorf("stage %s has no collision rows", cfg.ID)
	}

	tileSize := cfg.TileSize
	if tileSize == 0 {
		tileSize = entity.TileSize
	}
	if tileSize != entity.TileSize {
		return nil, fmt.Errorf("stage %s: tile size %d is not supported", cfg.ID, tileSize)
	}

	width := utf8.RuneCountInString(rows[0])
	kinds := map[rune]int{}
	flagTable := []entity.TileFlag{entity.TileEmpty}
	for glyph, mapping := range cfg.TileMapping {
		r, _ := utf8.DecodeRuneInString(glyph)
		flags, err := ParseTileFlags(mapping.Flags)
		if err != nil {
			return nil, fmt.Errorf("stage %s glyph %q: %w", cfg.ID, glyph, err)
		}
		if mapping.TileIndex < 0 {
			return nil, fmt.Errorf("stage %s glyph %q: negative tile index", cfg.ID, glyph)
		}
		for len(flagTable) <= mapping.TileIndex {
			flagTable = append(flagTable, entity.TileEmpty)
		}
		flagTable[mapping.TileIndex] = flags
		kinds[r] = mapping.TileIndex
	}

	tiles := make([][]int, len(rows))
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("stage %s row %d has %d tiles, want %d", cfg.ID, y, n, width)
		}
		tiles[y] = make([]int, 0, width)
		for _, r := range row {
			tiles[y] = append(tiles[y], kinds[r])
		}
	}

	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}

	return &entity.Stage{
		Name:     name,
		Width:    width,
		Height:   len(rows),
		TileSize: tileSize,
		Tiles:    tiles,
		Flags:    flagTable,
		Moving:   cfg.Moving,
	}, nil
}
