package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	TileSize    int                          `json:"tileSize"`
	Moving      bool                         `json:"moving"`
	Background  BackgroundConfig             `json:"background"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig binds a layout glyph to a tile kind and its flags
type TileMappingConfig struct {
	Flags     []string `json:"flags"`
	TileIndex int      `json:"tileIndex"`
}
