package config

// Tile kinds understood in a level tile mapping
const (
	TilePlatform       = "platform"
	TileThinPlatform   = "thin"
	TileMovingPlatform = "moving"
	TileHazard         = "hazard"
	TilePickup         = "pickup"
	TileEnemySpawn     = "spawn"
)

// LevelConfig is the root config for levels/<name>.yaml.
// Layout rows are read top to bottom, one character per cell.
type LevelConfig struct {
	Name        string                       `yaml:"name"`
	TileSize    float64                      `yaml:"tileSize"`
	EnemyCount  int                          `yaml:"enemyCount"`
	PlayerSpawn PositionConfig               `yaml:"playerSpawn"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
	Layout      []string                     `yaml:"layout"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// TileMappingConfig maps one layout symbol to an obstacle kind
type TileMappingConfig struct {
	Kind   string `yaml:"kind"`
	Damage int    `yaml:"damage,omitempty"` // hazards, overrides tuning
	Heal   int    `yaml:"heal,omitempty"`   // pickups, overrides tuning
}

// DefaultTileMapping returns the classic symbol set
func DefaultTileMapping() map[string]TileMappingConfig {
	return map[string]TileMappingConfig{
		"-": {Kind: TileThinPlatform},
		"z": {Kind: TileMovingPlatform},
		"c": {Kind: TilePlatform},
		"v": {Kind: TilePlatform},
		"x": {Kind: TileHazard},
		"o": {Kind: TilePickup},
		"Y": {Kind: TileEnemySpawn},
	}
}

// Columns returns the width of the widest layout row
func (l *LevelConfig) Columns() int {
	cols := 0
	for _, row := range l.Layout {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	return cols
}

// Mapping returns the tile mapping, falling back to the default set
func (l *LevelConfig) Mapping() map[string]TileMappingConfig {
	if len(l.TileMapping) == 0 {
		return DefaultTileMapping()
	}
	return l.TileMapping
}
