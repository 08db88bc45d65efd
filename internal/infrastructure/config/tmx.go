package config

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	tmxCollisionLayer   = "collision"
	tmxEnemySpawnGroup  = "EnemySpawn"
	tmxPlayerSpawnGroup = "PlayerSpawn"
)

// LoadTMXLevel converts a Tiled map into a level.
// Each tile of the "collision" layer is mapped to a layout symbol through the
// "symbol" property of its tileset tile; an optional "kind" property extends
// the tile mapping. Objects of the "EnemySpawn" group become spawn markers and
// the first "PlayerSpawn" object sets the player spawn.
func LoadTMXLevel(fsys fs.FS, tmxPath string) (*LevelConfig, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: tiles must be square, got %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	cfg := &LevelConfig{
		Name:        strings.TrimSuffix(path.Base(tmxPath), ".tmx"),
		TileSize:    float64(levelMap.TileWidth),
		TileMapping: DefaultTileMapping(),
	}

	grid := make([][]rune, levelMap.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", levelMap.Width))
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != tmxCollisionLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
				if err != nil {
					continue
				}
				symbol := tilesetTile.Properties.GetString("symbol")
				if symbol == "" {
					continue
				}
				if kind := tilesetTile.Properties.GetString("kind"); kind != "" {
					cfg.TileMapping[symbol] = TileMappingConfig{Kind: kind}
				}
				grid[y][x] = []rune(symbol)[0]
			}
		}
		break
	}

	tw := float64(levelMap.TileWidth)
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case tmxEnemySpawnGroup:
			for _, o := range og.Objects {
				cx, cy := int(o.X/tw), int(o.Y/tw)
				if cy < 0 || cy >= levelMap.Height || cx < 0 || cx >= levelMap.Width {
					continue
				}
				grid[cy][cx] = 'Y'
				cfg.EnemyCount++
			}
		case tmxPlayerSpawnGroup:
			if len(og.Objects) > 0 {
				cfg.PlayerSpawn = PositionConfig{X: og.Objects[0].X, Y: og.Objects[0].Y}
			}
		}
	}

	cfg.Layout = make([]string, len(grid))
	for y, row := range grid {
		cfg.Layout[y] = string(row)
	}

	return cfg, nil
}
