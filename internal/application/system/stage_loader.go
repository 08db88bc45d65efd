package system

import (
	"fmt"

	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// LoadStage converts a LevelConfig into a Stage entity.
// Obstacles are built in row-major raster order; symbols without a mapping
// are empty cells.
func LoadStage(lvl *config.LevelConfig, tuning *config.Tuning) (*entity.Stage, error) {
	if lvl == nil || tuning == nil {
		return nil, fmt.Errorf("%w: missing level or tuning", entity.ErrInvalidLayout)
	}
	if len(lvl.Layout) == 0 {
		return nil, fmt.Errorf("%w: level %q has no rows", entity.ErrInvalidLayout, lvl.Name)
	}

	tile := lvl.TileSize
	if tile <= 0 {
		tile = tuning.Physics.TileSize
	}
	cols := lvl.Columns()
	if cols == 0 {
		return nil, fmt.Errorf("%w: level %q has empty rows", entity.ErrInvalidLayout, lvl.Name)
	}

	mapping := lvl.Mapping()
	stage := &entity.Stage{
		Name:     lvl.Name,
		Width:    float64(cols) * tile,
		Height:   float64(len(lvl.Layout)) * tile,
		TileSize: tile,
		PlayerSpawn: entity.Vec2{
			X: lvl.PlayerSpawn.X,
			Y: lvl.PlayerSpawn.Y,
		},
		EnemyCount: lvl.EnemyCount,
	}

	for y, row := range lvl.Layout {
		cells := []rune(row)
		if len(cells) != cols {
			return nil, fmt.Errorf("%w: level %q row %d has %d columns, want %d",
				entity.ErrInvalidLayout, lvl.Name, y, len(cells), cols)
		}

		for x, symbol := range cells {
			m, ok := mapping[string(symbol)]
			if !ok {
				continue
			}

			index := y*cols + x
			cell := entity.Rect{X: float64(x) * tile, Y: float64(y) * tile, W: tile, H: tile}

			switch m.Kind {
			case config.TilePlatform:
				stage.Obstacles = append(stage.Obstacles, entity.NewPlatform(cell, index))
			case config.TileThinPlatform:
				cell.H = tile / 2
				stage.Obstacles = append(stage.Obstacles, entity.NewPlatform(cell, index))
			case config.TileMovingPlatform:
				cell.H = tile / 2
				reach := tuning.MovingPlatform.Reach * tile
				stage.Obstacles = append(stage.Obstacles,
					entity.NewMovingPlatform(cell, index, reach, tuning.MovingPlatform.Speed))
			case config.TileHazard:
				stage.Obstacles = append(stage.Obstacles, entity.NewHazard(cell, index, m.Damage))
			case config.TilePickup:
				stage.Obstacles = append(stage.Obstacles, entity.NewPickup(cell, index, m.Heal))
			case config.TileEnemySpawn:
				stage.EnemySpawns = append(stage.EnemySpawns, entity.Vec2{
					X: cell.X + (tile-tuning.Enemy.Width)/2,
					Y: cell.Y + tile - tuning.Enemy.Height,
				})
			default:
				return nil, fmt.Errorf("%w: level %q maps %q to unknown kind %q",
					entity.ErrInvalidLayout, lvl.Name, string(symbol), m.Kind)
			}
		}
	}

	return stage, nil
}
