package levels

import (
	"fmt"
	"math"

	"github.com/milk9111/raycaster/ecs/component"
)

// Validate checks a parsed level against the tile table: every value is
// known, the border is solid so rays always terminate, and the spawn lies
// on a walkable cell.
func Validate(lvl *Level, tiles component.TileTable) error {
	if lvl == nil || len(lvl.Rows) == 0 {
		return fmt.Errorf("levels: %w", ErrEmptyGrid)
	}
	w, h := lvl.Width(), lvl.Height()
	for y, row := range lvl.Rows {
		if len(row) != w {
			return fmt.Errorf("levels: %s: row %d: %w", lvl.Name, y, ErrRowLength)
		}
		for x, v := range row {
			if v == 0 {
				continue
			}
			desc, ok := tiles.Lookup(v)
			if !ok {
				return fmt.Errorf("levels: %s: value %d at (%d,%d): %w", lvl.Name, v, x, y, ErrUnknownTile)
			}
			border := x == 0 || y == 0 || x == w-1 || y == h-1
			if border && (v < 0 || desc.Category == component.CategoryEnemy || desc.Category == component.CategoryDoor) {
				return fmt.Errorf("levels: %s: (%d,%d): %w", lvl.Name, x, y, ErrOpenBorder)
			}
		}
	}
	for x := 0; x < w; x++ {
		if lvl.Rows[0][x] == 0 || lvl.Rows[h-1][x] == 0 {
			return fmt.Errorf("levels: %s: column %d: %w", lvl.Name, x, ErrOpenBorder)
		}
	}
	for y := 0; y < h; y++ {
		if lvl.Rows[y][0] == 0 || lvl.Rows[y][w-1] == 0 {
			return fmt.Errorf("levels: %s: row %d: %w", lvl.Name, y, ErrOpenBorder)
		}
	}

	sx, sy := int(math.Floor(lvl.Spawn.X)), int(math.Floor(lvl.Spawn.Y))
	if sx <= 0 || sy <= 0 || sx >= w-1 || sy >= h-1 || lvl.Rows[sy][sx] > 0 {
		return fmt.Errorf("levels: %s: spawn (%.2f,%.2f): %w", lvl.Name, lvl.Spawn.X, lvl.Spawn.Y, ErrNoSpawn)
	}
	return nil
}
