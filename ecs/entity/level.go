package entity

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/ecs/system"
	"github.com/milk9111/raycaster/levels"
	"github.com/milk9111/raycaster/logger"
	"github.com/milk9111/raycaster/prefabs"
)

// BuildLevel validates lvl and turns it into a world: enemy tiles become
// actors and are cleared from the grid before the static snapshot is taken,
// and the player is placed at the level's spawn.
func BuildLevel(lvl *levels.Level, tables *prefabs.Tables, ps prefabs.PlayerSpec, seed uint64) (*ecs.World, error) {
	if lvl == nil || tables == nil {
		return nil, fmt.Errorf("entity: build level: missing level or tables")
	}
	if err := levels.Validate(lvl, tables.Tiles); err != nil {
		return nil, err
	}

	grid := component.GridFromRows(lvl.Rows)
	type spawn struct {
		cell component.Cell
		desc component.TileDescriptor
	}
	var spawns []spawn
	treasure := 0
	grid.Each(func(c component.Cell, v int) {
		desc, ok := tables.Tiles.Lookup(v)
		if !ok {
			return
		}
		switch {
		case desc.Category == component.CategoryEnemy:
			spawns = append(spawns, spawn{cell: c, desc: desc})
			grid.Set(c, 0)
		case desc.Subtype == component.SubtypeTreasure:
			treasure++
		}
	})

	w := ecs.NewWorld(grid, tables.Tiles, seed)
	w.Weapons = append([]component.Weapon(nil), tables.Weapons...)
	w.Player = NewPlayer(lvl.Spawn, ps, len(w.Weapons))

	for i, s := range spawns {
		arch, ok := tables.Archetypes[s.desc.Texture]
		if !ok {
			return nil, fmt.Errorf("entity: level %s: enemy at (%d,%d): no archetype for texture %q",
				lvl.Name, s.cell.X, s.cell.Y, s.desc.Texture)
		}
		a := NewEnemy(i, s.cell, s.desc, arch)
		a.HomeRoom, _ = system.Flood(w, s.cell)
		w.Actors = append(w.Actors, a)
	}
	w.Stats.TotalEnemies = len(w.Actors)
	w.Stats.TotalTreasure = treasure

	logger.Log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"width":  grid.Width,
		"height": grid.Height,
		"actors": len(w.Actors),
	}).Info("level built")
	return w, nil
}

// facing maps an enemy tile's compass subtype to an angle with y down.
func facing(subtype string) float64 {
	switch subtype {
	case "south":
		return common.NudgeAngle(0.5 * pi)
	case "west":
		return common.NudgeAngle(pi)
	case "north":
		return common.NudgeAngle(1.5 * pi)
	}
	return common.NudgeAngle(0)
}
