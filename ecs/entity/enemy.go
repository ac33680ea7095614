package entity

import (
	"math"

	"github.com/milk9111/raycaster/ecs/component"
)

const pi = math.Pi

// NewEnemy creates the actor spawned by an enemy tile at cell. Bosses start
// asleep.
func NewEnemy(id int, cell component.Cell, desc component.TileDescriptor, arch *component.Archetype) *component.Actor {
	x, y := cell.Center()
	a := &component.Actor{
		ID:        id,
		Kind:      arch.Kind,
		Archetype: arch,
		Home:      cell,
		X:         x,
		Y:         y,
		Angle:     facing(desc.Subtype),
		HP:        arch.HP,
		State:     component.StateDefault,
	}
	if arch.Kind == component.KindBoss {
		a.State = component.StateSleeping
	}
	return a
}
