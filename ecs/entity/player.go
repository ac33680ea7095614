package entity

import (
	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/levels"
	"github.com/milk9111/raycaster/prefabs"
)

// NewPlayer places the player at spawn with the starting loadout. The
// equipped weapon is the last starting weapon.
func NewPlayer(spawn levels.Spawn, ps prefabs.PlayerSpec, weaponCount int) *component.Player {
	hp := ps.HP
	if hp <= 0 {
		hp = 100
	}
	half := ps.HalfSize
	if half <= 0 || half >= 0.5 {
		half = 0.2
	}
	p := &component.Player{
		X:        spawn.X,
		Y:        spawn.Y,
		Angle:    common.NudgeAngle(spawn.Angle),
		HP:       hp,
		MaxHP:    hp,
		Ammo:     ps.Ammo,
		Owned:    make([]bool, weaponCount),
		HalfSize: half,
		Killer:   -1,
	}
	for _, i := range ps.Weapons {
		if i >= 0 && i < weaponCount {
			p.Owned[i] = true
			p.Weapon = i
		}
	}
	if weaponCount > 0 && !p.Owned[p.Weapon] {
		p.Owned[0] = true
		p.Weapon = 0
	}
	return p
}
