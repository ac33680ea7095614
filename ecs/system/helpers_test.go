package system

import (
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

const (
	tWall     = 1
	tExit     = 5
	tDoor     = 10
	tDecor    = -1
	tAmmo     = -3
	tHealth   = -4
	tTreasure = -6
	tWeapon   = -7
	texW      = 64
)

func testTiles() component.TileTable {
	return component.TileTable{
		tWall:     {Category: component.CategoryWall, Texture: "brick"},
		tExit:     {Category: component.CategoryWall, Subtype: component.SubtypeExit, Texture: "elevator"},
		tDoor:     {Category: component.CategoryDoor, Subtype: component.SubtypeDynamicDoor, Texture: "door"},
		tDecor:    {Category: component.CategoryObject, Subtype: component.SubtypeDecor, Texture: "lamp"},
		tAmmo:     {Category: component.CategoryObject, Subtype: component.SubtypeAmmo, Texture: "clip", Amount: 8},
		tHealth:   {Category: component.CategoryObject, Subtype: component.SubtypeHealth, Texture: "medkit", Amount: 25},
		tTreasure: {Category: component.CategoryObject, Subtype: component.SubtypeTreasure, Texture: "cross"},
		tWeapon:   {Category: component.CategoryObject, Subtype: "weapon:1", Texture: "pistol_pickup", Amount: 6},
	}
}

func testWeapons() []component.Weapon {
	return []component.Weapon{
		{Name: "knife", MinDamage: 10, MaxDamage: 10, Range: 1.5, Cooldown: 4, Melee: true, Sound: "knife"},
		{Name: "pistol", MinDamage: 10, MaxDamage: 10, Range: 32, Cooldown: 6, AmmoPerShot: 1, Sound: "shot"},
	}
}

func testArchetype() *component.Archetype {
	return &component.Archetype{
		Name:             "guard",
		Texture:          "guard",
		Kind:             component.KindNormal,
		HP:               25,
		Speed:            0.05,
		ShootingRange:    8,
		Accuracy:         0.7,
		DamageMultiplier: 1,
		PainChance:       0,
		Memory:           90,
		Patience:         1000,
		FOV:              1.7,
		ShotCooldown:     20,
		Sprite: component.SpriteLayout{
			FrameW: 64, FrameH: 64, Orientations: 8, WalkFrames: 4, WalkCadence: 6,
			FrameTicks: 2, ShootRow: 5, ShootFrames: 3, FireFrames: []int{1},
			PainRow: 6, PainFrames: 1, DeathRow: 7, DeathFrames: 4,
		},
	}
}

// newTestWorld builds a world from rows with the player at (px, py).
func newTestWorld(rows [][]int, px, py, angle float64) *ecs.World {
	w := ecs.NewWorld(component.GridFromRows(rows), testTiles(), 7)
	w.Weapons = testWeapons()
	w.Player = &component.Player{
		X: px, Y: py, Angle: angle,
		HP: 100, MaxHP: 100, Ammo: 10,
		Weapon:   1,
		Owned:    []bool{true, true},
		HalfSize: 0.2,
		Killer:   -1,
	}
	return w
}

func addActor(w *ecs.World, x, y, angle float64, arch *component.Archetype) *component.Actor {
	a := &component.Actor{
		ID:        len(w.Actors),
		Kind:      arch.Kind,
		Archetype: arch,
		Home:      component.CellAt(x, y),
		X:         x,
		Y:         y,
		Angle:     angle,
		HP:        arch.HP,
	}
	if arch.Kind == component.KindBoss {
		a.State = component.StateSleeping
	}
	a.HomeRoom, _ = Flood(w, a.Home)
	w.Actors = append(w.Actors, a)
	return a
}

// room returns a w x h grid of empty cells inside a solid border.
func room(w, h int) [][]int {
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x] = tWall
			}
		}
	}
	return rows
}

// twoRooms is two 2x3 rooms joined by a single door at (3,2).
func twoRooms() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 1, 0, 0, 1},
		{1, 0, 0, tDoor, 0, 0, 1},
		{1, 0, 0, 1, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1},
	}
}

func soundNames(w *ecs.World) []string {
	var out []string
	for _, ev := range w.Events().Drain() {
		if s, ok := ev.Data.(component.SoundEvent); ok {
			out = append(out, s.Name)
		}
	}
	return out
}

func hasSound(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
