package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

// WeaponSystem fires the player's weapon. Shots are hitscan: the first live
// actor on the facing ray, nearer than the wall the ray hits, takes the hit.
type WeaponSystem struct {
	caster *Caster
	paths  *Pathfinder
}

func NewWeaponSystem(caster *Caster, paths *Pathfinder) *WeaponSystem {
	return &WeaponSystem{caster: caster, paths: paths}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil || !w.Player.Alive() {
		return
	}
	p := w.Player
	if p.FireCooldown > 0 {
		p.FireCooldown--
	}
	if p.Weapon < 0 || p.Weapon >= len(w.Weapons) {
		return
	}
	if w.Input.Fire || (w.Input.FireHeld && w.Weapons[p.Weapon].Automatic) {
		s.Fire(w)
	}
}

// Fire shoots the equipped weapon once. It reports false when the weapon is
// cooling down or out of ammo.
func (s *WeaponSystem) Fire(w *ecs.World) bool {
	p := w.Player
	if !p.Alive() || p.FireCooldown > 0 || p.Weapon < 0 || p.Weapon >= len(w.Weapons) {
		return false
	}
	wpn := w.Weapons[p.Weapon]
	if !wpn.Melee && p.Ammo < wpn.AmmoPerShot {
		w.PlaySound(component.SoundNoAmmo, p.X, p.Y)
		return false
	}
	if !wpn.Melee {
		p.Ammo -= wpn.AmmoPerShot
	}
	p.FireCooldown = wpn.Cooldown

	sound := wpn.Sound
	if sound == "" {
		sound = component.SoundShot
	}
	w.PlaySound(sound, p.X, p.Y)
	if !wpn.Melee {
		s.alertRoom(w)
	}

	target, dist := s.Target(w, wpn.Range)
	if target == nil {
		return true
	}
	DamageActor(w, target, playerDamage(w, wpn, dist))
	return true
}

// Target returns the nearest live actor the player's facing ray passes
// within reach, and its distance along the ray.
func (s *WeaponSystem) Target(w *ecs.World, reach float64) (*component.Actor, float64) {
	p := w.Player
	origin := cp.Vector{X: p.X, Y: p.Y}
	dir := cp.ForAngle(p.Angle)

	limit := s.caster.Cast(p.Angle, p.X, p.Y, nil).Dist(p.X, p.Y)
	if reach > 0 && reach < limit {
		limit = reach
	}

	var best *component.Actor
	bestAlong := math.Inf(1)
	for _, a := range w.Actors {
		if !a.Alive() {
			continue
		}
		rel := cp.Vector{X: a.X, Y: a.Y}.Sub(origin)
		along := rel.Dot(dir)
		if along <= 0 || along > limit || along >= bestAlong {
			continue
		}
		if math.Abs(dir.Cross(rel)) > actorHalfSize {
			continue
		}
		best, bestAlong = a, along
	}
	if best == nil {
		return nil, 0
	}
	return best, bestAlong
}

// playerDamage samples the weapon's damage range, falling off to half at
// the edge of its range.
func playerDamage(w *ecs.World, wpn component.Weapon, dist float64) int {
	lo, hi := wpn.MinDamage, max(wpn.MaxDamage, wpn.MinDamage)
	dmg := float64(lo + w.Rand.IntN(hi-lo+1))
	if wpn.Range > 0 {
		dmg *= 1 - 0.5*math.Min(dist/wpn.Range, 1)
	}
	return max(1, int(math.Round(dmg)))
}

// alertRoom wakes every live actor in the player's room.
func (s *WeaponSystem) alertRoom(w *ecs.World) {
	room, _ := s.paths.Flood(w.Player.Cell())
	if len(room) == 0 {
		return
	}
	in := make(map[component.Cell]struct{}, len(room))
	for _, c := range room {
		in[c] = struct{}{}
	}
	for _, a := range w.Actors {
		if !a.Alive() {
			continue
		}
		if _, ok := in[a.Cell()]; ok {
			wake(w, a)
		}
	}
}
