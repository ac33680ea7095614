package system

import (
	"math"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

const actorHalfSize = 0.3

// PlayerConfig tunes player movement.
type PlayerConfig struct {
	// Speed is in cells per tick; TurnSpeed in radians per tick.
	Speed     float64
	TurnSpeed float64
	MaxAmmo   int
	// Reach is how far ahead the interact action looks, in cells.
	Reach float64
}

// PlayerSystem moves the player, resolves collisions against the grid and
// actors, and handles interaction, pickups and weapon selection.
type PlayerSystem struct {
	cfg   PlayerConfig
	doors *DoorSystem
}

func NewPlayerSystem(cfg PlayerConfig, doors *DoorSystem) *PlayerSystem {
	if cfg.Speed <= 0 {
		cfg.Speed = 0.1
	}
	if cfg.TurnSpeed <= 0 {
		cfg.TurnSpeed = 0.08
	}
	if cfg.MaxAmmo <= 0 {
		cfg.MaxAmmo = 99
	}
	if cfg.Reach <= 0 {
		cfg.Reach = 1
	}
	return &PlayerSystem{cfg: cfg, doors: doors}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil || !w.Player.Alive() {
		return
	}
	p := w.Player
	in := w.Input

	p.Angle = common.NudgeAngle(p.Angle + in.Turn*s.cfg.TurnSpeed)

	fx, fy := math.Cos(p.Angle), math.Sin(p.Angle)
	dx := fx*in.Forward - fy*in.Strafe
	dy := fy*in.Forward + fx*in.Strafe
	if l := math.Hypot(dx, dy); l > 1 {
		dx, dy = dx/l, dy/l
	}
	dx *= s.cfg.Speed
	dy *= s.cfg.Speed

	p.Moving = false
	if dx != 0 && !s.collides(w, p.X+dx, p.Y) {
		p.X += dx
		p.Moving = true
	}
	if dy != 0 && !s.collides(w, p.X, p.Y+dy) {
		p.Y += dy
		p.Moving = true
	}

	if in.SelectWeapon >= 0 && in.SelectWeapon < len(p.Owned) && p.Owned[in.SelectWeapon] {
		p.Weapon = in.SelectWeapon
	}
	if in.Interact {
		s.interact(w)
	}
	s.pickup(w)
}

// collides reports whether the player's box at (x, y) overlaps a solid cell
// or a live actor.
func (s *PlayerSystem) collides(w *ecs.World, x, y float64) bool {
	box := w.Player.BoxAt(x, y)
	for cy := int(math.Floor(box.B)); cy <= int(math.Floor(box.T)); cy++ {
		for cx := int(math.Floor(box.L)); cx <= int(math.Floor(box.R)); cx++ {
			c := component.Cell{X: cx, Y: cy}
			if !w.Grid.InBounds(c) || w.Grid.At(c) > 0 {
				return true
			}
		}
	}
	for _, a := range w.Actors {
		if !a.Alive() {
			continue
		}
		if box.Intersects(cp.NewBBForExtents(cp.Vector{X: a.X, Y: a.Y}, actorHalfSize, actorHalfSize)) {
			return true
		}
	}
	return false
}

// interact uses the cell the player faces: dynamic doors open and exit
// tiles end the level.
func (s *PlayerSystem) interact(w *ecs.World) {
	p := w.Player
	c := component.CellAt(p.X+math.Cos(p.Angle)*s.cfg.Reach, p.Y+math.Sin(p.Angle)*s.cfg.Reach)
	if c == p.Cell() {
		return
	}
	desc, ok := w.Tiles.Lookup(w.Static.At(c))
	if !ok {
		return
	}
	switch {
	case desc.Category == component.CategoryDoor && desc.Subtype == component.SubtypeDynamicDoor:
		s.doors.Trigger(w, c)
	case desc.Subtype == component.SubtypeExit:
		logger.Log.WithFields(logrus.Fields{
			"cell":  c,
			"kills": w.Stats.Kills,
			"ticks": w.Stats.Ticks,
		}).Info("exit reached")
		w.Emit(ecs.EventLevelComplete, c)
	}
}

// pickup collects the object under the player, if it is useful now.
func (s *PlayerSystem) pickup(w *ecs.World) {
	p := w.Player
	c := p.Cell()
	v := w.Grid.At(c)
	if v >= 0 {
		return
	}
	desc, ok := w.Tiles.Lookup(v)
	if !ok || !s.collect(w, desc) {
		return
	}
	w.Grid.Set(c, 0)
	w.PlaySound(component.SoundPickup, p.X, p.Y)
}

func (s *PlayerSystem) collect(w *ecs.World, desc component.TileDescriptor) bool {
	p := w.Player
	switch {
	case desc.Subtype == component.SubtypeAmmo:
		if p.Ammo >= s.cfg.MaxAmmo {
			return false
		}
		p.Ammo = min(s.cfg.MaxAmmo, p.Ammo+desc.Amount)
	case desc.Subtype == component.SubtypeHealth:
		if p.HP >= p.MaxHP {
			return false
		}
		p.HP = min(p.MaxHP, p.HP+desc.Amount)
	case desc.Subtype == component.SubtypeTreasure:
		w.Stats.Treasure++
	case strings.HasPrefix(desc.Subtype, component.SubtypeWeaponPre):
		i, err := strconv.Atoi(strings.TrimPrefix(desc.Subtype, component.SubtypeWeaponPre))
		if err != nil || i < 0 || i >= len(p.Owned) {
			return false
		}
		p.Owned[i] = true
		p.Weapon = i
		p.Ammo = min(s.cfg.MaxAmmo, p.Ammo+desc.Amount)
	default:
		return false
	}
	return true
}
