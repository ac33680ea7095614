package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

// replanInterval throttles path searches for actors whose goal is unreachable.
const replanInterval = 15

// AISystem drives every enemy once per tick. Behavior that differs between
// normal enemies and bosses is looked up in the behaviors table.
type AISystem struct {
	caster *Caster
	paths  *Pathfinder
	doors  *DoorSystem
}

func NewAISystem(caster *Caster, paths *Pathfinder, doors *DoorSystem) *AISystem {
	return &AISystem{caster: caster, paths: paths, doors: doors}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	p := w.Player
	for _, a := range w.Actors {
		if a.Archetype == nil {
			continue
		}
		a.DistSq = common.DistSq(a.X, a.Y, p.X, p.Y)
		if a.Cooldown > 0 {
			a.Cooldown--
		}

		b := behaviorFor(a.Kind)
		switch a.State {
		case component.StateDead:
			animateOnce(a, a.Archetype.Sprite.DeathFrames)
		case component.StateSleeping:
			b.perceive(s, w, a)
			animateWalk(a, false)
		case component.StateHit:
			if _, done := animateOnce(a, a.Archetype.Sprite.PainFrames); done {
				setState(a, component.StateDefault)
			}
		case component.StateShooting:
			s.shoot(w, a)
		default:
			s.think(w, a, b)
		}
	}
}

// think runs one Default-state tick: perception, then either shooting,
// chasing or idling.
func (s *AISystem) think(w *ecs.World, a *component.Actor, b behavior) {
	b.perceive(s, w, a)
	if a.State != component.StateDefault {
		return
	}
	if s.canShoot(w, a) {
		s.startShooting(w, a)
		animateWalk(a, false)
		return
	}

	moved := false
	if a.Chasing {
		if len(a.Path) == 0 && (a.Stationary == 0 || (w.Tick+a.ID)%replanInterval == 0) {
			s.plan(a, a.Target)
		}
		moved = s.follow(w, a)
	} else {
		moved = b.idle(s, w, a)
	}

	if moved {
		a.Stationary = 0
	} else if a.Stationary < a.Archetype.Patience {
		a.Stationary++
	}
	animateWalk(a, moved)
}

// sees reports whether a can see the player, optionally limited to its
// field of view.
func (s *AISystem) sees(w *ecs.World, a *component.Actor, cone bool) bool {
	p := w.Player
	if !p.Alive() {
		return false
	}
	var vc *ViewCone
	if cone && a.Archetype.FOV > 0 {
		vc = &ViewCone{Angle: a.Angle, FOV: a.Archetype.FOV}
	}
	return s.caster.CanSee(a.X, a.Y, p.X, p.Y, vc)
}

// spots reports whether a notices the player this tick: in sight within its
// cone, or inside its instant alert radius.
func (s *AISystem) spots(w *ecs.World, a *component.Actor) bool {
	if !w.Player.Alive() {
		return false
	}
	r := a.Archetype.AlertRadius
	if r > 0 && a.DistSq <= r*r {
		return true
	}
	return s.sees(w, a, true)
}

func (s *AISystem) canShoot(w *ecs.World, a *component.Actor) bool {
	if !a.Chasing || a.Cooldown > 0 || !w.Player.Alive() {
		return false
	}
	r := a.Archetype.ShootingRange
	if a.DistSq > r*r {
		return false
	}
	return s.sees(w, a, false)
}

func (s *AISystem) startShooting(w *ecs.World, a *component.Actor) {
	setState(a, component.StateShooting)
	a.Anim.Frame = 0
	a.Anim.Timer = 0
	s.facePlayer(w, a)
	if isFireFrame(a.Archetype.Sprite, 0) {
		enemyShot(w, s.caster, a)
	}
}

// shoot advances the shooting animation, firing on the archetype's fire
// frames. When it ends the actor fires again half of the time if it still
// has sight, and otherwise rests for its shot cooldown.
func (s *AISystem) shoot(w *ecs.World, a *component.Actor) {
	s.facePlayer(w, a)
	sp := a.Archetype.Sprite
	entered, done := animateOnce(a, sp.ShootFrames)
	if entered && isFireFrame(sp, a.Anim.Frame) {
		enemyShot(w, s.caster, a)
	}
	if !done {
		return
	}
	if w.Rand.Float64() < 0.5 && s.sees(w, a, false) {
		s.startShooting(w, a)
		return
	}
	setState(a, component.StateDefault)
	a.Cooldown = a.Archetype.ShotCooldown
}

func (s *AISystem) facePlayer(w *ecs.World, a *component.Actor) {
	a.Angle = common.NormalizeAngle(math.Atan2(w.Player.Y-a.Y, w.Player.X-a.X))
}

// plan replaces a's path with a route to goal.
func (s *AISystem) plan(a *component.Actor, goal component.Cell) {
	a.Path = s.paths.Pathfind(a.Cell(), goal)
}

// follow moves a one step along its path. It reports whether a moved.
func (s *AISystem) follow(w *ecs.World, a *component.Actor) bool {
	if len(a.Path) == 0 {
		return false
	}
	next := a.Path[0]
	here := a.Cell()

	if w.IsDoor(here) {
		s.doors.Trigger(w, here)
	}
	if next != here {
		if w.IsDoor(next) {
			s.doors.Trigger(w, next)
			if w.Grid.At(next) != 0 {
				return false
			}
		}
		if !w.Grid.Walkable(next) {
			a.Path = nil
			return false
		}
		if w.Player.Alive() && w.Player.Cell() == next || w.Occupied(next, a) {
			if a.Chasing && s.canShoot(w, a) {
				s.startShooting(w, a)
				return false
			}
			s.strafe(w, a, here)
			return false
		}
	}

	tx, ty := next.Center()
	dx, dy := tx-a.X, ty-a.Y
	dist := math.Hypot(dx, dy)
	speed := a.Archetype.Speed
	if dist > 0 {
		a.Angle = common.NormalizeAngle(math.Atan2(dy, dx))
	}
	if dist <= speed {
		a.X, a.Y = tx, ty
		a.Path = a.Path[1:]
		if a.Chasing && (len(a.Path) == 0 || a.Path[len(a.Path)-1] != a.Target) {
			s.plan(a, a.Target)
		}
		return true
	}
	a.X += dx / dist * speed
	a.Y += dy / dist * speed
	return true
}

// strafe sidesteps into a random free neighbour of here.
func (s *AISystem) strafe(w *ecs.World, a *component.Actor, here component.Cell) {
	var free []component.Cell
	for _, d := range orthogonal {
		n := here.Add(d.X, d.Y)
		if !w.Grid.Walkable(n) || w.Occupied(n, a) || w.Player.Cell() == n {
			continue
		}
		free = append(free, n)
	}
	if len(free) == 0 {
		a.Path = nil
		return
	}
	a.Path = []component.Cell{free[w.Rand.IntN(len(free))]}
}

func setState(a *component.Actor, next component.ActorState) {
	if a.State == next {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"actor": a.ID,
		"from":  a.State,
		"to":    next,
	}).Debug("actor state")
	a.State = next
	a.Anim.Frame = 0
	a.Anim.Timer = 0
}
