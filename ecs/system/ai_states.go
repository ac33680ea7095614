package system

import (
	"math"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

// behavior holds the transition functions that differ per actor kind.
type behavior struct {
	// perceive updates chase state from what the actor can see.
	perceive func(s *AISystem, w *ecs.World, a *component.Actor)
	// idle runs when the actor is not chasing and reports whether it moved.
	idle func(s *AISystem, w *ecs.World, a *component.Actor) bool
}

var behaviors = map[component.ActorKind]behavior{
	component.KindNormal: {perceive: perceiveNormal, idle: idleNormal},
	component.KindBoss:   {perceive: perceiveBoss, idle: idleBoss},
}

func behaviorFor(kind component.ActorKind) behavior {
	if b, ok := behaviors[kind]; ok {
		return b
	}
	return behaviors[component.KindNormal]
}

// perceiveNormal refreshes the chase from sight, then from memory, then from
// other chasing actors in view.
func perceiveNormal(s *AISystem, w *ecs.World, a *component.Actor) {
	memory := a.Archetype.Memory
	if s.spots(w, a) {
		if !a.Chasing {
			w.PlaySound(component.SoundAlert, a.X, a.Y)
			startChase(a)
		}
		a.Chasing = true
		a.LastSaw = 0
		a.Target = w.Player.Cell()
		return
	}

	if a.Chasing {
		if a.LastSaw < memory {
			a.LastSaw++
			return
		}
		a.Chasing = false
		a.Path = nil
		a.Stationary = 0
		return
	}

	for _, o := range w.Actors {
		if o == a || !o.Alive() || !o.Chasing || o.LastSaw >= memory {
			continue
		}
		if !s.caster.CanSee(a.X, a.Y, o.X, o.Y, nil) {
			continue
		}
		startChase(a)
		a.Chasing = true
		a.LastSaw = o.LastSaw
		a.Target = o.Target
		return
	}
}

// startChase drops any idle wander so the next think plans toward the
// target straight away.
func startChase(a *component.Actor) {
	a.Path = nil
	a.Stationary = 0
}

// idleNormal waits at home; once the actor has stood still for its patience
// it either wanders to a random cell of its home room or turns around.
func idleNormal(s *AISystem, w *ecs.World, a *component.Actor) bool {
	if len(a.Path) > 0 {
		return s.follow(w, a)
	}
	if a.Stationary < a.Archetype.Patience {
		return false
	}
	a.Stationary = 0
	if w.Rand.IntN(2) == 0 && len(a.HomeRoom) > 0 {
		s.plan(a, a.HomeRoom[w.Rand.IntN(len(a.HomeRoom))])
		return false
	}
	a.Angle = w.Rand.Float64() * 2 * math.Pi
	return false
}
