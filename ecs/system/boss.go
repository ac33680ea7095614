package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

// perceiveBoss keeps a boss asleep until it spots the player. Once awake it
// never gives up the chase and retargets whenever it has sight.
func perceiveBoss(s *AISystem, w *ecs.World, a *component.Actor) {
	if a.State == component.StateSleeping {
		if !s.spots(w, a) {
			return
		}
		wake(w, a)
		logger.Log.WithFields(logrus.Fields{
			"actor": a.ID,
			"name":  a.Archetype.Name,
		}).Info("boss awake")
		return
	}

	a.Chasing = true
	if s.sees(w, a, false) {
		a.LastSaw = 0
		a.Target = w.Player.Cell()
	} else if a.LastSaw < a.Archetype.Memory {
		a.LastSaw++
	}
}

// idleBoss is only reached before the first perception tick.
func idleBoss(s *AISystem, w *ecs.World, a *component.Actor) bool {
	return s.follow(w, a)
}
