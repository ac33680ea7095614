package system

import (
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

const (
	minHitChance    = 0.05
	maxHitChance    = 0.95
	falloffPerCell  = 0.04
	movingPenalty   = 0.15
	pointBlankRange = 2.0
)

// damageBand is the damage range for shots closer than MaxDist.
type damageBand struct {
	MaxDist float64
	Min     int
	Max     int
}

var enemyDamageBands = []damageBand{
	{MaxDist: pointBlankRange, Min: 8, Max: 24},
	{MaxDist: 4, Min: 4, Max: 16},
	{MaxDist: 8, Min: 2, Max: 10},
	{MaxDist: math.Inf(1), Min: 1, Max: 6},
}

// HitChance is the probability that an enemy shot at distance dist lands.
func HitChance(accuracy, dist float64, targetMoving bool) float64 {
	chance := accuracy - dist*falloffPerCell
	if targetMoving {
		chance -= movingPenalty
	}
	return common.ClampF(chance, minHitChance, maxHitChance)
}

// RollDamage samples an enemy shot's damage from the band covering dist and
// scales it by mult.
func RollDamage(r *rand.Rand, dist, mult float64) int {
	band := enemyDamageBands[len(enemyDamageBands)-1]
	for _, b := range enemyDamageBands {
		if dist < b.MaxDist {
			band = b
			break
		}
	}
	dmg := band.Min + r.IntN(band.Max-band.Min+1)
	if mult > 0 {
		dmg = int(math.Round(float64(dmg) * mult))
	}
	return max(dmg, 0)
}

// Hurt lowers the actor's hp by dmg, never below zero, and reports whether
// the actor is now out of hp.
func Hurt(a *component.Actor, dmg int) bool {
	if a == nil {
		return false
	}
	if dmg > 0 {
		a.HP = max(0, a.HP-dmg)
	}
	return a.HP <= 0
}

// DamageActor applies a player hit to a: hp loss, alert, pain and death.
func DamageActor(w *ecs.World, a *component.Actor, dmg int) {
	if w == nil || !a.Alive() || dmg <= 0 {
		return
	}
	if Hurt(a, dmg) {
		kill(w, a)
		return
	}

	wake(w, a)
	arch := a.Archetype
	if a.Kind == component.KindBoss || arch == nil {
		return
	}
	if a.State != component.StateDefault && a.State != component.StateShooting {
		return
	}
	if w.Rand.Float64() < arch.PainChance {
		setState(a, component.StateHit)
		a.Path = nil
		w.PlaySound(component.SoundPain, a.X, a.Y)
	}
}

// wake puts a on the player's trail.
func wake(w *ecs.World, a *component.Actor) {
	if w.Player == nil {
		return
	}
	if a.State == component.StateSleeping {
		setState(a, component.StateDefault)
		w.PlaySound(component.SoundAlert, a.X, a.Y)
	}
	if !a.Chasing {
		startChase(a)
	}
	a.Chasing = true
	a.LastSaw = 0
	a.Target = w.Player.Cell()
}

func kill(w *ecs.World, a *component.Actor) {
	setState(a, component.StateDead)
	a.Path = nil
	a.Chasing = false
	w.Stats.Kills++
	w.PlaySound(component.SoundDeath, a.X, a.Y)
	w.Emit(ecs.EventActorDied, a.ID)

	if arch := a.Archetype; arch != nil && arch.Drop != 0 {
		c := a.Cell()
		if w.Grid.At(c) == 0 && !w.IsDoor(c) {
			w.Grid.Set(c, arch.Drop)
		}
	}
}

// HurtPlayer lowers the player's hp and raises EventPlayerDied on the
// killing blow.
func HurtPlayer(w *ecs.World, dmg int, killer int) {
	p := w.Player
	if !p.Alive() || dmg <= 0 {
		return
	}
	p.HP = max(0, p.HP-dmg)
	w.PlaySound(component.SoundPain, p.X, p.Y)
	if p.HP > 0 {
		return
	}
	p.Killer = killer
	w.Emit(ecs.EventPlayerDied, killer)
	logger.Log.WithFields(logrus.Fields{
		"killer": killer,
		"tick":   w.Tick,
	}).Info("player killed")
}

// enemyShot resolves one shot from a at the player.
func enemyShot(w *ecs.World, c *Caster, a *component.Actor) {
	p := w.Player
	w.PlaySound(component.SoundEnemyShot, a.X, a.Y)
	if !p.Alive() || !c.CanSee(a.X, a.Y, p.X, p.Y, nil) {
		return
	}
	dist := math.Sqrt(common.DistSq(a.X, a.Y, p.X, p.Y))
	if w.Rand.Float64() >= HitChance(a.Archetype.Accuracy, dist, p.Moving) {
		return
	}
	HurtPlayer(w, RollDamage(w.Rand, dist, a.Archetype.DamageMultiplier), a.ID)
}
