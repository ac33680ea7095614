package system

import (
	"math"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs/component"
)

// FrameFor returns the sprite sheet column and row to draw a with, as seen
// by p. Standing and walking frames pick their column from the angle between
// the actor's facing and the direction to the player.
func FrameFor(a *component.Actor, p *component.Player) (col, row int) {
	if a == nil || a.Archetype == nil {
		return 0, 0
	}
	sp := a.Archetype.Sprite

	switch a.State {
	case component.StateDead:
		return common.Clamp(a.Anim.Frame, 0, max(sp.DeathFrames-1, 0)), sp.DeathRow
	case component.StateHit:
		return common.Clamp(a.Anim.Frame, 0, max(sp.PainFrames-1, 0)), sp.PainRow
	case component.StateShooting:
		return common.Clamp(a.Anim.Frame, 0, max(sp.ShootFrames-1, 0)), sp.ShootRow
	}

	if sp.Orientations > 1 && p != nil {
		bearing := math.Atan2(p.Y-a.Y, p.X-a.X)
		slice := 2 * math.Pi / float64(sp.Orientations)
		rel := common.NormalizeAngle(bearing - a.Angle + slice/2)
		col = int(rel/slice) % sp.Orientations
	}
	if a.Anim.Moving && sp.WalkFrames > 0 {
		row = 1 + a.Anim.WalkFrame%sp.WalkFrames
	}
	return col, row
}

// animateWalk advances the walk cycle while the actor moves and freezes it
// otherwise.
func animateWalk(a *component.Actor, moved bool) {
	a.Anim.Moving = moved
	sp := a.Archetype.Sprite
	if !moved || sp.WalkFrames <= 0 {
		return
	}
	a.Anim.WalkTimer++
	if a.Anim.WalkTimer >= max(sp.WalkCadence, 1) {
		a.Anim.WalkTimer = 0
		a.Anim.WalkFrame = (a.Anim.WalkFrame + 1) % sp.WalkFrames
	}
}

// animateOnce advances a one-shot animation of frames frames. It reports
// whether a new frame was entered and whether the animation has finished.
func animateOnce(a *component.Actor, frames int) (entered bool, done bool) {
	frames = max(frames, 1)
	ticks := max(a.Archetype.Sprite.FrameTicks, 1)
	a.Anim.Timer++
	if a.Anim.Timer < ticks {
		return false, false
	}
	a.Anim.Timer = 0
	if a.Anim.Frame+1 >= frames {
		return false, true
	}
	a.Anim.Frame++
	return true, false
}

func isFireFrame(sp component.SpriteLayout, frame int) bool {
	for _, f := range sp.FireFrames {
		if f == frame {
			return true
		}
	}
	return false
}
