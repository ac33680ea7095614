package system

import (
	"math"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

const defaultTransitionFrames = 40

// TransitionSystem plays full-screen effects over the ordinary tick loop.
// The effect darkens toward its midpoint, runs the midpoint callback once
// (typically a level load), then clears again.
type TransitionSystem struct {
	t component.Transition
}

func NewTransitionSystem() *TransitionSystem {
	return &TransitionSystem{}
}

// Start begins an effect, replacing any running one.
func (s *TransitionSystem) Start(kind component.TransitionKind, duration int, midpoint func()) {
	if duration <= 0 {
		duration = defaultTransitionFrames
	}
	s.t = component.Transition{
		Kind:     kind,
		Running:  true,
		Duration: duration,
		Midpoint: midpoint,
	}
}

// StartDeath turns the camera from the player's facing toward (kx, ky)
// during the first half, then fades to red.
func (s *TransitionSystem) StartDeath(p *component.Player, kx, ky float64, duration int, midpoint func()) {
	s.Start(component.TransitionDeath, duration, midpoint)
	s.t.FromAngle = p.Angle
	s.t.ToAngle = math.Atan2(ky-p.Y, kx-p.X)
}

func (s *TransitionSystem) Running() bool {
	return s.t.Running
}

// Current returns a copy of the running effect.
func (s *TransitionSystem) Current() component.Transition {
	return s.t
}

// Update advances the running effect by one frame.
func (s *TransitionSystem) Update(w *ecs.World) {
	if !s.t.Running {
		return
	}
	s.t.Frame++
	half := s.t.Duration / 2

	if s.t.Kind == component.TransitionDeath && w != nil && w.Player != nil && !s.t.Fired() {
		turn := math.Min(float64(s.t.Frame)/float64(max(half, 1)), 1)
		w.Player.Angle = s.t.FromAngle + common.AngleDiff(s.t.FromAngle, s.t.ToAngle)*turn
	}

	if !s.t.Fired() && s.t.Frame >= half {
		s.t.MarkFired()
		if s.t.Midpoint != nil {
			s.t.Midpoint()
		}
	}
	if s.t.Frame >= s.t.Duration {
		s.t.Reset()
	}
}

// Progress is the effect's coverage in [0, 1]: rising to 1 at the midpoint
// and falling back to 0 at the end.
func (s *TransitionSystem) Progress() float64 {
	if !s.t.Running || s.t.Duration <= 0 {
		return 0
	}
	half := float64(s.t.Duration) / 2
	f := float64(s.t.Frame)
	if f <= half {
		return common.ClampF(f/half, 0, 1)
	}
	return common.ClampF((float64(s.t.Duration)-f)/half, 0, 1)
}
