package component

// TransitionKind selects the effect a transition plays.
type TransitionKind string

const (
	TransitionFade  TransitionKind = "fade"
	TransitionWipe  TransitionKind = "wipe"
	TransitionDeath TransitionKind = "death"
)

// Transition is a full-screen effect driven by the ordinary tick loop.
// Frame counts up to Duration; the midpoint callback fires once at Duration/2.
type Transition struct {
	Kind     TransitionKind
	Running  bool
	Frame    int
	Duration int
	// Midpoint fires once at the middle of the effect, e.g. to load a level.
	Midpoint func()
	fired    bool

	// FromAngle and ToAngle drive the death camera turn.
	FromAngle float64
	ToAngle   float64
}

func (t *Transition) Fired() bool {
	return t.fired
}

func (t *Transition) MarkFired() {
	t.fired = true
}

// Reset returns the transition to idle.
func (t *Transition) Reset() {
	*t = Transition{}
}
