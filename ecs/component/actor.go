package component

// ActorState is the behavioral state of an enemy.
type ActorState int

const (
	StateDefault ActorState = iota
	StateShooting
	StateHit
	StateDead
	StateSleeping
)

func (s ActorState) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateShooting:
		return "shooting"
	case StateHit:
		return "hit"
	case StateDead:
		return "dead"
	case StateSleeping:
		return "sleeping"
	}
	return "unknown"
}

// ActorAnim tracks sprite animation progress.
type ActorAnim struct {
	Frame     int
	Timer     int
	WalkFrame int
	WalkTimer int
	Moving    bool
}

// Actor is an enemy. Its identity is its spawn cell.
type Actor struct {
	ID        int
	Kind      ActorKind
	Archetype *Archetype
	Home      Cell
	// HomeRoom is the flood-filled room around Home, computed once at spawn.
	HomeRoom []Cell

	X     float64
	Y     float64
	Angle float64
	HP    int

	State   ActorState
	Chasing bool
	Target  Cell
	Path    []Cell

	// LastSaw counts ticks since the player was last perceived, clamped to Memory.
	LastSaw int
	// Stationary counts ticks without movement, clamped to Patience.
	Stationary int
	// Cooldown counts down ticks before the actor may shoot again.
	Cooldown int
	DistSq   float64

	Anim ActorAnim
}

func (a *Actor) Alive() bool {
	return a != nil && a.State != StateDead
}

// Cell returns the grid cell under the actor.
func (a *Actor) Cell() Cell {
	return CellAt(a.X, a.Y)
}
