package component

// ActorKind selects the behavior table an actor is driven by.
type ActorKind int

const (
	KindNormal ActorKind = iota
	KindBoss
)

func (k ActorKind) String() string {
	if k == KindBoss {
		return "boss"
	}
	return "normal"
}

// SpriteLayout describes an enemy sprite sheet. Row 0 holds the standing
// frame per orientation, rows 1..WalkFrames the walk cycle per orientation,
// and the shoot, pain and death rows hold their frames left to right.
type SpriteLayout struct {
	FrameW       int
	FrameH       int
	Orientations int
	WalkFrames   int
	WalkCadence  int
	FrameTicks   int
	ShootRow     int
	ShootFrames  int
	// FireFrames are the shoot-row columns on which a shot is released.
	FireFrames  []int
	PainRow     int
	PainFrames  int
	DeathRow    int
	DeathFrames int
}

// Archetype is the per-enemy-type tuning record, keyed by texture handle.
type Archetype struct {
	Name             string
	Texture          string
	Kind             ActorKind
	HP               int
	Speed            float64
	ShootingRange    float64
	Accuracy         float64
	DamageMultiplier float64
	PainChance       float64
	Memory           int
	Patience         int
	FOV              float64
	AlertRadius      float64
	ShotCooldown     int
	// Drop is the object tile value left behind on death, 0 for none.
	Drop   int
	Sprite SpriteLayout
}

// ArchetypeTable maps a texture handle to its archetype.
type ArchetypeTable map[string]*Archetype
