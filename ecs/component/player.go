package component

import "github.com/jakecoffman/cp"

// Player is the singleton avatar of a level.
type Player struct {
	X     float64
	Y     float64
	Angle float64

	HP    int
	MaxHP int
	Ammo  int

	// Weapon is the equipped index into the weapon table.
	Weapon int
	Owned  []bool

	// HalfSize is half the edge of the square hitbox, in cells.
	HalfSize float64
	Moving   bool
	// FireCooldown counts down ticks until the weapon can fire again.
	FireCooldown int
	// Killer is the id of the actor that last dealt lethal damage, -1 if none.
	Killer int
}

func (p *Player) Cell() Cell {
	return CellAt(p.X, p.Y)
}

func (p *Player) Alive() bool {
	return p != nil && p.HP > 0
}

// Box returns the player's hitbox.
func (p *Player) Box() cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: p.X, Y: p.Y}, p.HalfSize, p.HalfSize)
}

// BoxAt returns the hitbox the player would have at (x, y).
func (p *Player) BoxAt(x, y float64) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: x, Y: y}, p.HalfSize, p.HalfSize)
}

// CellBox returns the unit box covering c.
func CellBox(c Cell) cp.BB {
	return cp.BB{L: float64(c.X), B: float64(c.Y), R: float64(c.X + 1), T: float64(c.Y + 1)}
}
