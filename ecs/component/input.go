package component

// Input is the per-tick intent read from the keyboard.
type Input struct {
	// Forward and Strafe are in [-1, 1]; Turn is in [-1, 1], positive clockwise.
	Forward float64
	Strafe  float64
	Turn    float64

	Fire     bool
	FireHeld bool
	Interact bool
	// SelectWeapon is the requested weapon index, -1 for none.
	SelectWeapon int
}

func NoInput() Input {
	return Input{SelectWeapon: -1}
}
