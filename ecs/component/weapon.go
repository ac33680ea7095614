package component

// Weapon describes one player weapon.
type Weapon struct {
	Name        string
	Texture     string
	MinDamage   int
	MaxDamage   int
	Range       float64
	Cooldown    int
	Automatic   bool
	AmmoPerShot int
	Melee       bool
	Sound       string
}
