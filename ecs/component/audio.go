package component

// Sound names pushed by systems and played by the audio sink.
const (
	SoundDoorOpen  = "door_open"
	SoundDoorClose = "door_close"
	SoundShot      = "shot"
	SoundEnemyShot = "enemy_shot"
	SoundPain      = "pain"
	SoundDeath     = "death"
	SoundPickup    = "pickup"
	SoundAlert     = "alert"
	SoundNoAmmo    = "no_ammo"
)

// SoundEvent asks the presentation layer to play a named sound at a position.
type SoundEvent struct {
	Name string
	X    float64
	Y    float64
}
