package component

// Stats are the per-level tallies shown at the end of a level.
type Stats struct {
	Kills         int
	TotalEnemies  int
	Treasure      int
	TotalTreasure int
	Ticks         int
}
