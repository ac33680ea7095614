package component

import "fmt"

// TileCategory classifies a grid value.
type TileCategory string

const (
	CategoryWall     TileCategory = "wall"
	CategoryDoor     TileCategory = "door"
	CategoryThinWall TileCategory = "thin_wall"
	CategoryObject   TileCategory = "object"
	CategoryEnemy    TileCategory = "enemy"
)

// Tile subtypes with gameplay meaning. Any other subtype is cosmetic.
const (
	SubtypeDynamicDoor = "dynamic"
	SubtypeExit        = "exit"
	SubtypeDecor       = "decor"
	SubtypeAmmo        = "ammo"
	SubtypeHealth      = "health"
	SubtypeTreasure    = "treasure"
	SubtypeBoss        = "boss"
	SubtypeWeaponPre   = "weapon:"
)

// TileDescriptor describes one grid value.
type TileDescriptor struct {
	Category TileCategory
	Subtype  string
	Texture  string
	// Amount is the pickup payload for object tiles.
	Amount int
}

// TileTable maps grid values to descriptors. It is read-only after load.
type TileTable map[int]TileDescriptor

func (t TileTable) Lookup(v int) (TileDescriptor, bool) {
	d, ok := t[v]
	return d, ok
}

func (t TileTable) Is(v int, cat TileCategory) bool {
	d, ok := t[v]
	return ok && d.Category == cat
}

func (c TileCategory) Valid() bool {
	switch c {
	case CategoryWall, CategoryDoor, CategoryThinWall, CategoryObject, CategoryEnemy:
		return true
	}
	return false
}

// Validate checks that every entry is consistent with the sign convention:
// objects are negative, everything else positive, 0 is reserved.
func (t TileTable) Validate() error {
	for v, d := range t {
		if v == 0 {
			return fmt.Errorf("tile table: value 0 is reserved for empty")
		}
		if !d.Category.Valid() {
			return fmt.Errorf("tile table: value %d: unknown category %q", v, d.Category)
		}
		if d.Category == CategoryObject && v > 0 {
			return fmt.Errorf("tile table: object value %d must be negative", v)
		}
		if d.Category != CategoryObject && v < 0 {
			return fmt.Errorf("tile table: %s value %d must be positive", d.Category, v)
		}
	}
	return nil
}
