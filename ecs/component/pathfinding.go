package component

// Segment is one local-search leg of a routed path.
type Segment struct {
	From  Cell
	To    Cell
	Cells []Cell
}

// DoorGraph lists, for each door, the doors reachable from it without
// crossing a third door. It is built once per level from static geometry.
type DoorGraph map[Cell][]Cell
