package component

import "sort"

// DoorState is the phase of a sliding door.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	}
	return "unknown"
}

// Door is an active door. Value is the wall value restored when it closes.
type Door struct {
	Cell  Cell
	Value int
	Open  float64
	State DoorState
	// Ticks counts progress through the current phase.
	Ticks int
}

// DoorSet holds the doors that are not fully closed, keyed by cell.
type DoorSet struct {
	doors map[Cell]*Door
}

func NewDoorSet() *DoorSet {
	return &DoorSet{doors: make(map[Cell]*Door)}
}

func (s *DoorSet) Get(c Cell) (*Door, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.doors[c]
	return d, ok
}

// Ensure returns the door at c, inserting a closed door with value if none exists.
func (s *DoorSet) Ensure(c Cell, value int) *Door {
	if d, ok := s.doors[c]; ok {
		return d
	}
	d := &Door{Cell: c, Value: value, State: DoorClosed}
	s.doors[c] = d
	return d
}

func (s *DoorSet) Remove(c Cell) {
	delete(s.doors, c)
}

func (s *DoorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.doors)
}

// Sorted returns the doors ordered by row then column so updates are deterministic.
func (s *DoorSet) Sorted() []*Door {
	if s == nil {
		return nil
	}
	out := make([]*Door, 0, len(s.doors))
	for _, d := range s.doors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}
