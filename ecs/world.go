package ecs

import (
	"math/rand/v2"

	"github.com/milk9111/raycaster/ecs/component"
)

// World owns all mutable level state: the tile grid, the active doors, the
// actors and the player. Systems receive the world and never keep their own
// copies of it.
type World struct {
	// Grid is the live grid; doors and pickups mutate it.
	Grid *component.Grid
	// Static is the level geometry as loaded, with enemy spawn tiles cleared.
	Static *component.Grid
	Tiles  component.TileTable

	Doors   *component.DoorSet
	Actors  []*component.Actor
	Player  *component.Player
	Weapons []component.Weapon

	Input component.Input
	Stats component.Stats
	Tick  int

	Rand *rand.Rand

	events EventQueue
}

// NewWorld creates a world around grid. The static snapshot is taken now.
func NewWorld(grid *component.Grid, tiles component.TileTable, seed uint64) *World {
	return &World{
		Grid:   grid,
		Static: grid.Clone(),
		Tiles:  tiles,
		Doors:  component.NewDoorSet(),
		Input:  component.NoInput(),
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Emit pushes an event.
func (w *World) Emit(typ string, data any) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: typ, Data: data})
}

// PlaySound queues a sound event at (x, y).
func (w *World) PlaySound(name string, x, y float64) {
	w.Emit(EventSound, component.SoundEvent{Name: name, X: x, Y: y})
}

// Tile returns the descriptor for the live value at c.
func (w *World) Tile(c component.Cell) (component.TileDescriptor, bool) {
	return w.Tiles.Lookup(w.Grid.At(c))
}

// IsDoor reports whether c holds a door in the static geometry.
func (w *World) IsDoor(c component.Cell) bool {
	return w.Tiles.Is(w.Static.At(c), component.CategoryDoor)
}

// LiveActors returns actors that are not dead.
func (w *World) LiveActors() []*component.Actor {
	out := make([]*component.Actor, 0, len(w.Actors))
	for _, a := range w.Actors {
		if a.Alive() {
			out = append(out, a)
		}
	}
	return out
}

// Occupied reports whether a live actor other than self stands on, or is
// moving into, c.
func (w *World) Occupied(c component.Cell, self *component.Actor) bool {
	for _, a := range w.Actors {
		if a == self || !a.Alive() {
			continue
		}
		if a.Cell() == c {
			return true
		}
		if len(a.Path) > 0 && a.Path[0] == c {
			return true
		}
	}
	return false
}
