package system

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

const (
	defaultDoorSpeed     = 1.0 / 16
	defaultDoorOpenTicks = 90
)

// DoorConfig tunes every door in a level.
type DoorConfig struct {
	// Speed is the open-fraction gained or lost per tick.
	Speed float64
	// OpenTicks is how long a door stays open before it tries to close.
	OpenTicks int
}

// DoorSystem advances the per-door state machine
// closed -> opening -> open -> closing -> closed.
type DoorSystem struct {
	cfg DoorConfig
}

func NewDoorSystem(cfg DoorConfig) *DoorSystem {
	if cfg.Speed <= 0 || cfg.Speed > 1 {
		cfg.Speed = defaultDoorSpeed
	}
	if cfg.OpenTicks <= 0 {
		cfg.OpenTicks = defaultDoorOpenTicks
	}
	return &DoorSystem{cfg: cfg}
}

// fullSteps is the number of ticks a door needs to go from 0 to 1.
func (s *DoorSystem) fullSteps() int {
	return int(math.Ceil(1/s.cfg.Speed - 1e-9))
}

func (s *DoorSystem) fraction(steps int) float64 {
	if steps >= s.fullSteps() {
		return 1
	}
	if steps <= 0 {
		return 0
	}
	return float64(steps) * s.cfg.Speed
}

// Trigger starts opening the door at c, or keeps an open door open longer.
// It reports false when c holds no door.
func (s *DoorSystem) Trigger(w *ecs.World, c component.Cell) bool {
	if w == nil || !w.IsDoor(c) {
		return false
	}
	d := w.Doors.Ensure(c, w.Static.At(c))
	switch d.State {
	case component.DoorClosed:
		d.State = component.DoorOpening
		d.Ticks = 0
		cx, cy := c.Center()
		w.PlaySound(component.SoundDoorOpen, cx, cy)
	case component.DoorClosing:
		d.State = component.DoorOpening
	case component.DoorOpen:
		d.Ticks = 0
	}
	return true
}

// Update advances every active door by one tick.
func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, d := range w.Doors.Sorted() {
		s.step(w, d)
	}
}

func (s *DoorSystem) step(w *ecs.World, d *component.Door) {
	switch d.State {
	case component.DoorClosed:
		w.Doors.Remove(d.Cell)
	case component.DoorOpening:
		d.Ticks++
		d.Open = s.fraction(d.Ticks)
		if d.Open >= 1 {
			d.State = component.DoorOpen
			d.Ticks = 0
			w.Grid.Set(d.Cell, 0)
			w.Emit(ecs.EventDoorChanged, *d)
		}
	case component.DoorOpen:
		if d.Ticks < s.cfg.OpenTicks {
			d.Ticks++
		}
		if d.Ticks >= s.cfg.OpenTicks && !s.blocked(w, d) {
			d.State = component.DoorClosing
			d.Ticks = s.fullSteps()
			cx, cy := d.Cell.Center()
			w.PlaySound(component.SoundDoorClose, cx, cy)
		}
	case component.DoorClosing:
		if s.blocked(w, d) {
			d.State = component.DoorOpening
			return
		}
		d.Ticks--
		d.Open = s.fraction(d.Ticks)
		if d.Open <= 0 {
			d.Open = 0
			d.State = component.DoorClosed
			w.Grid.Set(d.Cell, d.Value)
			w.Doors.Remove(d.Cell)
			w.Emit(ecs.EventDoorChanged, *d)
			logger.Log.WithFields(logrus.Fields{
				"door": d.Cell,
			}).Debug("door closed")
		}
	}
}

// blocked reports whether the player's box is within 0.5+half-hitbox of the
// door centre on both axes, or a live actor stands in the doorway.
func (s *DoorSystem) blocked(w *ecs.World, d *component.Door) bool {
	if p := w.Player; p != nil && p.Alive() {
		if p.Box().Intersects(component.CellBox(d.Cell)) {
			return true
		}
	}
	for _, a := range w.Actors {
		if a.Alive() && a.Cell() == d.Cell {
			return true
		}
	}
	return false
}
