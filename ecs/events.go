package ecs

// Event is a generic world event payload.
type Event struct {
	Type string
	Data any
}

// Event types pushed by systems.
const (
	EventSound         = "sound"
	EventLevelComplete = "level_complete"
	EventPlayerDied    = "player_died"
	EventActorDied     = "actor_died"
	EventDoorChanged   = "door_changed"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
