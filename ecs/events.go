package ecs

// Event is a tagged payload pushed by one system and drained by another
// consumer, usually the game loop.
type Event struct {
	Type string
	Data any
}

const (
	// EventFieldRebuilt carries the navigation.Stats of a new field.
	EventFieldRebuilt = "field_rebuilt"
	// EventRebuildFailed carries the rebuild error.
	EventRebuildFailed = "rebuild_failed"
	// EventAgentOutOfBounds carries the Entity that left the grid.
	EventAgentOutOfBounds = "agent_out_of_bounds"
)

// EventQueue is a FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
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
