package events

// Queue is an append-only FIFO of events.
type Queue struct {
	items []Event
}

// Fire appends events in order.
func (q *Queue) Fire(evs ...Event) {
	q.items = append(q.items, evs...)
}

// Pop removes and returns the oldest event.
func (q *Queue) Pop() (Event, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	e := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return e, true
}

// Drain returns all queued events in fire order and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return len(q.items) }

// HasUnprocessed reports whether any event is pending. With importantOnly
// set, only events whose Important method returns true count.
func (q *Queue) HasUnprocessed(importantOnly bool) bool {
	if !importantOnly {
		return len(q.items) > 0
	}
	for _, e := range q.items {
		if e.Important() {
			return true
		}
	}
	return false
}
