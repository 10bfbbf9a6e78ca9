package ecs

// ContactKind identifies what a character touched during a physics step.
type ContactKind uint8

const (
	ContactHazard ContactKind = iota + 1
	ContactDeathBox
)

// Contact is queued by the physics system and drained by the hazard system
// on the same tick.
type Contact struct {
	Kind   ContactKind
	Entity Entity
	Other  Entity
}

// ContactQueue is a FIFO of contacts for the current tick.
type ContactQueue struct {
	items []Contact
}

func (q *ContactQueue) Push(c Contact) {
	if q == nil {
		return
	}
	q.items = append(q.items, c)
}

// Drain returns all queued contacts and clears the queue.
func (q *ContactQueue) Drain() []Contact {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *ContactQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *ContactQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
