package input

// Batch is the ordered list of events produced between two ticks.
//
// A Batch is appended to and drained on the same goroutine and is not safe
// for concurrent use.
type Batch struct {
	events []Event
}

// NewBatch returns an empty batch with room for capacity events.
func NewBatch(capacity int) *Batch {
	return &Batch{events: make([]Event, 0, capacity)}
}

// Append adds an event at the end of the batch.
func (b *Batch) Append(e Event) {
	b.events = append(b.events, e)
}

// Events returns the pending events in arrival order. The slice is only
// valid until the next Append or Clear.
func (b *Batch) Events() []Event {
	return b.events
}

// Len returns the number of pending events.
func (b *Batch) Len() int { return len(b.events) }

// Cap returns the retained capacity.
func (b *Batch) Cap() int { return cap(b.events) }

// Clear empties the batch and keeps its storage.
func (b *Batch) Clear() {
	clear(b.events)
	b.events = b.events[:0]
}
