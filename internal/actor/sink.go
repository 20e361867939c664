package actor

import (
	"sync"

	"github.com/dearbird/muddery/internal/combat"
)

// sinkCapacity bounds how many undelivered events a sink keeps; the oldest
// are dropped first. Clients that poll slower than this lose history, not
// the session.
const sinkCapacity = 256

// BufferSink is an in-memory notification sink. The combat session pushes
// events into it fire-and-forget; the API drains it when the client polls.
type BufferSink struct {
	mu     sync.Mutex
	events []combat.Event
}

// NewBufferSink returns an empty sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Push appends an event, dropping the oldest when the buffer is full.
func (b *BufferSink) Push(ev combat.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) >= sinkCapacity {
		b.events = b.events[1:]
	}
	b.events = append(b.events, ev)
}

// Drain returns all buffered events and empties the sink.
func (b *BufferSink) Drain() []combat.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

// Len returns the number of buffered events.
func (b *BufferSink) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
