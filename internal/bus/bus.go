// Package bus provides fire-and-forget event publication for the tree engine.
// Events are a closed set of typed variants defined by the producer; the bus
// only requires that each carries a kind and a source component name.
package bus

import (
	"log"
	"sync/atomic"
	"time"
)

// Event is implemented by every engine event variant.
type Event interface {
	// Kind is the event's name, e.g. "node_completed".
	Kind() string
	// Component names the engine component that produced the event.
	Component() string
}

// Publisher consumes events fire-and-forget. Implementations must never block
// the caller indefinitely and must not return errors to it.
type Publisher interface {
	Publish(Event)
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) {}

// Emitter is a buffered channel Publisher for in-process subscribers.
type Emitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEmitter creates an Emitter with the given buffer size.
func NewEmitter(bufferSize int) *Emitter {
	return &Emitter{
		events: make(chan Event, bufferSize),
	}
}

// Publish sends an event to the events channel.
// If the channel is full, it tries with a timeout before dropping the event.
func (e *Emitter) Publish(event Event) {
	// Try immediate send first
	select {
	case e.events <- event:
		return
	default:
		// Channel full, try with timeout
	}

	select {
	case e.events <- event:
		return
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 { // Log every 10th drop to avoid spam
			log.Printf("[bus] WARNING: event channel full, dropped event (total dropped: %d): kind=%s", count, event.Kind())
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *Emitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns a read-only channel of events for subscribers.
func (e *Emitter) Events() <-chan Event {
	return e.events
}

// Close closes the events channel. Call only after all publishers are done.
func (e *Emitter) Close() {
	close(e.events)
}

// Fanout publishes each event to every wrapped publisher in order.
type Fanout []Publisher

// Publish implements Publisher.
func (f Fanout) Publish(event Event) {
	for _, p := range f {
		p.Publish(event)
	}
}
