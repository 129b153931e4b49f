// Package hub fans scheduler and actuator events out to stream subscribers.
package hub

import (
	"sync"

	"github.com/google/uuid"

	"greenhouse_monitor/internal/metrics"
)

// Event types.
const (
	EventSnapshot   = "snapshot"
	EventConnection = "connection"
	EventActuator   = "actuator"
)

const defaultBuffer = 16

// Event is one message for subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Subscription receives events until Cancel is called.
type Subscription struct {
	ID     string
	Events <-chan Event
	cancel func()
}

// Cancel unsubscribes and closes Events. Safe to call more than once.
func (s *Subscription) Cancel() { s.cancel() }

// Hub is a non-blocking broadcaster: a subscriber whose buffer is full
// misses the event instead of stalling the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	buffer int
}

func New(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{subs: make(map[string]chan Event), buffer: buffer}
}

func (h *Hub) Subscribe() *Subscription {
	id := uuid.NewString()
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	metrics.StreamSubscribers.Inc()

	var once sync.Once
	return &Subscription{
		ID:     id,
		Events: ch,
		cancel: func() {
			once.Do(func() {
				h.mu.Lock()
				delete(h.subs, id)
				h.mu.Unlock()
				close(ch)
				metrics.StreamSubscribers.Dec()
			})
		},
	}
}

// Publish delivers e to every subscriber with room in its buffer and
// returns how many received it.
func (h *Hub) Publish(e Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, ch := range h.subs {
		select {
		case ch <- e:
			delivered++
		default:
			metrics.StreamEventsDropped.WithLabelValues(e.Type).Inc()
		}
	}
	return delivered
}

// Subscribers is the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
