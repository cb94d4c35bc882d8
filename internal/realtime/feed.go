// Package realtime provides an in-process change feed for order events.
// Producers publish events after a successful database write; consumers
// subscribe with callbacks and receive events on a dedicated dispatcher
// goroutine.
package realtime

import (
	"sync"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/pkg/logger"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
)

// OrderEvent describes one change to the orders table.
type OrderEvent struct {
	Type  EventType
	Order *model.Order
}

// Handler receives order events. Handlers run on the feed's dispatcher
// goroutine and must not block for long.
type Handler func(event OrderEvent)

const eventBufferSize = 256

// Feed fans order events out to subscribers. The dispatcher goroutine is
// started lazily on the first subscription and stopped by Close. Subscribing
// twice registers two independent handlers; each Subscribe call returns its
// own unsubscribe function and calling it more than once is a no-op.
type Feed struct {
	mu       sync.Mutex
	handlers map[uint64]Handler
	nextID   uint64
	events   chan OrderEvent
	done     chan struct{}
	started  bool
	closed   bool
}

func NewFeed() *Feed {
	return &Feed{
		handlers: make(map[uint64]Handler),
		events:   make(chan OrderEvent, eventBufferSize),
		done:     make(chan struct{}),
	}
}

// Subscribe registers a handler and returns a function that removes it.
func (f *Feed) Subscribe(handler Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return func() {}
	}

	id := f.nextID
	f.nextID++
	f.handlers[id] = handler

	if !f.started {
		f.started = true
		go f.dispatch()
		logger.Debug("Realtime feed dispatcher started", nil)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.handlers, id)
			f.mu.Unlock()
		})
	}
}

// Publish enqueues an event without blocking. If the buffer is full the
// event is dropped; subscribers reconcile via the database on the next read.
func (f *Feed) Publish(event OrderEvent) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	select {
	case f.events <- event:
	default:
		logger.Warn("Realtime feed buffer full, dropping event", map[string]interface{}{
			"event_type": event.Type,
		})
	}
}

// Close stops the dispatcher and drops all subscriptions.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.handlers = make(map[uint64]Handler)
	started := f.started
	f.mu.Unlock()

	if started {
		close(f.done)
	}
}

func (f *Feed) dispatch() {
	for {
		select {
		case event := <-f.events:
			f.mu.Lock()
			handlers := make([]Handler, 0, len(f.handlers))
			for _, h := range f.handlers {
				handlers = append(handlers, h)
			}
			f.mu.Unlock()

			for _, h := range handlers {
				h(event)
			}
		case <-f.done:
			return
		}
	}
}
