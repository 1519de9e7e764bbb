package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Handler consumes one published event. A non-nil return marks the handler
// failed; delivery to the remaining handlers continues regardless.
type Handler func(ctx context.Context, event Event) error

// Dispatcher fans ticket lifecycle events out to subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler Handler)
}

// memoryDispatcher delivers synchronously on the publisher's goroutine: by
// the time Publish returns every subscriber has seen the event, preserving
// the persist-then-notify ordering the ticket workflow relies on.
type memoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	logger   *zap.Logger
}

// NewInMemoryDispatcher builds the process-local dispatcher. Handler
// failures are logged and swallowed: the ticket row is already committed
// when events fire, and notification side effects are best-effort.
func NewInMemoryDispatcher(logger *zap.Logger) Dispatcher {
	return &memoryDispatcher{
		handlers: make(map[EventType][]Handler),
		logger:   logger,
	}
}

func (d *memoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := append([]Handler{}, d.handlers[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range subscribed {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
		}
	}
	return nil
}

func (d *memoryDispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}
