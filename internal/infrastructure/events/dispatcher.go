// Package events dispatches domain events to in-process handlers
package events

import (
	"context"
	"sync"

	"github.com/alchemorsel/recipe-assistant/internal/domain/shared"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"go.uber.org/zap"
)

// Handler reacts to a published domain event
type Handler func(ctx context.Context, event shared.DomainEvent) error

// Counter records dispatched events
type Counter interface {
	DomainEvent(name string)
}

// Dispatcher implements outbound.EventPublisher synchronously. Handler
// errors are logged and never reach the publisher.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	counter  Counter
	log      *zap.Logger
}

var _ outbound.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a new event dispatcher. counter may be nil.
func NewDispatcher(counter Counter, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		counter:  counter,
		log:      log.Named("events"),
	}
}

// Publish dispatches events to the handlers registered for their names
func (d *Dispatcher) Publish(ctx context.Context, events ...shared.DomainEvent) {
	for _, event := range events {
		name := event.EventName()
		if d.counter != nil {
			d.counter.DomainEvent(name)
		}

		d.mu.RLock()
		handlers := d.handlers[name]
		d.mu.RUnlock()

		if len(handlers) == 0 {
			d.log.Debug("No handlers registered for event", zap.String("event", name))
			continue
		}

		for _, handler := range handlers {
			if err := handler(ctx, event); err != nil {
				d.log.Error("Failed to handle event",
					zap.String("event", name),
					zap.Error(err),
				)
			}
		}
	}
}

// Register registers an event handler
func (d *Dispatcher) Register(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[event] = append(d.handlers[event], handler)
	d.log.Debug("Registered event handler", zap.String("event", event))
}

// AuditLog returns a handler that writes each event to log
func AuditLog(log *zap.Logger) Handler {
	return func(_ context.Context, event shared.DomainEvent) error {
		log.Info("Domain event",
			zap.String("event", event.EventName()),
			zap.String("aggregate_id", event.AggregateID()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
		return nil
	}
}

// Invalidator drops cached entries by key prefix
type Invalidator interface {
	Invalidate(ctx context.Context, prefix string) (int, error)
}

// InvalidateCache returns a handler that drops cached entries under prefix
func InvalidateCache(target Invalidator, prefix string) Handler {
	return func(ctx context.Context, _ shared.DomainEvent) error {
		_, err := target.Invalidate(ctx, prefix)
		return err
	}
}
