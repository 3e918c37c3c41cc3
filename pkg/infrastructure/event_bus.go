package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/globehunters/flight-bff/pkg/application"
	"github.com/globehunters/flight-bff/pkg/domain"
)

// simpleEventBus is an in-process event bus that fans events out to the
// registered handlers on goroutines.
type simpleEventBus[E domain.Event[T], T any] struct {
	handlers map[string][]application.EventHandler[E, T]
	mu       sync.RWMutex
	logger   application.AppLogger
}

// NewSimpleEventBus creates a new in-process event bus.
func NewSimpleEventBus[E domain.Event[T], T any](logger application.AppLogger) application.EventBus[E, T] {
	return &simpleEventBus[E, T]{
		handlers: make(map[string][]application.EventHandler[E, T]),
		logger:   logger,
	}
}

// RegisterHandler registers a handler for a specific event name.
func (bus *simpleEventBus[E, T]) RegisterHandler(eventName string, handler application.EventHandler[E, T]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
}

// Publish delivers the event to every registered handler and waits for all of
// them, aggregating handler errors.
func (bus *simpleEventBus[E, T]) Publish(ctx context.Context, event E) error {
	bus.mu.RLock()
	handlers, found := bus.handlers[event.EventName()]
	bus.mu.RUnlock()

	if !found {
		bus.logger.Info(ctx, "no handler registered for event", map[string]interface{}{
			"event_name": event.EventName(),
		})
		return nil // nothing to deliver to, a silent success
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))
	done := make(chan struct{})

	for _, handler := range handlers {
		wg.Add(1)
		go func(h application.EventHandler[E, T]) {
			defer wg.Done()
			if err := h.Handle(ctx, event); err != nil {
				select {
				case errChan <- err:
				case <-ctx.Done():
					bus.logger.Error(ctx, "error delivering event", map[string]interface{}{
						"event_name": event.EventName(),
						"error":      err,
					})
				}
			}
		}(handler)
	}

	go func() {
		wg.Wait()
		close(errChan)
		close(done)
	}()

	select {
	case <-ctx.Done():
		bus.logger.Error(ctx, "error publishing event", map[string]interface{}{
			"event_name": event.EventName(),
			"error":      ctx.Err(),
		})
		return ctx.Err()
	case <-done:
		bus.logger.Info(ctx, "event published", map[string]interface{}{
			"event_name": event.EventName(),
		})
		return bus.collectErrors(ctx, errChan)
	}
}

func (bus *simpleEventBus[E, T]) collectErrors(ctx context.Context, errChan <-chan error) error {
	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		bus.logger.Error(ctx, "event handlers failed", map[string]interface{}{
			"errors": errs,
		})
		return fmt.Errorf("errors: %v", errs)
	}
	return nil
}
