// Package eventbus defines the contract for publishing domain events after
// their unit of work has committed, plus a synchronous in-memory bus.
package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Event is anything that can be routed by its type name.
type Event interface {
	Type() string
}

// HandlerFunc processes one event.
type HandlerFunc func(ctx context.Context, e Event) error

// Bus defines the contract for emitting and subscribing to domain events.
type Bus interface {
	Emit(ctx context.Context, event Event) error
	Register(eventType string, handler HandlerFunc)
}

// MemoryBus dispatches events synchronously to registered handlers and keeps
// a copy of everything emitted.
type MemoryBus struct {
	handlers  map[string][]HandlerFunc
	published []Event
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewMemoryBus creates an in-memory bus.
func NewMemoryBus(logger *slog.Logger) *MemoryBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryBus{
		handlers: make(map[string][]HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
}

func (b *MemoryBus) Register(eventType string, handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit records the event and runs every handler for its type. Handler
// errors are logged and the first one is returned after all handlers ran.
func (b *MemoryBus) Emit(ctx context.Context, event Event) error {
	b.mu.Lock()
	b.published = append(b.published, event)
	handlers := append([]HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.Unlock()

	var firstErr error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "type", event.Type(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Published returns a copy of every emitted event.
func (b *MemoryBus) Published() []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Event(nil), b.published...)
}

var _ Bus = (*MemoryBus)(nil)
