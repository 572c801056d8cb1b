package client

import (
	"bytes"
	"log/slog"
	"sync"

	"fieldops/internal/realtime"
)

// Handler receives a private copy of each event.
type Handler func(event realtime.Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches server events to subscribers by event name. Subscribers
// cannot talk back to the connection through it.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]subscription
	nextID uint64
	logger *slog.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[string][]subscription),
		logger: logger,
	}
}

// Subscribe registers h for name and returns a function that removes it.
func (b *Bus) Subscribe(name string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[name]
		for i, s := range subs {
			if s.id == id {
				b.subs[name] = append(subs[:i:i], subs[i+1:]...)

				return
			}
		}
	}
}

// Publish delivers event to every subscriber of its name, in subscription
// order, and returns how many handlers ran.
func (b *Bus) Publish(event realtime.Event) int {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[event.Name]...)
	b.mu.RUnlock()

	if len(subs) == 0 {
		b.logger.Debug("No subscriber for event", slog.String("event", event.Name))

		return 0
	}

	for _, s := range subs {
		s.handler(realtime.Event{Name: event.Name, Data: bytes.Clone(event.Data)})
	}

	return len(subs)
}
