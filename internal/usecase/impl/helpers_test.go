package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"fieldops/internal/domain/entity"
	"fieldops/internal/realtime"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentEvent struct {
	Role   entity.Role
	UserID string
	Event  realtime.Event
}

// fakeFanout records every routed event and answers Online from a fixed set.
type fakeFanout struct {
	mu     sync.Mutex
	sent   []sentEvent
	online map[string]bool
}

func newFakeFanout(online ...string) *fakeFanout {
	f := &fakeFanout{online: make(map[string]bool)}
	for _, userID := range online {
		f.online[userID] = true
	}

	return f
}

func (f *fakeFanout) ToRole(_ context.Context, role entity.Role, event realtime.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentEvent{Role: role, Event: event})
}

func (f *fakeFanout) ToUser(_ context.Context, userID string, event realtime.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentEvent{UserID: userID, Event: event})
}

func (f *fakeFanout) Online(userID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.online[userID]
}

func (f *fakeFanout) Named(name string) []sentEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentEvent
	for _, s := range f.sent {
		if s.Event.Name == name {
			out = append(out, s)
		}
	}

	return out
}

func ptr[T any](v T) *T {
	return &v
}
