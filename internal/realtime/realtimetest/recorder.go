// Package realtimetest provides an in-memory Transport for tests.
package realtimetest

import (
	"sync"

	"fieldops/internal/realtime"
)

// Recorder is a Transport that keeps every event it accepts.
type Recorder struct {
	mu     sync.Mutex
	events []realtime.Event
	closed bool
	// Full makes Send fail as if the queue had no room.
	Full bool
}

// NewRecorder returns an open Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records the event.
func (r *Recorder) Send(event realtime.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return realtime.ErrTransportClosed
	}
	if r.Full {
		return realtime.ErrSendQueueFull
	}
	r.events = append(r.events, event)

	return nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true

	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]realtime.Event, len(r.events))
	copy(out, r.events)

	return out
}

// Named returns recorded events with the given name, in arrival order.
func (r *Recorder) Named(name string) []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []realtime.Event
	for _, ev := range r.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}

	return out
}
