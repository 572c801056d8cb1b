package realtime

import (
	"fieldops/internal/errors"
)

var (
	// ErrSendQueueFull is returned when a connection's outbound queue has no room.
	ErrSendQueueFull = errors.New("send queue full")
	// ErrTransportClosed is returned when sending on a closed transport.
	ErrTransportClosed = errors.New("transport closed")
)

// Transport is the outbound half of a live connection.
type Transport interface {
	// Send enqueues the event and must not block.
	Send(event Event) error
	// Close releases the underlying connection. It is safe to call more than once.
	Close() error
}
