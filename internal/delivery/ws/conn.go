// Package ws adapts gorilla websocket connections to realtime.Transport.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"fieldops/internal/realtime"

	"github.com/gorilla/websocket"
)

// Options tunes a Conn.
type Options struct {
	SendBuffer   int
	PingInterval time.Duration
	WriteTimeout time.Duration
}

// Conn owns the write side of one socket. Send only enqueues; a single
// writer goroutine started by WritePump performs every socket write.
type Conn struct {
	socket *websocket.Conn
	send   chan realtime.Event
	done   chan struct{}
	once   sync.Once
	opts   Options
	logger *slog.Logger
}

// NewConn wraps socket. Call WritePump in its own goroutine.
func NewConn(socket *websocket.Conn, opts Options, logger *slog.Logger) *Conn {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}

	return &Conn{
		socket: socket,
		send:   make(chan realtime.Event, opts.SendBuffer),
		done:   make(chan struct{}),
		opts:   opts,
		logger: logger,
	}
}

// Send enqueues event without blocking.
func (c *Conn) Send(event realtime.Event) error {
	select {
	case <-c.done:
		return realtime.ErrTransportClosed
	default:
	}

	select {
	case c.send <- event:
		return nil
	case <-c.done:
		return realtime.ErrTransportClosed
	default:
		return realtime.ErrSendQueueFull
	}
}

// Close stops the writer, which sends a close frame and releases the socket.
func (c *Conn) Close() error {
	c.once.Do(func() {
		close(c.done)
	})

	return nil
}

// Done is closed once Close has been called.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// WritePump drains the send queue and pings the peer until Close or a
// write error.
func (c *Conn) WritePump() {
	var ping <-chan time.Time
	if c.opts.PingInterval > 0 {
		ticker := time.NewTicker(c.opts.PingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	defer func() {
		_ = c.Close()
		_ = c.socket.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.socket.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.writeTimeout()),
			)

			return

		case event := <-c.send:
			_ = c.socket.SetWriteDeadline(time.Now().Add(c.writeTimeout()))
			if err := c.socket.WriteJSON(event); err != nil {
				c.logger.Warn("Websocket write failed", slog.String("event", event.Name), slog.Any("error", err))

				return
			}

		case <-ping:
			if err := c.socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout())); err != nil {
				c.logger.Debug("Websocket ping failed", slog.Any("error", err))

				return
			}
		}
	}
}

func (c *Conn) writeTimeout() time.Duration {
	if c.opts.WriteTimeout <= 0 {
		return 5 * time.Second
	}

	return c.opts.WriteTimeout
}
