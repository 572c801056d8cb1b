package client

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"
)

// State is the connection lifecycle state.
type State string

const (
	StateConnected    State = "CONNECTED"
	StateDisconnected State = "DISCONNECTED"
	StateReconnecting State = "RECONNECTING"
	// StateClosed is terminal: the retry budget ran out or Close was called.
	StateClosed State = "CLOSED"
)

// Options bounds reconnection. Attempts are spaced by a fixed Interval.
type Options struct {
	MaxAttempts int
	Interval    time.Duration
}

// Client owns one logical realtime session across reconnections. It is
// built once at bootstrap and passed to whatever needs it.
type Client struct {
	dialer   Dialer
	identity Identity
	opts     Options
	bus      *Bus
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	conn      Conn
	closed    bool
	listeners []func(State)
}

// New creates a disconnected client. Nothing is dialed until Run.
func New(dialer Dialer, identity Identity, opts Options, logger *slog.Logger) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}

	return &Client{
		dialer:   dialer,
		identity: identity,
		opts:     opts,
		bus:      NewBus(logger),
		logger:   logger.With(slog.String("user_id", identity.UserID)),
		state:    StateDisconnected,
	}
}

// Bus returns the bus server events are published on.
func (c *Client) Bus() *Bus {
	return c.bus
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// OnStateChange registers fn to run after every transition. Listeners run
// on the goroutine that drives Run.
func (c *Client) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = append(c.listeners, fn)
}

// Send writes an event on the current connection. While disconnected the
// event is dropped and a transient error returned.
func (c *Client) Send(event realtime.Event) error {
	c.mu.Lock()
	conn, state := c.conn, c.state
	c.mu.Unlock()

	if conn == nil || state != StateConnected {
		return domainerrors.ErrTransientNetwork.WithDetails("not connected")
	}

	if err := conn.WriteEvent(event); err != nil {
		return errors.Wrap(domainerrors.ErrTransientNetwork, err.Error())
	}

	return nil
}

// Run connects and keeps the session alive until ctx ends, Close is called,
// or reconnection gives up. Giving up returns ErrFatalDisconnect; a rejected
// handshake returns ErrUnauthenticated without further attempts.
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.Close()
	})
	defer stop()

	conn, err := c.dialer.Dial(ctx, c.identity)
	if rejected(err) {
		c.setState(StateClosed)
		c.logger.Error("Handshake rejected", slog.Any("error", err))

		return err
	}
	if err != nil {
		c.logger.Warn("Initial connection failed", slog.Any("error", err))
		conn, err = c.reconnect(ctx)
	} else if !c.attach(conn) {
		conn = nil
	}

	for conn != nil && err == nil {
		c.readLoop(conn)
		c.detach(conn)

		if c.stopping(ctx) {
			c.setState(StateClosed)

			return nil
		}

		c.setState(StateDisconnected)
		conn, err = c.reconnect(ctx)
	}

	return err
}

// Close ends the session and stops reconnecting.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	return conn.Close()
}

// rejected reports a dial error that retrying cannot fix.
func rejected(err error) bool {
	return err != nil && errors.Is(err, domainerrors.ErrUnauthenticated)
}

// reconnect retries with a fixed spacing. Every attempt resends the
// identity; the server has no memory of the previous connection. A nil
// Conn with a nil error means the client was closed meanwhile.
func (c *Client) reconnect(ctx context.Context) (Conn, error) {
	timer := time.NewTimer(0)
	<-timer.C
	defer timer.Stop()

	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		c.setState(StateReconnecting)

		timer.Reset(c.opts.Interval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}

		if c.stopping(ctx) {
			c.setState(StateClosed)

			return nil, nil
		}

		conn, err := c.dialer.Dial(ctx, c.identity)
		if err == nil {
			if !c.attach(conn) {
				return nil, nil
			}
			c.logger.Info("Reconnected", slog.Int("attempt", attempt))

			return conn, nil
		}
		if rejected(err) {
			c.setState(StateClosed)
			c.logger.Error("Handshake rejected", slog.Int("attempt", attempt), slog.Any("error", err))

			return nil, err
		}

		c.logger.Warn("Reconnection attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.opts.MaxAttempts),
			slog.Any("error", err),
		)
	}

	c.setState(StateClosed)
	c.logger.Error("Giving up on reconnection", slog.Int("attempts", c.opts.MaxAttempts))

	return nil, domainerrors.ErrFatalDisconnect.WithDetails("retry budget exhausted")
}

// attach makes conn current. It reports false, closing conn, when Close
// raced the dial.
func (c *Client) attach(conn Conn) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = conn.Close()
		c.setState(StateClosed)

		return false
	}
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)

	return true
}

func (c *Client) detach(conn Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()

	_ = conn.Close()
}

func (c *Client) readLoop(conn Conn) {
	for {
		event, err := conn.ReadEvent()
		if err != nil {
			c.logger.Info("Connection lost", slog.Any("error", err))

			return
		}
		c.bus.Publish(event)
	}
}

func (c *Client) stopping(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed || ctx.Err() != nil
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()

		return
	}
	c.state = state
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	c.logger.Debug("Client state changed", slog.String("state", string(state)))
	for _, fn := range listeners {
		fn(state)
	}
}
