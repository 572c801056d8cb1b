// Package client is the field-side realtime client: a reconnecting
// connection, an event bus for server events, and local views reconciled
// against the REST API.
package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/errors"
	"fieldops/internal/realtime"

	"github.com/gorilla/websocket"
)

// Identity is the handshake sent on every (re)connection. Behind a trusted
// gateway UserID and Role are enough; otherwise Token must hold a bearer
// token issued for the same user.
type Identity struct {
	UserID string
	Role   entity.Role
	Token  string
}

// header carries the credentials on REST calls and websocket upgrades.
func (i Identity) header() http.Header {
	header := http.Header{}
	header.Set(constants.HeaderUserID, i.UserID)
	header.Set(constants.HeaderUserRole, i.Role.String())
	if i.Token != "" {
		header.Set("Authorization", "Bearer "+i.Token)
	}

	return header
}

// Conn is one established realtime connection.
type Conn interface {
	ReadEvent() (realtime.Event, error)
	WriteEvent(event realtime.Event) error
	Close() error
}

// Dialer opens connections for an identity.
type Dialer interface {
	Dial(ctx context.Context, identity Identity) (Conn, error)
}

// WebsocketDialer dials the coordinator's /ws endpoint.
type WebsocketDialer struct {
	url          string
	dialer       *websocket.Dialer
	writeTimeout time.Duration
}

// NewWebsocketDialer creates a dialer for endpoint, e.g. ws://localhost:8080/ws.
func NewWebsocketDialer(endpoint string, writeTimeout time.Duration) *WebsocketDialer {
	return &WebsocketDialer{
		url: endpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		writeTimeout: writeTimeout,
	}
}

// Dial performs the handshake with the identity's credentials; userId and
// role are repeated in the query so the server can check them.
func (d *WebsocketDialer) Dial(ctx context.Context, identity Identity) (Conn, error) {
	u, err := url.Parse(d.url)
	if err != nil {
		return nil, errors.Wrap(err, "parse realtime endpoint")
	}
	query := u.Query()
	query.Set(constants.QueryUserID, identity.UserID)
	query.Set(constants.QueryRole, identity.Role.String())
	u.RawQuery = query.Encode()

	socket, resp, err := d.dialer.DialContext(ctx, u.String(), identity.header())
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, domainerrors.ErrUnauthenticated.WithDetails("handshake rejected")
		}

		return nil, errors.Wrap(domainerrors.ErrTransientNetwork, err.Error())
	}

	return &wsConn{socket: socket, writeTimeout: d.writeTimeout}, nil
}

type wsConn struct {
	socket       *websocket.Conn
	writeTimeout time.Duration
	// gorilla allows one concurrent writer
	writeMu sync.Mutex
}

func (c *wsConn) ReadEvent() (realtime.Event, error) {
	var event realtime.Event
	if err := c.socket.ReadJSON(&event); err != nil {
		return realtime.Event{}, errors.WithStack(err)
	}

	return event, nil
}

func (c *wsConn) WriteEvent(event realtime.Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.socket.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}

	return errors.WithStack(c.socket.WriteJSON(event))
}

// Close sends a normal close frame so the server unregisters at once.
func (c *wsConn) Close() error {
	c.writeMu.Lock()
	_ = c.socket.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.writeMu.Unlock()

	return errors.WithStack(c.socket.Close())
}
