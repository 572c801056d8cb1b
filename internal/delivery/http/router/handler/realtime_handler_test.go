package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fieldops/config"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/service"
	mockSvc "fieldops/internal/mocks/service"
	mockUC "fieldops/internal/mocks/usecase"
	"fieldops/internal/realtime"
	"fieldops/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type realtimeFixtures struct {
	server     *httptest.Server
	registry   *realtime.Registry
	locationUC *mockUC.MockLocationUsecase
	tokenSvc   *mockSvc.MockTokenService
}

func createTestRealtime(t *testing.T) realtimeFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Auth: &config.AuthConfig{TrustGatewayHeaders: true},
		Realtime: &config.RealtimeConfig{
			GraceTimeout:    200 * time.Millisecond,
			PingInterval:    time.Minute,
			WriteTimeout:    time.Second,
			SendBuffer:      16,
			MaxMessageBytes: 4096,
		},
	}

	fx := realtimeFixtures{
		registry:   realtime.NewRegistry(cfg.Realtime.GraceTimeout, logger),
		locationUC: mockUC.NewMockLocationUsecase(t),
		tokenSvc:   mockSvc.NewMockTokenService(t),
	}

	h := NewRealtimeHandler(RealtimeHandlerParams{
		Config:     cfg,
		Logger:     logger,
		Registry:   fx.registry,
		LocationUC: fx.locationUC,
	})
	auth := middleware.NewAuthMiddleware(fx.tokenSvc, cfg)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.GET("/ws", h.Connect, auth.Authenticate)

	fx.server = httptest.NewServer(e)
	t.Cleanup(func() {
		fx.registry.CloseAll()
		fx.server.Close()
	})

	return fx
}

func gatewayHeaders(userID, role string) http.Header {
	header := http.Header{}
	header.Set("X-User-Id", userID)
	header.Set("X-User-Role", role)

	return header
}

func (fx realtimeFixtures) handshake(query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(fx.server.URL, "http") + "/ws?" + query

	return websocket.DefaultDialer.Dial(url, header)
}

// dial connects as userID through the gateway headers.
func (fx realtimeFixtures) dial(t *testing.T, userID, role string) *websocket.Conn {
	t.Helper()

	socket, resp, err := fx.handshake("userId="+userID+"&role="+role, gatewayHeaders(userID, role))
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	return socket
}

func (fx realtimeFixtures) waitForUser(t *testing.T, userID string, count int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return fx.registry.CountUser(userID) == count
	}, 2*time.Second, 10*time.Millisecond)
}

func readEvent(t *testing.T, socket *websocket.Conn) realtime.Event {
	t.Helper()

	require.NoError(t, socket.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event realtime.Event
	require.NoError(t, socket.ReadJSON(&event))

	return event
}

func TestConnect_Unauthenticated(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		header http.Header
	}{
		{
			name:  "query identity without credentials",
			query: "userId=boss&role=ADMIN",
		},
		{
			name:   "role claimed above gateway role",
			query:  "userId=7&role=ADMIN",
			header: gatewayHeaders("7", "FIELD_AGENT"),
		},
		{
			name:   "user claimed other than gateway user",
			query:  "userId=boss&role=FIELD_AGENT",
			header: gatewayHeaders("7", "FIELD_AGENT"),
		},
		{
			name:   "unknown query role",
			query:  "role=OWNER",
			header: gatewayHeaders("7", "FIELD_AGENT"),
		},
		{
			name:   "unknown gateway role",
			header: gatewayHeaders("7", "OWNER"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestRealtime(t)

			_, resp, err := fx.handshake(tt.query, tt.header)

			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, entity.PresenceSnapshot{}, fx.registry.Snapshot())
		})
	}
}

func TestConnect_GatewayIdentityWithoutQuery(t *testing.T) {
	fx := createTestRealtime(t)

	socket, resp, err := fx.handshake("", gatewayHeaders("7", "FIELD_AGENT"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer socket.Close()

	fx.waitForUser(t, "7", 1)
	assert.Equal(t, 1, fx.registry.Snapshot().TotalFieldAgents)
	assert.Equal(t, 0, fx.registry.Snapshot().TotalAdmins)
}

func TestConnect_QueryToken(t *testing.T) {
	fx := createTestRealtime(t)
	fx.tokenSvc.EXPECT().ValidateToken("abc").Return(&service.Claims{UserID: "1", Role: "ADMIN"}, nil).Once()

	socket, resp, err := fx.handshake("token=abc&userId=1", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer socket.Close()

	fx.waitForUser(t, "1", 1)
	assert.Equal(t, 1, fx.registry.Snapshot().TotalAdmins)
}

func TestConnect_RelaysLocation(t *testing.T) {
	fx := createTestRealtime(t)

	relayed := make(chan struct{})
	fx.locationUC.EXPECT().
		RelayPing(mock.Anything,
			mock.MatchedBy(func(conn entity.Connection) bool {
				return conn.UserID == "7" && conn.Role == entity.RoleFieldAgent
			}),
			mock.MatchedBy(func(in *usecase.LocationPingInput) bool {
				return in.Latitude != nil && *in.Latitude == 25.03 && in.Longitude != nil && *in.Longitude == 121.56
			})).
		Run(func(context.Context, entity.Connection, *usecase.LocationPingInput) {
			close(relayed)
		}).
		Return(&entity.LocationPing{UserID: "7", Latitude: 25.03, Longitude: 121.56}, nil).
		Once()

	socket := fx.dial(t, "7", "field_agent")
	defer socket.Close()
	fx.waitForUser(t, "7", 1)

	require.NoError(t, socket.WriteMessage(websocket.TextMessage,
		[]byte(`{"event":"sendLocation","data":{"latitude":25.03,"longitude":121.56}}`)))

	select {
	case <-relayed:
	case <-time.After(2 * time.Second):
		t.Fatal("sendLocation was not relayed")
	}
}

func TestConnect_RejectedPingGetsErrorEvent(t *testing.T) {
	fx := createTestRealtime(t)

	fx.locationUC.EXPECT().
		RelayPing(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrValidationFailed.WithDetails("latitude out of range")).
		Once()

	socket := fx.dial(t, "7", "FIELD_AGENT")
	defer socket.Close()
	fx.waitForUser(t, "7", 1)

	require.NoError(t, socket.WriteMessage(websocket.TextMessage,
		[]byte(`{"event":"sendLocation","data":{"latitude":120,"longitude":10}}`)))

	event := readEvent(t, socket)
	require.Equal(t, realtime.EventError, event.Name)

	var payload realtime.ErrorPayload
	require.NoError(t, event.Decode(&payload))
	assert.Equal(t, domainerrors.CodeValidation, payload.Code)
	assert.Equal(t, realtime.EventSendLocation, payload.Event)
	assert.Equal(t, "latitude out of range", payload.Details)
}

func TestConnect_UnknownEvent(t *testing.T) {
	fx := createTestRealtime(t)

	socket := fx.dial(t, "1", "ADMIN")
	defer socket.Close()
	fx.waitForUser(t, "1", 1)

	require.NoError(t, socket.WriteMessage(websocket.TextMessage, []byte(`{"event":"teleport"}`)))

	event := readEvent(t, socket)
	require.Equal(t, realtime.EventError, event.Name)

	var payload realtime.ErrorPayload
	require.NoError(t, event.Decode(&payload))
	assert.Equal(t, "teleport", payload.Event)
}

func TestConnect_ReceivesServerEvents(t *testing.T) {
	fx := createTestRealtime(t)

	socket := fx.dial(t, "1", "ADMIN")
	defer socket.Close()
	fx.waitForUser(t, "1", 1)

	event, err := realtime.NewEvent(realtime.EventNewNotification, map[string]string{"title": "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, fx.registry.SendToUser("1", event))

	got := readEvent(t, socket)
	assert.Equal(t, realtime.EventNewNotification, got.Name)
	assert.JSONEq(t, `{"title":"hello"}`, string(got.Data))
}

func TestConnect_CloseUnregistersImmediately(t *testing.T) {
	fx := createTestRealtime(t)

	socket := fx.dial(t, "7", "FIELD_AGENT")
	fx.waitForUser(t, "7", 1)

	require.NoError(t, socket.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	fx.waitForUser(t, "7", 0)
	_ = socket.Close()
}

func TestConnect_DropWaitsForGrace(t *testing.T) {
	fx := createTestRealtime(t)

	socket := fx.dial(t, "7", "FIELD_AGENT")
	fx.waitForUser(t, "7", 1)

	// no close frame, just a dead TCP connection
	require.NoError(t, socket.UnderlyingConn().Close())

	assert.Never(t, func() bool {
		return fx.registry.CountUser("7") == 0
	}, 100*time.Millisecond, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		fx.registry.Expire()

		return fx.registry.CountUser("7") == 0
	}, 2*time.Second, 20*time.Millisecond)
}
