package client

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fieldops/config"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/domain/entity"
	mockUC "fieldops/internal/mocks/usecase"
	"fieldops/internal/realtime"
	"fieldops/internal/realtime/realtimetest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// droppableDialer records the TCP connection so a test can cut it without
// a websocket close handshake.
type droppableDialer struct {
	*WebsocketDialer

	mu   sync.Mutex
	last net.Conn
}

func newDroppableDialer(endpoint string) *droppableDialer {
	d := &droppableDialer{WebsocketDialer: NewWebsocketDialer(endpoint, time.Second)}
	d.dialer.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := (&net.Dialer{}).DialContext(ctx, network, addr)
		if err == nil {
			d.mu.Lock()
			d.last = conn
			d.mu.Unlock()
		}

		return conn, err
	}

	return d
}

func (d *droppableDialer) drop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.last != nil {
		_ = d.last.Close()
	}
}

func agentCounts(rec *realtimetest.Recorder) []int {
	var counts []int
	for _, ev := range rec.Named(realtime.EventUpdateConnectedUsers) {
		var snapshot entity.PresenceSnapshot
		if err := ev.Decode(&snapshot); err != nil {
			continue
		}
		if len(counts) == 0 || counts[len(counts)-1] != snapshot.TotalFieldAgents {
			counts = append(counts, snapshot.TotalFieldAgents)
		}
	}

	return counts
}

// A field agent's connection drops and comes back after longer than the
// grace timeout: administrators see the agent count fall by one and then
// return, and the reconnection re-registers the same identity.
func TestScenario_AgentDropAndReconnect(t *testing.T) {
	logger := testLogger()
	cfg := &config.Config{
		Auth: &config.AuthConfig{TrustGatewayHeaders: true},
		Realtime: &config.RealtimeConfig{
			GraceTimeout:     60 * time.Millisecond,
			PresenceDebounce: 5 * time.Millisecond,
			PingInterval:     time.Minute,
			WriteTimeout:     time.Second,
			SendBuffer:       16,
			MaxMessageBytes:  4096,
		},
	}

	registry := realtime.NewRegistry(cfg.Realtime.GraceTimeout, logger)
	presence := realtime.NewPresenceBroadcaster(registry, cfg.Realtime.PresenceDebounce, logger)
	defer presence.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx)

	h := handler.NewRealtimeHandler(handler.RealtimeHandlerParams{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		LocationUC: mockUC.NewMockLocationUsecase(t),
	})
	e := echo.New()
	auth := middleware.NewAuthMiddleware(nil, cfg)
	e.GET("/ws", h.Connect, auth.Authenticate)
	srv := httptest.NewServer(e)
	defer srv.Close()
	defer registry.CloseAll()

	// the admin dashboard, kept alive by touching it
	admin := realtimetest.NewRecorder()
	adminConn, err := registry.Register("admin-1", entity.RoleAdmin, admin)
	require.NoError(t, err)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				registry.Touch(adminConn.ID)
			}
		}
	}()

	dialer := newDroppableDialer("ws" + strings.TrimPrefix(srv.URL, "http") + "/ws")
	c := New(dialer, agent, Options{MaxAttempts: 5, Interval: 300 * time.Millisecond}, logger)

	var connects sync.WaitGroup
	connects.Add(2)
	c.OnStateChange(func(s State) {
		if s == StateConnected {
			connects.Done()
		}
	})

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return registry.CountUser("7") == 1 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		counts := agentCounts(admin)

		return len(counts) > 0 && counts[len(counts)-1] == 1
	}, 2*time.Second, 5*time.Millisecond)

	dialer.drop()

	require.Eventually(t, func() bool { return registry.CountUser("7") == 0 }, 2*time.Second, 5*time.Millisecond)
	connects.Wait()
	require.Eventually(t, func() bool { return registry.CountUser("7") == 1 }, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		counts := agentCounts(admin)

		return len(counts) >= 3 && counts[len(counts)-1] == 1
	}, 2*time.Second, 5*time.Millisecond)
	counts := agentCounts(admin)
	assert.Equal(t, []int{1, 0, 1}, counts[len(counts)-3:])

	require.NoError(t, c.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	require.Eventually(t, func() bool { return registry.CountUser("7") == 0 }, 2*time.Second, 5*time.Millisecond)
}
