package realtime_test

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/realtime"
	"fieldops/internal/realtime/realtimetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func TestRegistry_Register_RequiresIdentity(t *testing.T) {
	registry := realtime.NewRegistry(time.Second, testLogger())

	_, err := registry.Register("", entity.RoleAdmin, realtimetest.NewRecorder())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	_, err = registry.Register("user-1", entity.Role("GUEST"), realtimetest.NewRecorder())
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	assert.Equal(t, entity.PresenceSnapshot{}, registry.Snapshot())
}

func TestRegistry_Snapshot_CountsDistinctUsers(t *testing.T) {
	registry := realtime.NewRegistry(time.Second, testLogger())

	first, err := registry.Register("agent-1", entity.RoleFieldAgent, realtimetest.NewRecorder())
	require.NoError(t, err)
	_, err = registry.Register("agent-1", entity.RoleFieldAgent, realtimetest.NewRecorder())
	require.NoError(t, err)
	_, err = registry.Register("agent-2", entity.RoleFieldAgent, realtimetest.NewRecorder())
	require.NoError(t, err)
	_, err = registry.Register("admin-1", entity.RoleAdmin, realtimetest.NewRecorder())
	require.NoError(t, err)

	assert.Equal(t, entity.PresenceSnapshot{TotalConnected: 3, TotalFieldAgents: 2, TotalAdmins: 1}, registry.Snapshot())
	assert.Len(t, registry.ConnectionsForUser("agent-1"), 2)
	assert.Len(t, registry.ConnectionsForRole(entity.RoleFieldAgent), 3)

	assert.True(t, registry.Unregister(first.ID))
	assert.False(t, registry.Unregister(first.ID))
	assert.Equal(t, entity.PresenceSnapshot{TotalConnected: 3, TotalFieldAgents: 2, TotalAdmins: 1}, registry.Snapshot())
	assert.Equal(t, 1, registry.CountUser("agent-1"))
}

func TestRegistry_SendToRole_OnlyTargetsRole(t *testing.T) {
	registry := realtime.NewRegistry(time.Second, testLogger())
	admin := realtimetest.NewRecorder()
	fullAdmin := realtimetest.NewRecorder()
	fullAdmin.Full = true
	agent := realtimetest.NewRecorder()

	_, err := registry.Register("admin-1", entity.RoleAdmin, admin)
	require.NoError(t, err)
	_, err = registry.Register("admin-2", entity.RoleAdmin, fullAdmin)
	require.NoError(t, err)
	_, err = registry.Register("agent-1", entity.RoleFieldAgent, agent)
	require.NoError(t, err)

	event, err := realtime.NewEvent(realtime.EventNewDiscountRequest, map[string]string{"id": "r1"})
	require.NoError(t, err)

	delivered := registry.SendToRole(entity.RoleAdmin, event)

	assert.Equal(t, 1, delivered)
	assert.Len(t, admin.Named(realtime.EventNewDiscountRequest), 1)
	assert.Empty(t, agent.Events())
	assert.Equal(t, 1, registry.SendToUser("agent-1", event))
	assert.Equal(t, 0, registry.SendToUser("nobody", event))
}

func TestRegistry_Expire_DropsSilentConnections(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	registry := realtime.NewRegistry(10*time.Second, testLogger(), realtime.WithClock(clock.Now))

	var changes atomic.Int32
	registry.Watch(func() { changes.Add(1) })

	silent := realtimetest.NewRecorder()
	silentConn, err := registry.Register("agent-1", entity.RoleFieldAgent, silent)
	require.NoError(t, err)
	liveConn, err := registry.Register("admin-1", entity.RoleAdmin, realtimetest.NewRecorder())
	require.NoError(t, err)

	clock.Advance(6 * time.Second)
	assert.True(t, registry.Touch(liveConn.ID))
	assert.Equal(t, 0, registry.Expire())

	clock.Advance(6 * time.Second)
	assert.Equal(t, 1, registry.Expire())

	_, ok := registry.Lookup(silentConn.ID)
	assert.False(t, ok)
	assert.True(t, silent.Closed())
	assert.Equal(t, entity.PresenceSnapshot{TotalConnected: 1, TotalAdmins: 1}, registry.Snapshot())
	assert.Equal(t, int32(3), changes.Load())
}

func TestRegistry_SendTo_UnknownConnection(t *testing.T) {
	registry := realtime.NewRegistry(time.Second, testLogger())
	conn, err := registry.Register("admin-1", entity.RoleAdmin, realtimetest.NewRecorder())
	require.NoError(t, err)
	registry.Unregister(conn.ID)

	err = registry.SendTo(conn.ID, realtime.Event{Name: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRegistry_ConcurrentMutations(t *testing.T) {
	registry := realtime.NewRegistry(time.Second, testLogger())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := entity.RoleFieldAgent
			if i%5 == 0 {
				role = entity.RoleAdmin
			}
			conn, err := registry.Register("user-"+string(rune('a'+i%26)), role, realtimetest.NewRecorder())
			if err != nil {
				return
			}
			if i%2 == 0 {
				registry.Unregister(conn.ID)
			}
		}(i)
	}
	wg.Wait()

	snapshot := registry.Snapshot()
	total := len(registry.ConnectionsForRole(entity.RoleAdmin)) + len(registry.ConnectionsForRole(entity.RoleFieldAgent))
	assert.Equal(t, 25, total)
	assert.LessOrEqual(t, snapshot.TotalConnected, 25)
}
