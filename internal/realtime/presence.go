package realtime

import (
	"log/slog"
	"sync"
	"time"

	"fieldops/internal/domain/entity"
)

// PresenceBroadcaster pushes updateConnectedUsers to administrators. The
// first change in a quiet period arms a timer; changes arriving before it
// fires are folded into the same broadcast, which reads the registry at
// fire time so the last state wins.
//
// Counts cover this instance's registry only, and the broadcast goes to
// this instance's administrators. With pubsub.provider set, each instance
// reports its own totals.
type PresenceBroadcaster struct {
	registry *Registry
	window   time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool

	flushMu sync.Mutex
	last    entity.PresenceSnapshot
	sent    int
}

// NewPresenceBroadcaster subscribes to registry changes.
func NewPresenceBroadcaster(registry *Registry, window time.Duration, logger *slog.Logger) *PresenceBroadcaster {
	b := &PresenceBroadcaster{
		registry: registry,
		window:   window,
		logger:   logger,
	}
	registry.Watch(b.schedule)

	return b
}

// Snapshot reads current presence straight from the registry.
func (b *PresenceBroadcaster) Snapshot() entity.PresenceSnapshot {
	return b.registry.Snapshot()
}

// LastBroadcast returns the most recent snapshot sent and how many broadcasts happened.
func (b *PresenceBroadcaster) LastBroadcast() (entity.PresenceSnapshot, int) {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	return b.last, b.sent
}

// Stop cancels any pending broadcast. Later changes are ignored.
func (b *PresenceBroadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *PresenceBroadcaster) schedule() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped || b.timer != nil {
		return
	}
	b.timer = time.AfterFunc(b.window, b.flush)
}

func (b *PresenceBroadcaster) flush() {
	b.mu.Lock()
	b.timer = nil
	stopped := b.stopped
	b.mu.Unlock()

	if stopped {
		return
	}

	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	snapshot := b.registry.Snapshot()
	event, err := NewEvent(EventUpdateConnectedUsers, snapshot)
	if err != nil {
		b.logger.Error("Failed to build presence event", slog.Any("error", err))

		return
	}

	delivered := b.registry.SendToRole(entity.RoleAdmin, event)
	b.last = snapshot
	b.sent++

	b.logger.Debug("Presence broadcast",
		slog.Int("total_connected", snapshot.TotalConnected),
		slog.Int("total_field_agents", snapshot.TotalFieldAgents),
		slog.Int("total_admins", snapshot.TotalAdmins),
		slog.Int("delivered", delivered),
	)
}
