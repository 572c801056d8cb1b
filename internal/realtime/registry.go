package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"

	"github.com/google/uuid"
)

// Broadcaster is the fan-out surface the use cases depend on.
type Broadcaster interface {
	SendToRole(role entity.Role, event Event) int
	SendToUser(userID string, event Event) int
	CountUser(userID string) int
}

type member struct {
	conn      entity.Connection
	transport Transport
}

// Registry tracks live connections in this process. Every mutation is
// announced to watchers after the lock is released.
type Registry struct {
	mu       sync.RWMutex
	members  map[uuid.UUID]*member
	byUser   map[string]map[uuid.UUID]struct{}
	byRole   map[entity.Role]map[uuid.UUID]struct{}
	watchers []func()

	grace  time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

// NewRegistry creates an empty registry. Connections that stay silent for
// longer than grace are expired by Run.
func NewRegistry(grace time.Duration, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		members: make(map[uuid.UUID]*member),
		byUser:  make(map[string]map[uuid.UUID]struct{}),
		byRole:  make(map[entity.Role]map[uuid.UUID]struct{}),
		grace:   grace,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Watch registers fn to be called after every membership change.
// Watchers must return quickly.
func (r *Registry) Watch(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.watchers = append(r.watchers, fn)
}

// Register adds a connection for an authenticated identity.
func (r *Registry) Register(userID string, role entity.Role, transport Transport) (entity.Connection, error) {
	if userID == "" {
		return entity.Connection{}, domainerrors.ErrUnauthenticated.WithDetails("missing userId")
	}
	if !role.IsValid() {
		return entity.Connection{}, domainerrors.ErrUnauthenticated.WithDetails("invalid role: " + role.String())
	}
	if transport == nil {
		return entity.Connection{}, domainerrors.ErrInternalError.WithDetails("nil transport")
	}

	now := r.now()
	conn := entity.Connection{
		ID:          uuid.New(),
		UserID:      userID,
		Role:        role,
		ConnectedAt: now,
		LastSeenAt:  now,
	}

	r.mu.Lock()
	r.members[conn.ID] = &member{conn: conn, transport: transport}
	index(r.byUser, userID, conn.ID)
	index(r.byRole, role, conn.ID)
	watchers := r.watchers
	r.mu.Unlock()

	r.logger.Info("Connection registered",
		slog.String("connection_id", conn.ID.String()),
		slog.String("user_id", userID),
		slog.String("role", role.String()),
	)
	notify(watchers)

	return conn, nil
}

// Unregister removes a connection. It reports whether the connection existed.
func (r *Registry) Unregister(id uuid.UUID) bool {
	r.mu.Lock()
	m, ok := r.remove(id)
	watchers := r.watchers
	r.mu.Unlock()

	if !ok {
		return false
	}

	r.logger.Info("Connection unregistered",
		slog.String("connection_id", id.String()),
		slog.String("user_id", m.conn.UserID),
	)
	notify(watchers)

	return true
}

// Touch records liveness for a connection.
func (r *Registry) Touch(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return false
	}
	m.conn.LastSeenAt = r.now()

	return true
}

// Lookup returns the connection record for id.
func (r *Registry) Lookup(id uuid.UUID) (entity.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return entity.Connection{}, false
	}

	return m.conn, true
}

// ConnectionsForRole returns the ids of every connection holding role.
func (r *Registry) ConnectionsForRole(role entity.Role) []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return keys(r.byRole[role])
}

// ConnectionsForUser returns the ids of every connection opened by userID.
func (r *Registry) ConnectionsForUser(userID string) []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return keys(r.byUser[userID])
}

// CountUser returns how many live connections userID holds.
func (r *Registry) CountUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser[userID])
}

// Snapshot counts distinct users, overall and per role.
func (r *Registry) Snapshot() entity.PresenceSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return entity.PresenceSnapshot{
		TotalConnected:   len(r.byUser),
		TotalFieldAgents: r.distinctUsers(entity.RoleFieldAgent),
		TotalAdmins:      r.distinctUsers(entity.RoleAdmin),
	}
}

// SendToRole enqueues event on every connection holding role and returns
// how many accepted it.
func (r *Registry) SendToRole(role entity.Role, event Event) int {
	r.mu.RLock()
	targets := r.collect(r.byRole[role])
	r.mu.RUnlock()

	return r.deliver(targets, event)
}

// SendToUser enqueues event on every connection opened by userID.
func (r *Registry) SendToUser(userID string, event Event) int {
	r.mu.RLock()
	targets := r.collect(r.byUser[userID])
	r.mu.RUnlock()

	return r.deliver(targets, event)
}

// SendTo enqueues event on a single connection.
func (r *Registry) SendTo(id uuid.UUID, event Event) error {
	r.mu.RLock()
	m, ok := r.members[id]
	r.mu.RUnlock()

	if !ok {
		return domainerrors.ErrNotFound.WithDetails("connection " + id.String())
	}

	return m.transport.Send(event)
}

// Expire drops connections silent for longer than the grace timeout and
// closes their transports. It returns the number expired.
func (r *Registry) Expire() int {
	cutoff := r.now().Add(-r.grace)

	r.mu.Lock()
	var expired []*member
	for id, m := range r.members {
		if m.conn.LastSeenAt.Before(cutoff) {
			if removed, ok := r.remove(id); ok {
				expired = append(expired, removed)
			}
		}
	}
	watchers := r.watchers
	r.mu.Unlock()

	if len(expired) == 0 {
		return 0
	}

	for _, m := range expired {
		_ = m.transport.Close()
		r.logger.Info("Connection expired",
			slog.String("connection_id", m.conn.ID.String()),
			slog.String("user_id", m.conn.UserID),
			slog.Time("last_seen_at", m.conn.LastSeenAt),
		)
	}
	notify(watchers)

	return len(expired)
}

// Run expires stale connections until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.grace / 2
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}

// CloseAll closes every transport and empties the registry.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	members := r.members
	r.members = make(map[uuid.UUID]*member)
	r.byUser = make(map[string]map[uuid.UUID]struct{})
	r.byRole = make(map[entity.Role]map[uuid.UUID]struct{})
	r.mu.Unlock()

	for _, m := range members {
		_ = m.transport.Close()
	}
}

// remove must be called with mu held.
func (r *Registry) remove(id uuid.UUID) (*member, bool) {
	m, ok := r.members[id]
	if !ok {
		return nil, false
	}

	delete(r.members, id)
	unindex(r.byUser, m.conn.UserID, id)
	unindex(r.byRole, m.conn.Role, id)

	return m, true
}

func (r *Registry) distinctUsers(role entity.Role) int {
	users := make(map[string]struct{}, len(r.byRole[role]))
	for id := range r.byRole[role] {
		users[r.members[id].conn.UserID] = struct{}{}
	}

	return len(users)
}

func (r *Registry) collect(ids map[uuid.UUID]struct{}) []*member {
	out := make([]*member, 0, len(ids))
	for id := range ids {
		out = append(out, r.members[id])
	}

	return out
}

func (r *Registry) deliver(targets []*member, event Event) int {
	delivered := 0
	for _, m := range targets {
		if err := m.transport.Send(event); err != nil {
			r.logger.Warn("Dropped realtime event",
				slog.String("event", event.Name),
				slog.String("connection_id", m.conn.ID.String()),
				slog.Any("error", err),
			)

			continue
		}
		delivered++
	}

	return delivered
}

func index[K comparable](idx map[K]map[uuid.UUID]struct{}, key K, id uuid.UUID) {
	set, ok := idx[key]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		idx[key] = set
	}
	set[id] = struct{}{}
}

func unindex[K comparable](idx map[K]map[uuid.UUID]struct{}, key K, id uuid.UUID) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(idx, key)
	}
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}

	return out
}

func notify(watchers []func()) {
	for _, fn := range watchers {
		fn()
	}
}
