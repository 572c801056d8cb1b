package client

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"fieldops/internal/domain/entity"
	"fieldops/internal/realtime"

	"github.com/google/uuid"
)

// LocationBoard keeps the latest known position per field agent.
type LocationBoard struct {
	mu     sync.RWMutex
	latest map[string]entity.LocationPing
}

func NewLocationBoard() *LocationBoard {
	return &LocationBoard{latest: make(map[string]entity.LocationPing)}
}

// Apply stores ping unless an already stored ping is newer.
func (b *LocationBoard) Apply(ping entity.LocationPing) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current, ok := b.latest[ping.UserID]; ok && !ping.NewerThan(current) {
		return false
	}
	b.latest[ping.UserID] = ping

	return true
}

// Positions returns every known position ordered by user id.
func (b *LocationBoard) Positions() []entity.LocationPing {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entity.LocationPing, 0, len(b.latest))
	for _, ping := range b.latest {
		out = append(out, ping)
	}
	slices.SortFunc(out, func(a, b entity.LocationPing) int {
		return cmp.Compare(a.UserID, b.UserID)
	})

	return out
}

// PendingRequests is an administrator's view of REQUESTED discounts. Pushes
// and REST listings are merged by id; a resolved id never comes back.
//
// Every write bumps a version. A listing only removes entries written at or
// before the Version taken when its fetch started, so a push that lands
// while the fetch is in flight survives it.
type PendingRequests struct {
	mu       sync.RWMutex
	pending  map[uuid.UUID]pendingEntry
	resolved map[uuid.UUID]entity.DiscountState
	version  uint64
}

type pendingEntry struct {
	req     *entity.DiscountRequest
	version uint64
}

func NewPendingRequests() *PendingRequests {
	return &PendingRequests{
		pending:  make(map[uuid.UUID]pendingEntry),
		resolved: make(map[uuid.UUID]entity.DiscountState),
	}
}

// Version marks the current state; pass it to Reconcile with the listing
// fetched after it.
func (p *PendingRequests) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.version
}

// Upsert adds or replaces a request. Terminal or already resolved requests
// are dropped from the view instead.
func (p *PendingRequests) Upsert(req *entity.DiscountRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.upsertLocked(req)
}

func (p *PendingRequests) upsertLocked(req *entity.DiscountRequest) {
	if req.State.IsTerminal() {
		p.resolved[req.ID] = req.State
		delete(p.pending, req.ID)

		return
	}
	if _, done := p.resolved[req.ID]; done {
		return
	}
	p.version++
	p.pending[req.ID] = pendingEntry{req: req, version: p.version}
}

// Resolve removes the request. Resolutions for unknown ids are remembered
// so a late listing cannot resurrect them.
func (p *PendingRequests) Resolve(res entity.DiscountResolution) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.resolved[res.RequestID] = res.State
	delete(p.pending, res.RequestID)
}

// Reconcile merges a REST listing fetched after since. Entries missing from
// the listing are dropped only when they were already known at since.
func (p *PendingRequests) Reconcile(listing []*entity.DiscountRequest, since uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	listed := make(map[uuid.UUID]struct{}, len(listing))
	for _, req := range listing {
		listed[req.ID] = struct{}{}
	}
	for id, entry := range p.pending {
		if _, ok := listed[id]; !ok && entry.version <= since {
			delete(p.pending, id)
		}
	}
	for _, req := range listing {
		p.upsertLocked(req)
	}
}

// List returns pending requests oldest first.
func (p *PendingRequests) List() []*entity.DiscountRequest {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*entity.DiscountRequest, 0, len(p.pending))
	for _, entry := range p.pending {
		out = append(out, entry.req)
	}
	slices.SortFunc(out, func(a, b *entity.DiscountRequest) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return out
}

// InboxView is the local notification list, upserted by id. Reconcile
// follows the same versioning as PendingRequests.
type InboxView struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]inboxEntry
	version uint64
}

type inboxEntry struct {
	n       *entity.Notification
	version uint64
}

func NewInboxView() *InboxView {
	return &InboxView{items: make(map[uuid.UUID]inboxEntry)}
}

// Version marks the current state for a later Reconcile.
func (v *InboxView) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.version
}

// Upsert adds or replaces n. Read never flips back to false.
func (v *InboxView) Upsert(n *entity.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.upsertLocked(n)
}

func (v *InboxView) upsertLocked(n *entity.Notification) {
	if current, ok := v.items[n.ID]; ok && current.n.Read && !n.Read {
		merged := *n
		merged.Read = true
		merged.ReadAt = current.n.ReadAt
		n = &merged
	}
	v.version++
	v.items[n.ID] = inboxEntry{n: n, version: v.version}
}

// Reconcile merges a REST listing fetched after since. Notifications known
// at since and absent from the listing were cleared and are dropped.
func (v *InboxView) Reconcile(listing []*entity.Notification, since uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	listed := make(map[uuid.UUID]struct{}, len(listing))
	for _, n := range listing {
		listed[n.ID] = struct{}{}
	}
	for id, entry := range v.items {
		if _, ok := listed[id]; !ok && entry.version <= since {
			delete(v.items, id)
		}
	}
	for _, n := range listing {
		v.upsertLocked(n)
	}
}

// Items returns notifications newest first.
func (v *InboxView) Items() []*entity.Notification {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]*entity.Notification, 0, len(v.items))
	for _, entry := range v.items {
		out = append(out, entry.n)
	}
	slices.SortFunc(out, func(a, b *entity.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out
}

// Unread counts unread notifications.
func (v *InboxView) Unread() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	unread := 0
	for _, entry := range v.items {
		if !entry.n.Read {
			unread++
		}
	}

	return unread
}

// Subscribe wires the views to the bus. Undecodable events are logged and
// skipped.
func Subscribe(bus *Bus, logger *slog.Logger, locations *LocationBoard, pending *PendingRequests, inbox *InboxView) {
	if locations != nil {
		bus.Subscribe(realtime.EventReceiveLocation, decodeInto(logger, locations.Apply))
	}
	if pending != nil {
		bus.Subscribe(realtime.EventNewDiscountRequest, decodeInto(logger, func(req entity.DiscountRequest) bool {
			pending.Upsert(&req)

			return true
		}))
		bus.Subscribe(realtime.EventDiscountRequestResolved, decodeInto(logger, func(res entity.DiscountResolution) bool {
			pending.Resolve(res)

			return true
		}))
	}
	if inbox != nil {
		upsert := decodeInto(logger, func(n entity.Notification) bool {
			inbox.Upsert(&n)

			return true
		})
		bus.Subscribe(realtime.EventNewNotification, upsert)
		bus.Subscribe(realtime.EventNewNotificationToAgent, upsert)
	}
}

func decodeInto[T any](logger *slog.Logger, apply func(T) bool) Handler {
	return func(event realtime.Event) {
		var v T
		if err := event.Decode(&v); err != nil {
			logger.Warn("Ignoring malformed event", slog.String("event", event.Name), slog.Any("error", err))

			return
		}
		apply(v)
	}
}
