// Package memory keeps every repository in process memory. It backs local
// development when no Postgres connection is configured and the concurrency
// tests of the use case layer.
package memory

import (
	"maps"
	"sync"

	"fieldops/internal/domain/entity"

	"github.com/google/uuid"
)

type receiptKey struct {
	notificationID uuid.UUID
	userID         string
}

// Store holds all rows behind a single mutex. Repositories bound to a
// transaction run with the mutex already held.
type Store struct {
	mu sync.Mutex

	requests      map[uuid.UUID]entity.DiscountRequest
	grants        map[uuid.UUID]entity.DiscountGrant // keyed by request ID
	notifications map[uuid.UUID]entity.Notification
	receipts      map[receiptKey]entity.NotificationReceipt
	devices       map[uuid.UUID]entity.UserDevice
	activities    map[string]entity.ActivityContext
	users         map[string]entity.UserInfo
	clients       map[string]entity.ClientInfo
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		requests:      make(map[uuid.UUID]entity.DiscountRequest),
		grants:        make(map[uuid.UUID]entity.DiscountGrant),
		notifications: make(map[uuid.UUID]entity.Notification),
		receipts:      make(map[receiptKey]entity.NotificationReceipt),
		devices:       make(map[uuid.UUID]entity.UserDevice),
		activities:    make(map[string]entity.ActivityContext),
		users:         make(map[string]entity.UserInfo),
		clients:       make(map[string]entity.ClientInfo),
	}
}

// PutUser seeds a directory user.
func (s *Store) PutUser(user entity.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

// PutClient seeds a directory client.
func (s *Store) PutClient(client entity.ClientInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[client.ID] = client
}

// PutActivity sets the open activity of a field agent.
func (s *Store) PutActivity(activity entity.ActivityContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activities[activity.UserID] = activity
}

// CloseActivity removes the open activity of a field agent.
func (s *Store) CloseActivity(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activities, userID)
}

// hold locks the store unless the caller already runs inside Execute.
func (s *Store) hold(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()

	return s.mu.Unlock
}

type snapshot struct {
	requests      map[uuid.UUID]entity.DiscountRequest
	grants        map[uuid.UUID]entity.DiscountGrant
	notifications map[uuid.UUID]entity.Notification
	receipts      map[receiptKey]entity.NotificationReceipt
}

// snapshot copies the tables a transaction may write.
func (s *Store) snapshot() snapshot {
	return snapshot{
		requests:      maps.Clone(s.requests),
		grants:        maps.Clone(s.grants),
		notifications: maps.Clone(s.notifications),
		receipts:      maps.Clone(s.receipts),
	}
}

func (s *Store) restore(snap snapshot) {
	s.requests = snap.requests
	s.grants = snap.grants
	s.notifications = snap.notifications
	s.receipts = snap.receipts
}
