package memory

import (
	"context"
	"slices"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type notificationRepository struct {
	store  *Store
	locked bool
}

// NewNotificationRepository returns a NotificationRepository backed by the store.
func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (repo *notificationRepository) CreateNotification(_ context.Context, notification *entity.Notification) error {
	defer repo.store.hold(repo.locked)()

	if notification.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate notification id")
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	row := *notification
	row.Read, row.ReadAt = false, nil
	repo.store.notifications[row.ID] = row

	return nil
}

func (repo *notificationRepository) FindNotificationByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	defer repo.store.hold(repo.locked)()

	row, ok := repo.store.notifications[id]
	if !ok {
		return nil, repository.ErrNotificationNotFound
	}

	return &row, nil
}

// inbox returns the visible, uncleared rows with the viewer's read state applied.
func (repo *notificationRepository) inbox(userID string, role entity.Role) []*entity.Notification {
	rows := make([]*entity.Notification, 0)
	for _, row := range repo.store.notifications {
		if !row.VisibleTo(userID, role) {
			continue
		}
		receipt, ok := repo.store.receipts[receiptKey{notificationID: row.ID, userID: userID}]
		if ok && receipt.ClearedAt != nil {
			continue
		}
		if ok && receipt.ReadAt != nil {
			row.Read = true
			row.ReadAt = receipt.ReadAt
		}
		rows = append(rows, &row)
	}
	slices.SortFunc(rows, func(a, b *entity.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return rows
}

func (repo *notificationRepository) FindInbox(_ context.Context, userID string, role entity.Role, limit int) ([]*entity.Notification, error) {
	defer repo.store.hold(repo.locked)()

	rows := repo.inbox(userID, role)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return rows, nil
}

func (repo *notificationRepository) CountUnread(_ context.Context, userID string, role entity.Role) (int64, error) {
	defer repo.store.hold(repo.locked)()

	var unread int64
	for _, row := range repo.inbox(userID, role) {
		if !row.Read {
			unread++
		}
	}

	return unread, nil
}

func (repo *notificationRepository) MarkRead(_ context.Context, notificationID uuid.UUID, userID string, readAt time.Time) (bool, error) {
	defer repo.store.hold(repo.locked)()

	if _, ok := repo.store.notifications[notificationID]; !ok {
		return false, repository.ErrNotificationNotFound
	}

	key := receiptKey{notificationID: notificationID, userID: userID}
	receipt, ok := repo.store.receipts[key]
	if ok && receipt.ReadAt != nil {
		return false, nil
	}
	if !ok {
		receipt = entity.NotificationReceipt{NotificationID: notificationID, UserID: userID}
	}
	receipt.ReadAt = &readAt
	repo.store.receipts[key] = receipt

	return true, nil
}

func (repo *notificationRepository) ClearInbox(_ context.Context, userID string, role entity.Role, clearedAt time.Time) (int64, error) {
	defer repo.store.hold(repo.locked)()

	var cleared int64
	for _, row := range repo.store.notifications {
		if !row.VisibleTo(userID, role) {
			continue
		}
		key := receiptKey{notificationID: row.ID, userID: userID}
		receipt, ok := repo.store.receipts[key]
		if ok && receipt.ClearedAt != nil {
			continue
		}
		if !ok {
			receipt = entity.NotificationReceipt{NotificationID: row.ID, UserID: userID}
		}
		receipt.ClearedAt = &clearedAt
		repo.store.receipts[key] = receipt
		cleared++
	}

	return cleared, nil
}
