package postgres

import (
	"context"
	"time"

	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// visibleToViewer selects notifications addressed to the user directly or to the user's role.
const visibleToViewer = "(n.target_user_id = ? OR (n.target_user_id = '' AND n.target_role = ?))"

const markReadSQL = `
INSERT INTO notification_receipts (notification_id, user_id, read_at)
VALUES (?, ?, ?)
ON CONFLICT (notification_id, user_id)
DO UPDATE SET read_at = EXCLUDED.read_at
WHERE notification_receipts.read_at IS NULL`

const clearInboxSQL = `
INSERT INTO notification_receipts (notification_id, user_id, cleared_at)
SELECT n.id, ?, ? FROM notifications n WHERE ` + visibleToViewer + `
ON CONFLICT (notification_id, user_id)
DO UPDATE SET cleared_at = EXCLUDED.cleared_at
WHERE notification_receipts.cleared_at IS NULL`

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// inboxRow is a notification joined with the viewer's receipt.
type inboxRow struct {
	model.NotificationModel
	ReadAt *time.Time
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// CreateNotification persists a new notification.
func (repo *notificationRepository) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required notification information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

// FindNotificationByID retrieves a notification by its unique ID.
func (repo *notificationRepository) FindNotificationByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notificationM model.NotificationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by ID")
	}

	return toNotificationDomain(&notificationM, nil), nil
}

func (repo *notificationRepository) inboxQuery(ctx context.Context, userID string, role entity.Role) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("notifications AS n").
		Joins("LEFT JOIN notification_receipts AS r ON r.notification_id = n.id AND r.user_id = ?", userID).
		Where(visibleToViewer, userID, string(role)).
		Where("r.cleared_at IS NULL")
}

// FindInbox lists the viewer's uncleared notifications, newest first.
func (repo *notificationRepository) FindInbox(ctx context.Context, userID string, role entity.Role, limit int) ([]*entity.Notification, error) {
	var rows []*inboxRow

	query := repo.inboxQuery(ctx, userID, role).
		Select("n.*, r.read_at").
		Order("n.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find inbox")
	}

	notifications := make([]*entity.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, toNotificationDomain(&row.NotificationModel, row.ReadAt))
	}

	return notifications, nil
}

// CountUnread counts the viewer's uncleared notifications without a read timestamp.
func (repo *notificationRepository) CountUnread(ctx context.Context, userID string, role entity.Role) (int64, error) {
	var count int64

	if err := repo.inboxQuery(ctx, userID, role).
		Where("r.read_at IS NULL").
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// MarkRead upserts the viewer's receipt, touching read_at only while it is null.
func (repo *notificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID, userID string, readAt time.Time) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", notificationID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check notification")
	}
	if count == 0 {
		return false, repository.ErrNotificationNotFound
	}

	result := repo.db.WithContext(ctx).Exec(markReadSQL, notificationID, userID, readAt)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to mark notification read")
	}

	return result.RowsAffected > 0, nil
}

// ClearInbox writes a cleared receipt for every notification visible to the viewer.
func (repo *notificationRepository) ClearInbox(ctx context.Context, userID string, role entity.Role, clearedAt time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).Exec(clearInboxSQL, userID, clearedAt, userID, string(role))
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to clear inbox")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toNotificationDomain(data *model.NotificationModel, readAt *time.Time) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:           data.ID,
		Kind:         entity.NotificationKind(data.Kind),
		Message:      data.Message,
		Read:         readAt != nil,
		SenderID:     data.SenderID,
		TargetUserID: data.TargetUserID,
		TargetRole:   entity.Role(data.TargetRole),
		ReferenceID:  data.ReferenceID,
		CreatedAt:    data.CreatedAt,
		ReadAt:       readAt,
	}
}

func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:           data.ID,
		Kind:         string(data.Kind),
		Message:      data.Message,
		SenderID:     data.SenderID,
		TargetUserID: data.TargetUserID,
		TargetRole:   string(data.TargetRole),
		ReferenceID:  data.ReferenceID,
		CreatedAt:    data.CreatedAt,
	}
}
