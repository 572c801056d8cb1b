// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for notification persistence.
var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationRepository defines the interface for notification-related database operations.
// Read and cleared state live in per-user receipts, so role-addressed
// notifications keep independent state for every viewer.
type NotificationRepository interface {
	// CreateNotification persists a new notification.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// FindNotificationByID retrieves a notification by its unique ID.
	FindNotificationByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// FindInbox lists notifications visible to the viewer that the viewer has not
	// cleared, newest first, with Read resolved from the viewer's receipt.
	FindInbox(ctx context.Context, userID string, role entity.Role, limit int) ([]*entity.Notification, error)

	// CountUnread counts visible, uncleared notifications the viewer has not read.
	CountUnread(ctx context.Context, userID string, role entity.Role) (int64, error)

	// MarkRead sets the viewer's read timestamp if it is not set yet.
	// It reports whether anything changed.
	MarkRead(ctx context.Context, notificationID uuid.UUID, userID string, readAt time.Time) (bool, error)

	// ClearInbox marks every notification visible to the viewer as cleared for that viewer only.
	ClearInbox(ctx context.Context, userID string, role entity.Role, clearedAt time.Time) (int64, error)
}
