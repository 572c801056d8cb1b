package usecase

import (
	"context"

	"fieldops/internal/domain/entity"

	"github.com/google/uuid"
)

// Viewer identifies who is reading an inbox
type Viewer struct {
	UserID string
	Role   entity.Role
}

// PushInput describes a notification and the realtime event that announces it
type PushInput struct {
	Notification *entity.Notification
	// Event is the realtime event name sent to live connections
	Event string
	// Payload is sent as event data; defaults to the notification itself
	Payload any
}

// Inbox is the fetch-on-connect view of a viewer's notifications
type Inbox struct {
	Notifications []*entity.Notification `json:"notifications"`
	Unread        int64                  `json:"unread"`
}

// NotificationUsecase defines the interface for notification delivery use cases
type NotificationUsecase interface {
	// Push persists the notification, then hints live connections. Delivery
	// problems are logged and never returned.
	Push(ctx context.Context, input *PushInput) (*entity.Notification, error)

	// MarkRead marks a notification read for the viewer; repeating it is a no-op
	MarkRead(ctx context.Context, notificationID uuid.UUID, viewer Viewer) error

	// ClearAll clears the administrator's own inbox only
	ClearAll(ctx context.Context, adminUserID string) (int64, error)

	// ListInbox lists the viewer's uncleared notifications
	ListInbox(ctx context.Context, viewer Viewer, limit int) (*Inbox, error)
}
