package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies what a notification is about.
type NotificationKind string

const (
	NotificationDiscountRequested NotificationKind = "discount_requested"
	NotificationDiscountApproved  NotificationKind = "discount_approved"
	NotificationDiscountRejected  NotificationKind = "discount_rejected"
)

// Notification is addressed either to one user or to every holder of a role.
// Read is evaluated per viewer and only ever moves from false to true.
type Notification struct {
	ID           uuid.UUID        `json:"id"`
	Kind         NotificationKind `json:"kind"`
	Message      string           `json:"message"`
	Read         bool             `json:"read"`
	SenderID     string           `json:"senderId,omitempty"`
	TargetUserID string           `json:"targetUserId,omitempty"`
	TargetRole   Role             `json:"targetRole,omitempty"`
	ReferenceID  *uuid.UUID       `json:"referenceId,omitempty"` // Related discount request, if any.
	CreatedAt    time.Time        `json:"createdAt"`
	ReadAt       *time.Time       `json:"readAt,omitempty"`
}

// HasValidTarget reports whether exactly one of user or role is set.
func (n *Notification) HasValidTarget() bool {
	if n.TargetUserID != "" {
		return n.TargetRole == ""
	}

	return n.TargetRole.IsValid()
}

// VisibleTo reports whether the viewer is an addressee of the notification.
func (n *Notification) VisibleTo(userID string, role Role) bool {
	if n.TargetUserID != "" {
		return n.TargetUserID == userID
	}

	return n.TargetRole == role
}

// NotificationReceipt is the per-user read/clear ledger row.
type NotificationReceipt struct {
	NotificationID uuid.UUID  `json:"notificationId"`
	UserID         string     `json:"userId"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	ClearedAt      *time.Time `json:"clearedAt,omitempty"`
}
