package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is the GORM-specific struct for the 'notifications' table.
// Exactly one of TargetUserID and TargetRole is non-empty.
type NotificationModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Kind         string     `gorm:"type:varchar(32);not null"`
	Message      string     `gorm:"type:text;not null"`
	SenderID     string     `gorm:"type:varchar(64);not null;default:''"`
	TargetUserID string     `gorm:"type:varchar(64);not null;default:'';index"`
	TargetRole   string     `gorm:"type:varchar(16);not null;default:'';index"`
	ReferenceID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}

// NotificationReceiptModel is the GORM-specific struct for the 'notification_receipts' table.
// One row per (notification, viewer) once the viewer reads or clears it.
type NotificationReceiptModel struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         string    `gorm:"type:varchar(64);primaryKey"`
	ReadAt         *time.Time
	ClearedAt      *time.Time

	Notification *NotificationModel `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (NotificationReceiptModel) TableName() string {
	return "notification_receipts"
}
