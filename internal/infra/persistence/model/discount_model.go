package model

import (
	"time"

	"github.com/google/uuid"
)

// DiscountRequestModel is the GORM-specific struct for the 'discount_requests' table.
type DiscountRequestModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Percentage    float64   `gorm:"type:numeric(5,2);not null;check:chk_discount_requests_percentage,percentage >= 0 AND percentage <= 100"`
	State         string    `gorm:"type:varchar(16);not null;default:'REQUESTED';index"`
	RequesterID   string    `gorm:"type:varchar(64);not null;index"`
	ClientID      string    `gorm:"type:varchar(64);not null;index"`
	Justification string    `gorm:"type:text"`
	ResolvedBy    *string   `gorm:"type:varchar(64)"`
	ResolvedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (DiscountRequestModel) TableName() string {
	return "discount_requests"
}

// DiscountGrantModel is the GORM-specific struct for the 'discount_grants' table.
// The unique request_id column enforces one grant per request.
type DiscountGrantModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequestID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID   string    `gorm:"type:varchar(64);not null;index"`
	Percentage float64   `gorm:"type:numeric(5,2);not null"`
	GrantedBy  string    `gorm:"type:varchar(64);not null"`
	CreatedAt  time.Time

	Request *DiscountRequestModel `gorm:"foreignKey:RequestID"`
}

// TableName explicitly sets the table name for GORM.
func (DiscountGrantModel) TableName() string {
	return "discount_grants"
}
