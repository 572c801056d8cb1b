package model

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryUserModel maps the 'users' table maintained by the account service.
type DirectoryUserModel struct {
	ID    string `gorm:"type:varchar(64);primary_key"`
	Name  string `gorm:"type:varchar(255);not null"`
	Email string `gorm:"type:varchar(255)"`
	Role  string `gorm:"type:varchar(16);not null"`
}

// TableName explicitly sets the table name for GORM.
func (DirectoryUserModel) TableName() string {
	return "users"
}

// ClientModel maps the 'clients' table.
type ClientModel struct {
	ID      string `gorm:"type:varchar(64);primary_key"`
	Name    string `gorm:"type:varchar(255);not null"`
	Phone   string `gorm:"type:varchar(64)"`
	Address string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (ClientModel) TableName() string {
	return "clients"
}

// FieldActivityModel maps the 'field_activities' table. An activity is open
// while EndedAt is null.
type FieldActivityModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        string    `gorm:"type:varchar(64);not null;index:idx_field_activities_open"`
	Kind          string    `gorm:"type:varchar(16);not null"`
	Description   string    `gorm:"type:text"`
	ClientID      *string   `gorm:"type:varchar(64)"`
	SiteLatitude  *float64
	SiteLongitude *float64
	StartedAt     time.Time `gorm:"not null;index:idx_field_activities_open"`
	EndedAt       *time.Time
}

// TableName explicitly sets the table name for GORM.
func (FieldActivityModel) TableName() string {
	return "field_activities"
}
