package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffUser is a staff member of the facility. Staff authenticate with
// username+password and gate every write surface.
type StaffUser struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Role      string         `gorm:"size:20;default:'staff'" json:"role"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index" json:"staff_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	Staff     StaffUser `gorm:"foreignKey:StaffID" json:"-"`
}
