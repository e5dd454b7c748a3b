package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resident is an end-user of the daily schedule.
type Resident struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Avatar    *string        `gorm:"size:255" json:"avatar,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SupportProfile holds a resident's support needs. Exactly one row per
// resident, created in the same transaction as the resident itself.
type SupportProfile struct {
	ResidentID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"resident_id"`
	Flags      SupportFlags `gorm:"embedded" json:"flags"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (SupportProfile) TableName() string {
	return "support_profiles"
}

// ResidentPreferences are display-only accessibility toggles. They never
// influence eligibility or scheduling.
type ResidentPreferences struct {
	ResidentID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"resident_id"`
	SimplifiedLanguage    bool      `gorm:"default:false" json:"simplified_language"`
	EnhancedVisualSupport bool      `gorm:"default:false" json:"enhanced_visual_support"`
	HighContrast          bool      `gorm:"default:false" json:"high_contrast"`
	LargerText            bool      `gorm:"default:false" json:"larger_text"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (ResidentPreferences) TableName() string {
	return "resident_preferences"
}
