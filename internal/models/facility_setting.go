package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacilitySetting stores admin-tunable facility-wide values.
type FacilitySetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Type      string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *FacilitySetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (FacilitySetting) TableName() string {
	return "facility_settings"
}

// Setting keys seeded with defaults at startup.
const (
	SettingGroupMaxParticipants = "group.default_max_participants"
	SettingFlexibleCap          = "schedule.flexible_cap"
)
