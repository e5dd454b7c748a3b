package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity is a template instantiated onto a date. Fixed and flexible
// activities belong to one resident (UserID set); group activities are
// shared (UserID nil) and carry group settings plus a participant list.
//
// Generated activities use a deterministic id so regenerating the same
// resident+date never mints new identities; staff-created ones get a random
// suffix.
type Activity struct {
	ID          string     `gorm:"size:160;primaryKey" json:"id"`
	TemplateID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"template_id"`
	UserID      *uuid.UUID `gorm:"type:uuid;index:idx_activities_user_date" json:"user_id,omitempty"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	StartTime   *string    `gorm:"size:5" json:"start_time,omitempty"`
	EndTime     *string    `gorm:"size:5" json:"end_time,omitempty"`
	Date        string     `gorm:"size:10;not null;index:idx_activities_user_date;index" json:"date"`
	Location    *string    `gorm:"size:255" json:"location,omitempty"`
	Category    string     `gorm:"size:20;not null;index" json:"category"`
	Type        string     `gorm:"size:20;not null" json:"type"`
	Icon        string     `gorm:"size:50;not null" json:"icon"`
	Color       string     `gorm:"size:20;not null" json:"color"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Difficulty  *string    `gorm:"size:10" json:"difficulty,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GeneratedActivityID is the stable composite id used by schedule
// generation: the same template+resident+date always maps to the same id.
func GeneratedActivityID(templateID uuid.UUID, residentID uuid.UUID, date string) string {
	return fmt.Sprintf("activity-%s-%s-%s", templateID, residentID, date)
}

// NewActivityID mints an id for staff-created activities.
func NewActivityID() string {
	return fmt.Sprintf("activity-%s", uuid.New())
}

// ActivityRequiredSupport mirrors the template's support demands onto an
// instantiated activity. Every activity has exactly one row, written in the
// same transaction; an activity without one is an invariant violation.
type ActivityRequiredSupport struct {
	ActivityID string       `gorm:"size:160;primaryKey" json:"activity_id"`
	Flags      SupportFlags `gorm:"embedded" json:"flags"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (ActivityRequiredSupport) TableName() string {
	return "activity_required_support"
}

// GroupActivitySettings exists only for group activities. A nil
// MaxParticipants means unlimited seats.
type GroupActivitySettings struct {
	ActivityID      string    `gorm:"size:160;primaryKey" json:"activity_id"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (GroupActivitySettings) TableName() string {
	return "group_activity_settings"
}

// GroupActivityParticipant is one seat in a group activity. Name is
// snapshotted from the resident record at join time.
type GroupActivityParticipant struct {
	ActivityID string    `gorm:"size:160;primaryKey" json:"activity_id"`
	ResidentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"resident_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	JoinedAt   time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (GroupActivityParticipant) TableName() string {
	return "group_activity_participants"
}

// ActivityHistory records completions for reporting. Upserted when an
// activity is marked completed.
type ActivityHistory struct {
	ActivityID     string    `gorm:"size:160;primaryKey" json:"activity_id"`
	ResidentID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"resident_id"`
	Date           string    `gorm:"size:10;not null;index" json:"date"`
	Completed      bool      `gorm:"default:false" json:"completed"`
	CompletionTime time.Time `json:"completion_time"`
}

func (ActivityHistory) TableName() string {
	return "activity_history"
}
