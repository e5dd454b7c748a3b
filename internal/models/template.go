package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity template enumerations. Writes are validated against these at the
// API boundary; unknown values never reach storage.
const (
	CategoryFixed    = "fixed"
	CategoryFlexible = "flexible"
	CategoryGroup    = "group"
)

var (
	ValidCategories = []string{CategoryFixed, CategoryFlexible, CategoryGroup}

	ValidTypes = []string{
		"hygiene", "meal", "medication", "therapy", "exercise",
		"social", "entertainment", "creative", "education", "other",
	}

	ValidDifficulties = []string{"easy", "medium", "hard"}
)

// ActivityTemplate is the reusable blueprint activities are instantiated
// from. DisabilityMeta is an optional JSONB blob consumed by the extended
// eligibility rule.
type ActivityTemplate struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    *string        `gorm:"type:text" json:"description,omitempty"`
	Category       string         `gorm:"size:20;not null;index" json:"category"`
	Type           string         `gorm:"size:20;not null" json:"type"`
	Icon           string         `gorm:"size:50;not null" json:"icon"`
	Color          string         `gorm:"size:20;not null" json:"color"`
	Location       *string        `gorm:"size:255" json:"location,omitempty"`
	Difficulty     *string        `gorm:"size:10" json:"difficulty,omitempty"`
	DisabilityMeta datatypes.JSON `gorm:"type:jsonb" json:"disability_meta,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Meta decodes the disability metadata blob. Returns nil when the template
// carries none or the blob is unreadable, which the eligibility rules treat
// as "no extra constraints".
func (t *ActivityTemplate) Meta() *DisabilityMeta {
	if len(t.DisabilityMeta) == 0 {
		return nil
	}
	var meta DisabilityMeta
	if err := json.Unmarshal(t.DisabilityMeta, &meta); err != nil {
		return nil
	}
	return &meta
}

// TemplateRequiredSupport holds a template's support demands. One row per
// template, written in the same transaction.
type TemplateRequiredSupport struct {
	TemplateID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"template_id"`
	Flags      SupportFlags `gorm:"embedded" json:"flags"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (TemplateRequiredSupport) TableName() string {
	return "template_required_support"
}
