package catalog

import (
	"time"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/google/uuid"
)

// --- DTOs ---

type CreateTemplateRequest struct {
	Title          string                 `json:"title" validate:"required,max=255"`
	Description    *string                `json:"description,omitempty"`
	Category       string                 `json:"category" validate:"required,oneof=fixed flexible group"`
	Type           string                 `json:"type" validate:"required,oneof=hygiene meal medication therapy exercise social entertainment creative education other"`
	Icon           string                 `json:"icon" validate:"required,max=50"`
	Color          string                 `json:"color" validate:"required,max=20"`
	Location       *string                `json:"location,omitempty"`
	Difficulty     *string                `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Support        *models.SupportFlags   `json:"support,omitempty"`
	DisabilityMeta *models.DisabilityMeta `json:"disability_meta,omitempty"`
}

type UpdateTemplateRequest struct {
	Title          *string                `json:"title,omitempty" validate:"omitempty,max=255"`
	Description    *string                `json:"description,omitempty"`
	Category       *string                `json:"category,omitempty" validate:"omitempty,oneof=fixed flexible group"`
	Type           *string                `json:"type,omitempty" validate:"omitempty,oneof=hygiene meal medication therapy exercise social entertainment creative education other"`
	Icon           *string                `json:"icon,omitempty" validate:"omitempty,max=50"`
	Color          *string                `json:"color,omitempty" validate:"omitempty,max=20"`
	Location       *string                `json:"location,omitempty"`
	Difficulty     *string                `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Support        *models.SupportFlags   `json:"support,omitempty"`
	DisabilityMeta *models.DisabilityMeta `json:"disability_meta,omitempty"`
}

type TemplateResponse struct {
	ID             uuid.UUID              `json:"id"`
	Title          string                 `json:"title"`
	Description    *string                `json:"description,omitempty"`
	Category       string                 `json:"category"`
	Type           string                 `json:"type"`
	Icon           string                 `json:"icon"`
	Color          string                 `json:"color"`
	Location       *string                `json:"location,omitempty"`
	Difficulty     *string                `json:"difficulty,omitempty"`
	Support        models.SupportFlags    `json:"support"`
	DisabilityMeta *models.DisabilityMeta `json:"disability_meta,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
