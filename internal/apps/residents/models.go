package residents

import (
	"github.com/dagcentrum/backend/internal/models"
	"github.com/google/uuid"
)

// --- DTOs ---

type PreferencesPayload struct {
	SimplifiedLanguage    bool `json:"simplified_language"`
	EnhancedVisualSupport bool `json:"enhanced_visual_support"`
	HighContrast          bool `json:"high_contrast"`
	LargerText            bool `json:"larger_text"`
}

type CreateResidentRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Avatar      *string              `json:"avatar,omitempty"`
	Support     *models.SupportFlags `json:"support,omitempty"`
	Preferences *PreferencesPayload  `json:"preferences,omitempty"`
}

type UpdateResidentRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Avatar *string `json:"avatar,omitempty"`
}

type ResidentResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Avatar      *string             `json:"avatar,omitempty"`
	Support     models.SupportFlags `json:"support"`
	Preferences PreferencesPayload  `json:"preferences"`
}
