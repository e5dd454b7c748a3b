package dto

import (
	"time"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/google/uuid"
)

type ParticipantResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ActivityResponse is the wire shape for an activity. Group fields are only
// populated for group activities.
type ActivityResponse struct {
	ID              string                `json:"id"`
	TemplateID      uuid.UUID             `json:"template_id"`
	UserID          *uuid.UUID            `json:"user_id,omitempty"`
	Title           string                `json:"title"`
	Description     *string               `json:"description,omitempty"`
	StartTime       *string               `json:"start_time,omitempty"`
	EndTime         *string               `json:"end_time,omitempty"`
	Date            string                `json:"date"`
	Location        *string               `json:"location,omitempty"`
	Category        string                `json:"category"`
	Type            string                `json:"type"`
	Icon            string                `json:"icon"`
	Color           string                `json:"color"`
	Completed       bool                  `json:"completed"`
	Difficulty      *string               `json:"difficulty,omitempty"`
	Support         models.SupportFlags   `json:"support"`
	MaxParticipants *int                  `json:"max_participants,omitempty"`
	Participants    []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// NewActivityResponse maps a stored activity and its support row to the wire
// shape. Group settings and participants are attached by the caller.
func NewActivityResponse(a *models.Activity, flags models.SupportFlags) *ActivityResponse {
	return &ActivityResponse{
		ID:          a.ID,
		TemplateID:  a.TemplateID,
		UserID:      a.UserID,
		Title:       a.Title,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Date:        a.Date,
		Location:    a.Location,
		Category:    a.Category,
		Type:        a.Type,
		Icon:        a.Icon,
		Color:       a.Color,
		Completed:   a.Completed,
		Difficulty:  a.Difficulty,
		Support:     flags,
		CreatedAt:   a.CreatedAt,
	}
}
