package groups

import "github.com/google/uuid"

type CreateGroupActivityRequest struct {
	TemplateID      uuid.UUID `json:"template_id" validate:"required"`
	Date            string    `json:"date" validate:"required,dateymd"`
	StartTime       *string   `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime         *string   `json:"end_time,omitempty" validate:"omitempty,clock"`
	MaxParticipants *int      `json:"max_participants,omitempty" validate:"omitempty,min=1"`
}

type JoinRequest struct {
	ResidentID uuid.UUID `json:"resident_id" validate:"required"`
}

type LeaveRequest struct {
	ResidentID uuid.UUID `json:"resident_id" validate:"required"`
}

// Join outcome reasons. A refused join is a normal answer, not an error.
const (
	ReasonFull          = "full"
	ReasonAlreadyJoined = "already_joined"
	ReasonTimeConflict  = "time_conflict"
	ReasonNotEligible   = "not_eligible"
)

// JoinOutcome reports whether a join attempt succeeded and, when it did
// not, which precondition refused it.
type JoinOutcome struct {
	Joined bool   `json:"joined"`
	Reason string `json:"reason,omitempty"`
}
