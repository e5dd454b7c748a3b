package groups

import (
	"errors"
	"fmt"

	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/eligibility"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/dagcentrum/backend/internal/timeslot"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrActivityNotFound = errors.New("group activity not found")
	ErrNotGroupActivity = errors.New("activity is not a group activity")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNotGroupTemplate = errors.New("template is not a group template")
)

// GroupService creates shared group activities and manages their
// participant lists.
type GroupService struct {
	db        *gorm.DB
	residents *residents.ResidentService
	settings  *services.SettingsService
}

func NewGroupService(db *gorm.DB, residentSvc *residents.ResidentService, settings *services.SettingsService) *GroupService {
	return &GroupService{db: db, residents: residentSvc, settings: settings}
}

// CreateFromTemplate instantiates a group template onto a date. The seat
// limit comes from the request, falling back to the facility default.
func (s *GroupService) CreateFromTemplate(req *CreateGroupActivityRequest) (*dto.ActivityResponse, error) {
	var tmpl models.ActivityTemplate
	if err := s.db.First(&tmpl, "id = ?", req.TemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	if tmpl.Category != models.CategoryGroup {
		return nil, ErrNotGroupTemplate
	}

	var support models.TemplateRequiredSupport
	err := s.db.Where("template_id = ?", tmpl.ID).First(&support).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch template support: %w", err)
	}

	maxParticipants := req.MaxParticipants
	if maxParticipants == nil {
		def := s.settings.IntValue(models.SettingGroupMaxParticipants, 8)
		maxParticipants = &def
	}

	activity := models.Activity{
		ID:          models.NewActivityID(),
		TemplateID:  tmpl.ID,
		Title:       tmpl.Title,
		Description: tmpl.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Date:        req.Date,
		Location:    tmpl.Location,
		Category:    models.CategoryGroup,
		Type:        tmpl.Type,
		Icon:        tmpl.Icon,
		Color:       tmpl.Color,
		Difficulty:  tmpl.Difficulty,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ActivityRequiredSupport{ActivityID: activity.ID, Flags: support.Flags}).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupActivitySettings{ActivityID: activity.ID, MaxParticipants: maxParticipants}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group activity: %w", err)
	}

	resp := dto.NewActivityResponse(&activity, support.Flags)
	resp.MaxParticipants = maxParticipants
	resp.Participants = []dto.ParticipantResponse{}
	return resp, nil
}

// Join attempts to seat a resident in a group activity. The preconditions
// run in order: duplicate membership, capacity, time conflict with the
// resident's own day, extended eligibility. A refused precondition is a
// JoinOutcome, not an error; errors are reserved for missing records and
// storage failures.
func (s *GroupService) Join(activityID string, residentID uuid.UUID) (*JoinOutcome, error) {
	profile, err := s.residents.SupportProfileOf(residentID)
	if err != nil {
		return nil, err
	}

	var resident models.Resident
	if err := s.db.First(&resident, "id = ?", residentID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch resident: %w", err)
	}

	outcome := &JoinOutcome{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		activity, settings, err := lockGroup(tx, activityID)
		if err != nil {
			return err
		}

		var joined int64
		err = tx.Model(&models.GroupActivityParticipant{}).
			Where("activity_id = ? AND resident_id = ?", activityID, residentID).
			Count(&joined).Error
		if err != nil {
			return err
		}
		if joined > 0 {
			outcome.Reason = ReasonAlreadyJoined
			return nil
		}

		if settings != nil && settings.MaxParticipants != nil {
			var count int64
			err = tx.Model(&models.GroupActivityParticipant{}).
				Where("activity_id = ?", activityID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count >= int64(*settings.MaxParticipants) {
				outcome.Reason = ReasonFull
				return nil
			}
		}

		conflict, err := hasTimeConflict(tx, activity, residentID)
		if err != nil {
			return err
		}
		if conflict {
			outcome.Reason = ReasonTimeConflict
			return nil
		}

		eligible, err := isEligible(tx, activity, profile)
		if err != nil {
			return err
		}
		if !eligible {
			outcome.Reason = ReasonNotEligible
			return nil
		}

		participant := models.GroupActivityParticipant{
			ActivityID: activityID,
			ResidentID: residentID,
			Name:       resident.Name,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return err
		}
		outcome.Joined = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) || errors.Is(err, ErrNotGroupActivity) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join group activity: %w", err)
	}
	return outcome, nil
}

// Leave removes a resident's seat. Leaving an activity the resident never
// joined, or one that is not a group activity, is a no-op.
func (s *GroupService) Leave(activityID string, residentID uuid.UUID) error {
	if _, err := s.residents.SupportProfileOf(residentID); err != nil {
		return err
	}

	var activity models.Activity
	if err := s.db.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to fetch activity: %w", err)
	}
	if activity.Category != models.CategoryGroup {
		return nil
	}

	err := s.db.
		Where("activity_id = ? AND resident_id = ?", activityID, residentID).
		Delete(&models.GroupActivityParticipant{}).Error
	if err != nil {
		return fmt.Errorf("failed to leave group activity: %w", err)
	}
	return nil
}

// lockGroup loads the activity and pins its settings row for the rest of
// the transaction so concurrent joins serialize on the seat count. SQLite
// has no row locks but serializes writers anyway, so the lock clause is
// only applied on postgres.
func lockGroup(tx *gorm.DB, activityID string) (*models.Activity, *models.GroupActivitySettings, error) {
	var activity models.Activity
	if err := tx.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrActivityNotFound
		}
		return nil, nil, err
	}
	if activity.Category != models.CategoryGroup {
		return nil, nil, ErrNotGroupActivity
	}

	q := tx.Where("activity_id = ?", activityID)
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var settings models.GroupActivitySettings
	if err := q.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &activity, nil, nil
		}
		return nil, nil, err
	}
	return &activity, &settings, nil
}

// hasTimeConflict checks the candidate against the resident's same-day
// commitments: their own activities plus group activities they joined.
func hasTimeConflict(tx *gorm.DB, activity *models.Activity, residentID uuid.UUID) (bool, error) {
	var commitments []models.Activity
	err := tx.
		Where("date = ? AND (user_id = ? OR id IN (?))",
			activity.Date, residentID,
			tx.Model(&models.GroupActivityParticipant{}).
				Select("activity_id").
				Where("resident_id = ?", residentID),
		).
		Find(&commitments).Error
	if err != nil {
		return false, err
	}
	for i := range commitments {
		if timeslot.Overlaps(activity.StartTime, activity.EndTime, commitments[i].StartTime, commitments[i].EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func isEligible(tx *gorm.DB, activity *models.Activity, profile models.SupportFlags) (bool, error) {
	var support models.ActivityRequiredSupport
	err := tx.Where("activity_id = ?", activity.ID).First(&support).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var meta *models.DisabilityMeta
	if activity.TemplateID != uuid.Nil {
		var tmpl models.ActivityTemplate
		if err := tx.First(&tmpl, "id = ?", activity.TemplateID).Error; err == nil {
			meta = tmpl.Meta()
		}
	}
	return eligibility.EligibleWithMeta(profile, support.Flags, meta), nil
}
