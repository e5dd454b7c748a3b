package schedule

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/dto"
	"github.com/dagcentrum/backend/internal/eligibility"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/dagcentrum/backend/internal/timeslot"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

// ScheduleService generates and serves per-resident day schedules.
type ScheduleService struct {
	db        *gorm.DB
	residents *residents.ResidentService
	settings  *services.SettingsService

	// shuffle permutes the eligible flexible templates; injectable so tests
	// can pin the selection.
	shuffle func(n int, swap func(i, j int))
}

func NewScheduleService(db *gorm.DB, residentSvc *residents.ResidentService, settings *services.SettingsService) *ScheduleService {
	return &ScheduleService{
		db:        db,
		residents: residentSvc,
		settings:  settings,
		shuffle:   rand.Shuffle,
	}
}

// WithShuffle overrides the permutation source. Tests use a seeded
// rand.Rand; production keeps the default.
func (s *ScheduleService) WithShuffle(shuffle func(n int, swap func(i, j int))) *ScheduleService {
	s.shuffle = shuffle
	return s
}

type templateWithSupport struct {
	tmpl  models.ActivityTemplate
	flags models.SupportFlags
}

// Generate builds the resident's schedule for one date. Any existing
// activities for that resident+date are cleared first; the whole run is one
// transaction so a failure leaves the previous schedule intact.
//
// Fixed templates are instantiated in catalog order at their canonical
// slots. Flexible templates are filtered through the base eligibility rule,
// shuffled fairly, capped, and assigned to the flexible slots in selection
// order. Regenerating re-randomizes the flexible picks; the composite ids
// stay stable.
func (s *ScheduleService) Generate(residentID uuid.UUID, date string) ([]dto.ActivityResponse, error) {
	profile, err := s.residents.SupportProfileOf(residentID)
	if err != nil {
		return nil, err
	}

	flexCap := s.settings.IntValue(models.SettingFlexibleCap, 3)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearDay(tx, residentID, date); err != nil {
			return err
		}

		fixed, err := templatesByCategory(tx, models.CategoryFixed)
		if err != nil {
			return err
		}
		for _, t := range fixed {
			var start, end *string
			if slot, ok := timeslot.FixedSlotForTitle(t.tmpl.Title); ok {
				start, end = &slot.Start, &slot.End
			}
			if err := instantiate(tx, &t.tmpl, t.flags, residentID, date, start, end); err != nil {
				return err
			}
		}

		flexible, err := templatesByCategory(tx, models.CategoryFlexible)
		if err != nil {
			return err
		}
		eligible := flexible[:0]
		for _, t := range flexible {
			if eligibility.Eligible(profile, t.flags) {
				eligible = append(eligible, t)
			}
		}

		s.shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})
		if len(eligible) > flexCap {
			eligible = eligible[:flexCap]
		}

		for i, t := range eligible {
			var start, end *string
			if i < len(timeslot.FlexibleSlots) {
				slot := timeslot.FlexibleSlots[i]
				start, end = &slot.Start, &slot.End
			}
			if err := instantiate(tx, &t.tmpl, t.flags, residentID, date, start, end); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	return s.ListDay(residentID, date)
}

// ListDay returns the resident's own activities plus that date's group
// activities, ordered by start time.
func (s *ScheduleService) ListDay(residentID uuid.UUID, date string) ([]dto.ActivityResponse, error) {
	if _, err := s.residents.SupportProfileOf(residentID); err != nil {
		return nil, err
	}

	var activities []models.Activity
	err := s.db.
		Where("(user_id = ? OR category = ?) AND date = ?", residentID, models.CategoryGroup, date).
		Order("start_time").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	out := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		resp, err := s.describe(&activities[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// SetCompleted toggles an activity's completion and records the completion
// in the history table when marked done.
func (s *ScheduleService) SetCompleted(activityID string, completed bool) error {
	var activity models.Activity
	if err := s.db.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to fetch activity: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&activity).Update("completed", completed).Error; err != nil {
			return err
		}
		if completed && activity.UserID != nil {
			history := models.ActivityHistory{
				ActivityID:     activity.ID,
				ResidentID:     *activity.UserID,
				Date:           activity.Date,
				Completed:      true,
				CompletionTime: tx.NowFunc(),
			}
			return tx.Save(&history).Error
		}
		return nil
	})
}

// EligibleGroups lists the group activities on a date the resident could
// still join: not yet a participant, not full, no time conflict with the
// resident's own schedule, and eligible under the template's extended
// suitability rules.
func (s *ScheduleService) EligibleGroups(residentID uuid.UUID, date string) ([]dto.ActivityResponse, error) {
	profile, err := s.residents.SupportProfileOf(residentID)
	if err != nil {
		return nil, err
	}

	// The resident's same-day commitments: own activities plus group
	// activities they already joined.
	var commitments []models.Activity
	err = s.db.
		Where("date = ? AND (user_id = ? OR id IN (?))",
			date, residentID,
			s.db.Model(&models.GroupActivityParticipant{}).
				Select("activity_id").
				Where("resident_id = ?", residentID),
		).
		Find(&commitments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	var groups []models.Activity
	err = s.db.
		Where("category = ? AND date = ?", models.CategoryGroup, date).
		Order("start_time").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group activities: %w", err)
	}

	out := make([]dto.ActivityResponse, 0, len(groups))
	for i := range groups {
		g := &groups[i]

		joinable, err := s.joinable(g, residentID, profile, commitments)
		if err != nil {
			return nil, err
		}
		if !joinable {
			continue
		}

		resp, err := s.describe(g)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *ScheduleService) joinable(g *models.Activity, residentID uuid.UUID, profile models.SupportFlags, commitments []models.Activity) (bool, error) {
	var joined int64
	err := s.db.Model(&models.GroupActivityParticipant{}).
		Where("activity_id = ? AND resident_id = ?", g.ID, residentID).
		Count(&joined).Error
	if err != nil {
		return false, fmt.Errorf("failed to check participation: %w", err)
	}
	if joined > 0 {
		return false, nil
	}

	var settings models.GroupActivitySettings
	if err := s.db.Where("activity_id = ?", g.ID).First(&settings).Error; err == nil && settings.MaxParticipants != nil {
		var count int64
		err := s.db.Model(&models.GroupActivityParticipant{}).
			Where("activity_id = ?", g.ID).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("failed to count participants: %w", err)
		}
		if count >= int64(*settings.MaxParticipants) {
			return false, nil
		}
	}

	for i := range commitments {
		if commitments[i].ID == g.ID {
			continue
		}
		if timeslot.Overlaps(g.StartTime, g.EndTime, commitments[i].StartTime, commitments[i].EndTime) {
			return false, nil
		}
	}

	flags, err := activitySupport(s.db, g.ID)
	if err != nil {
		return false, err
	}
	var meta *models.DisabilityMeta
	if g.TemplateID != uuid.Nil {
		var tmpl models.ActivityTemplate
		if err := s.db.First(&tmpl, "id = ?", g.TemplateID).Error; err == nil {
			meta = tmpl.Meta()
		}
	}
	return eligibility.EligibleWithMeta(profile, flags, meta), nil
}

func (s *ScheduleService) describe(a *models.Activity) (*dto.ActivityResponse, error) {
	flags, err := activitySupport(s.db, a.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewActivityResponse(a, flags)

	if a.Category == models.CategoryGroup {
		var settings models.GroupActivitySettings
		if err := s.db.Where("activity_id = ?", a.ID).First(&settings).Error; err == nil {
			resp.MaxParticipants = settings.MaxParticipants
		}

		var participants []models.GroupActivityParticipant
		if err := s.db.Where("activity_id = ?", a.ID).Order("joined_at").Find(&participants).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch participants: %w", err)
		}
		resp.Participants = make([]dto.ParticipantResponse, 0, len(participants))
		for _, p := range participants {
			resp.Participants = append(resp.Participants, dto.ParticipantResponse{ID: p.ResidentID, Name: p.Name})
		}
	}
	return resp, nil
}

// clearDay removes the resident's activities for a date along with their
// support rows.
func clearDay(tx *gorm.DB, residentID uuid.UUID, date string) error {
	var ids []string
	if err := tx.Model(&models.Activity{}).
		Where("user_id = ? AND date = ?", residentID, date).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("activity_id IN ?", ids).Delete(&models.ActivityRequiredSupport{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Activity{}).Error
}

func templatesByCategory(tx *gorm.DB, category string) ([]templateWithSupport, error) {
	var tmpls []models.ActivityTemplate
	if err := tx.Where("category = ?", category).Order("created_at").Find(&tmpls).Error; err != nil {
		return nil, err
	}

	out := make([]templateWithSupport, 0, len(tmpls))
	for i := range tmpls {
		var support models.TemplateRequiredSupport
		err := tx.Where("template_id = ?", tmpls[i].ID).First(&support).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		out = append(out, templateWithSupport{tmpl: tmpls[i], flags: support.Flags})
	}
	return out, nil
}

// instantiate writes one activity and its required-support row; both rows or
// neither.
func instantiate(tx *gorm.DB, tmpl *models.ActivityTemplate, flags models.SupportFlags, residentID uuid.UUID, date string, start, end *string) error {
	rid := residentID
	activity := models.Activity{
		ID:          models.GeneratedActivityID(tmpl.ID, residentID, date),
		TemplateID:  tmpl.ID,
		UserID:      &rid,
		Title:       tmpl.Title,
		Description: tmpl.Description,
		StartTime:   start,
		EndTime:     end,
		Date:        date,
		Location:    tmpl.Location,
		Category:    tmpl.Category,
		Type:        tmpl.Type,
		Icon:        tmpl.Icon,
		Color:       tmpl.Color,
		Difficulty:  tmpl.Difficulty,
	}
	if err := tx.Create(&activity).Error; err != nil {
		return err
	}
	return tx.Create(&models.ActivityRequiredSupport{ActivityID: activity.ID, Flags: flags}).Error
}

func activitySupport(db *gorm.DB, activityID string) (models.SupportFlags, error) {
	var support models.ActivityRequiredSupport
	if err := db.Where("activity_id = ?", activityID).First(&support).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SupportFlags{}, nil
		}
		return models.SupportFlags{}, fmt.Errorf("failed to fetch activity support: %w", err)
	}
	return support.Flags, nil
}
