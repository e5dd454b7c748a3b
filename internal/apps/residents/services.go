package residents

import (
	"errors"
	"fmt"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrResidentNotFound = errors.New("resident not found")

type ResidentService struct {
	db *gorm.DB
}

func NewResidentService(db *gorm.DB) *ResidentService {
	return &ResidentService{db: db}
}

// Create writes the resident, support profile and preferences in one
// transaction; a resident without a profile row must never exist.
func (s *ResidentService) Create(req *CreateResidentRequest) (*ResidentResponse, error) {
	resident := models.Resident{
		ID:     uuid.New(),
		Name:   req.Name,
		Avatar: req.Avatar,
	}

	profile := models.SupportProfile{ResidentID: resident.ID}
	if req.Support != nil {
		profile.Flags = *req.Support
	}

	prefs := models.ResidentPreferences{ResidentID: resident.ID}
	if req.Preferences != nil {
		applyPreferences(&prefs, req.Preferences)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&resident).Error; err != nil {
			return err
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&prefs).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}

	return toResponse(&resident, &profile, &prefs), nil
}

func (s *ResidentService) Get(id uuid.UUID) (*ResidentResponse, error) {
	var resident models.Resident
	if err := s.db.First(&resident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to fetch resident: %w", err)
	}

	profile, prefs, err := s.loadDetails(resident.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(&resident, profile, prefs), nil
}

func (s *ResidentService) List() ([]ResidentResponse, error) {
	var residents []models.Resident
	if err := s.db.Order("name").Find(&residents).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	out := make([]ResidentResponse, 0, len(residents))
	for i := range residents {
		profile, prefs, err := s.loadDetails(residents[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(&residents[i], profile, prefs))
	}
	return out, nil
}

func (s *ResidentService) Update(id uuid.UUID, req *UpdateResidentRequest) (*ResidentResponse, error) {
	var resident models.Resident
	if err := s.db.First(&resident, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, fmt.Errorf("failed to fetch resident: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := s.db.Model(&resident).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update resident: %w", err)
		}
	}

	profile, prefs, err := s.loadDetails(resident.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(&resident, profile, prefs), nil
}

// UpdateSupport replaces the six support flags wholesale; all flags are
// always present on the profile row.
func (s *ResidentService) UpdateSupport(id uuid.UUID, flags models.SupportFlags) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}
	return s.db.Model(&models.SupportProfile{}).
		Where("resident_id = ?", id).
		Updates(map[string]interface{}{
			"language":  flags.Language,
			"planning":  flags.Planning,
			"sensory":   flags.Sensory,
			"motor":     flags.Motor,
			"social":    flags.Social,
			"cognitive": flags.Cognitive,
		}).Error
}

func (s *ResidentService) UpdatePreferences(id uuid.UUID, payload *PreferencesPayload) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}
	return s.db.Model(&models.ResidentPreferences{}).
		Where("resident_id = ?", id).
		Updates(map[string]interface{}{
			"simplified_language":     payload.SimplifiedLanguage,
			"enhanced_visual_support": payload.EnhancedVisualSupport,
			"high_contrast":           payload.HighContrast,
			"larger_text":             payload.LargerText,
		}).Error
}

// Delete removes the resident and everything hanging off them: owned
// activities with their support rows, group seats, profile and preferences.
func (s *ResidentService) Delete(id uuid.UUID) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var activityIDs []string
		if err := tx.Model(&models.Activity{}).
			Where("user_id = ?", id).
			Pluck("id", &activityIDs).Error; err != nil {
			return err
		}
		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.ActivityRequiredSupport{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", activityIDs).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("resident_id = ?", id).Delete(&models.GroupActivityParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resident_id = ?", id).Delete(&models.ActivityHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resident_id = ?", id).Delete(&models.ResidentPreferences{}).Error; err != nil {
			return err
		}
		if err := tx.Where("resident_id = ?", id).Delete(&models.SupportProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Resident{}, "id = ?", id).Error
	})
}

// SupportProfileOf returns the resident's support flags for eligibility
// checks; a missing profile row reads as all-false.
func (s *ResidentService) SupportProfileOf(id uuid.UUID) (models.SupportFlags, error) {
	if err := s.ensureExists(id); err != nil {
		return models.SupportFlags{}, err
	}
	var profile models.SupportProfile
	if err := s.db.Where("resident_id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SupportFlags{}, nil
		}
		return models.SupportFlags{}, fmt.Errorf("failed to fetch support profile: %w", err)
	}
	return profile.Flags, nil
}

func (s *ResidentService) ensureExists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Resident{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check resident: %w", err)
	}
	if count == 0 {
		return ErrResidentNotFound
	}
	return nil
}

func (s *ResidentService) loadDetails(id uuid.UUID) (*models.SupportProfile, *models.ResidentPreferences, error) {
	var profile models.SupportProfile
	if err := s.db.Where("resident_id = ?", id).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to fetch support profile: %w", err)
	}
	var prefs models.ResidentPreferences
	if err := s.db.Where("resident_id = ?", id).First(&prefs).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	return &profile, &prefs, nil
}

func applyPreferences(prefs *models.ResidentPreferences, payload *PreferencesPayload) {
	prefs.SimplifiedLanguage = payload.SimplifiedLanguage
	prefs.EnhancedVisualSupport = payload.EnhancedVisualSupport
	prefs.HighContrast = payload.HighContrast
	prefs.LargerText = payload.LargerText
}

func toResponse(r *models.Resident, profile *models.SupportProfile, prefs *models.ResidentPreferences) *ResidentResponse {
	resp := &ResidentResponse{
		ID:     r.ID,
		Name:   r.Name,
		Avatar: r.Avatar,
	}
	if profile != nil {
		resp.Support = profile.Flags
	}
	if prefs != nil {
		resp.Preferences = PreferencesPayload{
			SimplifiedLanguage:    prefs.SimplifiedLanguage,
			EnhancedVisualSupport: prefs.EnhancedVisualSupport,
			HighContrast:          prefs.HighContrast,
			LargerText:            prefs.LargerText,
		}
	}
	return resp
}
