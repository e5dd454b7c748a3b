package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dagcentrum/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSettingNotFound = errors.New("setting not found")

// SettingsService stores facility-wide tunables (group capacity default,
// flexible activity cap). Values are strings with a declared type, like the
// env config but admin-editable at runtime.
type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SeedDefaults inserts missing default settings; existing keys are left
// untouched.
func (s *SettingsService) SeedDefaults() error {
	defaults := []models.FacilitySetting{
		{Key: models.SettingGroupMaxParticipants, Value: "8", Type: "int"},
		{Key: models.SettingFlexibleCap, Value: "3", Type: "int"},
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaults).Error
}

func (s *SettingsService) All() ([]models.FacilitySetting, error) {
	var settings []models.FacilitySetting
	err := s.db.Order("key").Find(&settings).Error
	return settings, err
}

func (s *SettingsService) Set(key, value, typ string) (*models.FacilitySetting, error) {
	if typ == "int" {
		if _, err := strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("value %q is not an integer", value)
		}
	}

	setting := models.FacilitySetting{Key: key, Value: value, Type: typ}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *SettingsService) Delete(key string) error {
	result := s.db.Where("key = ?", key).Delete(&models.FacilitySetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}
	return nil
}

// IntValue returns an int setting, falling back when the row is missing or
// malformed.
func (s *SettingsService) IntValue(key string, fallback int) int {
	var setting models.FacilitySetting
	if err := s.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil {
		return fallback
	}
	return n
}
