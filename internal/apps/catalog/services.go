package catalog

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dagcentrum/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("activity template not found")

// TemplateService is the staff-facing catalog of activity templates.
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// Create writes the template and its required-support row in one
// transaction.
func (s *TemplateService) Create(req *CreateTemplateRequest) (*TemplateResponse, error) {
	tmpl := models.ActivityTemplate{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Icon:        req.Icon,
		Color:       req.Color,
		Location:    req.Location,
		Difficulty:  req.Difficulty,
	}
	if req.DisabilityMeta != nil {
		blob, err := json.Marshal(req.DisabilityMeta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode disability metadata: %w", err)
		}
		tmpl.DisabilityMeta = datatypes.JSON(blob)
	}

	support := models.TemplateRequiredSupport{TemplateID: tmpl.ID}
	if req.Support != nil {
		support.Flags = *req.Support
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tmpl).Error; err != nil {
			return err
		}
		return tx.Create(&support).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return toResponse(&tmpl, support.Flags), nil
}

func (s *TemplateService) Get(id uuid.UUID) (*TemplateResponse, error) {
	tmpl, flags, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toResponse(tmpl, flags), nil
}

// ListAll returns the full catalog ordered by type then title.
func (s *TemplateService) ListAll() ([]TemplateResponse, error) {
	return s.list(s.db.Order("type, title"))
}

// ListByCategory returns the catalog partition for one category.
func (s *TemplateService) ListByCategory(category string) ([]TemplateResponse, error) {
	return s.list(s.db.Where("category = ?", category).Order("type, title"))
}

func (s *TemplateService) list(q *gorm.DB) ([]TemplateResponse, error) {
	var tmpls []models.ActivityTemplate
	if err := q.Find(&tmpls).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	out := make([]TemplateResponse, 0, len(tmpls))
	for i := range tmpls {
		flags, err := s.supportOf(tmpls[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *toResponse(&tmpls[i], flags))
	}
	return out, nil
}

// Update edits the template and propagates display/support fields to every
// activity instantiated from it, keyed by template_id, in one transaction.
func (s *TemplateService) Update(id uuid.UUID, req *UpdateTemplateRequest) (*TemplateResponse, error) {
	tmpl, _, err := s.load(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Difficulty != nil {
		updates["difficulty"] = *req.Difficulty
	}
	if req.DisabilityMeta != nil {
		blob, err := json.Marshal(req.DisabilityMeta)
		if err != nil {
			return nil, fmt.Errorf("failed to encode disability metadata: %w", err)
		}
		updates["disability_meta"] = datatypes.JSON(blob)
	}

	// Display fields propagate to derived activities; category/type do not
	// change already-instantiated activities' scheduling slots.
	propagated := map[string]interface{}{}
	for _, col := range []string{"title", "description", "icon", "color", "location", "difficulty"} {
		if v, ok := updates[col]; ok {
			propagated[col] = v
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.ActivityTemplate{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Support != nil {
			flags := *req.Support
			res := tx.Model(&models.TemplateRequiredSupport{}).
				Where("template_id = ?", id).
				Updates(supportColumns(flags))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&models.TemplateRequiredSupport{TemplateID: id, Flags: flags}).Error; err != nil {
					return err
				}
			}

			var activityIDs []string
			if err := tx.Model(&models.Activity{}).Where("template_id = ?", id).Pluck("id", &activityIDs).Error; err != nil {
				return err
			}
			if len(activityIDs) > 0 {
				if err := tx.Model(&models.ActivityRequiredSupport{}).
					Where("activity_id IN ?", activityIDs).
					Updates(supportColumns(flags)).Error; err != nil {
					return err
				}
			}
		}

		if len(propagated) > 0 {
			if err := tx.Model(&models.Activity{}).Where("template_id = ?", id).Updates(propagated).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	tmpl, flags, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toResponse(tmpl, flags), nil
}

// Delete removes the template and cascades to every activity derived from
// it, including support rows, group settings and participant lists.
func (s *TemplateService) Delete(id uuid.UUID) error {
	if _, _, err := s.load(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var activityIDs []string
		if err := tx.Model(&models.Activity{}).Where("template_id = ?", id).Pluck("id", &activityIDs).Error; err != nil {
			return err
		}
		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.GroupActivityParticipant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.GroupActivitySettings{}).Error; err != nil {
				return err
			}
			if err := tx.Where("activity_id IN ?", activityIDs).Delete(&models.ActivityRequiredSupport{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", activityIDs).Delete(&models.Activity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("template_id = ?", id).Delete(&models.TemplateRequiredSupport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ActivityTemplate{}, "id = ?", id).Error
	})
}

func (s *TemplateService) load(id uuid.UUID) (*models.ActivityTemplate, models.SupportFlags, error) {
	var tmpl models.ActivityTemplate
	if err := s.db.First(&tmpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.SupportFlags{}, ErrTemplateNotFound
		}
		return nil, models.SupportFlags{}, fmt.Errorf("failed to fetch template: %w", err)
	}
	flags, err := s.supportOf(id)
	if err != nil {
		return nil, models.SupportFlags{}, err
	}
	return &tmpl, flags, nil
}

func (s *TemplateService) supportOf(id uuid.UUID) (models.SupportFlags, error) {
	var support models.TemplateRequiredSupport
	if err := s.db.Where("template_id = ?", id).First(&support).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SupportFlags{}, nil
		}
		return models.SupportFlags{}, fmt.Errorf("failed to fetch template support: %w", err)
	}
	return support.Flags, nil
}

func supportColumns(flags models.SupportFlags) map[string]interface{} {
	return map[string]interface{}{
		"language":  flags.Language,
		"planning":  flags.Planning,
		"sensory":   flags.Sensory,
		"motor":     flags.Motor,
		"social":    flags.Social,
		"cognitive": flags.Cognitive,
	}
}

func toResponse(t *models.ActivityTemplate, flags models.SupportFlags) *TemplateResponse {
	return &TemplateResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Type:           t.Type,
		Icon:           t.Icon,
		Color:          t.Color,
		Location:       t.Location,
		Difficulty:     t.Difficulty,
		Support:        flags,
		DisabilityMeta: t.Meta(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
