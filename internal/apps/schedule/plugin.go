package schedule

import (
	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SchedulePlugin struct{}

func New() *SchedulePlugin {
	return &SchedulePlugin{}
}

func (p *SchedulePlugin) ID() string { return "schedule" }

func (p *SchedulePlugin) Models() []interface{} {
	return []interface{}{
		&models.Activity{},
		&models.ActivityRequiredSupport{},
		&models.ActivityHistory{},
	}
}

func (p *SchedulePlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewScheduleService(db, residents.NewResidentService(db), services.NewSettingsService(db))
	handler := NewScheduleHandler(svc)

	// Reads stay open for the resident-facing kiosk; mutations need a
	// staff token.
	router.Get("/schedule/:residentId/:date/groups", handler.EligibleGroups)
	router.Get("/schedule/:residentId/:date", handler.Day)

	staff := middleware.JWTProtected(cfg)
	router.Post("/schedule/:residentId/generate", staff, handler.Generate)
	router.Patch("/activities/:id/complete", staff, handler.Complete)
}
