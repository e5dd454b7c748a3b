package residents

import (
	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResidentsPlugin struct{}

func New() *ResidentsPlugin {
	return &ResidentsPlugin{}
}

func (p *ResidentsPlugin) ID() string { return "residents" }

func (p *ResidentsPlugin) Models() []interface{} {
	return []interface{}{
		&models.Resident{},
		&models.SupportProfile{},
		&models.ResidentPreferences{},
	}
}

func (p *ResidentsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewResidentService(db)
	handler := NewResidentHandler(svc)

	// Resident listing stays open for the shared kiosk; mutations are staff-only.
	router.Get("/residents", handler.List)
	router.Get("/residents/:id", handler.Get)

	staff := middleware.JWTProtected(cfg)
	router.Post("/residents", staff, handler.Create)
	router.Put("/residents/:id", staff, handler.Update)
	router.Put("/residents/:id/support", staff, handler.UpdateSupport)
	router.Put("/residents/:id/preferences", staff, handler.UpdatePreferences)
	router.Delete("/residents/:id", staff, handler.Delete)
}
