package catalog

import (
	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CatalogPlugin struct{}

func New() *CatalogPlugin {
	return &CatalogPlugin{}
}

func (p *CatalogPlugin) ID() string { return "catalog" }

func (p *CatalogPlugin) Models() []interface{} {
	return []interface{}{
		&models.ActivityTemplate{},
		&models.TemplateRequiredSupport{},
	}
}

func (p *CatalogPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewTemplateService(db)
	handler := NewTemplateHandler(svc)

	router.Get("/templates", handler.List)
	router.Get("/templates/:id", handler.Get)

	staff := middleware.JWTProtected(cfg)
	router.Post("/templates", staff, handler.Create)
	router.Put("/templates/:id", staff, handler.Update)
	router.Delete("/templates/:id", staff, handler.Delete)
}
