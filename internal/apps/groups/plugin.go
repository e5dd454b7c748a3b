package groups

import (
	"github.com/dagcentrum/backend/internal/apps/residents"
	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/dagcentrum/backend/internal/models"
	"github.com/dagcentrum/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GroupsPlugin struct{}

func New() *GroupsPlugin {
	return &GroupsPlugin{}
}

func (p *GroupsPlugin) ID() string { return "groups" }

func (p *GroupsPlugin) Models() []interface{} {
	return []interface{}{
		&models.GroupActivitySettings{},
		&models.GroupActivityParticipant{},
	}
}

func (p *GroupsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewGroupService(db, residents.NewResidentService(db), services.NewSettingsService(db))
	handler := NewGroupHandler(svc)

	// Join and leave are resident self-service from the kiosk; only
	// creating a group activity needs a staff token.
	router.Post("/groups/:id/join", handler.Join)
	router.Post("/groups/:id/leave", handler.Leave)

	staff := middleware.JWTProtected(cfg)
	router.Post("/groups", staff, handler.Create)
}
