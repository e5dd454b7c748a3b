package apps

import (
	"github.com/dagcentrum/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every feature area must implement.
type Plugin interface {
	// ID returns the unique feature identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts feature routes on the given Fiber group.
	// The group is already prefixed with /api; staff-only routes apply
	// their own JWT middleware.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
