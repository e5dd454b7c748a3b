package routes

import (
	"time"

	"github.com/dagcentrum/backend/internal/apps"
	"github.com/dagcentrum/backend/internal/config"
	"github.com/dagcentrum/backend/internal/handlers"
	"github.com/dagcentrum/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	settingsHandler *handlers.SettingsHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Facility settings (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/staff", authHandler.CreateStaff)
	admin.Get("/settings", settingsHandler.List)
	admin.Put("/settings/:key", settingsHandler.Set)
	admin.Delete("/settings/:key", settingsHandler.Delete)

	// App plugins mount under /api; each guards its own mutations.
	for _, plugin := range plugins {
		plugin.RegisterRoutes(api, db, cfg)
	}
}
