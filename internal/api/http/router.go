package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/profile-registry/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Profiles  *handlers.ProfilesHandler
	Countries *handlers.CountriesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/countries", cfg.Countries.List)

	profiles := app.Group("/profiles")
	profiles.Post("", cfg.Profiles.Create)
	profiles.Get("", cfg.Profiles.List)
	profiles.Get("/:id", cfg.Profiles.Get)
	profiles.Patch("/:id", cfg.Profiles.Update)
	profiles.Delete("/:id", cfg.Profiles.Delete)
}
