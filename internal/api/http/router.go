package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/plot-service/internal/api/http/handlers"
	"github.com/spec-kit/plot-service/internal/auth"
	"github.com/spec-kit/plot-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Plots          *handlers.PlotsHandler
	Zones          *handlers.ZonesHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Token issuance is the only
// non-health route outside the bearer-token boundary.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/auth/revoke", cfg.Auth.RevokeToken)

	plots := protected.Group("/plot")
	plots.Get("/available", auth.RequirePermission(domain.CategoryPlots, domain.AccessRead), cfg.Plots.Available)
	plots.Get("/details", auth.RequirePermission(domain.CategoryPlots, domain.AccessRead), cfg.Plots.Details)
	plots.Put("/update-plot", auth.RequirePermission(domain.CategoryPlots, domain.AccessWrite), cfg.Plots.Update)
	plots.Patch("/release-plot", auth.RequirePermission(domain.CategoryPlots, domain.AccessWrite), cfg.Plots.Release)

	protected.Post("/country/zone", auth.RequirePermission(domain.CategoryZones, domain.AccessWrite), cfg.Zones.Create)
	protected.Get("/country/zones", auth.RequirePermission(domain.CategoryZones, domain.AccessRead), cfg.Zones.List)

	users := protected.Group("/user")
	users.Post("/", auth.RequirePermission(domain.CategoryUsers, domain.AccessWrite), cfg.Users.Create)
	users.Get("/", auth.RequirePermission(domain.CategoryUsers, domain.AccessRead), cfg.Users.List)
	users.Get("/:email", auth.RequirePermission(domain.CategoryUsers, domain.AccessRead), cfg.Users.Get)
	users.Put("/:email", auth.RequirePermission(domain.CategoryUsers, domain.AccessWrite), cfg.Users.Update)
	users.Delete("/:email", auth.RequirePermission(domain.CategoryUsers, domain.AccessWrite), cfg.Users.Delete)
}
