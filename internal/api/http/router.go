package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/user-service/internal/api/http/handlers"
	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", handlers.Root)
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	app.Get("/metrics", handlers.MetricsHandler(cfg.Metrics))

	app.Post("/token", cfg.Auth.Token)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/:id<int>", cfg.Users.Get)

	// Group-level handlers would also run for the public routes above, so guards are attached per route.
	authenticated := func(h ...fiber.Handler) []fiber.Handler {
		return append([]fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAuthenticated()}, h...)
	}
	users.Get("/", authenticated(cfg.Users.List)...)
	users.Put("/:id<int>", authenticated(auth.RequireOwner("id"), cfg.Users.Update)...)
	users.Delete("/:id<int>", authenticated(auth.RequireOwner("id"), cfg.Users.Delete)...)
}
