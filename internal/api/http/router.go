package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lippel/helpdesk-gateway/internal/api/http/handlers"
	"github.com/lippel/helpdesk-gateway/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Reference      *handlers.ReferenceHandler
	AuthMiddleware *authz.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/auth/cadastro", cfg.Auth.Cadastro)
	api.Post("/auth/login", cfg.Auth.Login)

	api.Get("/setores", cfg.Reference.Setores)
	api.Get("/status", cfg.Reference.Status)

	chamados := api.Group("/chamados", cfg.AuthMiddleware.Handle)
	chamados.Get("/", cfg.Tickets.List)
	chamados.Post("/", cfg.Tickets.Create)
	chamados.Patch("/:id", cfg.Tickets.UpdateStatus)
	// Fallback for clients that cannot issue PATCH.
	chamados.Post("/:id/status", cfg.Tickets.UpdateStatus)
}
