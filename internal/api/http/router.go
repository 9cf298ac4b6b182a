package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zentharo/request-service/internal/api/http/handlers"
	"github.com/zentharo/request-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Requests       *handlers.RequestsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/requests", cfg.Requests.Create)
	api.Get("/requests", cfg.Requests.List)
	api.Get("/requests/:id", cfg.Requests.Get)
	api.Put("/requests/:id", cfg.Requests.UpdateStatus)
	api.Delete("/requests/:id", cfg.Requests.Delete)

	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)

	user := api.Group("/user", cfg.AuthMiddleware.Handle)
	user.Put("/name", cfg.Users.UpdateName)
	user.Put("/password", cfg.Users.ChangePassword)
}
