package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers) {
	app.Get("/healthz", handlers.Health)
	app.Post("/api/roast", handlers.Roast)
}
