package serviceRoutes

import (
	"github.com/gofiber/fiber/v2"

	healthControllers "waypoint/controllers/health"
	"waypoint/middleware"
)

func SetupServiceRoutes(app *fiber.App) {
	app.Get("/api/status", healthControllers.Status)

	serviceGroup := app.Group("/service", middleware.RequireServiceKey)

	serviceGroup.Post("/certificates/issue", healthControllers.IssueCertificate)
}
