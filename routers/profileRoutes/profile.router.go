package profileRoutes

import (
	"github.com/gofiber/fiber/v2"

	profileControllers "waypoint/controllers/profile"
	"waypoint/middleware"
	profileValidators "waypoint/validators/profile"
)

func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile", middleware.JWTMiddleware)

	profileGroup.Get("", profileControllers.GetProfile)
	profileGroup.Put("", profileValidators.SaveProfile(), profileControllers.SaveProfile)
	profileGroup.Patch("/account", profileValidators.UpdateAccount(), profileControllers.UpdateAccount)
}
