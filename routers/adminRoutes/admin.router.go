package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	adminControllers "waypoint/controllers/admin"
	healthControllers "waypoint/controllers/health"
	"waypoint/lms"
	"waypoint/middleware"
	adminValidators "waypoint/validators/admin"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(lms.RoleAdmin))

	adminGroup.Post("/courses/template", adminValidators.CreateCourseTemplate(), adminControllers.CreateCourseTemplate)
	adminGroup.Post("/roles/assign", adminValidators.AssignRole(), adminControllers.AssignRole)
	adminGroup.Get("/audit", adminControllers.ListAuditEvents)
	adminGroup.Get("/export/:type", healthControllers.ExportCSV)

	// Grade edits are open to instructors as well.
	staffGroup := app.Group("/admin/enrollments",
		middleware.JWTMiddleware, middleware.RequireRoles(lms.RoleAdmin, lms.RoleInstructor))

	staffGroup.Patch("/:id/grade", adminValidators.UpdateGrade(), adminControllers.UpdateEnrollmentGrade)
}
