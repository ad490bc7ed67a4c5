package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "waypoint/controllers/course"
	"waypoint/lms"
	"waypoint/middleware"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog pages are public; a valid token enriches them with enrollment
	// state instead of gating them.
	courseGroup.Get("", middleware.OptionalJWT, courseControllers.GetAllCourses)
	app.Get("/api/search", courseControllers.SearchCatalog)
	courseGroup.Get("/:slug", middleware.OptionalJWT, courseControllers.GetCourseDetails)
	courseGroup.Get("/:slug/lessons/:lesson", middleware.OptionalJWT, courseControllers.GetLessonBySlug)

	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseControllers.EnrollInCourse)
	courseGroup.Post("/:id/withdraw", middleware.JWTMiddleware, courseControllers.WithdrawFromCourse)

	courseGroup.Get("/:id/checkpoints", middleware.JWTMiddleware, courseControllers.GetCourseCheckpoints)
	courseGroup.Get("/:id/sessions", middleware.JWTMiddleware, courseControllers.GetLiveSessions)
	courseGroup.Get("/:id/capstone", middleware.JWTMiddleware, courseControllers.GetCapstone)
	courseGroup.Post("/:id/capstone/schedule", middleware.JWTMiddleware, courseControllers.RequestCapstoneSchedule)
	courseGroup.Post("/:id/checkins", middleware.JWTMiddleware, courseControllers.RecordCheckIn)
	courseGroup.Get("/:id/checkins", middleware.JWTMiddleware, courseControllers.GetCheckIns)

	learnGroup := app.Group("/learn", middleware.JWTMiddleware)

	learnGroup.Get("/dashboard", courseControllers.GetDashboard)
	learnGroup.Get("/enrollments", courseControllers.GetUserEnrollmentsList)
	learnGroup.Post("/lessons/:id/complete", courseControllers.MarkLessonComplete)
	learnGroup.Patch("/checkpoints/:id/progress", courseControllers.UpdateCheckpointProgress)
	learnGroup.Post("/quizzes/:id/attempts", courseControllers.SubmitQuizAttempt)
	learnGroup.Get("/quizzes/:id/attempts", courseControllers.GetQuizAttempts)
	learnGroup.Get("/certificates", courseControllers.GetUserCertificates)

	staffGroup := app.Group("/staff", middleware.JWTMiddleware,
		middleware.RequireRoles(lms.RoleAdmin, lms.RoleInstructor))

	staffGroup.Get("/roster", courseControllers.GetRoster)
	staffGroup.Patch("/capstone/schedules/:id", courseControllers.DecideCapstoneSchedule)
	staffGroup.Post("/capstones/:id/outcome", courseControllers.RecordCapstoneOutcome)
	staffGroup.Post("/sessions/:id/attendance", courseControllers.MarkAttendance)

	// Public certificate verification, no auth.
	app.Get("/certificates/verify/:code", courseControllers.VerifyCertificate)
}
