package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
	"waypoint/utils"
)

// RecordCheckIn upserts the caller's weekly reflection for a course. The row
// is keyed by (user, course, week start); the week start is always the
// Monday of the current ISO week, so one check-in exists per week and a
// resubmission replaces the payload.
func RecordCheckIn(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to submit check-ins.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status <> ?",
		userID, courseID, courseModels.EnrollmentWithdrawn).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course first.", nil)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid check-in payload!", nil)
	}

	checkIn := courseModels.CheckIn{
		UserID:        userID,
		CourseID:      uint(courseID),
		WeekStartDate: utils.WeekStartDate(time.Now()),
		Payload:       datatypes.JSON(raw),
		SubmittedAt:   time.Now(),
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "week_start_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "submitted_at"}),
	}).Create(&checkIn).Error
	if err != nil {
		log.Printf("Unable to submit check-in for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Check-in failed.", nil)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Check-in recorded.", checkIn)
}

// GetCheckIns lists the caller's check-ins for a course, newest week first.
func GetCheckIns(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var checkIns []courseModels.CheckIn
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("week_start_date desc").Find(&checkIns).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch check-ins!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Check-ins fetched successfully!", fiber.Map{
		"check_ins": checkIns,
		"total":     len(checkIns),
	})
}
