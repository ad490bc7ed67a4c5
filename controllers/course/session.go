package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// GetLiveSessions lists a course's upcoming live sessions in start order.
func GetLiveSessions(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var sessions []courseModels.LiveSession
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("starts_at asc").Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// MarkAttendance upserts a learner's attendance for a live session. The route
// is gated to staff; re-marking overwrites the previous status.
func MarkAttendance(c *fiber.Ctx) error {
	markerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil || sessionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	reqData := new(struct {
		UserID uint   `json:"user_id"`
		Status string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	status := strings.ToLower(strings.TrimSpace(reqData.Status))
	switch status {
	case courseModels.AttendancePresent, courseModels.AttendanceAbsent, courseModels.AttendanceExcused:
	default:
		return middleware.ValidationErrorResponse(c, map[string]string{"status": "Status must be present, absent, or excused!"})
	}
	if reqData.UserID == 0 {
		return middleware.ValidationErrorResponse(c, map[string]string{"user_id": "User id is required!"})
	}

	db := database.Database.Db

	var session courseModels.LiveSession
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	now := time.Now()
	record := courseModels.Attendance{
		SessionID: uint(sessionID),
		UserID:    reqData.UserID,
		Status:    status,
		MarkedBy:  &markerID,
		MarkedAt:  &now,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by", "marked_at"}),
	}).Create(&record).Error
	if err != nil {
		log.Printf("Unable to mark attendance for session %d user %d: %v", sessionID, reqData.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not mark attendance.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked.", record)
}
