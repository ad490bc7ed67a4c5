package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/lms"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// GetCapstone returns the caller's capstone for a course, with its schedule
// history. A capstone that does not exist yet reads as not_started.
func GetCapstone(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var capstone courseModels.Capstone
	err = db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&capstone).Error
	if err == gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Capstone not started.", fiber.Map{
			"status": courseModels.CapstoneNotStarted,
		})
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch capstone!", nil)
	}

	var schedules []courseModels.CapstoneSchedule
	db.Where("capstone_id = ?", capstone.ID).Order("scheduled_at asc").Find(&schedules)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capstone fetched successfully!", fiber.Map{
		"capstone":  capstone,
		"schedules": schedules,
	})
}

// RequestCapstoneSchedule lets an enrolled learner propose a conversation
// slot. The capstone row is created on first request; the slot starts in
// proposed state until faculty decide on it.
func RequestCapstoneSchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData := new(struct {
		ScheduledAt time.Time `json:"scheduled_at"`
		Notes       string    `json:"notes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.ScheduledAt.IsZero() {
		return middleware.ValidationErrorResponse(c, map[string]string{"scheduled_at": "A proposed time is required!"})
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status <> ?",
		userID, courseID, courseModels.EnrollmentWithdrawn).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course first.", nil)
	}

	var capstone courseModels.Capstone
	err = db.Where("enrollment_id = ?", enrollment.ID).First(&capstone).Error
	if err == gorm.ErrRecordNotFound {
		capstone = courseModels.Capstone{
			EnrollmentID: enrollment.ID,
			CourseID:     uint(courseID),
			StudentID:    userID,
			Status:       courseModels.CapstoneNotStarted,
		}
		if err := db.Create(&capstone).Error; err != nil {
			log.Printf("Unable to create capstone for enrollment %d: %v", enrollment.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not start a capstone.", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch capstone!", nil)
	}

	schedule := courseModels.CapstoneSchedule{
		CapstoneID:  capstone.ID,
		ScheduledAt: reqData.ScheduledAt,
		RequestedBy: &userID,
		Status:      courseModels.ScheduleProposed,
		Notes:       strings.TrimSpace(reqData.Notes),
	}
	if err := db.Create(&schedule).Error; err != nil {
		log.Printf("Unable to create capstone schedule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not request a slot.", nil)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Capstone slot requested.", schedule)
}

// DecideCapstoneSchedule lets faculty accept, reschedule, or cancel a
// proposed slot. Accepting marks the capstone scheduled.
func DecideCapstoneSchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	scheduleID, err := c.ParamsInt("id")
	if err != nil || scheduleID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid schedule id!", nil)
	}

	reqData := new(struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	status := strings.ToLower(strings.TrimSpace(reqData.Status))
	switch status {
	case courseModels.ScheduleAccepted, courseModels.ScheduleRescheduled, courseModels.ScheduleCancelled:
	default:
		return middleware.ValidationErrorResponse(c, map[string]string{"status": "Decision must be accepted, rescheduled, or cancelled!"})
	}

	db := database.Database.Db

	session := lms.NewResolver(db).Resolve(userID)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}
	if !session.IsAdminOrInstructor() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can decide capstone slots.", nil)
	}

	var schedule courseModels.CapstoneSchedule
	if err := db.Where("id = ?", scheduleID).First(&schedule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Schedule not found!", nil)
	}

	updates := map[string]interface{}{
		"status":     status,
		"faculty_id": userID,
	}
	if notes := strings.TrimSpace(reqData.Notes); notes != "" {
		updates["notes"] = notes
	}
	if err := db.Model(&schedule).Updates(updates).Error; err != nil {
		log.Printf("Unable to decide capstone schedule %d: %v", scheduleID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not update the slot.", nil)
	}

	if status == courseModels.ScheduleAccepted {
		db.Model(&courseModels.Capstone{}).Where("id = ?", schedule.CapstoneID).
			Update("status", courseModels.CapstoneScheduled)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capstone slot updated.", schedule)
}

// RecordCapstoneOutcome lets faculty record the result of a completed
// conversation: passed or needs_remediation. Passing also completes the
// enrollment.
func RecordCapstoneOutcome(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	capstoneID, err := c.ParamsInt("id")
	if err != nil || capstoneID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid capstone id!", nil)
	}

	reqData := new(struct {
		Status       string `json:"status"`
		OutcomeNotes string `json:"outcome_notes"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	status := strings.ToLower(strings.TrimSpace(reqData.Status))
	if status != courseModels.CapstonePassed && status != courseModels.CapstoneNeedsRemediation {
		return middleware.ValidationErrorResponse(c, map[string]string{"status": "Outcome must be passed or needs_remediation!"})
	}

	db := database.Database.Db

	session := lms.NewResolver(db).Resolve(userID)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}
	if !session.IsAdminOrInstructor() {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only instructors can record capstone outcomes.", nil)
	}

	var capstone courseModels.Capstone
	if err := db.Where("id = ?", capstoneID).First(&capstone).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Capstone not found!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        status,
		"outcome_notes": strings.TrimSpace(reqData.OutcomeNotes),
		"reviewed_by":   userID,
		"completed_at":  &now,
	}
	if err := db.Model(&capstone).Updates(updates).Error; err != nil {
		log.Printf("Unable to record capstone outcome %d: %v", capstoneID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not record the outcome.", nil)
	}

	if status == courseModels.CapstonePassed {
		db.Model(&courseModels.Enrollment{}).Where("id = ?", capstone.EnrollmentID).
			Update("status", courseModels.EnrollmentCompleted)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capstone outcome recorded.", capstone)
}
