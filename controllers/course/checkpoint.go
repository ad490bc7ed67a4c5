package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// CheckpointWithProgress pairs a checkpoint with the caller's progress row.
type CheckpointWithProgress struct {
	courseModels.Checkpoint
	ProgressStatus string `json:"progress_status"`
	Notes          string `json:"notes,omitempty"`
}

// GetCourseCheckpoints lists a course's published checkpoints in week order,
// merged with the caller's own progress. Missing progress reads as
// not_started.
func GetCourseCheckpoints(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var checkpoints []courseModels.Checkpoint
	if err := db.Where("course_id = ? AND status = ?", courseID, courseModels.CheckpointPublished).
		Order("week_number asc").Find(&checkpoints).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch checkpoints!", nil)
	}

	var progressRows []courseModels.CheckpointProgress
	db.Where("user_id = ?", userID).Find(&progressRows)
	progressByCheckpoint := make(map[uint]courseModels.CheckpointProgress, len(progressRows))
	for _, p := range progressRows {
		progressByCheckpoint[p.CheckpointID] = p
	}

	result := make([]CheckpointWithProgress, len(checkpoints))
	for i, checkpoint := range checkpoints {
		result[i] = CheckpointWithProgress{
			Checkpoint:     checkpoint,
			ProgressStatus: courseModels.CheckpointNotStarted,
		}
		if p, ok := progressByCheckpoint[checkpoint.ID]; ok {
			result[i].ProgressStatus = p.Status
			result[i].Notes = p.Notes
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkpoints fetched successfully!", fiber.Map{
		"checkpoints": result,
		"total":       len(result),
	})
}

// UpdateCheckpointProgress upserts the caller's status for a checkpoint.
func UpdateCheckpointProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	checkpointID, err := c.ParamsInt("id")
	if err != nil || checkpointID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid checkpoint id!", nil)
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
	case courseModels.CheckpointNotStarted, courseModels.CheckpointInProgress,
		courseModels.CheckpointCompleted, courseModels.CheckpointBehind:
	default:
		return middleware.ValidationErrorResponse(c, map[string]string{"status": "Unknown checkpoint status!"})
	}

	db := database.Database.Db

	var checkpoint courseModels.Checkpoint
	if err := db.Where("id = ? AND status = ?", checkpointID, courseModels.CheckpointPublished).
		First(&checkpoint).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Checkpoint not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND status <> ?",
		userID, checkpoint.CourseID, courseModels.EnrollmentWithdrawn).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course first.", nil)
	}

	progress := courseModels.CheckpointProgress{
		CheckpointID: uint(checkpointID),
		UserID:       userID,
		Status:       status,
		Notes:        strings.TrimSpace(reqData.Notes),
	}
	if status == courseModels.CheckpointCompleted {
		now := time.Now()
		progress.CompletedAt = &now
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "checkpoint_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "notes", "completed_at"}),
	}).Create(&progress).Error
	if err != nil {
		log.Printf("Unable to update checkpoint progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not save checkpoint progress.", nil)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkpoint progress saved.", progress)
}
