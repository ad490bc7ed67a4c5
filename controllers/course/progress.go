package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/lms"
	"waypoint/middleware"
	"waypoint/models"
	courseModels "waypoint/models/course"
)

// MarkLessonComplete upserts the caller's progress row for a lesson, setting
// completed_at. Repeating the call refreshes the timestamps.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to track progress.", nil)
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	now := time.Now()
	progress := courseModels.LessonProgress{
		UserID:       userID,
		LessonID:     uint(lessonID),
		CompletedAt:  &now,
		LastViewedAt: &now,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_at", "last_viewed_at"}),
	}).Create(&progress).Error
	if err != nil {
		log.Printf("Unable to mark lesson %d complete for user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Could not save progress.", nil)
	}

	views := []string{"dashboard"}
	var course courseModels.Course
	if err := db.Joins("JOIN modules ON modules.course_id = courses.id AND modules.deleted_at IS NULL").
		Where("modules.id = ?", lesson.ModuleID).First(&course).Error; err == nil {
		views = append(views, "course:"+course.Slug, "lesson:"+course.Slug+"/"+lesson.Slug)
	}
	cache.Invalidate(views...)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete.", progress)
}

// RosterRow is one line of the staff enrollment roster.
type RosterRow struct {
	EnrollmentID uint   `json:"enrollment_id"`
	Learner      string `json:"learner"`
	CourseTitle  string `json:"course_title"`
	CourseSlug   string `json:"course_slug"`
	Status       string `json:"status"`
	CohortLabel  string `json:"cohort_label"`
}

// GetDashboard returns the caller's per-course progress cards. Staff sessions
// additionally receive the enrollment roster.
func GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	db := database.Database.Db

	session := lms.NewResolver(db).Resolve(userID)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	cards := lms.NewAggregator(db).ForUser(userID)

	response := fiber.Map{
		"effective_role": session.Effective,
		"roles":          session.Roles,
		"progress":       cards,
	}

	if session.IsAdminOrInstructor() {
		response["roster"] = staffRoster(db)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", response)
}

// GetRoster serves the enrollment roster on its own staff route, for clients
// that want it without the rest of the dashboard.
func GetRoster(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roster fetched successfully!", fiber.Map{
		"roster": staffRoster(database.Database.Db),
	})
}

// staffRoster lists recent enrollments with learner and course names for the
// admin/instructor dashboard.
func staffRoster(db *gorm.DB) []RosterRow {
	var enrollments []courseModels.Enrollment
	if err := db.Order("enrolled_at desc").Limit(200).Find(&enrollments).Error; err != nil {
		return nil
	}

	rows := make([]RosterRow, 0, len(enrollments))
	for _, e := range enrollments {
		row := RosterRow{
			EnrollmentID: e.ID,
			Status:       e.Status,
			CohortLabel:  e.CohortLabel,
		}

		var course courseModels.Course
		if err := db.Where("id = ?", e.CourseID).First(&course).Error; err == nil {
			row.CourseTitle = course.Title
			row.CourseSlug = course.Slug
		}

		var profile models.Profile
		if err := db.Where("user_id = ?", e.UserID).First(&profile).Error; err == nil && profile.DisplayName != "" {
			row.Learner = profile.DisplayName
		} else {
			var user models.User
			if err := db.Where("id = ?", e.UserID).First(&user).Error; err == nil {
				row.Learner = user.Name
			}
		}

		rows = append(rows, row)
	}
	return rows
}
