package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"waypoint/cache"
	"waypoint/database"
	"waypoint/middleware"
	"waypoint/models"
	courseModels "waypoint/models/course"
	"waypoint/utils"
)

// EnrollInCourse enrolls the caller into a published course. The write is an
// upsert on the (user_id, course_id) natural key, so a second enroll call is
// a no-op success rather than a duplicate row or an error.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to enroll.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND published = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     userID,
		CourseID:   uint(courseID),
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now(),
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"status": courseModels.EnrollmentActive}),
	}).Create(&enrollment).Error
	if err != nil {
		log.Printf("Unable to enroll user %d in course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Enrollment failed.", nil)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err == nil {
		go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}

	cache.Invalidate("dashboard", "course:"+course.Slug)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled", enrollment)
}

// WithdrawFromCourse sets the caller's own enrollment to withdrawn. The
// filter on the session user id is the self check.
func WithdrawFromCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course.", nil)
	}

	if err := db.Model(&enrollment).Update("status", courseModels.EnrollmentWithdrawn).Error; err != nil {
		log.Printf("Unable to withdraw user %d from course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Withdrawal failed.", nil)
	}

	cache.Invalidate("dashboard")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawn from course.", enrollment)
}

// EnrollmentWithCourse decorates an enrollment with its course summary.
type EnrollmentWithCourse struct {
	courseModels.Enrollment
	CourseTitle string `json:"course_title"`
	CourseSlug  string `json:"course_slug"`
}

// GetUserEnrollmentsList gets all enrollments for the current user.
func GetUserEnrollmentsList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Sign in to continue.", nil)
	}

	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("user_id = ?", userID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithCourse{Enrollment: e}
		var course courseModels.Course
		if err := db.Where("id = ?", e.CourseID).First(&course).Error; err == nil {
			result[i].CourseTitle = course.Title
			result[i].CourseSlug = course.Slug
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
