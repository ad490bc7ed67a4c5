package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// GetAllCourses lists published courses, optionally filtered by a title
// search and a language tag. The catalog is public; an empty result is a
// normal response, not an error.
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Where("published = ?", true).Order("title asc")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("title ILIKE ?", "%"+q+"%")
	}
	if language := strings.TrimSpace(c.Query("language")); language != "" {
		query = query.Where("language = ?", language)
	}

	var courses []courseModels.Course
	if err := query.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   len(courses),
	})
}

// ModuleWithLessons is the course-detail shape: modules in position order,
// each with its lessons in the canonical learner sequence.
type ModuleWithLessons struct {
	courseModels.Module
	Lessons []courseModels.Lesson `json:"lessons"`
}

// GetCourseDetails returns one course by slug with its ordered structure.
func GetCourseDetails(c *fiber.Ctx) error {
	slug := c.Params("slug")
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND published = ?", slug, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	db.Where("course_id = ?", course.ID).Order("position asc, id asc").Find(&modules)

	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	var lessons []courseModels.Lesson
	if len(moduleIDs) > 0 {
		db.Where("module_id IN ?", moduleIDs).Order("position asc, id asc").Find(&lessons)
	}

	result := make([]ModuleWithLessons, len(modules))
	for i, module := range modules {
		result[i] = ModuleWithLessons{Module: module}
		for _, lesson := range lessons {
			if lesson.ModuleID == module.ID {
				result[i].Lessons = append(result[i].Lessons, lesson)
			}
		}
	}

	// Enrollment status is included when the request carries a valid session.
	isEnrolled := false
	if userID, ok := c.Locals("userId").(uint); ok {
		var enrollment courseModels.Enrollment
		isEnrolled = db.Where("user_id = ? AND course_id = ? AND status <> ?",
			userID, course.ID, courseModels.EnrollmentWithdrawn).First(&enrollment).Error == nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"modules":     result,
		"is_enrolled": isEnrolled,
	})
}

// GetLessonBySlug returns one lesson within a course, located by the course
// and lesson slugs.
func GetLessonBySlug(c *fiber.Ctx) error {
	courseSlug := c.Params("slug")
	lessonSlug := c.Params("lesson")
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND published = ?", courseSlug, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	err := db.Joins("JOIN modules ON modules.id = lessons.module_id AND modules.deleted_at IS NULL").
		Where("modules.course_id = ? AND lessons.slug = ?", course.ID, lessonSlug).
		First(&lesson).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var quizzes []courseModels.Quiz
	db.Where("lesson_id = ?", lesson.ID).Find(&quizzes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"course_id":    course.ID,
		"course_title": course.Title,
		"lesson":       lesson,
		"quizzes":      quizzes,
	})
}
