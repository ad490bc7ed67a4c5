package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"waypoint/database"
	"waypoint/middleware"
	courseModels "waypoint/models/course"
)

// LessonHit is a lesson search result joined to its course.
type LessonHit struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	ContentPath string `json:"content_path"`
	CourseSlug  string `json:"course_slug"`
	CourseTitle string `json:"course_title"`
	Language    string `json:"language"`
}

// SearchCatalog is the global search endpoint: one query string matched
// against course titles and against lesson titles and content paths, with an
// optional language filter on the owning course. An empty query returns empty
// result sets, never an error. Lesson hits are capped at 25.
func SearchCatalog(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	language := strings.TrimSpace(c.Query("language"))

	courses := []courseModels.Course{}
	lessons := []LessonHit{}

	if q == "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results fetched successfully!", fiber.Map{
			"courses": courses,
			"lessons": lessons,
		})
	}

	db := database.Database.Db
	pattern := "%" + strings.ToLower(q) + "%"

	courseQuery := db.Where("published = ?", true).
		Where("LOWER(title) LIKE ?", pattern).
		Order("title asc")
	if language != "" {
		courseQuery = courseQuery.Where("language = ?", language)
	}
	if err := courseQuery.Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	lessonQuery := db.Model(&courseModels.Lesson{}).
		Select("lessons.id, lessons.slug, lessons.title, lessons.content_path, "+
			"courses.slug AS course_slug, courses.title AS course_title, courses.language").
		Joins("JOIN modules ON modules.id = lessons.module_id AND modules.deleted_at IS NULL").
		Joins("JOIN courses ON courses.id = modules.course_id AND courses.deleted_at IS NULL").
		Where("courses.published = ?", true).
		Where("LOWER(lessons.title) LIKE ? OR LOWER(lessons.content_path) LIKE ?", pattern, pattern).
		Limit(25)
	if language != "" {
		lessonQuery = lessonQuery.Where("courses.language = ?", language)
	}
	if err := lessonQuery.Scan(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Search failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results fetched successfully!", fiber.Map{
		"courses": courses,
		"lessons": lessons,
	})
}
