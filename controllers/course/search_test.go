package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "waypoint/models/course"
)

type searchResult struct {
	Courses []courseModels.Course `json:"courses"`
	Lessons []LessonHit           `json:"lessons"`
}

func TestSearchCatalog(t *testing.T) {
	db := setupTestDB(t)

	goCourse := courseModels.Course{Slug: "go-basics", Title: "Go Basics", Language: "en", Published: true}
	require.NoError(t, db.Create(&goCourse).Error)
	esCourse := courseModels.Course{Slug: "go-es", Title: "Go en Espanol", Language: "es", Published: true}
	require.NoError(t, db.Create(&esCourse).Error)
	draft := courseModels.Course{Slug: "go-draft", Title: "Go Draft", Language: "en", Published: false}
	require.NoError(t, db.Create(&draft).Error)

	module := courseModels.Module{CourseID: goCourse.ID, Title: "Week 1", Position: 1}
	require.NoError(t, db.Create(&module).Error)
	require.NoError(t, db.Create(&[]courseModels.Lesson{
		{ModuleID: module.ID, Slug: "goroutines", Title: "Goroutines", Position: 1},
		{ModuleID: module.ID, Slug: "intro", Title: "Intro", ContentPath: "go/channels.md", Position: 2},
		{ModuleID: module.ID, Slug: "closing", Title: "Closing Notes", Position: 3},
	}).Error)

	app := fiber.New()
	app.Get("/api/search", SearchCatalog)

	fetch := func(url string) searchResult {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.True(t, env.Status)
		var result searchResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		return result
	}

	// Empty query: empty sets, not an error.
	result := fetch("/api/search")
	assert.Empty(t, result.Courses)
	assert.Empty(t, result.Lessons)

	// Course titles and lesson titles/content paths all match; the draft
	// course is excluded. "go" hits the goroutines lesson title and the
	// channels lesson via its content path.
	result = fetch("/api/search?q=go")
	require.Len(t, result.Courses, 2)
	lessonSlugs := make([]string, 0, len(result.Lessons))
	for _, hit := range result.Lessons {
		lessonSlugs = append(lessonSlugs, hit.Slug)
		assert.Equal(t, "go-basics", hit.CourseSlug)
		assert.Equal(t, "Go Basics", hit.CourseTitle)
	}
	assert.ElementsMatch(t, []string{"goroutines", "intro"}, lessonSlugs)

	// Language narrows both result sets.
	result = fetch("/api/search?q=go&language=es")
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "go-es", result.Courses[0].Slug)
	assert.Empty(t, result.Lessons)

	// Matching is case-insensitive.
	result = fetch("/api/search?q=GOROUTINES")
	require.Len(t, result.Lessons, 1)
	assert.Equal(t, "goroutines", result.Lessons[0].Slug)
}
