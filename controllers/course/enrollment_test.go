package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "waypoint/models/course"
)

// Every guard failure and success on a mutation route must come back through
// the uniform envelope with a non-empty message, never a bare error page.
func TestEnrollInCourseEnvelope(t *testing.T) {
	db := setupTestDB(t)

	user := courseUser(t)
	course := courseModels.Course{Slug: "go-basics", Title: "Go Basics", Published: true}
	require.NoError(t, db.Create(&course).Error)
	draft := courseModels.Course{Slug: "draft", Title: "Draft", Published: false}
	require.NoError(t, db.Create(&draft).Error)

	app := fiber.New()
	app.Post("/anon/:id/enroll", EnrollInCourse)
	app.Post("/courses/:id/enroll", withUser(user), EnrollInCourse)

	cases := []struct {
		name       string
		path       string
		wantCode   int
		wantStatus bool
	}{
		{"unauthenticated", "/anon/1/enroll", fiber.StatusUnauthorized, false},
		{"invalid id", "/courses/abc/enroll", fiber.StatusBadRequest, false},
		{"unknown course", "/courses/999/enroll", fiber.StatusNotFound, false},
		{"unpublished course", enrollPath(draft.ID), fiber.StatusNotFound, false},
		{"success", enrollPath(course.ID), fiber.StatusOK, true},
		{"repeat enroll is a no-op success", enrollPath(course.ID), fiber.StatusOK, true},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("POST", tc.path, nil))
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.wantCode, resp.StatusCode, tc.name)

		env := decodeEnvelope(t, resp)
		assert.Equal(t, tc.wantStatus, env.Status, tc.name)
		assert.NotEmpty(t, env.Message, tc.name)
	}

	// The repeated enroll upserted onto the natural key: one row, still active.
	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", user, course.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
}

func TestWithdrawEnvelope(t *testing.T) {
	db := setupTestDB(t)

	user := courseUser(t)
	course := courseModels.Course{Slug: "leavable", Title: "Leavable", Published: true}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID: user, CourseID: course.ID, Status: courseModels.EnrollmentActive,
	}).Error)

	app := fiber.New()
	app.Post("/courses/:id/withdraw", withUser(user), WithdrawFromCourse)

	resp, err := app.Test(httptest.NewRequest("POST", withdrawPath(course.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Status)
	assert.NotEmpty(t, env.Message)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user, course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentWithdrawn, enrollment.Status)

	// Withdrawing from a course the user never joined is a guarded failure.
	resp, err = app.Test(httptest.NewRequest("POST", "/courses/999/withdraw", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.False(t, env.Status)
	assert.NotEmpty(t, env.Message)
}
