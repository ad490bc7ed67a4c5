package adminController

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"waypoint/config"
	"waypoint/database"
	"waypoint/models"
	courseModels "waypoint/models/course"
	adminValidator "waypoint/validators/admin"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{AppName: "test", JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.AuditEvent{},
		&courseModels.Enrollment{},
	))

	database.Database = database.DbInstance{Db: db}
	return db
}

// Grades outside [0,100] are clamped on write, not rejected. The validator
// must stay permissive so out-of-range inputs reach the clamp.
func TestUpdateEnrollmentGradeClamps(t *testing.T) {
	db := setupTestDB(t)

	enrollment := courseModels.Enrollment{UserID: 1, CourseID: 1, Status: courseModels.EnrollmentActive}
	require.NoError(t, db.Create(&enrollment).Error)

	app := fiber.New()
	app.Patch("/admin/enrollments/:id/grade", func(c *fiber.Ctx) error {
		c.Locals("userId", uint(9))
		return c.Next()
	}, adminValidator.UpdateGrade(), UpdateEnrollmentGrade)

	cases := []struct {
		body string
		want float64
	}{
		{`{"grade": -5}`, 0},
		{`{"grade": 150}`, 100},
		{`{"grade": 73.4}`, 73.4},
	}

	for _, tc := range cases {
		req := httptest.NewRequest("PATCH",
			fmt.Sprintf("/admin/enrollments/%d/grade", enrollment.ID),
			strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err, tc.body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, tc.body)

		var saved courseModels.Enrollment
		require.NoError(t, db.Where("id = ?", enrollment.ID).First(&saved).Error)
		require.NotNil(t, saved.Grade, tc.body)
		assert.Equal(t, tc.want, *saved.Grade, tc.body)
	}

	// Each grade write leaves an audit trail.
	var audits int64
	db.Model(&models.AuditEvent{}).Where("action = ?", "enrollment.graded").Count(&audits)
	assert.EqualValues(t, len(cases), audits)
}
