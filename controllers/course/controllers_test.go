package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"waypoint/config"
	"waypoint/database"
	"waypoint/models"
	courseModels "waypoint/models/course"
)

// setupTestDB points the package-global database handle at an in-memory
// sqlite instance for the duration of one test.
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
		&models.User{},
		&models.Profile{},
		&models.Role{},
		&models.ProfileRole{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
	))

	database.Database = database.DbInstance{Db: db}
	return db
}

// courseUser creates a learner row and returns its id. Enrollment handlers
// look the user up for the notification email.
func courseUser(t *testing.T) uint {
	t.Helper()
	user := models.User{Name: "Test Learner", Email: t.Name() + "@example.com"}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user.ID
}

func enrollPath(courseID uint) string {
	return fmt.Sprintf("/courses/%d/enroll", courseID)
}

func withdrawPath(courseID uint) string {
	return fmt.Sprintf("/courses/%d/withdraw", courseID)
}

// withUser injects an authenticated user id the way JWTMiddleware would.
func withUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	}
}

// envelope is the uniform response shape every handler returns.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body was not the uniform envelope: %s", body)
	return env
}
