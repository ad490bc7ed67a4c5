package lms

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModels "waypoint/models/course"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "go-for-backend-engineers", Slugify("Go for Backend Engineers"))
	assert.Equal(t, "intro-101", Slugify("  Intro 101! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestBuildCourseTemplateCreated(t *testing.T) {
	db := newTestDB(t)

	result := BuildCourseTemplate(db, "Systems Design", "Sixteen weeks of design.", 3, TemplateComponents[:2])

	require.Equal(t, TemplateCreated, result.Outcome)
	require.NotNil(t, result.Course)
	assert.NoError(t, result.Err)
	assert.Equal(t, 3, result.CompletedWeeks)
	assert.Contains(t, result.Course.Slug, "systems-design-")
	assert.False(t, result.Course.Published)

	var moduleCount, lessonCount int64
	db.Model(&courseModels.Module{}).Where("course_id = ?", result.Course.ID).Count(&moduleCount)
	assert.EqualValues(t, 3, moduleCount)
	db.Model(&courseModels.Lesson{}).Count(&lessonCount)
	assert.EqualValues(t, 6, lessonCount)
}

func TestBuildCourseTemplateDefaultsToSixteenWeeks(t *testing.T) {
	db := newTestDB(t)

	result := BuildCourseTemplate(db, "Defaults", "", 0, TemplateComponents[:1])

	require.Equal(t, TemplateCreated, result.Outcome)
	assert.Equal(t, 16, result.CompletedWeeks)
	assert.Equal(t, 16, result.Course.DurationWeeks)
}

func TestBuildCourseTemplatePartial(t *testing.T) {
	// Migrate only the course table so the first module insert fails. The
	// saga has no rollback: the course row must survive.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&courseModels.Course{}))

	result := BuildCourseTemplate(db, "Broken Scaffold", "", 4, TemplateComponents[:1])

	require.Equal(t, TemplatePartiallyCreated, result.Outcome)
	require.NotNil(t, result.Course)
	assert.Error(t, result.Err)
	assert.Equal(t, 0, result.CompletedWeeks)

	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
