package lms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/models"
	courseModels "waypoint/models/course"
)

func TestClassifyThresholds(t *testing.T) {
	assert.Equal(t, StatusReady, Classify(10, 10))
	assert.Equal(t, StatusReady, Classify(90, 100))
	assert.Equal(t, StatusOnTrack, Classify(89, 100))
	assert.Equal(t, StatusOnTrack, Classify(50, 100))
	assert.Equal(t, StatusOnTrack, Classify(1, 2))
	assert.Equal(t, StatusBehind, Classify(49, 100))
	assert.Equal(t, StatusBehind, Classify(0, 10))

	// A zero or negative total is floored to one implicit unit.
	assert.Equal(t, StatusBehind, Classify(0, 0))
	assert.Equal(t, StatusReady, Classify(1, 0))
}

func TestAggregatorNextLesson(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Dina", Email: "dina@example.com"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Slug: "go-basics", Title: "Go Basics", Published: true}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Week 1", Position: 1}
	require.NoError(t, db.Create(&module).Error)

	lessons := []courseModels.Lesson{
		{ModuleID: module.ID, Slug: "a", Title: "A", Position: 1},
		{ModuleID: module.ID, Slug: "b", Title: "B", Position: 2},
		{ModuleID: module.ID, Slug: "c", Title: "C", Position: 3},
	}
	require.NoError(t, db.Create(&lessons).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentActive,
	}).Error)

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.LessonProgress{
		UserID:      user.ID,
		LessonID:    lessons[0].ID,
		CompletedAt: &now,
	}).Error)

	cards := NewAggregator(db).ForUser(user.ID)
	require.Len(t, cards, 1)

	card := cards[0]
	assert.Equal(t, 1, card.Completed)
	assert.Equal(t, 3, card.Total)
	assert.Equal(t, StatusBehind, card.Status)
	assert.Equal(t, "go-basics", card.Slug)
	require.NotNil(t, card.NextLesson)
	assert.Equal(t, "b", card.NextLesson.Slug)
}

func TestAggregatorAllDone(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Eli", Email: "eli@example.com"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Slug: "done", Title: "Done", Published: true}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Week 1", Position: 1}
	require.NoError(t, db.Create(&module).Error)

	lesson := courseModels.Lesson{ModuleID: module.ID, Slug: "only", Title: "Only", Position: 1}
	require.NoError(t, db.Create(&lesson).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentActive,
	}).Error)

	now := time.Now()
	require.NoError(t, db.Create(&courseModels.LessonProgress{
		UserID:      user.ID,
		LessonID:    lesson.ID,
		CompletedAt: &now,
	}).Error)

	cards := NewAggregator(db).ForUser(user.ID)
	require.Len(t, cards, 1)
	assert.Equal(t, StatusReady, cards[0].Status)
	assert.Nil(t, cards[0].NextLesson)
}

func TestAggregatorEmptyCourse(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Fay", Email: "fay@example.com"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Slug: "empty", Title: "Empty", Published: true}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentActive,
	}).Error)

	cards := NewAggregator(db).ForUser(user.ID)
	require.Len(t, cards, 1)

	// An empty course reads as a single implicit unit at 0%.
	assert.Equal(t, 0, cards[0].Completed)
	assert.Equal(t, 1, cards[0].Total)
	assert.Equal(t, StatusBehind, cards[0].Status)
	assert.Nil(t, cards[0].NextLesson)
}

func TestAggregatorSkipsWithdrawn(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Gus", Email: "gus@example.com"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Slug: "left", Title: "Left", Published: true}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, db.Create(&courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentWithdrawn,
	}).Error)

	assert.Nil(t, NewAggregator(db).ForUser(user.ID))
}
