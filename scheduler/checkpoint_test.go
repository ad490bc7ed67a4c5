package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	courseModels "waypoint/models/course"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Checkpoint{},
		&courseModels.CheckpointProgress{},
	))
	return db
}

func TestSweepOverdueCheckpoints(t *testing.T) {
	db := newTestDB(t)

	now := time.Date(2024, 3, 4, 0, 5, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -7)
	future := now.AddDate(0, 0, 7)

	overdue := courseModels.Checkpoint{
		CourseID: 1, Title: "Week 2", WeekNumber: 2,
		DueOn: &past, Status: courseModels.CheckpointPublished,
	}
	upcoming := courseModels.Checkpoint{
		CourseID: 1, Title: "Week 4", WeekNumber: 4,
		DueOn: &future, Status: courseModels.CheckpointPublished,
	}
	require.NoError(t, db.Create(&overdue).Error)
	require.NoError(t, db.Create(&upcoming).Error)

	rows := []courseModels.CheckpointProgress{
		{CheckpointID: overdue.ID, UserID: 1, Status: courseModels.CheckpointNotStarted},
		{CheckpointID: overdue.ID, UserID: 2, Status: courseModels.CheckpointInProgress},
		{CheckpointID: overdue.ID, UserID: 3, Status: courseModels.CheckpointCompleted},
		{CheckpointID: upcoming.ID, UserID: 1, Status: courseModels.CheckpointNotStarted},
	}
	require.NoError(t, db.Create(&rows).Error)

	SweepOverdueCheckpoints(db, now)

	var statuses []string
	require.NoError(t, db.Model(&courseModels.CheckpointProgress{}).
		Where("checkpoint_id = ?", overdue.ID).Order("user_id asc").
		Pluck("status", &statuses).Error)
	assert.Equal(t, []string{
		courseModels.CheckpointBehind,
		courseModels.CheckpointBehind,
		courseModels.CheckpointCompleted,
	}, statuses)

	// The upcoming checkpoint is untouched.
	var untouched []string
	require.NoError(t, db.Model(&courseModels.CheckpointProgress{}).
		Where("checkpoint_id = ?", upcoming.ID).Pluck("status", &untouched).Error)
	assert.Equal(t, []string{courseModels.CheckpointNotStarted}, untouched)
}
