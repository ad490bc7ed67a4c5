package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	courseModels "waypoint/models/course"
)

// Start launches the background cron jobs. The returned cron keeps its own
// goroutine; callers hold the reference for shutdown.
func Start(db *gorm.DB) *cron.Cron {
	c := cron.New()

	// Every Monday just after the week rolls over, flag overdue checkpoint
	// progress as behind so dashboards and exports reflect it without
	// waiting for the learner to open the page.
	_, err := c.AddFunc("5 0 * * 1", func() {
		SweepOverdueCheckpoints(db, time.Now())
	})
	if err != nil {
		log.Printf("Unable to register checkpoint sweep: %v", err)
	}

	c.Start()
	return c
}

// SweepOverdueCheckpoints marks progress rows as behind for every published
// checkpoint whose due date has passed and whose learner has not completed
// it. Rows already completed or already behind are left alone.
func SweepOverdueCheckpoints(db *gorm.DB, now time.Time) {
	var checkpoints []courseModels.Checkpoint
	err := db.Where("status = ? AND due_on IS NOT NULL AND due_on < ?",
		courseModels.CheckpointPublished, now).Find(&checkpoints).Error
	if err != nil {
		log.Printf("Checkpoint sweep query failed: %v", err)
		return
	}

	flagged := 0
	for _, checkpoint := range checkpoints {
		result := db.Model(&courseModels.CheckpointProgress{}).
			Where("checkpoint_id = ? AND status IN ?", checkpoint.ID,
				[]string{courseModels.CheckpointNotStarted, courseModels.CheckpointInProgress}).
			Update("status", courseModels.CheckpointBehind)
		if result.Error != nil {
			log.Printf("Checkpoint sweep update failed for checkpoint %d: %v", checkpoint.ID, result.Error)
			continue
		}
		flagged += int(result.RowsAffected)
	}

	if flagged > 0 {
		log.Printf("Checkpoint sweep flagged %d progress rows as behind", flagged)
	}
}
