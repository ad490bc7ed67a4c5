package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Checkpoint statuses.
const (
	CheckpointPlanned   = "planned"
	CheckpointPublished = "published"
	CheckpointArchived  = "archived"
)

// CheckpointProgress statuses.
const (
	CheckpointNotStarted = "not_started"
	CheckpointInProgress = "in_progress"
	CheckpointCompleted  = "completed"
	CheckpointBehind     = "behind"
)

// Checkpoint is a scheduled weekly milestone within a course, distinct from a lesson.
type Checkpoint struct {
	gorm.Model
	CourseID     uint           `json:"course_id" gorm:"index;not null"`
	Title        string         `json:"title"`
	WeekNumber   int            `json:"week_number" gorm:"not null"`
	DueOn        *time.Time     `json:"due_on"`
	Requirements datatypes.JSON `json:"requirements"`
	Status       string         `json:"status" gorm:"default:'planned'"`
}

// CheckpointProgress links a user to a checkpoint.
type CheckpointProgress struct {
	gorm.Model
	CheckpointID uint       `json:"checkpoint_id" gorm:"uniqueIndex:idx_checkpoint_user;not null"`
	UserID       uint       `json:"user_id" gorm:"uniqueIndex:idx_checkpoint_user;not null"`
	Status       string     `json:"status" gorm:"default:'not_started'"`
	Notes        string     `json:"notes"`
	CompletedAt  *time.Time `json:"completed_at"`
}
