package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz is attached to a lesson; its question schema is stored as JSON.
type Quiz struct {
	gorm.Model
	LessonID uint           `json:"lesson_id" gorm:"index;not null"`
	Title    string         `json:"title"`
	Schema   datatypes.JSON `json:"schema"`
}

// QuizAttempt records a learner's submitted responses and score.
type QuizAttempt struct {
	gorm.Model
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	Score       *float64       `json:"score"`
	Responses   datatypes.JSON `json:"responses"`
	SubmittedAt time.Time      `json:"submitted_at"`
}
