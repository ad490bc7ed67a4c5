package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonProgress tracks per-lesson completion. A row with a non-null
// CompletedAt is the sole signal that the lesson is done.
type LessonProgress struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID     uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastViewedAt *time.Time `json:"last_viewed_at"`
}

// CheckIn is a weekly reflection keyed by the ISO week's Monday.
type CheckIn struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"uniqueIndex:idx_checkin_user_course_week;not null"`
	CourseID      uint           `json:"course_id" gorm:"uniqueIndex:idx_checkin_user_course_week;not null"`
	WeekStartDate string         `json:"week_start_date" gorm:"uniqueIndex:idx_checkin_user_course_week;not null"` // YYYY-MM-DD, always a Monday
	Payload       datatypes.JSON `json:"payload"`
	SubmittedAt   time.Time      `json:"submitted_at"`
}
