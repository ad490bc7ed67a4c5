package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentPaused    = "paused"
	EnrollmentWithdrawn = "withdrawn"
)

// Enrollment links a user to a course. The (user_id, course_id) pair is the
// natural key; enroll is always an upsert against it so a repeated call is a
// no-op success rather than a duplicate row.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status      string     `json:"status" gorm:"default:'active'"`
	Grade       *float64   `json:"grade"` // clamped to [0,100] on write
	CohortLabel string     `json:"cohort_label"`
	EnrolledAt  time.Time  `json:"enrolled_at"`
	StartsOn    *time.Time `json:"starts_on"`
	TargetEndOn *time.Time `json:"target_end_on"`
}
