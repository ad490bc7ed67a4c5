package course

import (
	"time"

	"gorm.io/gorm"
)

// Capstone statuses.
const (
	CapstoneNotStarted       = "not_started"
	CapstoneScheduled        = "scheduled"
	CapstonePassed           = "passed"
	CapstoneNeedsRemediation = "needs_remediation"
)

// CapstoneSchedule statuses.
const (
	ScheduleProposed    = "proposed"
	ScheduleAccepted    = "accepted"
	ScheduleRescheduled = "rescheduled"
	ScheduleCompleted   = "completed"
	ScheduleCancelled   = "cancelled"
)

// Capstone is the terminal, human-reviewed milestone for an enrollment.
// At most one exists per enrollment.
type Capstone struct {
	gorm.Model
	EnrollmentID uint       `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	StudentID    uint       `json:"student_id" gorm:"index;not null"`
	Status       string     `json:"status" gorm:"default:'not_started'"`
	OutcomeNotes string     `json:"outcome_notes" gorm:"type:text"`
	ReviewedBy   *uint      `json:"reviewed_by"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// CapstoneSchedule is a proposed or confirmed conversation slot for a capstone.
type CapstoneSchedule struct {
	gorm.Model
	CapstoneID  uint      `json:"capstone_id" gorm:"index;not null"`
	ScheduledAt time.Time `json:"scheduled_at"`
	FacultyID   *uint     `json:"faculty_id"`
	RequestedBy *uint     `json:"requested_by"`
	Status      string    `json:"status" gorm:"default:'proposed'"`
	Notes       string    `json:"notes"`
}
