package course

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceExcused = "excused"
)

// LiveSession is a scheduled synchronous session for a course.
type LiveSession struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	JoinURL     string     `json:"join_url"`
}

// Attendance marks a user's presence at a live session.
type Attendance struct {
	gorm.Model
	SessionID uint       `json:"session_id" gorm:"uniqueIndex:idx_attendance_session_user;not null"`
	UserID    uint       `json:"user_id" gorm:"uniqueIndex:idx_attendance_session_user;not null"`
	Status    string     `json:"status" gorm:"default:'present'"`
	MarkedBy  *uint      `json:"marked_by"`
	MarkedAt  *time.Time `json:"marked_at"`
}
