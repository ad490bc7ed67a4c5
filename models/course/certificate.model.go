package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued course-completion certificate. The verification
// code is globally unique and unguessable; a collision surfaces as a
// constraint violation rather than an overwrite.
type Certificate struct {
	gorm.Model
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	CourseID         uint      `json:"course_id" gorm:"index;not null"`
	VerificationCode string    `json:"verification_code" gorm:"unique;not null"`
	IssuedAt         time.Time `json:"issued_at"`
}
