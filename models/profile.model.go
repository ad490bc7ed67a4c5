package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds learner-facing contact and academic details, one per user.
// A missing row is synthesized in memory by the identity resolver and only
// persisted through the explicit profile-save action.
type Profile struct {
	gorm.Model
	UserID             uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	DisplayName        string `json:"display_name"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	MailingAddressLine1 string `json:"mailing_address_line1"`
	MailingAddressLine2 string `json:"mailing_address_line2"`
	MailingCity        string `json:"mailing_city"`
	MailingState       string `json:"mailing_state"`
	MailingPostalCode  string `json:"mailing_postal_code"`
	MailingCountry     string `json:"mailing_country"`
	AcademicBio        string `json:"academic_bio" gorm:"type:text"`
}

// Role is one of the fixed role slugs: admin, instructor, student, applicant.
type Role struct {
	gorm.Model
	Slug        string `json:"slug" gorm:"unique;not null"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default" gorm:"default:false"`
}

// ProfileRole links a profile to an assigned role.
type ProfileRole struct {
	gorm.Model
	ProfileID  uint       `json:"profile_id" gorm:"uniqueIndex:idx_profile_role;not null"`
	RoleID     uint       `json:"role_id" gorm:"uniqueIndex:idx_profile_role;not null"`
	AssignedBy *uint      `json:"assigned_by"`
	AssignedAt *time.Time `json:"assigned_at"`
}
