package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	// Role is the legacy single-role column. Role assignments in
	// profile_roles take precedence over it.
	Role      string     `json:"role" gorm:"default:'student'"`
	LastLogin *time.Time `json:"last_login"`
}
