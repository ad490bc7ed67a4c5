package models

import "gorm.io/gorm"

// AuditEvent records sensitive admin and service actions.
type AuditEvent struct {
	gorm.Model
	Actor  *uint  `json:"actor" gorm:"index"`
	Action string `json:"action" gorm:"not null"`
	Target string `json:"target"`
}
