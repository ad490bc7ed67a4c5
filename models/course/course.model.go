package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Slug          string `json:"slug" gorm:"unique;not null"`
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description" gorm:"type:text"`
	Language      string `json:"language" gorm:"default:'en'"`
	Pathway       string `json:"pathway"`
	DurationWeeks int    `json:"duration_weeks" gorm:"default:16"`
	Published     bool   `json:"published" gorm:"default:false"`
}

// Module represents a section within a course, ordered by position.
type Module struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Position int    `json:"position" gorm:"default:0"`
}

// Lesson belongs to a module, ordered by position within it.
type Lesson struct {
	gorm.Model
	ModuleID         uint   `json:"module_id" gorm:"index;not null"`
	Slug             string `json:"slug" gorm:"index;not null"`
	Title            string `json:"title"`
	Summary          string `json:"summary"`
	Position         int    `json:"position" gorm:"default:0"`
	ContentPath      string `json:"content_path"`
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"default:0"`
	Published        bool   `json:"published" gorm:"default:false"`
}
