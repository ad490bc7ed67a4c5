package lms

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModels "waypoint/models/course"
)

// TemplateComponent is one lesson type stamped into every week of a course
// template.
type TemplateComponent struct {
	Value string
	Label string
}

// TemplateComponents is the fixed menu a course template can be built from.
var TemplateComponents = []TemplateComponent{
	{Value: "overview", Label: "Overview"},
	{Value: "lesson", Label: "Lesson"},
	{Value: "discussion", Label: "Discussion"},
	{Value: "quiz", Label: "Quiz"},
	{Value: "assignment", Label: "Assignment"},
}

// TemplateOutcome distinguishes "nothing happened" from "some rows exist".
type TemplateOutcome int

const (
	TemplateFailed TemplateOutcome = iota
	TemplatePartiallyCreated
	TemplateCreated
)

// TemplateResult is the typed outcome of the course-template saga.
type TemplateResult struct {
	Outcome        TemplateOutcome
	Course         *courseModels.Course
	CompletedWeeks int
	Err            error
}

// BuildCourseTemplate creates a course plus weeks×components module/lesson
// scaffolding, best-effort and sequential. There is no transaction and no
// rollback: the first failure stops the saga, and whatever was created stays.
// Callers surface a PartiallyCreated outcome as a warning so the operator
// knows to finish the structure manually.
func BuildCourseTemplate(db *gorm.DB, title, description string, weeks int, components []TemplateComponent) TemplateResult {
	if weeks < 1 {
		weeks = 16
	}

	slug := fmt.Sprintf("%s-%s", Slugify(title), uuid.NewString()[:6])

	row := courseModels.Course{
		Slug:          slug,
		Title:         title,
		Description:   description,
		DurationWeeks: weeks,
		Published:     false,
	}
	if err := db.Create(&row).Error; err != nil {
		return TemplateResult{Outcome: TemplateFailed, Err: err}
	}

	for week := 1; week <= weeks; week++ {
		module := courseModels.Module{
			CourseID: row.ID,
			Title:    fmt.Sprintf("Week %d", week),
			Position: week,
		}
		if err := db.Create(&module).Error; err != nil {
			return TemplateResult{Outcome: TemplatePartiallyCreated, Course: &row, CompletedWeeks: week - 1, Err: err}
		}

		lessons := make([]courseModels.Lesson, 0, len(components))
		for i, component := range components {
			lessons = append(lessons, courseModels.Lesson{
				ModuleID: module.ID,
				Title:    component.Label,
				Slug:     fmt.Sprintf("week-%d-%s", week, component.Value),
				Position: i + 1,
			})
		}
		if err := db.Create(&lessons).Error; err != nil {
			return TemplateResult{Outcome: TemplatePartiallyCreated, Course: &row, CompletedWeeks: week - 1, Err: err}
		}
	}

	return TemplateResult{Outcome: TemplateCreated, Course: &row, CompletedWeeks: weeks}
}

// Slugify lowercases a title and collapses it to a URL-safe slug.
func Slugify(value string) string {
	value = strings.ToLower(value)
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
