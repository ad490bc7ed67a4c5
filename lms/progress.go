package lms

import (
	"sort"

	"gorm.io/gorm"

	courseModels "waypoint/models/course"
)

// Status labels for a course completion ratio.
const (
	StatusReady   = "ready"
	StatusOnTrack = "on-track"
	StatusBehind  = "behind"
)

// Classify maps a completion ratio to a status label. Both thresholds are
// closed lower bounds: exactly 90% is ready, exactly 50% is on-track.
func Classify(completed, total int) string {
	if total < 1 {
		total = 1
	}
	percent := float64(completed) / float64(total) * 100
	switch {
	case percent >= 90:
		return StatusReady
	case percent >= 50:
		return StatusOnTrack
	default:
		return StatusBehind
	}
}

// LessonRef points at the next incomplete lesson in a course sequence.
type LessonRef struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// CourseProgress is the per-course dashboard card: completion counts, the
// classified status, and the next incomplete lesson (nil once all are done).
type CourseProgress struct {
	CourseID   uint       `json:"course_id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Completed  int        `json:"completed"`
	Total      int        `json:"total"`
	Status     string     `json:"status"`
	NextLesson *LessonRef `json:"next_lesson"`
}

// Aggregator joins a user's enrollments to course structure and completion
// records.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// ForUser returns one CourseProgress per enrollment, or nil when the user has
// none or any read fails; dashboards degrade to "no enrollments".
//
// The canonical learner sequence orders lessons by module position, then
// lesson position; ties keep insertion order. Total is floored at 1 so an
// empty course reads as a single implicit unit at 0%. Progress rows pointing
// at lessons no longer in the course are ignored: completed is derived as an
// intersection with the course's current lesson set, so it can never exceed
// total.
func (a *Aggregator) ForUser(userID uint) []CourseProgress {
	if a == nil || a.db == nil || userID == 0 {
		return nil
	}

	var enrollments []courseModels.Enrollment
	if err := a.db.Where("user_id = ? AND status <> ?", userID, courseModels.EnrollmentWithdrawn).
		Find(&enrollments).Error; err != nil || len(enrollments) == 0 {
		return nil
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	var courses []courseModels.Course
	if err := a.db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return nil
	}
	courseByID := make(map[uint]courseModels.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	var modules []courseModels.Module
	if err := a.db.Where("course_id IN ?", courseIDs).Order("id asc").Find(&modules).Error; err != nil {
		return nil
	}
	modulePosition := make(map[uint]int, len(modules))
	moduleCourse := make(map[uint]uint, len(modules))
	moduleIDs := make([]uint, 0, len(modules))
	for _, m := range modules {
		modulePosition[m.ID] = m.Position
		moduleCourse[m.ID] = m.CourseID
		moduleIDs = append(moduleIDs, m.ID)
	}

	var lessons []courseModels.Lesson
	if len(moduleIDs) > 0 {
		if err := a.db.Where("module_id IN ?", moduleIDs).Order("id asc").Find(&lessons).Error; err != nil {
			return nil
		}
	}

	completedSet := make(map[uint]bool)
	var progressRows []courseModels.LessonProgress
	if err := a.db.Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Find(&progressRows).Error; err != nil {
		return nil
	}
	for _, p := range progressRows {
		completedSet[p.LessonID] = true
	}

	cards := make([]CourseProgress, 0, len(enrollments))
	for _, enrollment := range enrollments {
		sequence := courseSequence(enrollment.CourseID, lessons, moduleCourse, modulePosition)

		completed := 0
		var next *LessonRef
		for _, lesson := range sequence {
			if completedSet[lesson.ID] {
				completed++
			} else if next == nil {
				next = &LessonRef{ID: lesson.ID, Slug: lesson.Slug, Title: lesson.Title}
			}
		}

		total := len(sequence)
		if total < 1 {
			total = 1 // empty course counts as one implicit unit at 0%
		}

		card := CourseProgress{
			CourseID:   enrollment.CourseID,
			Completed:  completed,
			Total:      total,
			Status:     Classify(completed, total),
			NextLesson: next,
		}
		if c, ok := courseByID[enrollment.CourseID]; ok {
			card.Slug = c.Slug
			card.Title = c.Title
		}
		cards = append(cards, card)
	}
	return cards
}

// courseSequence filters lessons to the course's modules and sorts them into
// the canonical learner order. sort.SliceStable preserves insertion order on
// position ties.
func courseSequence(courseID uint, lessons []courseModels.Lesson, moduleCourse map[uint]uint, modulePosition map[uint]int) []courseModels.Lesson {
	var sequence []courseModels.Lesson
	for _, lesson := range lessons {
		if moduleCourse[lesson.ModuleID] == courseID {
			sequence = append(sequence, lesson)
		}
	}
	sort.SliceStable(sequence, func(i, j int) bool {
		pi, pj := modulePosition[sequence[i].ModuleID], modulePosition[sequence[j].ModuleID]
		if pi != pj {
			return pi < pj
		}
		return sequence[i].Position < sequence[j].Position
	})
	return sequence
}
