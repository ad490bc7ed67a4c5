package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	// A Wednesday maps back to its Monday.
	wednesday := time.Date(2024, 1, 31, 15, 30, 0, 0, time.UTC)
	monday := StartOfWeek(wednesday)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), monday)

	// Sunday belongs to the week that started six days earlier.
	sunday := time.Date(2024, 2, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	// Monday midnight is a fixed point.
	assert.Equal(t, monday, StartOfWeek(monday))
}

func TestWeekStartDate(t *testing.T) {
	wednesday := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-29", WeekStartDate(wednesday))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 73.4, Clamp(73.4, 0, 100))
}
