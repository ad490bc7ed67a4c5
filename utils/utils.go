package utils

import "time"

// StartOfWeek returns Monday 00:00 UTC of the week containing t. Sunday maps
// back six days to the preceding Monday (ISO week, Monday start).
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := int(t.Weekday()) - 1 // Monday = 0
	if offset < 0 {
		offset = 6 // Sunday
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
}

// WeekStartDate formats the ISO week key used for check-in rows.
func WeekStartDate(t time.Time) string {
	return StartOfWeek(t).Format("2006-01-02")
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
