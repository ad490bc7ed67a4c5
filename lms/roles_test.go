package lms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		raw  string
		want RoleSlug
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"Admin", RoleAdmin, true},
		{"  instructor ", RoleInstructor, true},
		{"faculty", RoleInstructor, true},
		{"FACULTY", RoleInstructor, true},
		{"student", RoleStudent, true},
		{"applicant", RoleApplicant, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizeRole(tc.raw)
		assert.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestEffectiveRolePrecedence(t *testing.T) {
	// An explicit assignment beats the legacy column.
	assert.Equal(t, RoleInstructor, EffectiveRole([]RoleSlug{RoleInstructor}, "student"))
	assert.Equal(t, RoleAdmin, EffectiveRole([]RoleSlug{RoleInstructor, RoleAdmin}, "student"))

	// A student assignment is the default and never outranks the legacy column.
	assert.Equal(t, RoleAdmin, EffectiveRole([]RoleSlug{RoleStudent}, "admin"))

	// No assignments: the legacy column decides.
	assert.Equal(t, RoleAdmin, EffectiveRole(nil, "admin"))
	assert.Equal(t, RoleInstructor, EffectiveRole(nil, "faculty"))

	// Nothing anywhere: student.
	assert.Equal(t, RoleStudent, EffectiveRole(nil, ""))
	assert.Equal(t, RoleStudent, EffectiveRole(nil, "garbage"))
}
