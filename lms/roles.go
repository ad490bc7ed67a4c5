package lms

import "strings"

// RoleSlug is a member of the closed role set. Arbitrary strings from the
// database are funneled through NormalizeRole; anything outside the set is
// discarded rather than propagated.
type RoleSlug string

const (
	RoleAdmin      RoleSlug = "admin"
	RoleInstructor RoleSlug = "instructor"
	RoleStudent    RoleSlug = "student"
	RoleApplicant  RoleSlug = "applicant"
)

// roleRank orders roles for effective-role precedence. Student ranks lowest
// because it is the default; an explicit non-default assignment always wins.
var roleRank = map[RoleSlug]int{
	RoleAdmin:      3,
	RoleInstructor: 2,
	RoleApplicant:  1,
	RoleStudent:    0,
}

// NormalizeRole maps a raw role string to a member of the fixed slug set.
// "faculty" is a legacy alias for instructor. Unknown values return false
// and are treated as absent, never as an error.
func NormalizeRole(raw string) (RoleSlug, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, true
	case "instructor", "faculty":
		return RoleInstructor, true
	case "student":
		return RoleStudent, true
	case "applicant":
		return RoleApplicant, true
	default:
		return "", false
	}
}

// EffectiveRole picks the single role used for coarse authorization.
// Precedence: highest-ranked non-default assignment, then the legacy
// single-column role, then the student default.
func EffectiveRole(assigned []RoleSlug, legacy string) RoleSlug {
	best := RoleSlug("")
	for _, slug := range assigned {
		if slug == RoleStudent {
			continue
		}
		if best == "" || roleRank[slug] > roleRank[best] {
			best = slug
		}
	}
	if best != "" {
		return best
	}
	if slug, ok := NormalizeRole(legacy); ok {
		return slug
	}
	return RoleStudent
}
