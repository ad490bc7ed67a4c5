package lms

import (
	"log"

	"gorm.io/gorm"

	"waypoint/models"
)

// Session is the resolved identity for a request: the user, their profile
// (possibly synthesized), and the merged role set.
type Session struct {
	User      models.User
	Profile   models.Profile
	Roles     []RoleSlug
	Effective RoleSlug
}

// Has reports whether the session carries the given role.
func (s *Session) Has(role RoleSlug) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the effective role or any assigned role is admin.
func (s *Session) IsAdmin() bool {
	return s.Effective == RoleAdmin || s.Has(RoleAdmin)
}

// IsAdminOrInstructor reports whether the session holds admin or instructor
// privileges. Faculty normalizes to instructor upstream.
func (s *Session) IsAdminOrInstructor() bool {
	return s.IsAdmin() || s.Effective == RoleInstructor || s.Has(RoleInstructor)
}

// Resolver turns an authenticated user id into a Session. It holds an
// explicit database handle rather than reaching for package state so the
// same resolver serves requests and tests alike.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve loads the user, profile, and role assignments for userID and
// merges them into a Session. Any read failure returns nil so pages degrade
// to anonymous; mutation handlers re-resolve and never trust a cached result.
func (r *Resolver) Resolve(userID uint) *Session {
	if r == nil || r.db == nil || userID == 0 {
		return nil
	}

	var user models.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil
	}

	session := &Session{User: user}

	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		session.Profile = profile
	case err == gorm.ErrRecordNotFound:
		// Synthesize a transient profile; persistence only happens through
		// the explicit profile-save action.
		session.Profile = models.Profile{
			UserID:      userID,
			DisplayName: user.Name,
			Email:       user.Email,
		}
	default:
		return nil
	}

	assigned, err := r.assignedRoles(session.Profile.ID)
	if err != nil {
		log.Printf("Failed to load role assignments for user %d: %v", userID, err)
		return nil
	}

	roles := append([]RoleSlug{}, assigned...)
	if slug, ok := NormalizeRole(user.Role); ok && !containsRole(roles, slug) {
		roles = append(roles, slug)
	}
	if !containsRole(roles, RoleStudent) {
		roles = append(roles, RoleStudent)
	}

	session.Roles = roles
	session.Effective = EffectiveRole(assigned, user.Role)
	return session
}

// assignedRoles loads the profile's role assignments and normalizes each
// slug, silently dropping anything outside the fixed set.
func (r *Resolver) assignedRoles(profileID uint) ([]RoleSlug, error) {
	if profileID == 0 {
		return nil, nil
	}

	var slugs []string
	err := r.db.Model(&models.ProfileRole{}).
		Joins("JOIN roles ON roles.id = profile_roles.role_id AND roles.deleted_at IS NULL").
		Where("profile_roles.profile_id = ?", profileID).
		Pluck("roles.slug", &slugs).Error
	if err != nil {
		return nil, err
	}

	var assigned []RoleSlug
	for _, raw := range slugs {
		if slug, ok := NormalizeRole(raw); ok && !containsRole(assigned, slug) {
			assigned = append(assigned, slug)
		}
	}
	return assigned, nil
}

func containsRole(roles []RoleSlug, slug RoleSlug) bool {
	for _, r := range roles {
		if r == slug {
			return true
		}
	}
	return false
}
