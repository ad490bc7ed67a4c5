package lms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint/models"
)

func TestResolveLegacyAdmin(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Ada", Email: "ada@example.com", Role: "admin"}
	require.NoError(t, db.Create(&user).Error)

	session := NewResolver(db).Resolve(user.ID)
	require.NotNil(t, session)

	assert.True(t, session.IsAdmin())
	assert.Equal(t, RoleAdmin, session.Effective)

	// No profile row exists; the resolver synthesizes one without saving it.
	assert.Zero(t, session.Profile.ID)
	assert.Equal(t, "Ada", session.Profile.DisplayName)
	assert.Equal(t, "ada@example.com", session.Profile.Email)

	var count int64
	db.Model(&models.Profile{}).Count(&count)
	assert.Zero(t, count)
}

func TestResolveAssignmentBeatsLegacy(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Ben", Email: "ben@example.com", Role: "student"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{UserID: user.ID, DisplayName: "Ben"}
	require.NoError(t, db.Create(&profile).Error)

	role := models.Role{Slug: "instructor", Name: "Instructor"}
	require.NoError(t, db.Create(&role).Error)

	now := time.Now()
	require.NoError(t, db.Create(&models.ProfileRole{
		ProfileID:  profile.ID,
		RoleID:     role.ID,
		AssignedAt: &now,
	}).Error)

	session := NewResolver(db).Resolve(user.ID)
	require.NotNil(t, session)

	assert.Equal(t, RoleInstructor, session.Effective)
	assert.True(t, session.IsAdminOrInstructor())
	assert.False(t, session.IsAdmin())

	// Merged role set carries the assignment and the student default.
	assert.True(t, session.Has(RoleInstructor))
	assert.True(t, session.Has(RoleStudent))
}

func TestResolveFacultyAliasNormalizes(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Name: "Cleo", Email: "cleo@example.com", Role: "faculty"}
	require.NoError(t, db.Create(&user).Error)

	session := NewResolver(db).Resolve(user.ID)
	require.NotNil(t, session)

	assert.Equal(t, RoleInstructor, session.Effective)
	assert.True(t, session.Has(RoleInstructor))
	assert.False(t, session.Has("faculty"))
}

func TestResolveUnknownUser(t *testing.T) {
	db := newTestDB(t)

	assert.Nil(t, NewResolver(db).Resolve(999))
	assert.Nil(t, NewResolver(db).Resolve(0))
	assert.Nil(t, NewResolver(nil).Resolve(1))
}
