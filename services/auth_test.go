package services

import (
	"testing"
	"time"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	token1, err := GenerateSessionToken()
	require.NoError(t, err)
	token2, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.Len(t, token1, SessionTokenLength*2)
	assert.NotEqual(t, token1, token2)
}

func TestCreateAndValidateSession(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	session, err := CreateSession(db, resident.Ref(), "192.0.2.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, models.ActorKindResident, session.ActorKind)
	assert.Equal(t, resident.ID, session.ActorID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	loaded, err := ValidateSession(db, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, resident.ID, loaded.ActorID)
}

func TestValidateSessionUnknownToken(t *testing.T) {
	db := setupTestDB(t)

	_, err := ValidateSession(db, "no-such-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestValidateSessionExpired(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	session, err := CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)

	// Backdate the expiry
	require.NoError(t, db.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = ValidateSession(db, session.Token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	// Expired session is deleted on validation
	var count int64
	db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteSession(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	session, err := CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)

	require.NoError(t, DeleteSession(db, session.Token))

	_, err = ValidateSession(db, session.Token)
	assert.Error(t, err)

	// Deleting a missing token is not an error
	assert.NoError(t, DeleteSession(db, session.Token))
}

func TestCleanupExpiredSessions(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	live, err := CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)
	stale, err := CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Session{}).
		Where("id = ?", stale.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	require.NoError(t, CleanupExpiredSessions(db))

	var remaining []models.Session
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, live.ID, remaining[0].ID)
}

func TestDeleteAllActorSessions(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)

	_, err := CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)
	_, err = CreateSession(db, resident.Ref(), "", "")
	require.NoError(t, err)
	staffSession, err := CreateSession(db, staff.Ref(), "", "")
	require.NoError(t, err)

	require.NoError(t, DeleteAllActorSessions(db, resident.Ref()))

	var remaining []models.Session
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, staffSession.ID, remaining[0].ID)
}
