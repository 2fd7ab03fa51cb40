package services

import (
	"testing"
	"time"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogActivityRecordsDenormalizedActor(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")
	complaint := createTestComplaint(t, db, resident)

	row := LogActivity(db, resident, ActivityEntry{
		Type:         models.ActivityComplaintFiled,
		Category:     models.CategoryCaseManagement,
		Description:  "Filed a complaint",
		IsSuccessful: true,
		Metadata:     map[string]string{"category": "sanitation"},
		Complaint:    complaint,
	}, ActivityContext{IPAddress: "192.0.2.1", UserAgent: "test-agent"})

	require.NotNil(t, row)
	assert.Equal(t, models.ActorKindResident, row.ActorKind)
	assert.Equal(t, resident.ID, row.ActorID)
	assert.Equal(t, "Juan Dela Cruz", row.ActorName)
	assert.Equal(t, "juan@example.com", row.ActorEmail)
	assert.Contains(t, row.Metadata, "sanitation")
	require.NotNil(t, row.RelatedComplaintID)
	assert.Equal(t, complaint.ID, *row.RelatedComplaintID)
	assert.Equal(t, "192.0.2.1", row.IPAddress)
}

func TestLogActivityDefaultsCategory(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	row := LogActivity(db, resident, ActivityEntry{
		Type:        models.ActivityOther,
		Description: "Something happened",
	}, ActivityContext{})

	require.NotNil(t, row)
	assert.Equal(t, models.CategorySystem, row.ActivityCategory)
}

func TestActivityLogsAreImmutable(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	row := LogActivity(db, resident, ActivityEntry{
		Type:         models.ActivityLoginSuccess,
		Category:     models.CategoryAuthentication,
		Description:  "Successful login attempt",
		IsSuccessful: true,
	}, ActivityContext{})
	require.NotNil(t, row)

	err := db.Model(row).Update("description", "tampered").Error
	assert.ErrorIs(t, err, models.ErrActivityLogImmutable)

	err = db.Delete(row).Error
	assert.ErrorIs(t, err, models.ErrActivityLogImmutable)

	var saved models.ActivityLog
	require.NoError(t, db.First(&saved, row.ID).Error)
	assert.Equal(t, "Successful login attempt", saved.Description)
}

func TestLogLoginAttempt(t *testing.T) {
	db := setupTestDB(t)
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)

	LogLoginAttempt(db, staff, true, "", ActivityContext{})
	LogLoginAttempt(db, staff, false, "invalid password", ActivityContext{})

	var logs []models.ActivityLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, models.ActivityLoginSuccess, logs[0].ActivityType)
	assert.True(t, logs[0].IsSuccessful)
	assert.Equal(t, models.ActivityLoginFailed, logs[1].ActivityType)
	assert.False(t, logs[1].IsSuccessful)
	assert.Equal(t, "invalid password", logs[1].ErrorMessage)
	assert.Equal(t, models.ActorKindStaff, logs[0].ActorKind)
}

func TestGetActivityLogsFilters(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)

	LogLoginAttempt(db, resident, true, "", ActivityContext{})
	LogLogout(db, resident, ActivityContext{})
	LogActivity(db, staff, ActivityEntry{
		Type:         models.ActivityComplaintStatusChanged,
		Category:     models.CategoryCaseManagement,
		Description:  "Changed complaint status to resolved",
		IsSuccessful: true,
	}, ActivityContext{})

	logs, total, err := GetActivityLogs(db, ActivityLogFilters{}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)

	_, total, err = GetActivityLogs(db, ActivityLogFilters{ActorKind: models.ActorKindResident}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = GetActivityLogs(db, ActivityLogFilters{Category: models.CategoryCaseManagement}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = GetActivityLogs(db, ActivityLogFilters{Type: models.ActivityLogout}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	logs, total, err = GetActivityLogs(db, ActivityLogFilters{SearchQuery: "resolved"}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActivityComplaintStatusChanged, logs[0].ActivityType)

	_, total, err = GetActivityLogs(db, ActivityLogFilters{
		DateFrom: time.Now().Add(time.Hour),
	}, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestGetActivityLogsPagination(t *testing.T) {
	db := setupTestDB(t)
	resident := createTestResident(t, db, "juan@example.com")

	for i := 0; i < 7; i++ {
		LogLogout(db, resident, ActivityContext{})
	}

	logs, total, err := GetActivityLogs(db, ActivityLogFilters{}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, logs, 5)

	logs, _, err = GetActivityLogs(db, ActivityLogFilters{}, 2, 5)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
