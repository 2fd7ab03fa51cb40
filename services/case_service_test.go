package services

import (
	"testing"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusAsStaffRequiresAssignee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)

	_, err := svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusInProgress, "")
	assert.ErrorIs(t, err, ErrNotAssignee)
}

func TestUpdateStatusAsStaffRejectsReservedStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)
	require.NoError(t, db.Model(complaint).Update("assigned_to_id", staff.ID).Error)

	// "assigned" is reserved for the admin assign flow
	_, err := svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusAssigned, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, "bogus", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusAsStaffInvalidCaseType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)

	_, err := svc.UpdateStatusAsStaff("petition", 1, staff, models.ComplaintStatusResolved, "")
	assert.ErrorIs(t, err, ErrInvalidCaseType)
}

func TestUpdateStatusAsStaffResolvesOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)
	require.NoError(t, db.Model(complaint).Update("assigned_to_id", staff.ID).Error)

	result, err := svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusResolved, "fixed it")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusPending, result.OldStatus)
	assert.True(t, result.Resolved)

	var saved models.Complaint
	require.NoError(t, db.First(&saved, complaint.ID).Error)
	require.NotNil(t, saved.ResolvedAt)
	firstResolvedAt := *saved.ResolvedAt
	assert.Contains(t, saved.AdminRemarks, "fixed it")

	// Reopen, then resolve again: timestamp stays, Resolved is not reported
	_, err = svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusInProgress, "")
	require.NoError(t, err)

	result, err = svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusResolved, "")
	require.NoError(t, err)
	assert.False(t, result.Resolved)

	require.NoError(t, db.First(&saved, complaint.ID).Error)
	require.NotNil(t, saved.ResolvedAt)
	assert.Equal(t, firstResolvedAt.UnixNano(), saved.ResolvedAt.UnixNano())
}

func TestUpdateStatusAsStaffNotifiesResident(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)
	require.NoError(t, db.Model(complaint).Update("assigned_to_id", staff.ID).Error)

	_, err := svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusInProgress, "")
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, db.Where("recipient_kind = ? AND recipient_id = ?",
		models.ActorKindResident, resident.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeStatusUpdate, notifications[0].NotificationType)
	require.NotNil(t, notifications[0].RelatedComplaintID)
	assert.Equal(t, complaint.ID, *notifications[0].RelatedComplaintID)

	// Setting the same status again does not notify
	_, err = svc.UpdateStatusAsStaff(CaseTypeComplaint, complaint.ID, staff, models.ComplaintStatusInProgress, "")
	require.NoError(t, err)

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", models.ActorKindResident, resident.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAssignCaseSetsAssigneeAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)

	require.NoError(t, svc.AssignCase(CaseTypeComplaint, complaint.ID, staff.ID, admin))

	var saved models.Complaint
	require.NoError(t, db.First(&saved, complaint.ID).Error)
	assert.Equal(t, models.ComplaintStatusAssigned, saved.Status)
	require.NotNil(t, saved.AssignedToID)
	assert.Equal(t, staff.ID, *saved.AssignedToID)
	require.NotNil(t, saved.AssignedByID)
	assert.Equal(t, admin.ID, *saved.AssignedByID)

	var notifications []models.Notification
	require.NoError(t, db.Where("recipient_kind = ? AND recipient_id = ?",
		models.ActorKindStaff, staff.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeAssignment, notifications[0].NotificationType)
	assert.Equal(t, models.ActionAssigned, notifications[0].ActionType)
}

func TestAssignCaseReassignmentNotifiesBothParties(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	first := createTestStaff(t, db, "clerk1", models.RoleStaff)
	second := createTestStaff(t, db, "clerk2", models.RoleStaff)
	request := createTestAssistance(t, db, resident)

	require.NoError(t, svc.AssignCase(CaseTypeAssistance, request.ID, first.ID, admin))
	require.NoError(t, svc.AssignCase(CaseTypeAssistance, request.ID, second.ID, admin))

	var saved models.AssistanceRequest
	require.NoError(t, db.First(&saved, request.ID).Error)
	require.NotNil(t, saved.AssignedToID)
	assert.Equal(t, second.ID, *saved.AssignedToID)

	var reassigned []models.Notification
	require.NoError(t, db.Where("action_type = ?", models.ActionReassigned).Find(&reassigned).Error)
	require.Len(t, reassigned, 2)

	recipients := map[uint]bool{}
	for _, n := range reassigned {
		recipients[n.RecipientID] = true
	}
	assert.True(t, recipients[first.ID])
	assert.True(t, recipients[second.ID])
}

func TestAssignCaseRejectsInactiveStaff(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	require.NoError(t, db.Model(staff).Update("is_active", false).Error)
	complaint := createTestComplaint(t, db, resident)

	err := svc.AssignCase(CaseTypeComplaint, complaint.ID, staff.ID, admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found or inactive")
}

func TestUpdateStatusAsAdminAllowsFullStatusSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	complaint := createTestComplaint(t, db, resident)

	// Admin may set "assigned" directly, staff may not
	result, err := svc.UpdateStatusAsAdmin(CaseTypeComplaint, complaint.ID, admin, models.ComplaintStatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusPending, result.OldStatus)
	assert.False(t, result.Resolved)

	_, err = svc.UpdateStatusAsAdmin(CaseTypeComplaint, complaint.ID, admin, "bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusAsAdminCompletesAssistanceOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	request := createTestAssistance(t, db, resident)

	result, err := svc.UpdateStatusAsAdmin(CaseTypeAssistance, request.ID, admin, models.AssistanceStatusCompleted)
	require.NoError(t, err)
	assert.True(t, result.Resolved)

	var saved models.AssistanceRequest
	require.NoError(t, db.First(&saved, request.ID).Error)
	require.NotNil(t, saved.CompletedAt)
	firstCompletedAt := *saved.CompletedAt

	_, err = svc.UpdateStatusAsAdmin(CaseTypeAssistance, request.ID, admin, models.AssistanceStatusInProgress)
	require.NoError(t, err)

	result, err = svc.UpdateStatusAsAdmin(CaseTypeAssistance, request.ID, admin, models.AssistanceStatusCompleted)
	require.NoError(t, err)
	assert.False(t, result.Resolved)

	require.NoError(t, db.First(&saved, request.ID).Error)
	require.NotNil(t, saved.CompletedAt)
	assert.Equal(t, firstCompletedAt.UnixNano(), saved.CompletedAt.UnixNano())
}

func TestAddNotesAsStaff(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCaseService(db)

	resident := createTestResident(t, db, "juan@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)
	complaint := createTestComplaint(t, db, resident)

	err := svc.AddNotesAsStaff(CaseTypeComplaint, complaint.ID, staff, "checked the site")
	assert.ErrorIs(t, err, ErrNotAssignee)

	require.NoError(t, db.Model(complaint).Update("assigned_to_id", staff.ID).Error)
	require.NoError(t, svc.AddNotesAsStaff(CaseTypeComplaint, complaint.ID, staff, "checked the site"))

	var saved models.Complaint
	require.NoError(t, db.First(&saved, complaint.ID).Error)
	assert.Equal(t, "checked the site", saved.ResolutionNotes)

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", models.ActorKindResident, resident.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
