package services

import (
	"testing"
	"time"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyNewCaseFiledFansOutToActiveAdminsOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin1 := createTestStaff(t, db, "admin1", models.RoleAdmin)
	admin2 := createTestStaff(t, db, "admin2", models.RoleAdmin)
	createTestStaff(t, db, "clerk1", models.RoleStaff)

	inactive := createTestStaff(t, db, "admin3", models.RoleAdmin)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	complaint := createTestComplaint(t, db, resident)

	created, err := svc.NotifyNewCaseFiled(complaint, resident)
	require.NoError(t, err)
	require.Len(t, created, 2)

	recipients := map[uint]bool{}
	for _, n := range created {
		assert.Equal(t, models.ActorKindAdmin, n.RecipientKind)
		assert.Equal(t, models.NotificationTypeNewComplaint, n.NotificationType)
		assert.Equal(t, models.ActionCreated, n.ActionType)
		require.NotNil(t, n.RelatedComplaintID)
		assert.Equal(t, complaint.ID, *n.RelatedComplaintID)
		assert.Nil(t, n.RelatedAssistanceID)
		recipients[n.RecipientID] = true
	}
	assert.True(t, recipients[admin1.ID])
	assert.True(t, recipients[admin2.ID])
}

func TestNotifyNewCaseFiledAssistanceType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	resident := createTestResident(t, db, "juan@example.com")
	createTestStaff(t, db, "admin1", models.RoleAdmin)
	request := createTestAssistance(t, db, resident)

	created, err := svc.NotifyNewCaseFiled(request, resident)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, models.NotificationTypeNewAssistance, created[0].NotificationType)
	require.NotNil(t, created[0].RelatedAssistanceID)
	assert.Equal(t, request.ID, *created[0].RelatedAssistanceID)
}

func TestNotifyCaseFollowUpReachesActiveAdminsAtAnyPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	resident := createTestResident(t, db, "juan@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)
	createTestStaff(t, db, "clerk1", models.RoleStaff)

	inactive := createTestStaff(t, db, "admin2", models.RoleAdmin)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	complaint := createTestComplaint(t, db, resident)

	created, err := svc.NotifyCaseFollowUp(complaint, resident)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, admin.ID, created[0].RecipientID)
	assert.Equal(t, models.ActorKindAdmin, created[0].RecipientKind)
	assert.Equal(t, models.ActionCommented, created[0].ActionType)
	assert.Equal(t, models.NotificationPriorityNormal, created[0].Priority)
	assert.Contains(t, created[0].Title, "Follow-Up on Complaint")
}

func TestNotifyUrgentCaseSkipsLowPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	resident := createTestResident(t, db, "juan@example.com")
	createTestStaff(t, db, "admin1", models.RoleAdmin)

	complaint := createTestComplaint(t, db, resident) // medium priority
	created, err := svc.NotifyUrgentCase(complaint, resident.Ref())
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestNotifyUrgentCaseFansOutToAllActiveAccounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	resident := createTestResident(t, db, "juan@example.com")
	createTestStaff(t, db, "admin1", models.RoleAdmin)
	createTestStaff(t, db, "clerk1", models.RoleStaff)
	inactive := createTestStaff(t, db, "clerk2", models.RoleStaff)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	complaint := createTestComplaint(t, db, resident)
	require.NoError(t, db.Model(complaint).Update("priority", models.PriorityUrgent).Error)
	complaint.Priority = models.PriorityUrgent

	created, err := svc.NotifyUrgentCase(complaint, resident.Ref())
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, n := range created {
		assert.Equal(t, models.NotificationTypeUrgentCase, n.NotificationType)
		assert.Equal(t, models.NotificationPriorityUrgent, n.Priority)
	}
}

func TestNotificationRejectsBothRelatedCases(t *testing.T) {
	db := setupTestDB(t)

	resident := createTestResident(t, db, "juan@example.com")
	complaint := createTestComplaint(t, db, resident)
	request := createTestAssistance(t, db, resident)

	n := &models.Notification{
		RecipientKind:       models.ActorKindResident,
		RecipientID:         resident.ID,
		Title:               "bad",
		Message:             "bad",
		RelatedComplaintID:  &complaint.ID,
		RelatedAssistanceID: &request.ID,
	}
	err := db.Create(n).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotificationCaseConflict)
}

func TestNotificationRejectsInvalidRecipient(t *testing.T) {
	db := setupTestDB(t)

	err := db.Create(&models.Notification{
		RecipientKind: models.ActorKindResident,
		RecipientID:   0,
		Title:         "bad",
		Message:       "bad",
	}).Error
	require.Error(t, err)

	err = db.Create(&models.Notification{
		RecipientKind: "robot",
		RecipientID:   1,
		Title:         "bad",
		Message:       "bad",
	}).Error
	require.Error(t, err)
}

func seedNotification(t *testing.T, svc *NotificationService, recipient models.ActorRef, title string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		RecipientKind: recipient.Kind,
		RecipientID:   recipient.ID,
		Title:         title,
		Message:       "message body",
	}
	require.NoError(t, svc.Create(n))
	return n
}

func TestMarkAsReadIsRecipientScopedAndIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	other := createTestResident(t, db, "other@example.com")

	n := seedNotification(t, svc, owner.Ref(), "hello")

	// Another resident cannot mark it read
	require.NoError(t, svc.MarkAsRead(n.ID, other.Ref()))
	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.False(t, reloaded.IsRead)

	require.NoError(t, svc.MarkAsRead(n.ID, owner.Ref()))
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.True(t, reloaded.IsRead)

	// Second call is a no-op
	require.NoError(t, svc.MarkAsRead(n.ID, owner.Ref()))
}

func TestMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	seedNotification(t, svc, owner.Ref(), "one")
	seedNotification(t, svc, owner.Ref(), "two")
	read := seedNotification(t, svc, owner.Ref(), "three")
	require.NoError(t, svc.MarkAsRead(read.ID, owner.Ref()))

	affected, err := svc.MarkAllAsRead(owner.Ref())
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	count, err := svc.UnreadCount(owner.Ref())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestArchiveStampsTimestampOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	n := seedNotification(t, svc, owner.Ref(), "stale")

	require.NoError(t, svc.Archive(n.ID, owner.Ref()))

	var first models.Notification
	require.NoError(t, db.First(&first, n.ID).Error)
	require.True(t, first.IsArchived)
	require.NotNil(t, first.ArchivedAt)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.Archive(n.ID, owner.Ref()))

	var second models.Notification
	require.NoError(t, db.First(&second, n.ID).Error)
	require.NotNil(t, second.ArchivedAt)
	assert.Equal(t, first.ArchivedAt.UnixNano(), second.ArchivedAt.UnixNano())
}

func TestArchiveOlderThan(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	old := seedNotification(t, svc, owner.Ref(), "old")
	recent := seedNotification(t, svc, owner.Ref(), "recent")

	require.NoError(t, db.Model(&models.Notification{}).
		Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -45)).Error)

	archived, err := svc.ArchiveOlderThan(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), archived)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, old.ID).Error)
	assert.True(t, reloaded.IsArchived)
	require.NoError(t, db.First(&reloaded, recent.ID).Error)
	assert.False(t, reloaded.IsArchived)
}

func TestListHidesArchivedByDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	visible := seedNotification(t, svc, owner.Ref(), "visible")
	archived := seedNotification(t, svc, owner.Ref(), "archived")
	require.NoError(t, svc.Archive(archived.ID, owner.Ref()))

	list, total, err := svc.List(owner.Ref(), NotificationFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, visible.ID, list[0].ID)

	list, total, err = svc.List(owner.Ref(), NotificationFilters{Status: "archived"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, archived.ID, list[0].ID)
}

func TestListStatusFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestResident(t, db, "owner@example.com")
	unread := seedNotification(t, svc, owner.Ref(), "unread")
	read := seedNotification(t, svc, owner.Ref(), "read")
	require.NoError(t, svc.MarkAsRead(read.ID, owner.Ref()))

	list, _, err := svc.List(owner.Ref(), NotificationFilters{Status: "unread"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, unread.ID, list[0].ID)

	list, _, err = svc.List(owner.Ref(), NotificationFilters{Status: "read"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, read.ID, list[0].ID)
}
