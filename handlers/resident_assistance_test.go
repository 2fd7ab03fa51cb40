package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"barangay_portal_go/config"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPendingAssistance(t *testing.T, testDB *gorm.DB, residentID uint) *models.AssistanceRequest {
	t.Helper()
	request := &models.AssistanceRequest{
		UserID:      residentID,
		Title:       "Medicine for my father",
		Description: "Requesting help with maintenance medicine",
		Type:        models.AssistanceTypeMedical,
		Urgency:     models.UrgencyMedium,
		Status:      models.AssistanceStatusPending,
		Address:     "123 Mabini St",
	}
	require.NoError(t, testDB.Create(request).Error)
	return request
}

func TestAssistanceFollowUpNotifiesActiveAdmins(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)
	admin := seedAdmin(t, testDB, "admin1")

	request := seedPendingAssistance(t, testDB, resident.ID)

	c, _ := newTestFormContext(t, fmt.Sprintf("/assistance/%d/follow-up", request.ID),
		url.Values{"message": {"The prescription has changed, please see the update."}})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", request.ID))
	c.Set(middleware.ContextKeyResident, resident)
	c.Set("config", &config.Config{})

	require.NoError(t, AssistanceFollowUpHandler(c))

	var notifs []models.Notification
	require.NoError(t, testDB.
		Where("recipient_kind = ? AND recipient_id = ?", models.ActorKindAdmin, admin.ID).
		Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationTypeNewAssistance, notifs[0].NotificationType)
	assert.Equal(t, models.ActionCommented, notifs[0].ActionType)

	var saved models.AssistanceRequest
	require.NoError(t, testDB.First(&saved, request.ID).Error)
	assert.Contains(t, saved.Description, "[Follow-up] The prescription has changed")
	assert.Equal(t, models.UrgencyMedium, saved.Urgency)
}

func TestAssistanceFollowUpRejectedWhenClosed(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)
	seedAdmin(t, testDB, "admin1")

	request := seedPendingAssistance(t, testDB, resident.ID)
	require.NoError(t, testDB.Model(request).Update("status", models.AssistanceStatusCompleted).Error)

	c, _ := newTestFormContext(t, fmt.Sprintf("/assistance/%d/follow-up", request.ID),
		url.Values{"message": {"One more thing"}})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", request.ID))
	c.Set(middleware.ContextKeyResident, resident)
	c.Set("config", &config.Config{})

	require.NoError(t, AssistanceFollowUpHandler(c))

	var count int64
	testDB.Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)

	var saved models.AssistanceRequest
	require.NoError(t, testDB.First(&saved, request.ID).Error)
	assert.NotContains(t, saved.Description, "[Follow-up]")
}

func TestDeleteAssistanceRemovesStoredAttachments(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)
	dir := useLocalTestStorage(t)

	request := seedPendingAssistance(t, testDB, resident.ID)

	key := services.GenerateAssistanceAttachmentKey(request.ID, "certificate.pdf")
	_, err := services.Storage.UploadReader(context.Background(),
		strings.NewReader("%PDF-1.4"), key, "application/pdf", 8)
	require.NoError(t, err)
	require.NoError(t, testDB.Create(&models.AssistanceAttachment{
		AssistanceRequestID: request.ID,
		StorageKey:          key,
		FileName:            "certificate.pdf",
		FileSize:            8,
		ContentType:         "application/pdf",
	}).Error)

	c, _ := newTestContext(t, http.MethodPost, fmt.Sprintf("/assistance/%d/delete", request.ID))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", request.ID))
	c.Set(middleware.ContextKeyResident, resident)

	require.NoError(t, DeleteAssistanceHandler(c))

	var count int64
	testDB.Model(&models.AssistanceRequest{}).Count(&count)
	assert.Equal(t, int64(0), count)

	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
}
