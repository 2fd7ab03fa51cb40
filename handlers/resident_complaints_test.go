package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"barangay_portal_go/config"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFormContext(t *testing.T, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedAdmin(t *testing.T, testDB *gorm.DB, username string) *models.StaffAdmin {
	t.Helper()
	admin := &models.StaffAdmin{
		Username:  username,
		Email:     username + "@barangay.gov.ph",
		Password:  "unused-hash",
		Role:      models.RoleAdmin,
		FirstName: "Ana",
		LastName:  "Reyes",
		IsActive:  true,
	}
	require.NoError(t, testDB.Create(admin).Error)
	return admin
}

// useLocalTestStorage swaps the global storage provider for a throwaway
// local directory and restores it when the test ends.
func useLocalTestStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	previous := services.Storage
	services.Storage = services.NewLocalStorage(dir)
	t.Cleanup(func() { services.Storage = previous })
	return dir
}

func seedPendingComplaint(t *testing.T, testDB *gorm.DB, residentID uint) *models.Complaint {
	t.Helper()
	complaint := &models.Complaint{
		UserID:              residentID,
		Title:               "Broken water pipe",
		Description:         "The pipe on our street has been leaking for two days",
		Category:            "sanitation",
		Priority:            models.PriorityMedium,
		Status:              models.ComplaintStatusPending,
		LocationDescription: "Corner of Mabini and Rizal",
		Address:             "123 Mabini St",
	}
	require.NoError(t, testDB.Create(complaint).Error)
	return complaint
}

func TestComplaintFollowUpNotifiesActiveAdmins(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)
	admin := seedAdmin(t, testDB, "admin1")
	inactive := seedAdmin(t, testDB, "admin2")
	require.NoError(t, testDB.Model(inactive).Update("is_active", false).Error)

	complaint := seedPendingComplaint(t, testDB, resident.ID)

	c, _ := newTestFormContext(t, fmt.Sprintf("/complaints/%d/follow-up", complaint.ID),
		url.Values{"message": {"Any update on this? The leak is getting worse."}})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", complaint.ID))
	c.Set(middleware.ContextKeyResident, resident)
	c.Set("config", &config.Config{})

	require.NoError(t, ComplaintFollowUpHandler(c))

	// A medium-priority follow-up still reaches every active admin
	var notifs []models.Notification
	require.NoError(t, testDB.
		Where("recipient_kind = ? AND recipient_id = ?", models.ActorKindAdmin, admin.ID).
		Find(&notifs).Error)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.ActionCommented, notifs[0].ActionType)
	assert.Contains(t, notifs[0].Title, "Follow-Up")

	var count int64
	testDB.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", models.ActorKindAdmin, inactive.ID).
		Count(&count)
	assert.Equal(t, int64(0), count)

	// Without a classifier the priority stays; the message lands in the description
	var saved models.Complaint
	require.NoError(t, testDB.First(&saved, complaint.ID).Error)
	assert.Contains(t, saved.Description, "[Follow-up] Any update on this?")
	assert.Equal(t, models.PriorityMedium, saved.Priority)
}

func TestDeleteComplaintRemovesStoredAttachments(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)
	dir := useLocalTestStorage(t)

	complaint := seedPendingComplaint(t, testDB, resident.ID)

	key := services.GenerateComplaintAttachmentKey(complaint.ID, "evidence.jpg")
	_, err := services.Storage.UploadReader(context.Background(),
		strings.NewReader("photo"), key, "image/jpeg", 5)
	require.NoError(t, err)
	require.NoError(t, testDB.Create(&models.ComplaintAttachment{
		ComplaintID: complaint.ID,
		StorageKey:  key,
		FileName:    "evidence.jpg",
		FileSize:    5,
		ContentType: "image/jpeg",
	}).Error)

	c, _ := newTestContext(t, http.MethodPost, fmt.Sprintf("/complaints/%d/delete", complaint.ID))
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", complaint.ID))
	c.Set(middleware.ContextKeyResident, resident)

	require.NoError(t, DeleteComplaintHandler(c))

	var count int64
	testDB.Model(&models.Complaint{}).Count(&count)
	assert.Equal(t, int64(0), count)

	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))
}
