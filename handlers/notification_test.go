package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// useTestDB swaps the package-global connection for an in-memory database
// and restores it when the test ends.
func useTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.Resident{},
		&models.StaffAdmin{},
		&models.Session{},
		&models.Complaint{},
		&models.ComplaintAttachment{},
		&models.AssistanceRequest{},
		&models.AssistanceAttachment{},
		&models.Notification{},
		&models.ActivityLog{},
	))

	previous := db.DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = previous })
	return testDB
}

func newTestContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedResident(t *testing.T, testDB *gorm.DB) *models.Resident {
	t.Helper()
	hash, err := services.HashPassword("password123")
	require.NoError(t, err)
	resident := &models.Resident{
		FirstName:  "Juan",
		LastName:   "Dela Cruz",
		Email:      "juan@example.com",
		Phone:      "09171234567",
		Address:    "123 Mabini St",
		Password:   hash,
		IsVerified: true,
	}
	require.NoError(t, testDB.Create(resident).Error)
	return resident
}

func TestHealthHandler(t *testing.T) {
	useTestDB(t)
	c, rec := newTestContext(t, http.MethodGet, "/health")

	require.NoError(t, HealthHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUnreadCountHandler(t *testing.T) {
	testDB := useTestDB(t)
	resident := seedResident(t, testDB)

	notifications := services.NewNotificationService(testDB)
	for i := 0; i < 3; i++ {
		require.NoError(t, notifications.Create(&models.Notification{
			RecipientKind: models.ActorKindResident,
			RecipientID:   resident.ID,
			Title:         "Test",
			Message:       "Test message",
		}))
	}

	c, rec := newTestContext(t, http.MethodGet, "/notifications/unread-count")
	c.Set(middleware.ContextKeyResident, resident)

	require.NoError(t, UnreadCountHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body["unread"])
}

func TestUnreadCountHandlerUnauthenticated(t *testing.T) {
	useTestDB(t)
	c, _ := newTestContext(t, http.MethodGet, "/notifications/unread-count")

	err := UnreadCountHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestMarkNotificationReadHandlerScopedToRecipient(t *testing.T) {
	testDB := useTestDB(t)
	owner := seedResident(t, testDB)

	other := &models.Resident{
		FirstName: "Maria", LastName: "Santos",
		Email: "maria@example.com", Phone: "09181234567",
		Address: "456 Rizal St", Password: owner.Password, IsVerified: true,
	}
	require.NoError(t, testDB.Create(other).Error)

	notifications := services.NewNotificationService(testDB)
	n := &models.Notification{
		RecipientKind: models.ActorKindResident,
		RecipientID:   owner.ID,
		Title:         "Test",
		Message:       "Test message",
	}
	require.NoError(t, notifications.Create(n))

	// Another resident cannot see the notification at all
	c, _ := newTestContext(t, http.MethodPost, "/notifications/1/read")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", n.ID))
	c.Set(middleware.ContextKeyResident, other)
	err := MarkNotificationReadHandler(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	var saved models.Notification
	require.NoError(t, testDB.First(&saved, n.ID).Error)
	assert.False(t, saved.IsRead)

	c, _ = newTestContext(t, http.MethodPost, "/notifications/1/read")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", n.ID))
	c.Set(middleware.ContextKeyResident, owner)
	require.NoError(t, MarkNotificationReadHandler(c))

	require.NoError(t, testDB.First(&saved, n.ID).Error)
	assert.True(t, saved.IsRead)
}
