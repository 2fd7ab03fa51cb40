package services

import (
	"fmt"
	"testing"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a unique in-memory database per test so tests can run
// in parallel without sharing state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Resident{},
		&models.StaffAdmin{},
		&models.Session{},
		&models.Complaint{},
		&models.ComplaintAttachment{},
		&models.AssistanceRequest{},
		&models.AssistanceAttachment{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.Feedback{},
		&models.ForumPost{},
		&models.PostReaction{},
		&models.PostComment{},
		&models.CommentReaction{},
		&models.SMSLog{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		EmailFrom:     "noreply@test.local",
		EmailFromName: "Test Portal",
		EmailTestMode: true,
		SMSSenderName: "TEST",
	}
}

func createTestResident(t *testing.T, db *gorm.DB, email string) *models.Resident {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	resident := &models.Resident{
		FirstName:  "Juan",
		LastName:   "Dela Cruz",
		Email:      email,
		Phone:      "09171234567",
		Address:    "123 Mabini St",
		Password:   hash,
		IsVerified: true,
	}
	require.NoError(t, db.Create(resident).Error)
	return resident
}

func createTestStaff(t *testing.T, db *gorm.DB, username, role string) *models.StaffAdmin {
	t.Helper()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	staff := &models.StaffAdmin{
		Username:  username,
		Email:     username + "@barangay.local",
		Password:  hash,
		Role:      role,
		Position:  "Clerk",
		FirstName: "Maria",
		LastName:  "Santos",
		IsActive:  true,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func createTestComplaint(t *testing.T, db *gorm.DB, owner *models.Resident) *models.Complaint {
	t.Helper()
	complaint := &models.Complaint{
		UserID:              owner.ID,
		Title:               "Uncollected garbage",
		Description:         "Garbage has not been collected for two weeks",
		Category:            "sanitation",
		Priority:            models.PriorityMedium,
		Status:              models.ComplaintStatusPending,
		LocationDescription: "Corner of Mabini and Rizal",
		Address:             "123 Mabini St",
	}
	require.NoError(t, db.Create(complaint).Error)
	return complaint
}

func createTestAssistance(t *testing.T, db *gorm.DB, owner *models.Resident) *models.AssistanceRequest {
	t.Helper()
	request := &models.AssistanceRequest{
		UserID:      owner.ID,
		Title:       "Medical assistance needed",
		Description: "Need help with medication costs",
		Type:        models.AssistanceTypeMedical,
		Urgency:     models.UrgencyMedium,
		Status:      models.AssistanceStatusPending,
		Address:     "123 Mabini St",
	}
	require.NoError(t, db.Create(request).Error)
	return request
}
