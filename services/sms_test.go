package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09171234567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"9171234567", "+639171234567"},
		{"0917 123 4567", "+639171234567"},
		{"0917-123-4567", "+639171234567"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhoneNumber(tc.in), "in=%q", tc.in)
	}
}

func TestFormatHelpers(t *testing.T) {
	msg := FormatComplaintAlert(42, "Noise complaint", "resolved")
	assert.Contains(t, msg, "Complaint #42")
	assert.Contains(t, msg, "RESOLVED")

	msg = FormatAssistanceAlert(7, "Medical aid", "approved")
	assert.Contains(t, msg, "Assistance #7")
	assert.Contains(t, msg, "APPROVED")

	msg = FormatResolvedCase(13, "Streetlight repair")
	assert.Contains(t, msg, "Case #13")
	assert.Contains(t, msg, "resolved")

	msg = FormatEmergencyAlert("Typhoon signal no. 3")
	assert.Contains(t, msg, "EMERGENCY ALERT")
	assert.Contains(t, msg, "Typhoon signal no. 3")
}

func newTestSMSService(t *testing.T, handler http.HandlerFunc) *SMSService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	db := setupTestDB(t)
	return NewSMSService(db, &config.Config{
		SMSAPIKey:     "test-key",
		SMSSenderName: "TEST",
		SMSEndpoint:   server.URL,
	})
}

func TestSendSuccessLogsDelivery(t *testing.T) {
	var gotNumber, gotMessage, gotKey string
	svc := newTestSMSService(t, func(w http.ResponseWriter, r *http.Request) {
		gotNumber = r.PostFormValue("number")
		gotMessage = r.PostFormValue("message")
		gotKey = r.PostFormValue("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"message_id":123,"status":"Pending","network":"Globe"}]`))
	})

	err := svc.Send("09171234567", "Test message")
	require.NoError(t, err)
	assert.Equal(t, "+639171234567", gotNumber)
	assert.Equal(t, "Test message", gotMessage)
	assert.Equal(t, "test-key", gotKey)

	var logs []models.SMSLog
	require.NoError(t, svc.DB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, SMSStatusSent, logs[0].Status)
	assert.Equal(t, "+639171234567", logs[0].Recipient)
	assert.Equal(t, "Globe", logs[0].Network)
}

func TestSendGatewayErrorLogsFailure(t *testing.T) {
	svc := newTestSMSService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid API key"}`))
	})

	err := svc.Send("09171234567", "Test message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Contains(t, err.Error(), "Invalid API key")

	var logs []models.SMSLog
	require.NoError(t, svc.DB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, SMSStatusFailed, logs[0].Status)
}

func TestSendValidation(t *testing.T) {
	db := setupTestDB(t)

	unconfigured := NewSMSService(db, &config.Config{})
	assert.ErrorIs(t, unconfigured.Send("09171234567", "hello"), ErrSMSNotConfigured)

	svc := NewSMSService(db, &config.Config{SMSAPIKey: "key", SMSEndpoint: "http://unused.invalid"})
	assert.ErrorIs(t, svc.Send("", "hello"), ErrSMSNoRecipient)
	assert.ErrorIs(t, svc.Send("09171234567", "   "), ErrSMSEmptyMessage)

	// Validation failures never write delivery logs
	var count int64
	db.Model(&models.SMSLog{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestParseGatewayResponse(t *testing.T) {
	parsed := parseGatewayResponse([]byte(`{"message_id":1,"status":"Sent","network":"Smart"}`))
	assert.Equal(t, "Smart", parsed.Network)

	parsed = parseGatewayResponse([]byte(`[{"message_id":2,"status":"Sent","network":"Globe"}]`))
	assert.Equal(t, "Globe", parsed.Network)

	parsed = parseGatewayResponse([]byte(`not json at all`))
	assert.Equal(t, "", parsed.Network)
}

func TestListLogsPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSMSService(db, &config.Config{SMSAPIKey: "key"})

	for i := 0; i < 7; i++ {
		require.NoError(t, db.Create(&models.SMSLog{
			Recipient: "+639171234567",
			Message:   "msg",
			Status:    SMSStatusSent,
		}).Error)
	}

	logs, total, err := svc.ListLogs(1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, logs, 5)

	logs, _, err = svc.ListLogs(2, 5)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
