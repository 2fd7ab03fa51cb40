package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"gorm.io/gorm"
)

// SMS delivery statuses recorded in sms_logs
const (
	SMSStatusSent   = "sent"
	SMSStatusFailed = "failed"
)

var (
	// ErrSMSNotConfigured means no gateway API key is set.
	ErrSMSNotConfigured = errors.New("SMS service not configured")
	// ErrSMSNoRecipient means the recipient phone number is missing.
	ErrSMSNoRecipient = errors.New("recipient phone number is required")
	// ErrSMSEmptyMessage means the message body is empty.
	ErrSMSEmptyMessage = errors.New("message content is required")
)

// SMSService sends text messages through the Semaphore gateway and records
// every attempt in sms_logs.
type SMSService struct {
	DB         *gorm.DB
	APIKey     string
	SenderName string
	Endpoint   string
	Client     *http.Client
}

func NewSMSService(db *gorm.DB, cfg *config.Config) *SMSService {
	return &SMSService{
		DB:         db,
		APIKey:     cfg.SMSAPIKey,
		SenderName: cfg.SMSSenderName,
		Endpoint:   cfg.SMSEndpoint,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether the gateway credentials are present.
func (s *SMSService) IsConfigured() bool {
	return s.APIKey != ""
}

// NormalizePhoneNumber cleans a number into +63 Philippine format.
func NormalizePhoneNumber(recipient string) string {
	recipient = strings.ReplaceAll(recipient, " ", "")
	recipient = strings.ReplaceAll(recipient, "-", "")

	switch {
	case strings.HasPrefix(recipient, "0"):
		return "+63" + recipient[1:]
	case strings.HasPrefix(recipient, "+63"):
		return recipient
	default:
		return "+63" + recipient
	}
}

// Message formatting helpers

// FormatComplaintAlert formats a complaint status update text.
func FormatComplaintAlert(complaintID uint, title, status string) string {
	return fmt.Sprintf("Barangay Portal Alert:\nComplaint #%d - %s\nStatus: %s\nCheck your account for details.",
		complaintID, title, strings.ToUpper(status))
}

// FormatAssistanceAlert formats an assistance request status update text.
func FormatAssistanceAlert(assistanceID uint, title, status string) string {
	return fmt.Sprintf("Barangay Portal Alert:\nAssistance #%d - %s\nStatus: %s\nCheck your account for details.",
		assistanceID, title, strings.ToUpper(status))
}

// FormatResolvedCase formats the text sent when a case is resolved.
func FormatResolvedCase(caseID uint, subject string) string {
	return fmt.Sprintf("Case Resolved:\nCase #%d - %s\nYour case has been marked as resolved. Login to your account for more details. Thank you!",
		caseID, subject)
}

// FormatGeneralAlert formats a general notification text.
func FormatGeneralAlert(title, message string) string {
	return fmt.Sprintf("Barangay Portal:\n%s\n%s", title, message)
}

// FormatEmergencyAlert formats an emergency broadcast text.
func FormatEmergencyAlert(message string) string {
	return fmt.Sprintf("EMERGENCY ALERT - Barangay Portal:\n%s", message)
}

// semaphoreResponse is the subset of the gateway response we keep. The API
// returns either a single object or a list with one element.
type semaphoreResponse struct {
	MessageID json.Number `json:"message_id"`
	Status    string      `json:"status"`
	Network   string      `json:"network"`
	Message   string      `json:"message"`
}

// Send delivers one text message. Every attempt is recorded in sms_logs,
// including failures; a log insert failure never fails the send.
func (s *SMSService) Send(recipient, message string) error {
	if !s.IsConfigured() {
		log.Println("[SMS] gateway not configured, skipping send")
		return ErrSMSNotConfigured
	}
	if recipient == "" {
		return ErrSMSNoRecipient
	}
	if strings.TrimSpace(message) == "" {
		return ErrSMSEmptyMessage
	}

	recipient = NormalizePhoneNumber(recipient)

	form := url.Values{}
	form.Set("apikey", s.APIKey)
	form.Set("number", recipient)
	form.Set("message", message)
	if s.SenderName != "" {
		form.Set("sendername", s.SenderName)
	}

	resp, err := s.Client.PostForm(s.Endpoint, form)
	if err != nil {
		s.logAttempt(recipient, message, SMSStatusFailed, "", err.Error())
		return fmt.Errorf("failed to reach SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logAttempt(recipient, message, SMSStatusFailed, "", err.Error())
		return fmt.Errorf("failed to read SMS gateway response: %w", err)
	}

	parsed := parseGatewayResponse(body)

	if resp.StatusCode != http.StatusOK {
		s.logAttempt(recipient, message, SMSStatusFailed, parsed.Network, string(body))
		errMsg := parsed.Message
		if errMsg == "" {
			errMsg = strings.TrimSpace(string(body))
		}
		return fmt.Errorf("SMS gateway returned HTTP %d: %s", resp.StatusCode, errMsg)
	}

	s.logAttempt(recipient, message, SMSStatusSent, parsed.Network, string(body))
	log.Printf("[SMS] sent to %s", recipient)
	return nil
}

// parseGatewayResponse handles both the object and the single-element list
// shapes the gateway responds with.
func parseGatewayResponse(body []byte) semaphoreResponse {
	var single semaphoreResponse
	if err := json.Unmarshal(body, &single); err == nil {
		return single
	}
	var list []semaphoreResponse
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return semaphoreResponse{}
}

func (s *SMSService) logAttempt(recipient, message, status, network, responseData string) {
	row := models.SMSLog{
		Recipient:    recipient,
		Message:      message,
		SenderName:   s.SenderName,
		Status:       status,
		Network:      network,
		ResponseData: responseData,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("[SMS] failed to save delivery log: %v", err)
	}
}

// ListLogs returns one page of SMS delivery logs, newest first.
func (s *SMSService) ListLogs(page, pageSize int) ([]models.SMSLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	var total int64
	if err := s.DB.Model(&models.SMSLog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count SMS logs: %w", err)
	}

	var logs []models.SMSLog
	err := s.DB.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list SMS logs: %w", err)
	}
	return logs, total, nil
}
