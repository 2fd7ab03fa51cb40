package models

import (
	"time"
)

// SMSLog records one outbound text message sent through the SMS gateway,
// including the raw gateway response for troubleshooting.
type SMSLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Recipient  string `gorm:"not null" json:"recipient"` // Normalized +63 number
	Message    string `gorm:"type:text;not null" json:"message"`
	SenderName string `json:"sender_name"`

	Status       string `gorm:"not null;default:pending" json:"status"` // pending, sent, failed
	Network      string `json:"network"`
	ResponseData string `gorm:"type:text" json:"response_data"` // Raw gateway response JSON
}

func (SMSLog) TableName() string {
	return "sms_logs"
}
