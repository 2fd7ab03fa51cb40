package models

import (
	"time"
)

// ComplaintAttachment is an uploaded file backing a complaint. The object
// itself lives in storage under StorageKey; the row only keeps metadata.
type ComplaintAttachment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ComplaintID uint      `gorm:"not null;index" json:"complaint_id"`
	Complaint   Complaint `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"-"`

	StorageKey  string `gorm:"not null" json:"storage_key"`
	FileName    string `gorm:"not null" json:"file_name"` // Original upload name
	FileSize    int64  `gorm:"not null" json:"file_size"`
	ContentType string `json:"content_type"`
}

func (ComplaintAttachment) TableName() string {
	return "complaint_attachments"
}

// AssistanceAttachment is an uploaded file backing an assistance request.
type AssistanceAttachment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AssistanceRequestID uint              `gorm:"not null;index" json:"assistance_request_id"`
	AssistanceRequest   AssistanceRequest `gorm:"foreignKey:AssistanceRequestID;constraint:OnDelete:CASCADE" json:"-"`

	StorageKey  string `gorm:"not null" json:"storage_key"`
	FileName    string `gorm:"not null" json:"file_name"`
	FileSize    int64  `gorm:"not null" json:"file_size"`
	ContentType string `json:"content_type"`
}

func (AssistanceAttachment) TableName() string {
	return "assistance_attachments"
}
