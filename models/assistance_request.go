package models

import (
	"time"
)

// Assistance request types
const (
	AssistanceTypeMedical   = "medical"
	AssistanceTypeFinancial = "financial"
	AssistanceTypeLegal     = "legal"
	AssistanceTypeEmergency = "emergency"
	AssistanceTypeSocial    = "social"
	AssistanceTypeOther     = "other"
)

// Assistance urgency levels
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Assistance request statuses
const (
	AssistanceStatusPending    = "pending"
	AssistanceStatusApproved   = "approved"
	AssistanceStatusAssigned   = "assigned"
	AssistanceStatusInProgress = "in_progress"
	AssistanceStatusCompleted  = "completed"
	AssistanceStatusRejected   = "rejected"
)

// AssistanceTypes lists every valid assistance request type.
var AssistanceTypes = []string{
	AssistanceTypeMedical,
	AssistanceTypeFinancial,
	AssistanceTypeLegal,
	AssistanceTypeEmergency,
	AssistanceTypeSocial,
	AssistanceTypeOther,
}

// AssistanceUrgencies lists every valid urgency level.
var AssistanceUrgencies = []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// AssistanceStatuses lists every valid assistance request status.
var AssistanceStatuses = []string{
	AssistanceStatusPending,
	AssistanceStatusApproved,
	AssistanceStatusAssigned,
	AssistanceStatusInProgress,
	AssistanceStatusCompleted,
	AssistanceStatusRejected,
}

// AssistanceRequest is a resident-filed request for barangay help
// (medical, financial, legal, emergency, social).
type AssistanceRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint     `gorm:"not null;index" json:"user_id"`
	User   Resident `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Type        string `gorm:"not null" json:"type"`
	Urgency     string `gorm:"not null;default:low;index" json:"urgency"`
	Status      string `gorm:"not null;default:pending;index" json:"status"`

	Address   string   `gorm:"not null" json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	AssignedToID *uint       `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *StaffAdmin `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	AssignedByID *uint       `json:"assigned_by_id,omitempty"`
	AssignedBy   *StaffAdmin `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"assigned_by,omitempty"`

	AdminRemarks    string     `gorm:"type:text" json:"admin_remarks"`
	CompletionNotes string     `gorm:"type:text" json:"completion_notes"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"` // Set once, on first transition to completed

	Attachments []AssistanceAttachment `gorm:"foreignKey:AssistanceRequestID" json:"attachments,omitempty"`
}

func (AssistanceRequest) TableName() string {
	return "assistance_requests"
}

func (a *AssistanceRequest) CaseID() uint           { return a.ID }
func (a *AssistanceRequest) CaseTitle() string      { return a.Title }
func (a *AssistanceRequest) CaseLabel() string      { return "assistance request" }
func (a *AssistanceRequest) CasePriority() string   { return a.Urgency }
func (a *AssistanceRequest) OwnerID() uint          { return a.UserID }
func (a *AssistanceRequest) AssignedStaffID() *uint { return a.AssignedToID }

func (a *AssistanceRequest) Attach(n *Notification) {
	id := a.ID
	n.RelatedAssistanceID = &id
}

// IsTerminal reports whether the request reached a final status.
func (a *AssistanceRequest) IsTerminal() bool {
	return a.Status == AssistanceStatusCompleted || a.Status == AssistanceStatusRejected
}
