package models

import (
	"time"
)

// Complaint statuses
const (
	ComplaintStatusPending    = "pending"
	ComplaintStatusAssigned   = "assigned"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusClosed     = "closed"
)

// Case priorities (shared by complaints and the AI classifier output)
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ComplaintStatuses lists every valid complaint status, in lifecycle order.
var ComplaintStatuses = []string{
	ComplaintStatusPending,
	ComplaintStatusAssigned,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// ComplaintPriorities lists every valid complaint priority.
var ComplaintPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ComplaintCategories lists every valid complaint category.
var ComplaintCategories = []string{
	"sanitation",
	"safety",
	"infrastructure",
	"noise",
	"utilities",
	"other",
}

// Complaint is a resident-filed case about a community issue.
type Complaint struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint     `gorm:"not null;index" json:"user_id"`
	User   Resident `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null" json:"category"`

	Priority string `gorm:"not null;default:low;index" json:"priority"`
	Status   string `gorm:"not null;default:pending;index" json:"status"`

	LocationDescription string   `gorm:"not null" json:"location_description"`
	Address             string   `gorm:"not null" json:"address"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`

	// Assignment (staff_admin rows; cases survive staff deletion)
	AssignedToID *uint       `gorm:"index" json:"assigned_to_id,omitempty"`
	AssignedTo   *StaffAdmin `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`
	AssignedByID *uint       `json:"assigned_by_id,omitempty"`
	AssignedBy   *StaffAdmin `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"assigned_by,omitempty"`

	AdminRemarks    string     `gorm:"type:text" json:"admin_remarks"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"` // Set once, on first transition to resolved

	Attachments []ComplaintAttachment `gorm:"foreignKey:ComplaintID" json:"attachments,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (c *Complaint) CaseID() uint          { return c.ID }
func (c *Complaint) CaseTitle() string     { return c.Title }
func (c *Complaint) CaseLabel() string     { return "complaint" }
func (c *Complaint) CasePriority() string  { return c.Priority }
func (c *Complaint) OwnerID() uint         { return c.UserID }
func (c *Complaint) AssignedStaffID() *uint { return c.AssignedToID }

func (c *Complaint) Attach(n *Notification) {
	id := c.ID
	n.RelatedComplaintID = &id
}

// IsTerminal reports whether the complaint reached a final status.
func (c *Complaint) IsTerminal() bool {
	return c.Status == ComplaintStatusResolved || c.Status == ComplaintStatusClosed
}
