package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Notification types
const (
	NotificationTypeNewComplaint  = "new_complaint"
	NotificationTypeNewAssistance = "new_assistance_request"
	NotificationTypeAssignment    = "case_assignment"
	NotificationTypeStatusUpdate  = "status_update"
	NotificationTypeCaseResolved  = "case_resolved"
	NotificationTypeUrgentCase    = "urgent_case"
	NotificationTypeAdminResponse = "admin_response"
	NotificationTypeSystemAlert   = "system_alert"
	NotificationTypeFeedback      = "feedback"
	NotificationTypeOther         = "other"
)

// Notification action types (what happened to trigger the notification)
const (
	ActionCreated       = "created"
	ActionAssigned      = "assigned"
	ActionReassigned    = "reassigned"
	ActionStatusChanged = "status_changed"
	ActionResolved      = "resolved"
	ActionCommented     = "commented"
	ActionEscalated     = "escalated"
	ActionOther         = "other"
)

// Notification priorities
const (
	NotificationPriorityLow    = "low"
	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"
	NotificationPriorityUrgent = "urgent"
)

// NotificationTypes lists every valid notification type, for filter dropdowns.
var NotificationTypes = []string{
	NotificationTypeNewComplaint,
	NotificationTypeNewAssistance,
	NotificationTypeAssignment,
	NotificationTypeStatusUpdate,
	NotificationTypeCaseResolved,
	NotificationTypeUrgentCase,
	NotificationTypeAdminResponse,
	NotificationTypeSystemAlert,
	NotificationTypeFeedback,
	NotificationTypeOther,
}

// ErrNotificationCaseConflict rejects a notification that points at both a
// complaint and an assistance request.
var ErrNotificationCaseConflict = errors.New("notification may reference at most one case")

// Notification is a single in-app notification row. One table serves all
// three actor kinds; the recipient is addressed by (kind, id) instead of a
// foreign key into a specific identity table.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecipientKind ActorKind `gorm:"not null;index:idx_notif_recipient;index:idx_notif_recipient_read" json:"recipient_kind"`
	RecipientID   uint      `gorm:"not null;index:idx_notif_recipient;index:idx_notif_recipient_read" json:"recipient_id"`

	// Zero sender means the notification is system-originated.
	SenderKind ActorKind `json:"sender_kind,omitempty"`
	SenderID   uint      `json:"sender_id,omitempty"`

	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	NotificationType string `gorm:"not null;default:other" json:"notification_type"`
	ActionType       string `gorm:"not null;default:created" json:"action_type"`
	Priority         string `gorm:"not null;default:normal" json:"priority"`

	// At most one of these may be set (enforced in BeforeCreate).
	RelatedComplaintID  *uint              `gorm:"index" json:"related_complaint_id,omitempty"`
	RelatedComplaint    *Complaint         `gorm:"foreignKey:RelatedComplaintID;constraint:OnDelete:SET NULL" json:"-"`
	RelatedAssistanceID *uint              `gorm:"index" json:"related_assistance_id,omitempty"`
	RelatedAssistance   *AssistanceRequest `gorm:"foreignKey:RelatedAssistanceID;constraint:OnDelete:SET NULL" json:"-"`

	IsRead     bool       `gorm:"not null;default:false;index:idx_notif_recipient_read" json:"is_read"`
	IsArchived bool       `gorm:"not null;default:false" json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate enforces related-case exclusivity and recipient validity.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.RelatedComplaintID != nil && n.RelatedAssistanceID != nil {
		return ErrNotificationCaseConflict
	}
	if !ValidActorKind(n.RecipientKind) || n.RecipientID == 0 {
		return errors.New("notification requires a valid recipient")
	}
	return nil
}

func (n *Notification) Recipient() ActorRef {
	return ActorRef{Kind: n.RecipientKind, ID: n.RecipientID}
}

func (n *Notification) Sender() ActorRef {
	return ActorRef{Kind: n.SenderKind, ID: n.SenderID}
}
