package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrActivityLogImmutable rejects updates and deletes on activity rows.
var ErrActivityLogImmutable = errors.New("activity logs are immutable")

// Activity types (closed list; filter dropdowns render from ActivityTypes)
const (
	// Authentication
	ActivityLoginSuccess   = "login_success"
	ActivityLoginFailed    = "login_failed"
	ActivityLogout         = "logout"
	ActivityPasswordChange = "password_change"
	ActivityPasswordReset  = "password_reset"

	// Complaints
	ActivityComplaintFiled         = "complaint_filed"
	ActivityComplaintUpdated       = "complaint_updated"
	ActivityComplaintViewed        = "complaint_viewed"
	ActivityComplaintAssigned      = "complaint_assigned"
	ActivityComplaintReassigned    = "complaint_reassigned"
	ActivityComplaintStatusChanged = "complaint_status_changed"
	ActivityComplaintResolved      = "complaint_resolved"
	ActivityComplaintClosed        = "complaint_closed"
	ActivityComplaintDeleted       = "complaint_deleted"

	// Assistance requests
	ActivityAssistanceFiled         = "assistance_filed"
	ActivityAssistanceUpdated       = "assistance_updated"
	ActivityAssistanceViewed        = "assistance_viewed"
	ActivityAssistanceAssigned      = "assistance_assigned"
	ActivityAssistanceReassigned    = "assistance_reassigned"
	ActivityAssistanceStatusChanged = "assistance_status_changed"
	ActivityAssistanceResolved      = "assistance_resolved"
	ActivityAssistanceClosed        = "assistance_closed"
	ActivityAssistanceDeleted       = "assistance_deleted"

	// Follow-up & communication
	ActivityFollowupRequest  = "followup_request"
	ActivityCommentAdded     = "comment_added"
	ActivityNotificationSent = "notification_sent"
	ActivityNotificationRead = "notification_read"

	// Administration
	ActivityUserCreated     = "user_created"
	ActivityUserUpdated     = "user_updated"
	ActivityUserDeleted     = "user_deleted"
	ActivityUserActivated   = "user_activated"
	ActivityUserDeactivated = "user_deactivated"
	ActivityRoleChanged     = "role_changed"
	ActivitySettingsChanged = "settings_changed"

	// File management
	ActivityFileUploaded   = "file_uploaded"
	ActivityFileDownloaded = "file_downloaded"
	ActivityFileDeleted    = "file_deleted"

	// Reporting
	ActivityReportGenerated   = "report_generated"
	ActivityReportViewed      = "report_viewed"
	ActivityAnalyticsAccessed = "analytics_accessed"

	// System
	ActivitySystemAlert = "system_alert"
	ActivityBulkAction  = "bulk_action"
	ActivityExportData  = "export_data"
	ActivityImportData  = "import_data"
	ActivityOther       = "other"
)

// Activity categories
const (
	CategoryAuthentication = "authentication"
	CategoryCaseManagement = "case_management"
	CategoryCommunication  = "communication"
	CategoryAdministration = "administration"
	CategoryFileManagement = "file_management"
	CategoryReporting      = "reporting"
	CategorySystem         = "system"
)

// ActivityCategories lists every valid activity category.
var ActivityCategories = []string{
	CategoryAuthentication,
	CategoryCaseManagement,
	CategoryCommunication,
	CategoryAdministration,
	CategoryFileManagement,
	CategoryReporting,
	CategorySystem,
}

// ActivityLog is an immutable record of something an actor did. Rows are
// insert-only; updates and deletes are rejected by hooks.
type ActivityLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_activity_created" json:"created_at"`

	ActorKind ActorKind `gorm:"not null;index:idx_activity_actor" json:"actor_kind"`
	ActorID   uint      `gorm:"not null;index:idx_activity_actor" json:"actor_id"`

	ActivityType     string `gorm:"not null;index:idx_activity_type" json:"activity_type"`
	ActivityCategory string `gorm:"not null;default:system;index:idx_activity_category" json:"activity_category"`
	Description      string `gorm:"type:text;not null" json:"description"`

	// Denormalized for historical accuracy (actor rows may change or vanish)
	ActorName  string `gorm:"not null" json:"actor_name"`
	ActorEmail string `json:"actor_email"`

	IsSuccessful bool   `gorm:"not null;default:true" json:"is_successful"`
	ErrorMessage string `gorm:"type:text" json:"error_message,omitempty"`
	Metadata     string `gorm:"type:text" json:"metadata,omitempty"` // JSON encoded

	RelatedComplaintID  *uint `gorm:"index" json:"related_complaint_id,omitempty"`
	RelatedAssistanceID *uint `gorm:"index" json:"related_assistance_id,omitempty"`

	IPAddress string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

func (ActivityLog) TableName() string {
	return "user_activities"
}

func (a *ActivityLog) Actor() ActorRef {
	return ActorRef{Kind: a.ActorKind, ID: a.ActorID}
}

// BeforeUpdate prevents modification of activity logs (immutability)
func (a *ActivityLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}

// BeforeDelete prevents deletion of activity logs (immutability)
func (a *ActivityLog) BeforeDelete(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}
