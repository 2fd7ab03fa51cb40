package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"barangay_portal_go/models"

	"gorm.io/gorm"
)

// ActivityContext carries request metadata into activity log rows.
type ActivityContext struct {
	IPAddress string
	UserAgent string
}

// ActivityEntry describes one activity to record.
type ActivityEntry struct {
	Type         string
	Category     string
	Description  string
	IsSuccessful bool
	ErrorMessage string
	Metadata     interface{} // JSON-encoded into the row
	Complaint    *models.Complaint
	Assistance   *models.AssistanceRequest
}

// LogActivity writes one immutable activity row for the actor. Runs inline;
// failures are logged and swallowed so the surrounding operation never fails
// because of bookkeeping.
func LogActivity(db *gorm.DB, actor models.Actor, entry ActivityEntry, ctx ActivityContext) *models.ActivityLog {
	if entry.Category == "" {
		entry.Category = models.CategorySystem
	}

	var metadataJSON string
	if entry.Metadata != nil {
		if bytes, err := json.Marshal(entry.Metadata); err == nil {
			metadataJSON = string(bytes)
		}
	}

	row := models.ActivityLog{
		ActorKind:        actor.Ref().Kind,
		ActorID:          actor.Ref().ID,
		ActivityType:     entry.Type,
		ActivityCategory: entry.Category,
		Description:      entry.Description,
		ActorName:        actor.DisplayName(),
		ActorEmail:       actor.ContactEmail(),
		IsSuccessful:     entry.IsSuccessful,
		ErrorMessage:     entry.ErrorMessage,
		Metadata:         metadataJSON,
		IPAddress:        ctx.IPAddress,
		UserAgent:        ctx.UserAgent,
	}
	if entry.Complaint != nil {
		id := entry.Complaint.ID
		row.RelatedComplaintID = &id
	}
	if entry.Assistance != nil {
		id := entry.Assistance.ID
		row.RelatedAssistanceID = &id
	}

	if err := db.Create(&row).Error; err != nil {
		log.Printf("[ACTIVITY] Failed to record %s: %v", entry.Type, err)
		return nil
	}
	return &row
}

// LogLoginAttempt records a successful or failed login.
func LogLoginAttempt(db *gorm.DB, actor models.Actor, successful bool, errorMessage string, ctx ActivityContext) {
	activityType := models.ActivityLoginSuccess
	description := "Successful login attempt"
	if !successful {
		activityType = models.ActivityLoginFailed
		description = "Failed login attempt"
	}

	LogActivity(db, actor, ActivityEntry{
		Type:         activityType,
		Category:     models.CategoryAuthentication,
		Description:  description,
		IsSuccessful: successful,
		ErrorMessage: errorMessage,
	}, ctx)
}

// LogLogout records a logout.
func LogLogout(db *gorm.DB, actor models.Actor, ctx ActivityContext) {
	LogActivity(db, actor, ActivityEntry{
		Type:         models.ActivityLogout,
		Category:     models.CategoryAuthentication,
		Description:  "User logged out",
		IsSuccessful: true,
	}, ctx)
}

// LogCaseActivity records a case-management activity against a complaint or
// an assistance request.
func LogCaseActivity(db *gorm.DB, actor models.Actor, c models.Case, activityType, description string, ctx ActivityContext) {
	entry := ActivityEntry{
		Type:         activityType,
		Category:     models.CategoryCaseManagement,
		Description:  description,
		IsSuccessful: true,
	}
	switch v := c.(type) {
	case *models.Complaint:
		entry.Complaint = v
	case *models.AssistanceRequest:
		entry.Assistance = v
	}
	LogActivity(db, actor, entry, ctx)
}

// ActivityLogFilters narrows activity log queries. Zero values mean no filter.
type ActivityLogFilters struct {
	ActorKind   models.ActorKind
	Category    string
	Type        string
	DateFrom    time.Time
	DateTo      time.Time
	SearchQuery string
}

// GetActivityLogs retrieves one page of activity rows, newest first.
func GetActivityLogs(db *gorm.DB, filters ActivityLogFilters, page, pageSize int) ([]models.ActivityLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	query := db.Model(&models.ActivityLog{})

	if filters.ActorKind != "" {
		query = query.Where("actor_kind = ?", filters.ActorKind)
	}
	if filters.Category != "" {
		query = query.Where("activity_category = ?", filters.Category)
	}
	if filters.Type != "" {
		query = query.Where("activity_type = ?", filters.Type)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	if filters.SearchQuery != "" {
		pattern := "%" + filters.SearchQuery + "%"
		query = query.Where(
			"description LIKE ? OR actor_name LIKE ? OR actor_email LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity logs: %w", err)
	}

	var logs []models.ActivityLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, total, nil
}
