package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"barangay_portal_go/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// NotificationFilters narrows notification listings. Zero values mean no filter.
type NotificationFilters struct {
	Type   string
	Status string // unread, read, archived; empty hides archived
}

func (s *NotificationService) Create(n *models.Notification) error {
	if err := s.DB.Create(n).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// create builds and inserts one notification row. Used by the event helpers.
func (s *NotificationService) create(tx *gorm.DB, recipient, sender models.ActorRef, c models.Case,
	title, message, notifType, actionType, priority string) (*models.Notification, error) {

	n := &models.Notification{
		RecipientKind:    recipient.Kind,
		RecipientID:      recipient.ID,
		SenderKind:       sender.Kind,
		SenderID:         sender.ID,
		Title:            title,
		Message:          message,
		NotificationType: notifType,
		ActionType:       actionType,
		Priority:         priority,
	}
	if c != nil {
		c.Attach(n)
	}
	if err := tx.Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// titleCase capitalizes each word, for notification copy like "Complaint Resolved".
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NotifyNewCaseFiled notifies every active admin that a resident filed a case.
// Fan-out is per-row: a failed insert is logged and skipped, the rest proceed.
func (s *NotificationService) NotifyNewCaseFiled(c models.Case, filedBy *models.Resident) ([]models.Notification, error) {
	var admins []models.StaffAdmin
	if err := s.DB.Where("is_active = ? AND role = ?", true, models.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to load active admins: %w", err)
	}

	title := fmt.Sprintf("New %s Filed", titleCase(c.CaseLabel()))
	message := fmt.Sprintf("A new %s has been filed by %s %s: %s",
		c.CaseLabel(), filedBy.FirstName, filedBy.LastName, c.CaseTitle())

	priority := models.NotificationPriorityNormal
	switch c.CasePriority() {
	case models.PriorityUrgent, models.UrgencyCritical:
		priority = models.NotificationPriorityUrgent
	case models.PriorityHigh:
		priority = models.NotificationPriorityHigh
	}

	notifType := models.NotificationTypeNewComplaint
	if c.CaseLabel() != "complaint" {
		notifType = models.NotificationTypeNewAssistance
	}

	var created []models.Notification
	for _, admin := range admins {
		n, err := s.create(s.DB, admin.Ref(), filedBy.Ref(), c,
			title, message, notifType, models.ActionCreated, priority)
		if err != nil {
			log.Printf("[NOTIFY] skipping admin %d: %v", admin.ID, err)
			continue
		}
		created = append(created, *n)
	}
	return created, nil
}

// NotifyCaseFollowUp notifies every active admin that the owner added a
// follow-up to a case. Same per-row fan-out as NotifyNewCaseFiled.
func (s *NotificationService) NotifyCaseFollowUp(c models.Case, filedBy *models.Resident) ([]models.Notification, error) {
	var admins []models.StaffAdmin
	if err := s.DB.Where("is_active = ? AND role = ?", true, models.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to load active admins: %w", err)
	}

	title := fmt.Sprintf("Follow-Up on %s #%d", titleCase(c.CaseLabel()), c.CaseID())
	message := fmt.Sprintf("%s %s added a follow-up to %s #%d: %s",
		filedBy.FirstName, filedBy.LastName, c.CaseLabel(), c.CaseID(), c.CaseTitle())

	priority := models.NotificationPriorityNormal
	switch c.CasePriority() {
	case models.PriorityUrgent, models.UrgencyCritical:
		priority = models.NotificationPriorityUrgent
	case models.PriorityHigh:
		priority = models.NotificationPriorityHigh
	}

	notifType := models.NotificationTypeNewComplaint
	if c.CaseLabel() != "complaint" {
		notifType = models.NotificationTypeNewAssistance
	}

	var created []models.Notification
	for _, admin := range admins {
		n, err := s.create(s.DB, admin.Ref(), filedBy.Ref(), c,
			title, message, notifType, models.ActionCommented, priority)
		if err != nil {
			log.Printf("[NOTIFY] skipping admin %d: %v", admin.ID, err)
			continue
		}
		created = append(created, *n)
	}
	return created, nil
}

// NotifyCaseAssignment notifies the staff member a case was assigned to.
// Runs inside tx so the assignment and its notification commit together.
func (s *NotificationService) NotifyCaseAssignment(tx *gorm.DB, c models.Case, assignedTo, assignedBy *models.StaffAdmin) (*models.Notification, error) {
	title := fmt.Sprintf("New %s Assigned", titleCase(c.CaseLabel()))
	message := fmt.Sprintf("You have been assigned %s #%d: %s", c.CaseLabel(), c.CaseID(), c.CaseTitle())

	priority := models.NotificationPriorityNormal
	switch c.CasePriority() {
	case models.PriorityHigh, models.PriorityUrgent, models.UrgencyCritical:
		priority = models.NotificationPriorityHigh
	}

	return s.create(tx, assignedTo.Ref(), assignedBy.Ref(), c,
		title, message, models.NotificationTypeAssignment, models.ActionAssigned, priority)
}

// NotifyCaseReassignment notifies both the new and the previous assignee.
func (s *NotificationService) NotifyCaseReassignment(tx *gorm.DB, c models.Case, newStaff, oldStaff, reassignedBy *models.StaffAdmin) error {
	label := titleCase(c.CaseLabel())

	_, err := s.create(tx, newStaff.Ref(), reassignedBy.Ref(), c,
		fmt.Sprintf("%s Reassigned to You", label),
		fmt.Sprintf("The %s #%d has been reassigned to you: %s", c.CaseLabel(), c.CaseID(), c.CaseTitle()),
		models.NotificationTypeAssignment, models.ActionReassigned, models.NotificationPriorityHigh)
	if err != nil {
		return err
	}

	_, err = s.create(tx, oldStaff.Ref(), reassignedBy.Ref(), c,
		fmt.Sprintf("%s Reassigned", label),
		fmt.Sprintf("The %s #%d has been reassigned to %s: %s", c.CaseLabel(), c.CaseID(), newStaff.DisplayName(), c.CaseTitle()),
		models.NotificationTypeAssignment, models.ActionReassigned, models.NotificationPriorityNormal)
	return err
}

// NotifyStatusChange notifies the case owner that the status changed.
func (s *NotificationService) NotifyStatusChange(tx *gorm.DB, c models.Case, newStatus string, changedBy *models.StaffAdmin) (*models.Notification, error) {
	label := c.CaseLabel()
	message := fmt.Sprintf("Your %s #%d status has been updated to: %s",
		label, c.CaseID(), titleCase(strings.ReplaceAll(newStatus, "_", " ")))

	switch newStatus {
	case models.ComplaintStatusResolved, models.AssistanceStatusCompleted:
		message += ". Thank you for your patience!"
	case models.ComplaintStatusInProgress:
		message += ". Our team is now working on your request."
	case models.ComplaintStatusClosed:
		message += ". This case has been closed."
	}

	priority := models.NotificationPriorityNormal
	switch newStatus {
	case models.ComplaintStatusResolved, models.AssistanceStatusCompleted,
		models.ComplaintStatusClosed, models.AssistanceStatusRejected:
		priority = models.NotificationPriorityHigh
	}

	recipient := models.ActorRef{Kind: models.ActorKindResident, ID: c.OwnerID()}
	return s.create(tx, recipient, changedBy.Ref(), c,
		fmt.Sprintf("%s Status Updated", titleCase(label)),
		message, models.NotificationTypeStatusUpdate, models.ActionStatusChanged, priority)
}

// NotifyCaseResolved notifies the case owner their case was resolved.
func (s *NotificationService) NotifyCaseResolved(tx *gorm.DB, c models.Case, resolutionNotes string, resolvedBy *models.StaffAdmin) (*models.Notification, error) {
	label := c.CaseLabel()
	message := fmt.Sprintf("Great news! Your %s #%d has been resolved. Thank you for your patience.", label, c.CaseID())
	if resolutionNotes != "" {
		message += fmt.Sprintf("\n\nResolution details: %s", resolutionNotes)
	}

	recipient := models.ActorRef{Kind: models.ActorKindResident, ID: c.OwnerID()}
	return s.create(tx, recipient, resolvedBy.Ref(), c,
		fmt.Sprintf("%s Resolved", titleCase(label)),
		message, models.NotificationTypeCaseResolved, models.ActionResolved, models.NotificationPriorityHigh)
}

// NotifyUrgentCase fans an escalation out to every active staff and admin
// account. Only fires for high, urgent or critical cases.
func (s *NotificationService) NotifyUrgentCase(c models.Case, sender models.ActorRef) ([]models.Notification, error) {
	switch c.CasePriority() {
	case models.PriorityHigh, models.PriorityUrgent, models.UrgencyCritical:
	default:
		return nil, nil
	}

	var accounts []models.StaffAdmin
	if err := s.DB.Where("is_active = ?", true).Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to load active accounts: %w", err)
	}

	title := fmt.Sprintf("URGENT: %s Requires Attention", titleCase(c.CaseLabel()))
	message := fmt.Sprintf("An urgent %s #%d needs immediate attention: %s", c.CaseLabel(), c.CaseID(), c.CaseTitle())

	var created []models.Notification
	for _, account := range accounts {
		n, err := s.create(s.DB, account.Ref(), sender, c,
			title, message, models.NotificationTypeUrgentCase, models.ActionEscalated, models.NotificationPriorityUrgent)
		if err != nil {
			log.Printf("[NOTIFY] skipping %s %d: %v", account.Role, account.ID, err)
			continue
		}
		created = append(created, *n)
	}
	return created, nil
}

// NotifyCaseCommented notifies the case owner, and the assigned staff when
// someone else commented.
func (s *NotificationService) NotifyCaseCommented(tx *gorm.DB, c models.Case, commenter *models.StaffAdmin) error {
	label := c.CaseLabel()
	recipient := models.ActorRef{Kind: models.ActorKindResident, ID: c.OwnerID()}

	_, err := s.create(tx, recipient, commenter.Ref(), c,
		fmt.Sprintf("New Comment on Your %s", titleCase(label)),
		fmt.Sprintf("A comment has been added to your %s #%d: %s", label, c.CaseID(), c.CaseTitle()),
		models.NotificationTypeAdminResponse, models.ActionCommented, models.NotificationPriorityNormal)
	if err != nil {
		return err
	}

	if assignedID := c.AssignedStaffID(); assignedID != nil && *assignedID != commenter.ID {
		var assigned models.StaffAdmin
		if err := tx.First(&assigned, *assignedID).Error; err == nil {
			_, err = s.create(tx, assigned.Ref(), commenter.Ref(), c,
				fmt.Sprintf("New Comment on Assigned %s", titleCase(label)),
				fmt.Sprintf("A comment has been added to %s #%d assigned to you: %s", label, c.CaseID(), c.CaseTitle()),
				models.NotificationTypeSystemAlert, models.ActionCommented, models.NotificationPriorityNormal)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns one page of a recipient's notifications, newest first.
// Without a status filter, archived notifications are hidden.
func (s *NotificationService) List(recipient models.ActorRef, filters NotificationFilters, page, perPage int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 5
	}

	query := s.DB.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ?", recipient.Kind, recipient.ID)

	switch filters.Status {
	case "unread":
		query = query.Where("is_read = ?", false)
	case "read":
		query = query.Where("is_read = ?", true)
	case "archived":
		query = query.Where("is_archived = ?", true)
	default:
		query = query.Where("is_archived = ?", false)
	}

	if filters.Type != "" {
		query = query.Where("notification_type = ?", filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// GetForRecipient loads one notification, owner-scoped.
func (s *NotificationService) GetForRecipient(id uint, recipient models.ActorRef) (*models.Notification, error) {
	var n models.Notification
	err := s.DB.Where("id = ? AND recipient_kind = ? AND recipient_id = ?", id, recipient.Kind, recipient.ID).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// UnreadCount returns the number of unread notifications for a recipient.
func (s *NotificationService) UnreadCount(recipient models.ActorRef) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ? AND is_read = ?", recipient.Kind, recipient.ID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead marks one notification read. Idempotent: repeats are no-ops.
func (s *NotificationService) MarkAsRead(id uint, recipient models.ActorRef) error {
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_kind = ? AND recipient_id = ? AND is_read = ?",
			id, recipient.Kind, recipient.ID, false).
		Update("is_read", true).Error
}

// MarkAllAsRead marks every unread notification for the recipient read.
func (s *NotificationService) MarkAllAsRead(recipient models.ActorRef) (int64, error) {
	result := s.DB.Model(&models.Notification{}).
		Where("recipient_kind = ? AND recipient_id = ? AND is_read = ?", recipient.Kind, recipient.ID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// Archive archives one notification. archived_at is stamped on the first
// call only; the is_archived guard makes repeats no-ops.
func (s *NotificationService) Archive(id uint, recipient models.ActorRef) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_kind = ? AND recipient_id = ? AND is_archived = ?",
			id, recipient.Kind, recipient.ID, false).
		Updates(map[string]interface{}{"is_archived": true, "archived_at": now}).Error
}

// ArchiveOlderThan archives unarchived notifications older than the given
// number of days. Run by the janitor.
func (s *NotificationService) ArchiveOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	now := time.Now()
	result := s.DB.Model(&models.Notification{}).
		Where("created_at < ? AND is_archived = ?", cutoff, false).
		Updates(map[string]interface{}{"is_archived": true, "archived_at": now})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to archive old notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
