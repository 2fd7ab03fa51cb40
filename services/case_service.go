package services

import (
	"errors"
	"fmt"
	"time"

	"barangay_portal_go/models"

	"gorm.io/gorm"
)

var (
	// ErrNotAssignee means the acting staff member is not assigned to the case.
	ErrNotAssignee = errors.New("case is not assigned to this staff member")
	// ErrInvalidStatus means the requested status is not valid for the case type.
	ErrInvalidStatus = errors.New("invalid status for this case type")
	// ErrInvalidCaseType means the case type segment was neither complaint nor assistance.
	ErrInvalidCaseType = errors.New("invalid case type")
)

// Case type URL segments
const (
	CaseTypeComplaint  = "complaint"
	CaseTypeAssistance = "assistance"
)

// Statuses staff may set directly. Assignment statuses are reserved for the
// admin assign flow.
var (
	staffComplaintStatuses = []string{
		models.ComplaintStatusPending,
		models.ComplaintStatusInProgress,
		models.ComplaintStatusResolved,
		models.ComplaintStatusClosed,
	}
	staffAssistanceStatuses = []string{
		models.AssistanceStatusPending,
		models.AssistanceStatusApproved,
		models.AssistanceStatusInProgress,
		models.AssistanceStatusCompleted,
		models.AssistanceStatusRejected,
	}
)

func statusAllowed(status string, allowed []string) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

type CaseService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{DB: db, Notifications: NewNotificationService(db)}
}

// StatusUpdateResult reports what a status update changed.
type StatusUpdateResult struct {
	OldStatus string
	NewStatus string
	// Resolved is true when this update performed the first transition into
	// resolved/completed, which is when the resident gets texted.
	Resolved bool
}

// UpdateStatusAsStaff updates a case's status on behalf of its assignee.
// The case row and the resident's notification commit in one transaction.
// The resolution timestamp is stamped only on the first entry into the
// terminal state; later re-entries leave it untouched.
func (s *CaseService) UpdateStatusAsStaff(caseType string, caseID uint, staff *models.StaffAdmin, newStatus, remarks string) (*StatusUpdateResult, error) {
	result := &StatusUpdateResult{NewStatus: newStatus}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		switch caseType {
		case CaseTypeComplaint:
			if !statusAllowed(newStatus, staffComplaintStatuses) {
				return ErrInvalidStatus
			}
			var c models.Complaint
			if err := tx.Where("id = ? AND assigned_to_id = ?", caseID, staff.ID).First(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotAssignee
				}
				return err
			}
			result.OldStatus = c.Status
			c.Status = newStatus
			if newStatus == models.ComplaintStatusResolved && c.ResolvedAt == nil {
				now := time.Now()
				c.ResolvedAt = &now
				result.Resolved = true
			}
			appendRemark(&c.AdminRemarks, staff.FirstName, remarks)
			if err := tx.Save(&c).Error; err != nil {
				return fmt.Errorf("failed to update complaint: %w", err)
			}
			if result.OldStatus != newStatus {
				if _, err := s.Notifications.NotifyStatusChange(tx, &c, newStatus, staff); err != nil {
					return err
				}
			}
			return nil

		case CaseTypeAssistance:
			if !statusAllowed(newStatus, staffAssistanceStatuses) {
				return ErrInvalidStatus
			}
			var a models.AssistanceRequest
			if err := tx.Where("id = ? AND assigned_to_id = ?", caseID, staff.ID).First(&a).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotAssignee
				}
				return err
			}
			result.OldStatus = a.Status
			a.Status = newStatus
			if newStatus == models.AssistanceStatusCompleted && a.CompletedAt == nil {
				now := time.Now()
				a.CompletedAt = &now
				result.Resolved = true
			}
			appendRemark(&a.AdminRemarks, staff.FirstName, remarks)
			if err := tx.Save(&a).Error; err != nil {
				return fmt.Errorf("failed to update assistance request: %w", err)
			}
			if result.OldStatus != newStatus {
				if _, err := s.Notifications.NotifyStatusChange(tx, &a, newStatus, staff); err != nil {
					return err
				}
			}
			return nil

		default:
			return ErrInvalidCaseType
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// appendRemark appends a timestamped remark line to the running remarks text.
func appendRemark(remarks *string, staffName, text string) {
	if text == "" {
		return
	}
	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), staffName, text)
	if *remarks != "" {
		*remarks += "\n\n" + line
	} else {
		*remarks = line
	}
}

// AddNotesAsStaff sets the resolution/completion notes on a case the staff
// member is assigned to and notifies the resident.
func (s *CaseService) AddNotesAsStaff(caseType string, caseID uint, staff *models.StaffAdmin, notes string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		switch caseType {
		case CaseTypeComplaint:
			var c models.Complaint
			if err := tx.Where("id = ? AND assigned_to_id = ?", caseID, staff.ID).First(&c).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotAssignee
				}
				return err
			}
			c.ResolutionNotes = notes
			if err := tx.Save(&c).Error; err != nil {
				return fmt.Errorf("failed to save resolution notes: %w", err)
			}
			return s.Notifications.NotifyCaseCommented(tx, &c, staff)

		case CaseTypeAssistance:
			var a models.AssistanceRequest
			if err := tx.Where("id = ? AND assigned_to_id = ?", caseID, staff.ID).First(&a).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotAssignee
				}
				return err
			}
			a.CompletionNotes = notes
			if err := tx.Save(&a).Error; err != nil {
				return fmt.Errorf("failed to save completion notes: %w", err)
			}
			return s.Notifications.NotifyCaseCommented(tx, &a, staff)

		default:
			return ErrInvalidCaseType
		}
	})
}

// AssignCase assigns or reassigns a case to a staff member. The assignment,
// the status change and the staff notifications commit in one transaction:
// a first assignment notifies the new assignee, a reassignment notifies both
// the new and the previous assignee.
func (s *CaseService) AssignCase(caseType string, caseID uint, staffID uint, admin *models.StaffAdmin) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var staff models.StaffAdmin
		if err := tx.Where("id = ? AND is_active = ?", staffID, true).First(&staff).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("staff member not found or inactive")
			}
			return err
		}

		switch caseType {
		case CaseTypeComplaint:
			var c models.Complaint
			if err := tx.First(&c, caseID).Error; err != nil {
				return err
			}
			oldAssigneeID := c.AssignedToID
			c.AssignedToID = &staff.ID
			c.AssignedByID = &admin.ID
			c.Status = models.ComplaintStatusAssigned
			if err := tx.Save(&c).Error; err != nil {
				return fmt.Errorf("failed to assign complaint: %w", err)
			}
			return s.notifyAssignment(tx, &c, &staff, admin, oldAssigneeID)

		case CaseTypeAssistance:
			var a models.AssistanceRequest
			if err := tx.First(&a, caseID).Error; err != nil {
				return err
			}
			oldAssigneeID := a.AssignedToID
			a.AssignedToID = &staff.ID
			a.AssignedByID = &admin.ID
			a.Status = models.AssistanceStatusAssigned
			if err := tx.Save(&a).Error; err != nil {
				return fmt.Errorf("failed to assign assistance request: %w", err)
			}
			return s.notifyAssignment(tx, &a, &staff, admin, oldAssigneeID)

		default:
			return ErrInvalidCaseType
		}
	})
}

func (s *CaseService) notifyAssignment(tx *gorm.DB, c models.Case, newStaff, admin *models.StaffAdmin, oldAssigneeID *uint) error {
	if oldAssigneeID != nil && *oldAssigneeID != newStaff.ID {
		var oldStaff models.StaffAdmin
		if err := tx.First(&oldStaff, *oldAssigneeID).Error; err == nil {
			return s.Notifications.NotifyCaseReassignment(tx, c, newStaff, &oldStaff, admin)
		}
	}
	_, err := s.Notifications.NotifyCaseAssignment(tx, c, newStaff, admin)
	return err
}

// UpdateStatusAsAdmin sets any valid status on a case, without the assignee
// restriction. The resident is notified in the same transaction.
func (s *CaseService) UpdateStatusAsAdmin(caseType string, caseID uint, admin *models.StaffAdmin, newStatus string) (*StatusUpdateResult, error) {
	result := &StatusUpdateResult{NewStatus: newStatus}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		switch caseType {
		case CaseTypeComplaint:
			if !statusAllowed(newStatus, models.ComplaintStatuses) {
				return ErrInvalidStatus
			}
			var c models.Complaint
			if err := tx.First(&c, caseID).Error; err != nil {
				return err
			}
			result.OldStatus = c.Status
			c.Status = newStatus
			if newStatus == models.ComplaintStatusResolved && c.ResolvedAt == nil {
				now := time.Now()
				c.ResolvedAt = &now
				result.Resolved = true
			}
			if err := tx.Save(&c).Error; err != nil {
				return fmt.Errorf("failed to update complaint: %w", err)
			}
			if result.OldStatus != newStatus {
				if _, err := s.Notifications.NotifyStatusChange(tx, &c, newStatus, admin); err != nil {
					return err
				}
			}
			return nil

		case CaseTypeAssistance:
			if !statusAllowed(newStatus, models.AssistanceStatuses) {
				return ErrInvalidStatus
			}
			var a models.AssistanceRequest
			if err := tx.First(&a, caseID).Error; err != nil {
				return err
			}
			result.OldStatus = a.Status
			a.Status = newStatus
			if newStatus == models.AssistanceStatusCompleted && a.CompletedAt == nil {
				now := time.Now()
				a.CompletedAt = &now
				result.Resolved = true
			}
			if err := tx.Save(&a).Error; err != nil {
				return fmt.Errorf("failed to update assistance request: %w", err)
			}
			if result.OldStatus != newStatus {
				if _, err := s.Notifications.NotifyStatusChange(tx, &a, newStatus, admin); err != nil {
					return err
				}
			}
			return nil

		default:
			return ErrInvalidCaseType
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
