package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StaffDashboardHandler shows the staff member's workload summary
func StaffDashboardHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)

	var stats pages.StaffStats
	db.DB.Model(&models.Complaint{}).Where("assigned_to_id = ?", staff.ID).Count(&stats.AssignedComplaints)
	db.DB.Model(&models.Complaint{}).
		Where("assigned_to_id = ? AND status NOT IN ?", staff.ID,
			[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Count(&stats.OpenComplaints)
	db.DB.Model(&models.AssistanceRequest{}).Where("assigned_to_id = ?", staff.ID).Count(&stats.AssignedAssistance)
	db.DB.Model(&models.AssistanceRequest{}).
		Where("assigned_to_id = ? AND status NOT IN ?", staff.ID,
			[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected}).
		Count(&stats.OpenAssistance)

	notifications := services.NewNotificationService(db.DB)
	stats.UnreadNotifications, _ = notifications.UnreadCount(staff.Ref())

	var urgentComplaints []models.Complaint
	db.DB.Preload("User").
		Where("assigned_to_id = ? AND priority IN ? AND status NOT IN ?", staff.ID,
			[]string{models.PriorityHigh, models.PriorityUrgent},
			[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Order("created_at ASC").Limit(5).
		Find(&urgentComplaints)

	component := pages.StaffDashboard(pages.StaffDashboardView{
		Staff:            staff,
		Stats:            stats,
		UrgentComplaints: urgentComplaints,
		Flash:            GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// StaffComplaintsHandler lists complaints assigned to the staff member.
// Resolved and closed cases stay hidden unless show_all is set.
func StaffComplaintsHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)

	status := c.QueryParam("status")
	showAll := c.QueryParam("show_all") == "true"
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.Complaint{}).Where("assigned_to_id = ?", staff.ID)
	switch {
	case status != "":
		query = query.Where("status = ?", status)
	case !showAll:
		query = query.Where("status NOT IN ?",
			[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed})
	}

	var total int64
	query.Count(&total)

	var complaints []models.Complaint
	query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&complaints)

	component := pages.StaffCaseList(pages.StaffCaseListView{
		Staff:      staff,
		CaseType:   services.CaseTypeComplaint,
		Complaints: complaints,
		Status:     status,
		ShowAll:    showAll,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// StaffAssistanceHandler lists assistance requests assigned to the staff
// member, hiding completed and rejected ones unless show_all is set.
func StaffAssistanceHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)

	status := c.QueryParam("status")
	showAll := c.QueryParam("show_all") == "true"
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.AssistanceRequest{}).Where("assigned_to_id = ?", staff.ID)
	switch {
	case status != "":
		query = query.Where("status = ?", status)
	case !showAll:
		query = query.Where("status NOT IN ?",
			[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected})
	}

	var total int64
	query.Count(&total)

	var requests []models.AssistanceRequest
	query.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&requests)

	component := pages.StaffCaseList(pages.StaffCaseListView{
		Staff:      staff,
		CaseType:   services.CaseTypeAssistance,
		Requests:   requests,
		Status:     status,
		ShowAll:    showAll,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// StaffComplaintDetailHandler shows one assigned complaint
func StaffComplaintDetailHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var complaint models.Complaint
	err = db.DB.Preload("User").Preload("Attachments").Preload("AssignedBy").
		Where("assigned_to_id = ?", staff.ID).
		First(&complaint, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Complaint not found")
	}

	services.LogCaseActivity(db.DB, staff, &complaint, models.ActivityComplaintViewed,
		fmt.Sprintf("Viewed complaint #%d", complaint.ID), activityContext(c))

	component := pages.StaffCaseDetail(pages.StaffCaseDetailView{
		Staff:     staff,
		CaseType:  services.CaseTypeComplaint,
		Complaint: &complaint,
		Statuses:  models.ComplaintStatuses,
		Flash:     GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// StaffAssistanceDetailHandler shows one assigned assistance request
func StaffAssistanceDetailHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var request models.AssistanceRequest
	err = db.DB.Preload("User").Preload("Attachments").Preload("AssignedBy").
		Where("assigned_to_id = ?", staff.ID).
		First(&request, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assistance request not found")
	}

	services.LogCaseActivity(db.DB, staff, &request, models.ActivityAssistanceViewed,
		fmt.Sprintf("Viewed assistance request #%d", request.ID), activityContext(c))

	component := pages.StaffCaseDetail(pages.StaffCaseDetailView{
		Staff:    staff,
		CaseType: services.CaseTypeAssistance,
		Request:  &request,
		Statuses: models.AssistanceStatuses,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// staffCasePath builds the staff detail URL for a case type and id.
func staffCasePath(caseType string, id uint) string {
	if caseType == services.CaseTypeAssistance {
		return fmt.Sprintf("/staff/assistance/%d", id)
	}
	return fmt.Sprintf("/staff/complaints/%d", id)
}

// StaffUpdateStatusHandler changes the status of an assigned case. When a
// case is first resolved the owner also gets a text message.
func StaffUpdateStatusHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)
	caseType := c.Param("type")
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	newStatus := c.FormValue("status")
	remarks := c.FormValue("remarks")

	caseService := services.NewCaseService(db.DB)
	result, err := caseService.UpdateStatusAsStaff(caseType, id, staff, newStatus, remarks)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAssignee), errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		case errors.Is(err, services.ErrInvalidStatus):
			SetFlash(c, "That status is not available")
			return hxRedirect(c, staffCasePath(caseType, id))
		case errors.Is(err, services.ErrInvalidCaseType):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid case type")
		default:
			SetFlash(c, "Failed to update status")
			return hxRedirect(c, staffCasePath(caseType, id))
		}
	}

	activityType := models.ActivityComplaintStatusChanged
	if caseType == services.CaseTypeAssistance {
		activityType = models.ActivityAssistanceStatusChanged
	}

	if result.Resolved {
		// First entry into a resolved state also texts the case owner
		notifyOwnerResolvedBySMS(c, caseType, id)
		if caseType == services.CaseTypeAssistance {
			activityType = models.ActivityAssistanceResolved
		} else {
			activityType = models.ActivityComplaintResolved
		}
	}

	logStaffCaseStatusChange(c, staff, caseType, id, activityType, result.OldStatus, result.NewStatus)

	SetFlash(c, fmt.Sprintf("Status updated to %s", result.NewStatus))
	return hxRedirect(c, staffCasePath(caseType, id))
}

func logStaffCaseStatusChange(c echo.Context, staff *models.StaffAdmin, caseType string, id uint, activityType, oldStatus, newStatus string) {
	description := fmt.Sprintf("Changed %s #%d status from %s to %s", caseType, id, oldStatus, newStatus)
	switch caseType {
	case services.CaseTypeAssistance:
		var request models.AssistanceRequest
		if err := db.DB.First(&request, id).Error; err == nil {
			services.LogCaseActivity(db.DB, staff, &request, activityType, description, activityContext(c))
		}
	default:
		var complaint models.Complaint
		if err := db.DB.First(&complaint, id).Error; err == nil {
			services.LogCaseActivity(db.DB, staff, &complaint, activityType, description, activityContext(c))
		}
	}
}

// notifyOwnerResolvedBySMS texts the case owner on first resolution. SMS
// failures are logged and never block the status change.
func notifyOwnerResolvedBySMS(c echo.Context, caseType string, id uint) {
	sms := services.NewSMSService(db.DB, getConfig(c))
	if !sms.IsConfigured() {
		return
	}

	var owner models.Resident
	var message string
	switch caseType {
	case services.CaseTypeAssistance:
		var request models.AssistanceRequest
		if err := db.DB.Preload("User").First(&request, id).Error; err != nil {
			return
		}
		owner = request.User
		message = services.FormatResolvedCase(request.ID, request.Title)
	default:
		var complaint models.Complaint
		if err := db.DB.Preload("User").First(&complaint, id).Error; err != nil {
			return
		}
		owner = complaint.User
		message = services.FormatResolvedCase(complaint.ID, complaint.Title)
	}

	if owner.Phone == "" {
		return
	}
	if err := sms.Send(owner.Phone, message); err != nil {
		log.Printf("[SMS] resolved-case text for %s #%d: %v", caseType, id, err)
	}
}

// StaffAddNotesHandler saves resolution or completion notes on an
// assigned case and notifies the owner.
func StaffAddNotesHandler(c echo.Context) error {
	staff := middleware.GetCurrentStaff(c)
	caseType := c.Param("type")
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	caseService := services.NewCaseService(db.DB)
	if err := caseService.AddNotesAsStaff(caseType, id, staff, c.FormValue("notes")); err != nil {
		switch {
		case errors.Is(err, services.ErrNotAssignee), errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		case errors.Is(err, services.ErrInvalidCaseType):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid case type")
		default:
			SetFlash(c, "Failed to save notes")
			return hxRedirect(c, staffCasePath(caseType, id))
		}
	}

	SetFlash(c, "Notes saved")
	return hxRedirect(c, staffCasePath(caseType, id))
}
