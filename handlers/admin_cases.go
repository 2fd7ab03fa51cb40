package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// applyDesignationFilter narrows a case query by assignment state. The
// default view shows unassigned open cases first since those need triage.
func applyDesignationFilter(query *gorm.DB, designation string, terminalStatuses []string) *gorm.DB {
	switch designation {
	case "assigned":
		return query.Where("assigned_to_id IS NOT NULL")
	case "all":
		return query
	default: // unassigned
		return query.Where("assigned_to_id IS NULL AND status NOT IN ?", terminalStatuses)
	}
}

func activeStaffList() []models.StaffAdmin {
	var staff []models.StaffAdmin
	db.DB.Where("is_active = ?", true).Order("full_name ASC").Find(&staff)
	return staff
}

// AdminComplaintsHandler lists complaints for triage
func AdminComplaintsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	designation := c.QueryParam("designation")
	if designation == "" {
		designation = "unassigned"
	}
	status := c.QueryParam("status")
	priority := c.QueryParam("priority")
	search := c.QueryParam("q")
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.Complaint{})
	query = applyDesignationFilter(query, designation,
		[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR address LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var complaints []models.Complaint
	query.Preload("User").Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&complaints)

	component := pages.AdminCaseList(pages.AdminCaseListView{
		Admin:       admin,
		CaseType:    services.CaseTypeComplaint,
		Complaints:  complaints,
		Staff:       activeStaffList(),
		Designation: designation,
		Status:      status,
		Priority:    priority,
		SearchQuery: search,
		Statuses:    models.ComplaintStatuses,
		Pagination:  pages.NewPagination(page, perPage, total),
		Flash:       GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminAssistanceHandler lists assistance requests for triage
func AdminAssistanceHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	designation := c.QueryParam("designation")
	if designation == "" {
		designation = "unassigned"
	}
	status := c.QueryParam("status")
	urgency := c.QueryParam("urgency")
	search := c.QueryParam("q")
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.AssistanceRequest{})
	query = applyDesignationFilter(query, designation,
		[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if urgency != "" {
		query = query.Where("urgency = ?", urgency)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR address LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var requests []models.AssistanceRequest
	query.Preload("User").Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&requests)

	component := pages.AdminCaseList(pages.AdminCaseListView{
		Admin:       admin,
		CaseType:    services.CaseTypeAssistance,
		Requests:    requests,
		Staff:       activeStaffList(),
		Designation: designation,
		Status:      status,
		Priority:    urgency,
		SearchQuery: search,
		Statuses:    models.AssistanceStatuses,
		Pagination:  pages.NewPagination(page, perPage, total),
		Flash:       GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminComplaintDetailHandler shows one complaint with the full record
func AdminComplaintDetailHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var complaint models.Complaint
	err = db.DB.Preload("User").Preload("AssignedTo").Preload("AssignedBy").Preload("Attachments").
		First(&complaint, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Complaint not found")
	}

	component := pages.AdminCaseDetail(pages.AdminCaseDetailView{
		Admin:     admin,
		CaseType:  services.CaseTypeComplaint,
		Complaint: &complaint,
		Staff:     activeStaffList(),
		Statuses:  models.ComplaintStatuses,
		Flash:     GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminAssistanceDetailHandler shows one assistance request
func AdminAssistanceDetailHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var request models.AssistanceRequest
	err = db.DB.Preload("User").Preload("AssignedTo").Preload("AssignedBy").Preload("Attachments").
		First(&request, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assistance request not found")
	}

	component := pages.AdminCaseDetail(pages.AdminCaseDetailView{
		Admin:    admin,
		CaseType: services.CaseTypeAssistance,
		Request:  &request,
		Staff:    activeStaffList(),
		Statuses: models.AssistanceStatuses,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminAssignCaseHandler assigns or reassigns a case to a staff member
func AdminAssignCaseHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	caseType := c.Param("type")
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	staffID, err := strconv.ParseUint(c.FormValue("staff_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A staff member must be selected")
	}

	caseService := services.NewCaseService(db.DB)
	if err := caseService.AssignCase(caseType, id, uint(staffID), admin); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Case or staff member not found")
		case errors.Is(err, services.ErrInvalidCaseType):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid case type")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to assign case")
		}
	}

	activityType := models.ActivityComplaintAssigned
	if caseType == services.CaseTypeAssistance {
		activityType = models.ActivityAssistanceAssigned
	}
	logAdminCaseActivity(c, admin, caseType, id, activityType,
		fmt.Sprintf("Assigned %s #%d to staff #%d", caseType, id, staffID))

	if isHTMX(c) || c.Request().Header.Get("Accept") == "application/json" {
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
	SetFlash(c, "Case assigned")
	return c.Redirect(http.StatusSeeOther, adminCasePath(caseType, id))
}

// AdminUpdateStatusHandler changes a case status from the admin area
func AdminUpdateStatusHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	caseType := c.Param("type")
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	caseService := services.NewCaseService(db.DB)
	result, err := caseService.UpdateStatusAsAdmin(caseType, id, admin, c.FormValue("status"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
		case errors.Is(err, services.ErrInvalidCaseType):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid case type")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update status")
		}
	}

	if result.Resolved {
		notifyOwnerResolvedBySMS(c, caseType, id)
	}

	activityType := models.ActivityComplaintStatusChanged
	if caseType == services.CaseTypeAssistance {
		activityType = models.ActivityAssistanceStatusChanged
	}
	logAdminCaseActivity(c, admin, caseType, id, activityType,
		fmt.Sprintf("Changed %s #%d status from %s to %s", caseType, id, result.OldStatus, result.NewStatus))

	if isHTMX(c) || c.Request().Header.Get("Accept") == "application/json" {
		return c.JSON(http.StatusOK, map[string]string{"status": result.NewStatus})
	}
	SetFlash(c, fmt.Sprintf("Status updated to %s", result.NewStatus))
	return c.Redirect(http.StatusSeeOther, adminCasePath(caseType, id))
}

func adminCasePath(caseType string, id uint) string {
	if caseType == services.CaseTypeAssistance {
		return fmt.Sprintf("/admin/assistance/%d", id)
	}
	return fmt.Sprintf("/admin/complaints/%d", id)
}

func logAdminCaseActivity(c echo.Context, admin *models.StaffAdmin, caseType string, id uint, activityType, description string) {
	switch caseType {
	case services.CaseTypeAssistance:
		var request models.AssistanceRequest
		if err := db.DB.First(&request, id).Error; err == nil {
			services.LogCaseActivity(db.DB, admin, &request, activityType, description, activityContext(c))
		}
	default:
		var complaint models.Complaint
		if err := db.DB.First(&complaint, id).Error; err == nil {
			services.LogCaseActivity(db.DB, admin, &complaint, activityType, description, activityContext(c))
		}
	}
}

// AdminCasePDFHandler downloads a printable case summary
func AdminCasePDFHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	caseType := c.Param("type")
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	reports := services.NewReportService(db.DB)
	var pdf []byte
	switch caseType {
	case services.CaseTypeAssistance:
		pdf, err = reports.GenerateAssistanceSummaryPDF(id)
	case services.CaseTypeComplaint:
		pdf, err = reports.GenerateComplaintSummaryPDF(id)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid case type")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	logAdminCaseActivity(c, admin, caseType, id, models.ActivityReportGenerated,
		fmt.Sprintf("Generated PDF summary for %s #%d", caseType, id))

	fileName := fmt.Sprintf("%s-%d-%s.pdf", caseType, id, time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
