package handlers

import (
	"fmt"
	"net/http"
	"time"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func parseDateParam(c echo.Context, name string) time.Time {
	t, err := time.Parse("2006-01-02", c.QueryParam(name))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AdminActivityLogHandler lists the audit trail with filters
func AdminActivityLogHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	filters := services.ActivityLogFilters{
		ActorKind:   models.ActorKind(c.QueryParam("actor_kind")),
		Category:    c.QueryParam("category"),
		Type:        c.QueryParam("type"),
		DateFrom:    parseDateParam(c, "date_from"),
		DateTo:      parseDateParam(c, "date_to"),
		SearchQuery: c.QueryParam("q"),
	}
	page := parsePage(c)
	perPage := parsePerPage(c, 25)

	logs, total, err := services.GetActivityLogs(db.DB, filters, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load activity logs")
	}

	component := pages.AdminActivityLog(pages.AdminActivityLogView{
		Admin:      admin,
		Logs:       logs,
		Categories: models.ActivityCategories,
		Filters:    filters,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminActivityExportHandler downloads the filtered activity log as Excel
func AdminActivityExportHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	filters := services.ActivityLogFilters{
		ActorKind:   models.ActorKind(c.QueryParam("actor_kind")),
		Category:    c.QueryParam("category"),
		Type:        c.QueryParam("type"),
		DateFrom:    parseDateParam(c, "date_from"),
		DateTo:      parseDateParam(c, "date_to"),
		SearchQuery: c.QueryParam("q"),
	}

	reports := services.NewReportService(db.DB)
	buf, err := reports.ExportActivityLogs(filters)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build export")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityExportData,
		Category:    models.CategoryReporting,
		Description: "Exported activity log to Excel",
	}, activityContext(c))

	fileName := fmt.Sprintf("activity-log-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, excelContentType, buf.Bytes())
}

// AdminAnalyticsHandler shows case volume breakdowns
func AdminAnalyticsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	reports := services.NewReportService(db.DB)
	analytics, err := reports.Analytics()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute analytics")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityAnalyticsAccessed,
		Category:    models.CategoryReporting,
		Description: "Viewed analytics dashboard",
	}, activityContext(c))

	component := pages.AdminAnalytics(pages.AdminAnalyticsView{
		Admin:     admin,
		Analytics: analytics,
		Flash:     GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func caseExportFilters(c echo.Context) services.CaseExportFilters {
	return services.CaseExportFilters{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		DateFrom: parseDateParam(c, "date_from"),
		DateTo:   parseDateParam(c, "date_to"),
	}
}

// AdminExportComplaintsHandler downloads complaints as Excel
func AdminExportComplaintsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	reports := services.NewReportService(db.DB)
	buf, err := reports.ExportComplaints(caseExportFilters(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build export")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityExportData,
		Category:    models.CategoryReporting,
		Description: "Exported complaints to Excel",
	}, activityContext(c))

	fileName := fmt.Sprintf("complaints-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, excelContentType, buf.Bytes())
}

// AdminExportAssistanceHandler downloads assistance requests as Excel
func AdminExportAssistanceHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	reports := services.NewReportService(db.DB)
	buf, err := reports.ExportAssistanceRequests(caseExportFilters(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build export")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityExportData,
		Category:    models.CategoryReporting,
		Description: "Exported assistance requests to Excel",
	}, activityContext(c))

	fileName := fmt.Sprintf("assistance-requests-%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusOK, excelContentType, buf.Bytes())
}

// AdminSMSLogsHandler lists SMS delivery attempts
func AdminSMSLogsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	page := parsePage(c)
	perPage := parsePerPage(c, 25)

	sms := services.NewSMSService(db.DB, getConfig(c))
	logs, total, err := sms.ListLogs(page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load SMS logs")
	}

	component := pages.AdminSMSLogs(pages.AdminSMSLogsView{
		Admin:      admin,
		Logs:       logs,
		Configured: sms.IsConfigured(),
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminTestSMSHandler sends a one-off text through the gateway so admins
// can confirm the credentials work.
func AdminTestSMSHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	number := c.FormValue("number")
	message := c.FormValue("message")
	if message == "" {
		message = services.FormatGeneralAlert("Test Message", "This is a test message from the Barangay Portal.")
	}

	sms := services.NewSMSService(db.DB, getConfig(c))
	if err := sms.Send(number, message); err != nil {
		SetFlash(c, "SMS failed: "+err.Error())
		return hxRedirect(c, "/admin/sms-logs")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityNotificationSent,
		Category:    models.CategoryCommunication,
		Description: "Sent test SMS to " + services.NormalizePhoneNumber(number),
	}, activityContext(c))

	SetFlash(c, "Test SMS sent")
	return hxRedirect(c, "/admin/sms-logs")
}
