package handlers

import (
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// HomeHandler renders the public landing page
func HomeHandler(c echo.Context) error {
	component := pages.Home("Barangay Portal", GetFlash(c))
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// HealthHandler reports service health for load balancer probes
func HealthHandler(c echo.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// DashboardHandler renders the resident dashboard with case counts and
// recent filings.
func DashboardHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	var stats pages.ResidentStats
	db.DB.Model(&models.Complaint{}).Where("user_id = ?", resident.ID).Count(&stats.TotalComplaints)
	db.DB.Model(&models.Complaint{}).
		Where("user_id = ? AND status NOT IN ?", resident.ID,
			[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Count(&stats.OpenComplaints)
	db.DB.Model(&models.AssistanceRequest{}).Where("user_id = ?", resident.ID).Count(&stats.TotalAssistance)
	db.DB.Model(&models.AssistanceRequest{}).
		Where("user_id = ? AND status NOT IN ?", resident.ID,
			[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected}).
		Count(&stats.OpenAssistance)

	notifications := services.NewNotificationService(db.DB)
	stats.UnreadNotifications, _ = notifications.UnreadCount(resident.Ref())

	var recentComplaints []models.Complaint
	db.DB.Where("user_id = ?", resident.ID).Order("created_at DESC").Limit(5).Find(&recentComplaints)

	var recentAssistance []models.AssistanceRequest
	db.DB.Where("user_id = ?", resident.ID).Order("created_at DESC").Limit(5).Find(&recentAssistance)

	component := pages.ResidentDashboard(pages.ResidentDashboardView{
		Resident:         resident,
		Stats:            stats,
		RecentComplaints: recentComplaints,
		RecentAssistance: recentAssistance,
		Flash:            GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}
