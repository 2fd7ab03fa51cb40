package handlers

import (
	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// AdminDashboardHandler shows barangay-wide totals and urgent open cases
func AdminDashboardHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	var stats pages.AdminStats
	db.DB.Model(&models.Complaint{}).Count(&stats.TotalComplaints)
	db.DB.Model(&models.Complaint{}).Where("status = ?", models.ComplaintStatusPending).Count(&stats.PendingComplaints)
	db.DB.Model(&models.Complaint{}).Where("assigned_to_id IS NULL AND status NOT IN ?",
		[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).Count(&stats.UnassignedComplaints)
	db.DB.Model(&models.AssistanceRequest{}).Count(&stats.TotalAssistance)
	db.DB.Model(&models.AssistanceRequest{}).Where("status = ?", models.AssistanceStatusPending).Count(&stats.PendingAssistance)
	db.DB.Model(&models.AssistanceRequest{}).Where("assigned_to_id IS NULL AND status NOT IN ?",
		[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected}).Count(&stats.UnassignedAssistance)
	db.DB.Model(&models.Resident{}).Count(&stats.TotalResidents)
	db.DB.Model(&models.Resident{}).Where("is_verified = ?", false).Count(&stats.UnverifiedResidents)
	db.DB.Model(&models.Feedback{}).Where("is_read = ?", false).Count(&stats.UnreadFeedback)

	notifications := services.NewNotificationService(db.DB)
	stats.UnreadNotifications, _ = notifications.UnreadCount(admin.Ref())

	var urgentComplaints []models.Complaint
	db.DB.Preload("User").
		Where("priority IN ? AND status NOT IN ?",
			[]string{models.PriorityHigh, models.PriorityUrgent},
			[]string{models.ComplaintStatusResolved, models.ComplaintStatusClosed}).
		Order("created_at ASC").Limit(5).
		Find(&urgentComplaints)

	var urgentAssistance []models.AssistanceRequest
	db.DB.Preload("User").
		Where("urgency IN ? AND status NOT IN ?",
			[]string{models.UrgencyHigh, models.UrgencyCritical},
			[]string{models.AssistanceStatusCompleted, models.AssistanceStatusRejected}).
		Order("created_at ASC").Limit(5).
		Find(&urgentAssistance)

	component := pages.AdminDashboard(pages.AdminDashboardView{
		Admin:            admin,
		Stats:            stats,
		UrgentComplaints: urgentComplaints,
		UrgentAssistance: urgentAssistance,
		Flash:            GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}
