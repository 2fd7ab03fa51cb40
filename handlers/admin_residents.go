package handlers

import (
	"fmt"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// AdminResidentsHandler lists resident accounts with verification state
func AdminResidentsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	verified := c.QueryParam("verified") // "", "yes", "no"
	search := c.QueryParam("q")
	page := parsePage(c)
	perPage := parsePerPage(c, 25)

	query := db.DB.Model(&models.Resident{})
	switch verified {
	case "yes":
		query = query.Where("is_verified = ?", true)
	case "no":
		query = query.Where("is_verified = ?", false)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?",
			like, like, like, like)
	}

	var total int64
	query.Count(&total)

	var residents []models.Resident
	query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&residents)

	component := pages.AdminResidents(pages.AdminResidentsView{
		Admin:       admin,
		Residents:   residents,
		Verified:    verified,
		SearchQuery: search,
		Pagination:  pages.NewPagination(page, perPage, total),
		Flash:       GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminVerifyResidentHandler approves a resident account and emails them
func AdminVerifyResidentHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var resident models.Resident
	if err := db.DB.First(&resident, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Resident not found")
	}
	if resident.IsVerified {
		SetFlash(c, "Account is already verified")
		return hxRedirect(c, "/admin/residents")
	}

	resident.IsVerified = true
	if err := db.DB.Save(&resident).Error; err != nil {
		SetFlash(c, "Failed to verify account")
		return hxRedirect(c, "/admin/residents")
	}

	cfg := getConfig(c)
	email := services.BuildAccountVerifiedEmail(cfg, resident.Email, resident.DisplayName())
	services.SendEmailAsync(cfg, email)

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserActivated,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Verified resident account %s", resident.Email),
	}, activityContext(c))

	SetFlash(c, fmt.Sprintf("Verified %s", resident.DisplayName()))
	return hxRedirect(c, "/admin/residents")
}

// AdminDeleteResidentHandler removes a resident account and cascades to
// their cases.
func AdminDeleteResidentHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var resident models.Resident
	if err := db.DB.First(&resident, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Resident not found")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserDeleted,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Deleted resident account %s", resident.Email),
	}, activityContext(c))

	services.DeleteAllActorSessions(db.DB, resident.Ref())
	if err := db.DB.Delete(&resident).Error; err != nil {
		SetFlash(c, "Failed to delete account")
		return hxRedirect(c, "/admin/residents")
	}

	SetFlash(c, "Resident account deleted")
	return hxRedirect(c, "/admin/residents")
}
