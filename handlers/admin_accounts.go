package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// AdminAccountsHandler lists staff and admin accounts
func AdminAccountsHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	role := c.QueryParam("role")
	page := parsePage(c)
	perPage := parsePerPage(c, 25)

	query := db.DB.Model(&models.StaffAdmin{})
	if role == models.RoleAdmin || role == models.RoleStaff {
		query = query.Where("role = ?", role)
	}

	var total int64
	query.Count(&total)

	var accounts []models.StaffAdmin
	query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&accounts)

	component := pages.AdminAccounts(pages.AdminAccountsView{
		Admin:      admin,
		Accounts:   accounts,
		Role:       role,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminCreateAccountHandler creates a staff or admin account
func AdminCreateAccountHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")
	role := c.FormValue("role")
	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))

	if username == "" || email == "" || password == "" || firstName == "" || lastName == "" {
		SetFlash(c, "Please fill in all required fields")
		return hxRedirect(c, "/admin/accounts")
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		role = models.RoleStaff
	}
	if len(password) < 8 {
		SetFlash(c, "Password must be at least 8 characters")
		return hxRedirect(c, "/admin/accounts")
	}

	var count int64
	db.DB.Model(&models.StaffAdmin{}).Where("username = ? OR email = ?", username, email).Count(&count)
	if count > 0 {
		SetFlash(c, "An account with this username or email already exists")
		return hxRedirect(c, "/admin/accounts")
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create account")
	}

	account := models.StaffAdmin{
		Username:   username,
		Email:      email,
		Password:   hash,
		Role:       role,
		Department: strings.TrimSpace(c.FormValue("department")),
		Position:   strings.TrimSpace(c.FormValue("position")),
		FirstName:  firstName,
		MiddleName: strings.TrimSpace(c.FormValue("middle_name")),
		LastName:   lastName,
		IsActive:   true,
	}
	if err := db.DB.Create(&account).Error; err != nil {
		SetFlash(c, "Failed to create account")
		return hxRedirect(c, "/admin/accounts")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserCreated,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Created %s account %s", role, username),
	}, activityContext(c))

	SetFlash(c, fmt.Sprintf("Account %s created", username))
	return hxRedirect(c, "/admin/accounts")
}

// AdminUpdateAccountHandler edits a staff or admin account. Admins cannot
// change their own role or deactivate themselves.
func AdminUpdateAccountHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var account models.StaffAdmin
	if err := db.DB.First(&account, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	if firstName := strings.TrimSpace(c.FormValue("first_name")); firstName != "" {
		account.FirstName = firstName
	}
	if lastName := strings.TrimSpace(c.FormValue("last_name")); lastName != "" {
		account.LastName = lastName
	}
	account.MiddleName = strings.TrimSpace(c.FormValue("middle_name"))
	account.Department = strings.TrimSpace(c.FormValue("department"))
	account.Position = strings.TrimSpace(c.FormValue("position"))

	if role := c.FormValue("role"); role == models.RoleAdmin || role == models.RoleStaff {
		if account.ID == admin.ID && role != account.Role {
			SetFlash(c, "You cannot change your own role")
			return hxRedirect(c, "/admin/accounts")
		}
		if role != account.Role {
			services.LogActivity(db.DB, admin, services.ActivityEntry{
				Type:        models.ActivityRoleChanged,
				Category:    models.CategoryAdministration,
				Description: fmt.Sprintf("Changed role of %s from %s to %s", account.Username, account.Role, role),
			}, activityContext(c))
		}
		account.Role = role
	}

	if password := c.FormValue("password"); password != "" {
		if len(password) < 8 {
			SetFlash(c, "Password must be at least 8 characters")
			return hxRedirect(c, "/admin/accounts")
		}
		hash, err := services.HashPassword(password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update account")
		}
		account.Password = hash
		services.DeleteAllActorSessions(db.DB, account.Ref())
	}

	if err := db.DB.Save(&account).Error; err != nil {
		SetFlash(c, "Failed to update account")
		return hxRedirect(c, "/admin/accounts")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserUpdated,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Updated account %s", account.Username),
	}, activityContext(c))

	SetFlash(c, fmt.Sprintf("Account %s updated", account.Username))
	return hxRedirect(c, "/admin/accounts")
}

// AdminToggleAccountHandler activates or deactivates an account. Not
// allowed on the admin's own account.
func AdminToggleAccountHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if id == admin.ID {
		SetFlash(c, "You cannot deactivate your own account")
		return hxRedirect(c, "/admin/accounts")
	}

	var account models.StaffAdmin
	if err := db.DB.First(&account, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	account.IsActive = !account.IsActive
	if err := db.DB.Save(&account).Error; err != nil {
		SetFlash(c, "Failed to update account")
		return hxRedirect(c, "/admin/accounts")
	}

	activityType := models.ActivityUserActivated
	action := "Activated"
	if !account.IsActive {
		activityType = models.ActivityUserDeactivated
		action = "Deactivated"
		services.DeleteAllActorSessions(db.DB, account.Ref())
	}
	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        activityType,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("%s account %s", action, account.Username),
	}, activityContext(c))

	SetFlash(c, fmt.Sprintf("%s %s", action, account.Username))
	return hxRedirect(c, "/admin/accounts")
}

// AdminDeleteAccountHandler removes a staff account. Not allowed on the
// admin's own account.
func AdminDeleteAccountHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if id == admin.ID {
		SetFlash(c, "You cannot delete your own account")
		return hxRedirect(c, "/admin/accounts")
	}

	var account models.StaffAdmin
	if err := db.DB.First(&account, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Account not found")
	}

	services.DeleteAllActorSessions(db.DB, account.Ref())
	if err := db.DB.Delete(&account).Error; err != nil {
		SetFlash(c, "Failed to delete account")
		return hxRedirect(c, "/admin/accounts")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserDeleted,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Deleted account %s", account.Username),
	}, activityContext(c))

	SetFlash(c, fmt.Sprintf("Account %s deleted", account.Username))
	return hxRedirect(c, "/admin/accounts")
}
