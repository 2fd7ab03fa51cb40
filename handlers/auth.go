package handlers

import (
	"net/http"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// globalDummyHash is verified against when no account matches, so failed
// logins take the same time either way.
var globalDummyHash = "$2a$10$X7.G.t8./.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t"

func init() {
	hash, _ := services.HashPassword("dummy_password_for_timing_mitigation")
	if hash != "" {
		globalDummyHash = hash
	}
}

// LoginHandler renders the resident login page
func LoginHandler(c echo.Context) error {
	component := pages.Login("Login | Barangay Portal", GetFlash(c))
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// LoginPostHandler handles the resident login form
func LoginPostHandler(c echo.Context) error {
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")

	if email == "" || password == "" {
		SetFlash(c, "Email and password are required")
		return hxRedirect(c, "/login")
	}

	var resident models.Resident
	err := db.DB.Where("email = ?", email).First(&resident).Error
	if err != nil {
		services.CheckPassword(password, globalDummyHash)
		SetFlash(c, "Invalid email or password")
		return hxRedirect(c, "/login")
	}

	if !services.CheckPassword(password, resident.Password) {
		services.LogLoginAttempt(db.DB, &resident, false, "invalid password", activityContext(c))
		SetFlash(c, "Invalid email or password")
		return hxRedirect(c, "/login")
	}

	if !resident.IsVerified {
		services.LogLoginAttempt(db.DB, &resident, false, "account not verified", activityContext(c))
		SetFlash(c, "Your account is awaiting verification by the barangay office")
		return hxRedirect(c, "/login")
	}

	session, err := services.CreateSession(db.DB, resident.Ref(), c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	middleware.SetSessionCookie(c, getConfig(c), session.Token, int(services.DefaultSessionDuration.Seconds()))
	services.LogLoginAttempt(db.DB, &resident, true, "", activityContext(c))

	return hxRedirect(c, "/dashboard")
}

// RegisterHandler renders the resident registration page
func RegisterHandler(c echo.Context) error {
	component := pages.Register("Register | Barangay Portal", GetFlash(c))
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// RegisterPostHandler creates a resident account pending verification
func RegisterPostHandler(c echo.Context) error {
	firstName := strings.TrimSpace(c.FormValue("first_name"))
	middleName := strings.TrimSpace(c.FormValue("middle_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))
	suffix := strings.TrimSpace(c.FormValue("suffix"))
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	phone := strings.TrimSpace(c.FormValue("phone"))
	address := strings.TrimSpace(c.FormValue("address"))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	if firstName == "" || lastName == "" || email == "" || address == "" || password == "" {
		SetFlash(c, "Please fill in all required fields")
		return hxRedirect(c, "/register")
	}
	if len(password) < 8 {
		SetFlash(c, "Password must be at least 8 characters")
		return hxRedirect(c, "/register")
	}
	if password != confirm {
		SetFlash(c, "Passwords do not match")
		return hxRedirect(c, "/register")
	}

	var count int64
	db.DB.Model(&models.Resident{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		SetFlash(c, "An account with this email already exists")
		return hxRedirect(c, "/register")
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create account")
	}

	resident := models.Resident{
		FirstName:  firstName,
		MiddleName: middleName,
		LastName:   lastName,
		Suffix:     suffix,
		Email:      email,
		Phone:      services.NormalizePhoneNumber(phone),
		Address:    address,
		Password:   hash,
		IsVerified: false,
	}
	if err := db.DB.Create(&resident).Error; err != nil {
		SetFlash(c, "Failed to create account. Please try again.")
		return hxRedirect(c, "/register")
	}

	services.LogActivity(db.DB, &resident, services.ActivityEntry{
		Type:        models.ActivityUserCreated,
		Category:    models.CategoryAuthentication,
		Description: "Resident account registered",
	}, activityContext(c))

	SetFlash(c, "Account created. You can log in once the barangay office verifies your account.")
	return hxRedirect(c, "/login")
}

// LogoutHandler ends the resident session
func LogoutHandler(c echo.Context) error {
	if resident := middleware.GetCurrentResident(c); resident != nil {
		services.LogLogout(db.DB, resident, activityContext(c))
	}
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}
	middleware.ClearSessionCookie(c)
	return hxRedirect(c, "/login")
}

// StaffLoginHandler renders the staff and admin login page
func StaffLoginHandler(c echo.Context) error {
	component := pages.StaffLogin("Staff Login | Barangay Portal", GetFlash(c))
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// StaffLoginPostHandler handles the staff and admin login form
func StaffLoginPostHandler(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	if username == "" || password == "" {
		SetFlash(c, "Username and password are required")
		return hxRedirect(c, "/staff/login")
	}

	var staff models.StaffAdmin
	err := db.DB.Where("username = ?", username).First(&staff).Error
	if err != nil {
		services.CheckPassword(password, globalDummyHash)
		SetFlash(c, "Invalid username or password")
		return hxRedirect(c, "/staff/login")
	}

	if !services.CheckPassword(password, staff.Password) {
		services.LogLoginAttempt(db.DB, &staff, false, "invalid password", activityContext(c))
		SetFlash(c, "Invalid username or password")
		return hxRedirect(c, "/staff/login")
	}

	if !staff.IsActive {
		services.LogLoginAttempt(db.DB, &staff, false, "account deactivated", activityContext(c))
		SetFlash(c, "Your account has been deactivated")
		return hxRedirect(c, "/staff/login")
	}

	session, err := services.CreateSession(db.DB, staff.Ref(), c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	middleware.SetSessionCookie(c, getConfig(c), session.Token, int(services.DefaultSessionDuration.Seconds()))
	services.LogLoginAttempt(db.DB, &staff, true, "", activityContext(c))

	if staff.IsAdmin() {
		return hxRedirect(c, "/admin/dashboard")
	}
	return hxRedirect(c, "/staff/dashboard")
}

// StaffLogoutHandler ends the staff or admin session
func StaffLogoutHandler(c echo.Context) error {
	if staff := middleware.GetCurrentStaff(c); staff != nil {
		services.LogLogout(db.DB, staff, activityContext(c))
	}
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}
	middleware.ClearSessionCookie(c)
	return hxRedirect(c, "/staff/login")
}
