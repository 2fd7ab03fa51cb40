package middleware

import (
	"net/http"

	"barangay_portal_go/config"
	"barangay_portal_go/db"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "barangay_session"
	// ContextKeyResident is the context key for the authenticated resident
	ContextKeyResident = "resident"
	// ContextKeyStaff is the context key for the authenticated staff or admin
	ContextKeyStaff = "staff"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

func redirectToLogin(c echo.Context, loginPath string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", loginPath)
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusSeeOther, loginPath)
}

// resolveSession validates the session cookie and re-resolves the actor row
// on every request so deactivated accounts lose access immediately.
func resolveSession(c echo.Context) (*models.Session, models.Actor, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, nil, false
	}

	session, err := services.ValidateSession(db.DB, cookie.Value)
	if err != nil {
		ClearSessionCookie(c)
		return nil, nil, false
	}

	actor := session.Actor().Resolve(db.DB)
	if actor == nil {
		ClearSessionCookie(c)
		return nil, nil, false
	}
	return session, actor, true
}

// RequireResident guards the resident area. Unverified accounts cannot
// log in, so a resolved resident is always usable here.
func RequireResident() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, actor, ok := resolveSession(c)
			if !ok {
				return redirectToLogin(c, "/login")
			}

			resident, isResident := actor.(*models.Resident)
			if !isResident {
				return redirectToLogin(c, "/login")
			}

			c.Set(ContextKeyResident, resident)
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// RequireStaff guards the staff area. Admins pass too.
func RequireStaff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, actor, ok := resolveSession(c)
			if !ok {
				return redirectToLogin(c, "/staff/login")
			}

			staff, isStaff := actor.(*models.StaffAdmin)
			if !isStaff || !staff.IsActive {
				ClearSessionCookie(c)
				return redirectToLogin(c, "/staff/login")
			}

			c.Set(ContextKeyStaff, staff)
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// RequireAdmin guards the admin area.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, actor, ok := resolveSession(c)
			if !ok {
				return redirectToLogin(c, "/staff/login")
			}

			staff, isStaff := actor.(*models.StaffAdmin)
			if !isStaff || !staff.IsActive {
				ClearSessionCookie(c)
				return redirectToLogin(c, "/staff/login")
			}
			if !staff.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			c.Set(ContextKeyStaff, staff)
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// RequireAnyActor guards routes any logged-in actor may reach, such as
// attachment downloads. Handlers do their own per-record access checks.
func RequireAnyActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, actor, ok := resolveSession(c)
			if !ok {
				return redirectToLogin(c, "/login")
			}

			switch a := actor.(type) {
			case *models.Resident:
				c.Set(ContextKeyResident, a)
			case *models.StaffAdmin:
				if !a.IsActive {
					ClearSessionCookie(c)
					return redirectToLogin(c, "/staff/login")
				}
				c.Set(ContextKeyStaff, a)
			}
			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// GetCurrentResident retrieves the authenticated resident from context
func GetCurrentResident(c echo.Context) *models.Resident {
	resident, ok := c.Get(ContextKeyResident).(*models.Resident)
	if !ok {
		return nil
	}
	return resident
}

// GetCurrentStaff retrieves the authenticated staff or admin from context
func GetCurrentStaff(c echo.Context) *models.StaffAdmin {
	staff, ok := c.Get(ContextKeyStaff).(*models.StaffAdmin)
	if !ok {
		return nil
	}
	return staff
}

// GetCurrentSession retrieves the session from context
func GetCurrentSession(c echo.Context) *models.Session {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c echo.Context) {
	var isProduction bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		isProduction = cfg.Environment == "production"
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// SetSessionCookie installs the session cookie after a successful login.
func SetSessionCookie(c echo.Context, cfg *config.Config, token string, maxAge int) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
