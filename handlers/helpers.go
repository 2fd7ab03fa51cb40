package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"barangay_portal_go/config"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "portal_flash"

// SetFlash stores a one-shot message shown on the next page load.
func SetFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetFlash reads and clears the flash message.
func GetFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// hxRedirect redirects both full page loads and HTMX requests.
func hxRedirect(c echo.Context, target string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func getConfig(c echo.Context) *config.Config {
	cfg, _ := c.Get("config").(*config.Config)
	return cfg
}

// parsePage reads ?page= with a minimum of 1.
func parsePage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePerPage reads ?per_page= restricted to the allowed page sizes.
func parsePerPage(c echo.Context, defaultSize int) int {
	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil {
		return defaultSize
	}
	switch perPage {
	case 10, 25, 50, 100:
		return perPage
	default:
		return defaultSize
	}
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c echo.Context, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(raw), nil
}

// activityContext captures the request origin for the activity log.
func activityContext(c echo.Context) services.ActivityContext {
	return services.ActivityContext{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// currentActor returns the logged-in actor regardless of area.
func currentActor(c echo.Context) models.Actor {
	if resident := middleware.GetCurrentResident(c); resident != nil {
		return resident
	}
	if staff := middleware.GetCurrentStaff(c); staff != nil {
		return staff
	}
	return nil
}
