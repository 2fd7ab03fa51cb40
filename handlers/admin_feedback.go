package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AdminFeedbackHandler lists feedback with filters and summary stats
func AdminFeedbackHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)

	rating, _ := strconv.Atoi(c.QueryParam("rating"))
	filters := services.FeedbackFilters{
		Category:    c.QueryParam("category"),
		Rating:      rating,
		Status:      c.QueryParam("status"),
		SearchQuery: c.QueryParam("q"),
	}
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	service := services.NewFeedbackService(db.DB, getConfig(c))
	items, total, err := service.List(filters, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feedback")
	}
	stats, err := service.Stats()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load feedback stats")
	}

	component := pages.AdminFeedback(pages.AdminFeedbackView{
		Admin:      admin,
		Items:      items,
		Stats:      stats,
		Categories: models.FeedbackCategories,
		Filters:    filters,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AdminFeedbackReadHandler marks one feedback entry as read
func AdminFeedbackReadHandler(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewFeedbackService(db.DB, getConfig(c))
	if _, err := service.Get(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
	}
	if err := service.MarkAsRead(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark as read")
	}
	if isHTMX(c) {
		return c.String(http.StatusOK, "")
	}
	return hxRedirect(c, "/admin/feedback")
}

// AdminFeedbackRespondHandler records the one-time admin response and
// emails the submitter.
func AdminFeedbackRespondHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewFeedbackService(db.DB, getConfig(c))
	feedback, err := service.Respond(id, c.FormValue("response"))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
		case errors.Is(err, services.ErrAlreadyResponded):
			SetFlash(c, "This feedback already has a response")
			return hxRedirect(c, "/admin/feedback")
		default:
			SetFlash(c, "Failed to save response")
			return hxRedirect(c, "/admin/feedback")
		}
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityCommentAdded,
		Category:    models.CategoryCommunication,
		Description: "Responded to feedback from " + feedback.Name,
	}, activityContext(c))

	SetFlash(c, "Response sent to "+feedback.Email)
	return hxRedirect(c, "/admin/feedback")
}

// AdminFeedbackDeleteHandler removes a feedback entry
func AdminFeedbackDeleteHandler(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewFeedbackService(db.DB, getConfig(c))
	if err := service.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete feedback")
	}

	SetFlash(c, "Feedback deleted")
	return hxRedirect(c, "/admin/feedback")
}
