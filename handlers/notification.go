package handlers

import (
	"errors"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// NotificationsHandler lists the current actor's notifications. Archived
// entries stay hidden unless the archived filter is selected.
func NotificationsHandler(c echo.Context) error {
	actor := currentActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	filters := services.NotificationFilters{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
	}
	page := parsePage(c)

	service := services.NewNotificationService(db.DB)
	notifications, total, err := service.List(actor.Ref(), filters, page, 5)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}
	unread, _ := service.UnreadCount(actor.Ref())

	component := pages.Notifications(pages.NotificationsView{
		Actor:         actor,
		Notifications: notifications,
		UnreadCount:   unread,
		Status:        filters.Status,
		Type:          filters.Type,
		Pagination:    pages.NewPagination(page, 5, total),
		Flash:         GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// UnreadCountHandler returns the unread badge count as JSON for polling
func UnreadCountHandler(c echo.Context) error {
	actor := currentActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	service := services.NewNotificationService(db.DB)
	count, err := service.UnreadCount(actor.Ref())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": count})
}

// MarkNotificationReadHandler marks one notification as read
func MarkNotificationReadHandler(c echo.Context) error {
	actor := currentActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewNotificationService(db.DB)
	if _, err := service.GetForRecipient(id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notification")
	}
	if err := service.MarkAsRead(id, actor.Ref()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark as read")
	}
	if isHTMX(c) {
		return c.String(http.StatusOK, "")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// MarkAllNotificationsReadHandler marks every unread notification as read
func MarkAllNotificationsReadHandler(c echo.Context) error {
	actor := currentActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	service := services.NewNotificationService(db.DB)
	updated, err := service.MarkAllAsRead(actor.Ref())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark all as read")
	}
	if isHTMX(c) {
		return hxRedirect(c, c.Request().Referer())
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": updated})
}

// ArchiveNotificationHandler archives one notification
func ArchiveNotificationHandler(c echo.Context) error {
	actor := currentActor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewNotificationService(db.DB)
	if _, err := service.GetForRecipient(id, actor.Ref()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notification")
	}
	if err := service.Archive(id, actor.Ref()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to archive notification")
	}
	if isHTMX(c) {
		return c.String(http.StatusOK, "")
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
