package handlers

import (
	"fmt"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
)

// AdminPinPostHandler toggles the pinned flag on a forum post
func AdminPinPostHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	pinned, err := service.TogglePin(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	action := "Unpinned"
	if pinned {
		action = "Pinned"
	}
	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivitySettingsChanged,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("%s forum post #%d", action, id),
	}, activityContext(c))

	return c.JSON(http.StatusOK, map[string]bool{"pinned": pinned})
}

// AdminDeletePostHandler removes any forum post (moderation)
func AdminDeletePostHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	if err := service.DeletePost(id, admin.Ref()); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserUpdated,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Removed forum post #%d", id),
	}, activityContext(c))

	SetFlash(c, "Post removed")
	return hxRedirect(c, "/forum")
}

// AdminDeleteCommentHandler removes any forum comment (moderation)
func AdminDeleteCommentHandler(c echo.Context) error {
	admin := middleware.GetCurrentStaff(c)
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		return err
	}

	var comment models.PostComment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	service := services.NewForumService(db.DB)
	if err := service.DeleteComment(commentID, admin.Ref()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove comment")
	}

	services.LogActivity(db.DB, admin, services.ActivityEntry{
		Type:        models.ActivityUserUpdated,
		Category:    models.CategoryAdministration,
		Description: fmt.Sprintf("Removed comment #%d from forum post #%d", commentID, comment.PostID),
	}, activityContext(c))

	return hxRedirect(c, fmt.Sprintf("/forum/%d", comment.PostID))
}
