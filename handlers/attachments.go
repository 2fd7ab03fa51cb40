package handlers

import (
	"io"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"github.com/labstack/echo/v4"
)

// canAccessComplaint reports whether the current actor may read the
// complaint: the owner, the assignee, or any admin.
func canAccessComplaint(c echo.Context, complaint *models.Complaint) bool {
	if resident := middleware.GetCurrentResident(c); resident != nil {
		return complaint.UserID == resident.ID
	}
	if staff := middleware.GetCurrentStaff(c); staff != nil {
		if staff.IsAdmin() {
			return true
		}
		return complaint.AssignedToID != nil && *complaint.AssignedToID == staff.ID
	}
	return false
}

func canAccessAssistance(c echo.Context, request *models.AssistanceRequest) bool {
	if resident := middleware.GetCurrentResident(c); resident != nil {
		return request.UserID == resident.ID
	}
	if staff := middleware.GetCurrentStaff(c); staff != nil {
		if staff.IsAdmin() {
			return true
		}
		return request.AssignedToID != nil && *request.AssignedToID == staff.ID
	}
	return false
}

func streamAttachment(c echo.Context, storageKey, fileName, contentType string) error {
	reader, storedType, err := services.Storage.Get(c.Request().Context(), storageKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	defer reader.Close()

	if contentType == "" {
		contentType = storedType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	_, err = io.Copy(c.Response().Writer, reader)
	return err
}

// DownloadComplaintAttachmentHandler streams a complaint attachment to an
// authorized actor.
func DownloadComplaintAttachmentHandler(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var attachment models.ComplaintAttachment
	if err := db.DB.Preload("Complaint").First(&attachment, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Attachment not found")
	}
	if !canAccessComplaint(c, &attachment.Complaint) {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	if actor := currentActor(c); actor != nil {
		services.LogCaseActivity(db.DB, actor, &attachment.Complaint, models.ActivityFileDownloaded,
			"Downloaded attachment "+attachment.FileName, activityContext(c))
	}

	return streamAttachment(c, attachment.StorageKey, attachment.FileName, attachment.ContentType)
}

// DownloadAssistanceAttachmentHandler streams an assistance attachment to
// an authorized actor.
func DownloadAssistanceAttachmentHandler(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var attachment models.AssistanceAttachment
	if err := db.DB.Preload("AssistanceRequest").First(&attachment, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Attachment not found")
	}
	if !canAccessAssistance(c, &attachment.AssistanceRequest) {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	if actor := currentActor(c); actor != nil {
		services.LogCaseActivity(db.DB, actor, &attachment.AssistanceRequest, models.ActivityFileDownloaded,
			"Downloaded attachment "+attachment.FileName, activityContext(c))
	}

	return streamAttachment(c, attachment.StorageKey, attachment.FileName, attachment.ContentType)
}
