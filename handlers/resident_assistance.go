package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

func validAssistanceType(t string) bool {
	for _, v := range models.AssistanceTypes {
		if v == t {
			return true
		}
	}
	return false
}

func saveAssistanceAttachments(c echo.Context, assistanceID uint, files []*multipart.FileHeader) {
	for _, file := range files {
		if err := services.ValidateAttachmentUpload(file); err != nil {
			log.Printf("[UPLOAD] skipping attachment %s: %v", file.Filename, err)
			continue
		}
		key := services.GenerateAssistanceAttachmentKey(assistanceID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			log.Printf("[UPLOAD] failed to store attachment %s: %v", file.Filename, err)
			continue
		}
		attachment := models.AssistanceAttachment{
			AssistanceRequestID: assistanceID,
			StorageKey:          result.Key,
			FileName:            file.Filename,
			FileSize:            file.Size,
			ContentType:         file.Header.Get("Content-Type"),
		}
		if err := db.DB.Create(&attachment).Error; err != nil {
			log.Printf("[UPLOAD] failed to save attachment record: %v", err)
		}
	}
}

// MyAssistanceHandler lists the resident's assistance requests
func MyAssistanceHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	status := c.QueryParam("status")
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.AssistanceRequest{}).Where("user_id = ?", resident.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var requests []models.AssistanceRequest
	query.Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&requests)

	component := pages.MyAssistance(pages.MyAssistanceView{
		Resident:   resident,
		Requests:   requests,
		Status:     status,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// NewAssistanceHandler renders the assistance request form
func NewAssistanceHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	component := pages.AssistanceForm(pages.AssistanceFormView{
		Resident: resident,
		Types:    models.AssistanceTypes,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// CreateAssistanceHandler files a new assistance request. Urgency comes
// from the AI classifier; critical maps from the classifier's urgent.
func CreateAssistanceHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	cfg := getConfig(c)

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	requestType := strings.TrimSpace(c.FormValue("type"))
	address := strings.TrimSpace(c.FormValue("address"))

	if title == "" || description == "" || requestType == "" || address == "" {
		SetFlash(c, "Please fill in all required fields")
		return hxRedirect(c, "/assistance/new")
	}
	if !validAssistanceType(requestType) {
		SetFlash(c, "Invalid assistance type")
		return hxRedirect(c, "/assistance/new")
	}

	classifier := services.NewClassifierService(cfg)
	priority, err := classifier.PriorityFor(c.Request().Context(), services.CaseDetails{
		Subject:     title,
		Description: description,
		Category:    requestType,
		Location:    address,
	})
	if err != nil {
		log.Printf("[CLASSIFY] using default urgency for new assistance request: %v", err)
	}
	urgency := priority
	if urgency == models.PriorityUrgent {
		urgency = models.UrgencyCritical
	}

	request := models.AssistanceRequest{
		UserID:      resident.ID,
		Title:       title,
		Description: description,
		Type:        requestType,
		Urgency:     urgency,
		Status:      models.AssistanceStatusPending,
		Address:     address,
		Latitude:    parseOptionalCoord(c.FormValue("latitude")),
		Longitude:   parseOptionalCoord(c.FormValue("longitude")),
	}
	if err := db.DB.Create(&request).Error; err != nil {
		SetFlash(c, "Failed to submit request. Please try again.")
		return hxRedirect(c, "/assistance/new")
	}

	if form, err := c.MultipartForm(); err == nil {
		saveAssistanceAttachments(c, request.ID, form.File["attachments"])
	}

	notifications := services.NewNotificationService(db.DB)
	if _, err := notifications.NotifyNewCaseFiled(&request, resident); err != nil {
		log.Printf("[NOTIFY] new assistance fan-out: %v", err)
	}
	if request.Urgency == models.UrgencyHigh || request.Urgency == models.UrgencyCritical {
		if _, err := notifications.NotifyUrgentCase(&request, resident.Ref()); err != nil {
			log.Printf("[NOTIFY] urgent assistance alert: %v", err)
		}
	}

	services.LogCaseActivity(db.DB, resident, &request, models.ActivityAssistanceFiled,
		fmt.Sprintf("Filed assistance request #%d: %s", request.ID, request.Title), activityContext(c))

	SetFlash(c, fmt.Sprintf("Assistance request #%d submitted", request.ID))
	return hxRedirect(c, fmt.Sprintf("/assistance/%d", request.ID))
}

// EmergencyAssistanceHandler files a critical assistance request through
// the one-tap emergency form and alerts all active staff and admins.
func EmergencyAssistanceHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	description := strings.TrimSpace(c.FormValue("description"))
	address := strings.TrimSpace(c.FormValue("address"))
	if description == "" {
		description = "Emergency assistance requested through the quick emergency form."
	}
	if address == "" {
		address = resident.Address
	}

	request := models.AssistanceRequest{
		UserID:      resident.ID,
		Title:       "EMERGENCY: Immediate assistance needed",
		Description: description,
		Type:        models.AssistanceTypeEmergency,
		Urgency:     models.UrgencyCritical,
		Status:      models.AssistanceStatusPending,
		Address:     address,
		Latitude:    parseOptionalCoord(c.FormValue("latitude")),
		Longitude:   parseOptionalCoord(c.FormValue("longitude")),
	}
	if err := db.DB.Create(&request).Error; err != nil {
		SetFlash(c, "Failed to submit emergency request. Please call the barangay hotline.")
		return hxRedirect(c, "/dashboard")
	}

	notifications := services.NewNotificationService(db.DB)
	if _, err := notifications.NotifyNewCaseFiled(&request, resident); err != nil {
		log.Printf("[NOTIFY] emergency fan-out: %v", err)
	}
	if _, err := notifications.NotifyUrgentCase(&request, resident.Ref()); err != nil {
		log.Printf("[NOTIFY] emergency alert: %v", err)
	}

	services.LogCaseActivity(db.DB, resident, &request, models.ActivityAssistanceFiled,
		fmt.Sprintf("Filed emergency assistance request #%d", request.ID), activityContext(c))

	SetFlash(c, "Emergency request submitted. The barangay office has been alerted.")
	return hxRedirect(c, fmt.Sprintf("/assistance/%d", request.ID))
}

// AssistanceDetailHandler shows one of the resident's assistance requests
func AssistanceDetailHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var request models.AssistanceRequest
	err = db.DB.Preload("AssignedTo").Preload("Attachments").
		Where("user_id = ?", resident.ID).
		First(&request, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assistance request not found")
	}

	services.LogCaseActivity(db.DB, resident, &request, models.ActivityAssistanceViewed,
		fmt.Sprintf("Viewed assistance request #%d", request.ID), activityContext(c))

	component := pages.AssistanceDetail(pages.AssistanceDetailView{
		Resident: resident,
		Request:  request,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// AssistanceFollowUpHandler appends a follow-up to an open request and
// re-runs the urgency classifier over the combined description.
func AssistanceFollowUpHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	cfg := getConfig(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	message := strings.TrimSpace(c.FormValue("message"))
	if message == "" {
		SetFlash(c, "Follow-up message is required")
		return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
	}

	var request models.AssistanceRequest
	if err := db.DB.Where("user_id = ?", resident.ID).First(&request, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assistance request not found")
	}
	if request.IsTerminal() {
		SetFlash(c, "This request is already closed")
		return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
	}

	request.Description = request.Description + "\n\n[Follow-up] " + message

	classifier := services.NewClassifierService(cfg)
	priority, err := classifier.PriorityFor(c.Request().Context(), services.CaseDetails{
		Subject:     request.Title,
		Description: request.Description,
		Category:    request.Type,
		Location:    request.Address,
	})
	if err == nil {
		if priority == models.PriorityUrgent {
			priority = models.UrgencyCritical
		}
		request.Urgency = priority
	}

	if err := db.DB.Save(&request).Error; err != nil {
		SetFlash(c, "Failed to save follow-up")
		return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
	}

	notifications := services.NewNotificationService(db.DB)
	if _, err := notifications.NotifyCaseFollowUp(&request, resident); err != nil {
		log.Printf("[NOTIFY] follow-up fan-out: %v", err)
	}
	if request.Urgency == models.UrgencyHigh || request.Urgency == models.UrgencyCritical {
		if _, err := notifications.NotifyUrgentCase(&request, resident.Ref()); err != nil {
			log.Printf("[NOTIFY] urgent follow-up alert: %v", err)
		}
	}

	services.LogCaseActivity(db.DB, resident, &request, models.ActivityFollowupRequest,
		fmt.Sprintf("Added follow-up to assistance request #%d", request.ID), activityContext(c))

	SetFlash(c, "Follow-up submitted")
	return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
}

// DeleteAssistanceHandler lets a resident withdraw a pending request
func DeleteAssistanceHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var request models.AssistanceRequest
	if err := db.DB.Preload("Attachments").Where("user_id = ?", resident.ID).First(&request, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Assistance request not found")
	}
	if request.Status != models.AssistanceStatusPending {
		SetFlash(c, "Only pending requests can be withdrawn")
		return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
	}

	services.LogCaseActivity(db.DB, resident, &request, models.ActivityAssistanceDeleted,
		fmt.Sprintf("Withdrew assistance request #%d: %s", request.ID, request.Title), activityContext(c))

	if err := db.DB.Delete(&request).Error; err != nil {
		SetFlash(c, "Failed to withdraw request")
		return hxRedirect(c, fmt.Sprintf("/assistance/%d", id))
	}

	// Attachment rows cascade with the request; the stored objects do not.
	for _, attachment := range request.Attachments {
		if err := services.Storage.Delete(c.Request().Context(), attachment.StorageKey); err != nil {
			log.Printf("[STORAGE] failed to remove attachment %s: %v", attachment.StorageKey, err)
		}
	}

	SetFlash(c, "Assistance request withdrawn")
	return hxRedirect(c, "/assistance")
}
