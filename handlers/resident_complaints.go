package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

func parseOptionalCoord(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// saveComplaintAttachments uploads valid files and records the metadata.
// Individual upload failures are logged and skipped so the complaint itself
// is never lost.
func saveComplaintAttachments(c echo.Context, complaintID uint, files []*multipart.FileHeader) {
	for _, file := range files {
		if err := services.ValidateAttachmentUpload(file); err != nil {
			log.Printf("[UPLOAD] skipping attachment %s: %v", file.Filename, err)
			continue
		}
		key := services.GenerateComplaintAttachmentKey(complaintID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			log.Printf("[UPLOAD] failed to store attachment %s: %v", file.Filename, err)
			continue
		}
		attachment := models.ComplaintAttachment{
			ComplaintID: complaintID,
			StorageKey:  result.Key,
			FileName:    file.Filename,
			FileSize:    file.Size,
			ContentType: file.Header.Get("Content-Type"),
		}
		if err := db.DB.Create(&attachment).Error; err != nil {
			log.Printf("[UPLOAD] failed to save attachment record: %v", err)
		}
	}
}

// MyComplaintsHandler lists the resident's complaints
func MyComplaintsHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	status := c.QueryParam("status")
	page := parsePage(c)
	perPage := parsePerPage(c, 10)

	query := db.DB.Model(&models.Complaint{}).Where("user_id = ?", resident.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var complaints []models.Complaint
	query.Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&complaints)

	component := pages.MyComplaints(pages.MyComplaintsView{
		Resident:   resident,
		Complaints: complaints,
		Status:     status,
		Pagination: pages.NewPagination(page, perPage, total),
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// NewComplaintHandler renders the complaint form
func NewComplaintHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	component := pages.ComplaintForm(pages.ComplaintFormView{
		Resident:   resident,
		Categories: models.ComplaintCategories,
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// CreateComplaintHandler files a new complaint. Priority comes from the AI
// classifier, falling back to medium when the model is unavailable.
func CreateComplaintHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	cfg := getConfig(c)

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	category := strings.TrimSpace(c.FormValue("category"))
	location := strings.TrimSpace(c.FormValue("location_description"))
	address := strings.TrimSpace(c.FormValue("address"))

	if title == "" || description == "" || category == "" || location == "" || address == "" {
		SetFlash(c, "Please fill in all required fields")
		return hxRedirect(c, "/complaints/new")
	}

	classifier := services.NewClassifierService(cfg)
	priority, err := classifier.PriorityFor(c.Request().Context(), services.CaseDetails{
		Subject:         title,
		Description:     description,
		Category:        category,
		AreaDescription: location,
		Location:        address,
	})
	if err != nil {
		log.Printf("[CLASSIFY] using default priority for new complaint: %v", err)
	}

	complaint := models.Complaint{
		UserID:              resident.ID,
		Title:               title,
		Description:         description,
		Category:            category,
		Priority:            priority,
		Status:              models.ComplaintStatusPending,
		LocationDescription: location,
		Address:             address,
		Latitude:            parseOptionalCoord(c.FormValue("latitude")),
		Longitude:           parseOptionalCoord(c.FormValue("longitude")),
	}
	if err := db.DB.Create(&complaint).Error; err != nil {
		SetFlash(c, "Failed to file complaint. Please try again.")
		return hxRedirect(c, "/complaints/new")
	}

	if form, err := c.MultipartForm(); err == nil {
		saveComplaintAttachments(c, complaint.ID, form.File["attachments"])
	}

	notifications := services.NewNotificationService(db.DB)
	if _, err := notifications.NotifyNewCaseFiled(&complaint, resident); err != nil {
		log.Printf("[NOTIFY] new complaint fan-out: %v", err)
	}
	if priority == models.PriorityHigh || priority == models.PriorityUrgent {
		if _, err := notifications.NotifyUrgentCase(&complaint, resident.Ref()); err != nil {
			log.Printf("[NOTIFY] urgent complaint alert: %v", err)
		}
	}

	services.LogCaseActivity(db.DB, resident, &complaint, models.ActivityComplaintFiled,
		fmt.Sprintf("Filed complaint #%d: %s", complaint.ID, complaint.Title), activityContext(c))

	SetFlash(c, fmt.Sprintf("Complaint #%d filed successfully", complaint.ID))
	return hxRedirect(c, fmt.Sprintf("/complaints/%d", complaint.ID))
}

// ComplaintDetailHandler shows one of the resident's complaints
func ComplaintDetailHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var complaint models.Complaint
	err = db.DB.Preload("AssignedTo").Preload("Attachments").
		Where("user_id = ?", resident.ID).
		First(&complaint, id).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Complaint not found")
	}

	services.LogCaseActivity(db.DB, resident, &complaint, models.ActivityComplaintViewed,
		fmt.Sprintf("Viewed complaint #%d", complaint.ID), activityContext(c))

	component := pages.ComplaintDetail(pages.ComplaintDetailView{
		Resident:  resident,
		Complaint: complaint,
		Flash:     GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// ComplaintFollowUpHandler appends a follow-up to an open complaint and
// re-runs the priority classifier over the combined description.
func ComplaintFollowUpHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	cfg := getConfig(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	message := strings.TrimSpace(c.FormValue("message"))
	if message == "" {
		SetFlash(c, "Follow-up message is required")
		return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
	}

	var complaint models.Complaint
	if err := db.DB.Where("user_id = ?", resident.ID).First(&complaint, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Complaint not found")
	}
	if complaint.IsTerminal() {
		SetFlash(c, "This complaint is already closed")
		return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
	}

	complaint.Description = complaint.Description + "\n\n[Follow-up] " + message

	classifier := services.NewClassifierService(cfg)
	priority, err := classifier.PriorityFor(c.Request().Context(), services.CaseDetails{
		Subject:         complaint.Title,
		Description:     complaint.Description,
		Category:        complaint.Category,
		AreaDescription: complaint.LocationDescription,
		Location:        complaint.Address,
	})
	if err == nil {
		complaint.Priority = priority
	}

	if err := db.DB.Save(&complaint).Error; err != nil {
		SetFlash(c, "Failed to save follow-up")
		return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
	}

	notifications := services.NewNotificationService(db.DB)
	if _, err := notifications.NotifyCaseFollowUp(&complaint, resident); err != nil {
		log.Printf("[NOTIFY] follow-up fan-out: %v", err)
	}
	if complaint.Priority == models.PriorityHigh || complaint.Priority == models.PriorityUrgent {
		if _, err := notifications.NotifyUrgentCase(&complaint, resident.Ref()); err != nil {
			log.Printf("[NOTIFY] urgent follow-up alert: %v", err)
		}
	}

	services.LogCaseActivity(db.DB, resident, &complaint, models.ActivityFollowupRequest,
		fmt.Sprintf("Added follow-up to complaint #%d", complaint.ID), activityContext(c))

	SetFlash(c, "Follow-up submitted")
	return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
}

// DeleteComplaintHandler lets a resident withdraw a pending complaint
func DeleteComplaintHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var complaint models.Complaint
	if err := db.DB.Preload("Attachments").Where("user_id = ?", resident.ID).First(&complaint, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Complaint not found")
	}
	if complaint.Status != models.ComplaintStatusPending {
		SetFlash(c, "Only pending complaints can be withdrawn")
		return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
	}

	services.LogCaseActivity(db.DB, resident, &complaint, models.ActivityComplaintDeleted,
		fmt.Sprintf("Withdrew complaint #%d: %s", complaint.ID, complaint.Title), activityContext(c))

	if err := db.DB.Delete(&complaint).Error; err != nil {
		SetFlash(c, "Failed to withdraw complaint")
		return hxRedirect(c, fmt.Sprintf("/complaints/%d", id))
	}

	// Attachment rows cascade with the complaint; the stored objects do not.
	for _, attachment := range complaint.Attachments {
		if err := services.Storage.Delete(c.Request().Context(), attachment.StorageKey); err != nil {
			log.Printf("[STORAGE] failed to remove attachment %s: %v", attachment.StorageKey, err)
		}
	}

	SetFlash(c, "Complaint withdrawn")
	return hxRedirect(c, "/complaints")
}
