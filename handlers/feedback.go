package handlers

import (
	"errors"
	"strconv"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// FeedbackFormHandler renders the feedback form. Logged-in residents get
// their name and email prefilled; the public form starts empty.
func FeedbackFormHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	component := pages.FeedbackForm(pages.FeedbackFormView{
		Resident:   resident,
		Categories: models.FeedbackCategories,
		Flash:      GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// SubmitFeedbackHandler stores one feedback entry
func SubmitFeedbackHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	rating, _ := strconv.Atoi(c.FormValue("rating"))
	input := services.FeedbackInput{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Subject:  strings.TrimSpace(c.FormValue("subject")),
		Message:  strings.TrimSpace(c.FormValue("message")),
		Category: c.FormValue("category"),
		Rating:   rating,
	}
	if resident != nil {
		id := resident.ID
		input.UserID = &id
		if input.Name == "" {
			input.Name = resident.DisplayName()
		}
		if input.Email == "" {
			input.Email = resident.Email
		}
	}

	service := services.NewFeedbackService(db.DB, getConfig(c))
	if _, err := service.Submit(input); err != nil {
		if errors.Is(err, services.ErrInvalidRating) {
			SetFlash(c, "Please choose a rating between 1 and 5")
		} else {
			SetFlash(c, "Please fill in all required fields")
		}
		return hxRedirect(c, "/feedback")
	}

	SetFlash(c, "Thank you for your feedback!")
	return hxRedirect(c, "/feedback")
}
