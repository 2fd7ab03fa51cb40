package handlers

import (
	"log"
	"strings"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// ProfileHandler renders the resident profile page
func ProfileHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	component := pages.Profile(pages.ProfileView{
		Resident: resident,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// UpdateProfileHandler updates contact details and the optional profile
// picture. Email is the login identity and cannot change here.
func UpdateProfileHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	firstName := strings.TrimSpace(c.FormValue("first_name"))
	lastName := strings.TrimSpace(c.FormValue("last_name"))
	phone := strings.TrimSpace(c.FormValue("phone"))
	address := strings.TrimSpace(c.FormValue("address"))

	if firstName == "" || lastName == "" || address == "" {
		SetFlash(c, "Name and address are required")
		return hxRedirect(c, "/profile")
	}

	resident.FirstName = firstName
	resident.MiddleName = strings.TrimSpace(c.FormValue("middle_name"))
	resident.LastName = lastName
	resident.Suffix = strings.TrimSpace(c.FormValue("suffix"))
	resident.Address = address
	if phone != "" {
		resident.Phone = services.NormalizePhoneNumber(phone)
	}

	if file, err := c.FormFile("profile_picture"); err == nil {
		if err := services.ValidateImageUpload(file); err != nil {
			SetFlash(c, err.Error())
			return hxRedirect(c, "/profile")
		}
		key := services.GenerateProfilePictureKey(resident.ID, file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			log.Printf("[UPLOAD] profile picture: %v", err)
		} else {
			if resident.ProfilePicture != "" {
				if err := services.Storage.Delete(c.Request().Context(), resident.ProfilePicture); err != nil {
					log.Printf("[UPLOAD] failed to delete old profile picture: %v", err)
				}
			}
			resident.ProfilePicture = result.Key
		}
	}

	if err := db.DB.Save(resident).Error; err != nil {
		SetFlash(c, "Failed to update profile")
		return hxRedirect(c, "/profile")
	}

	services.LogActivity(db.DB, resident, services.ActivityEntry{
		Type:        models.ActivityUserUpdated,
		Category:    models.CategoryAdministration,
		Description: "Updated profile details",
	}, activityContext(c))

	SetFlash(c, "Profile updated")
	return hxRedirect(c, "/profile")
}

// ChangePasswordHandler changes the resident's password and ends every
// other session.
func ChangePasswordHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirm := c.FormValue("confirm_password")

	if !services.CheckPassword(current, resident.Password) {
		SetFlash(c, "Current password is incorrect")
		return hxRedirect(c, "/profile")
	}
	if len(newPassword) < 8 {
		SetFlash(c, "New password must be at least 8 characters")
		return hxRedirect(c, "/profile")
	}
	if newPassword != confirm {
		SetFlash(c, "Passwords do not match")
		return hxRedirect(c, "/profile")
	}

	hash, err := services.HashPassword(newPassword)
	if err != nil {
		SetFlash(c, "Failed to change password")
		return hxRedirect(c, "/profile")
	}
	resident.Password = hash
	if err := db.DB.Save(resident).Error; err != nil {
		SetFlash(c, "Failed to change password")
		return hxRedirect(c, "/profile")
	}

	// Keep the current session, drop the rest
	currentToken := ""
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		currentToken = cookie.Value
	}
	db.DB.Where("actor_kind = ? AND actor_id = ? AND token != ?",
		models.ActorKindResident, resident.ID, currentToken).
		Delete(&models.Session{})

	services.LogActivity(db.DB, resident, services.ActivityEntry{
		Type:        models.ActivityPasswordChange,
		Category:    models.CategoryAuthentication,
		Description: "Changed account password",
	}, activityContext(c))

	SetFlash(c, "Password changed")
	return hxRedirect(c, "/profile")
}
