package services

import (
	"log"
	"os"

	"barangay_portal_go/models"

	"gorm.io/gorm"
)

// SeedAdminFromEnv creates the initial admin account from environment
// variables. Only runs if ADMIN_USERNAME and ADMIN_PASSWORD are set and no
// admin account exists yet.
func SeedAdminFromEnv(db *gorm.DB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	email := os.Getenv("ADMIN_EMAIL")

	// Skip if env vars not set
	if username == "" || password == "" {
		return nil
	}

	if email == "" {
		email = username + "@barangay.local"
	}

	var count int64
	if err := db.Model(&models.StaffAdmin{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[SEED] Admin account already exists, skipping seed")
		return nil
	}

	var existing models.StaffAdmin
	if err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		log.Printf("[SEED] Account with username %s already exists, skipping admin seed", username)
		return nil
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.StaffAdmin{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		FirstName: "Barangay",
		LastName:  "Administrator",
		Position:  "Administrator",
		IsActive:  true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("[SEED] Created admin account: %s", username)
	return nil
}
