package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"barangay_portal_go/config"
	"barangay_portal_go/db"
	"barangay_portal_go/models"
	"barangay_portal_go/services"

	"golang.org/x/term"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.StaffAdmin{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("First name: ")
	firstName, _ := reader.ReadString('\n')
	firstName = strings.TrimSpace(firstName)

	fmt.Print("Last name: ")
	lastName, _ := reader.ReadString('\n')
	lastName = strings.TrimSpace(lastName)

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println()

	if username == "" || email == "" || firstName == "" || lastName == "" || password == "" {
		log.Fatal("Username, email, name, and password are required")
	}
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	var existing models.StaffAdmin
	if err := db.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		log.Fatalf("An account with that username or email already exists (id=%d)", existing.ID)
	}

	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &models.StaffAdmin{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		Position:  "Administrator",
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}

	if err := db.DB.Create(admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println()
	fmt.Printf("Admin account %q created (id=%d)\n", admin.Username, admin.ID)
}
