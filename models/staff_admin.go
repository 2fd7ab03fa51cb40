package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Staff/admin roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// StaffAdmin is a barangay office account. A single table holds both roles;
// the Role field decides which area of the portal the account can reach.
type StaffAdmin struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	Role       string `gorm:"not null;default:staff" json:"role"` // admin, staff
	Department string `json:"department"`
	Position   string `json:"position"`

	FirstName  string `gorm:"not null" json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `gorm:"not null" json:"last_name"`
	FullName   string `json:"full_name"` // Derived in BeforeSave

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}

func (StaffAdmin) TableName() string {
	return "staff_admin"
}

// BeforeSave keeps the denormalized full name in sync with the name parts.
func (a *StaffAdmin) BeforeSave(tx *gorm.DB) error {
	parts := []string{a.FirstName}
	if a.MiddleName != "" {
		parts = append(parts, a.MiddleName)
	}
	parts = append(parts, a.LastName)
	a.FullName = strings.TrimSpace(strings.Join(parts, " "))
	return nil
}

func (a *StaffAdmin) Ref() ActorRef {
	kind := ActorKindStaff
	if a.Role == RoleAdmin {
		kind = ActorKindAdmin
	}
	return ActorRef{Kind: kind, ID: a.ID}
}

func (a *StaffAdmin) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

func (a *StaffAdmin) ContactEmail() string {
	return a.Email
}

func (a *StaffAdmin) IsAdmin() bool {
	return a.Role == RoleAdmin
}
