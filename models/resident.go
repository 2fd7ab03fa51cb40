package models

import (
	"strings"
	"time"
)

// Resident is a community member account. Residents register themselves and
// remain unverified until an admin approves the account.
type Resident struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName  string `gorm:"not null" json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `gorm:"not null" json:"last_name"`
	Suffix     string `json:"suffix"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Address  string `gorm:"not null" json:"address"`
	Password string `gorm:"not null" json:"-"`

	IsVerified     bool   `gorm:"not null;default:false" json:"is_verified"`
	ProfilePicture string `json:"profile_picture"`
}

func (Resident) TableName() string {
	return "user"
}

func (r *Resident) Ref() ActorRef {
	return ActorRef{Kind: ActorKindResident, ID: r.ID}
}

// DisplayName returns the full name with optional middle name and suffix.
func (r *Resident) DisplayName() string {
	parts := []string{r.FirstName}
	if r.MiddleName != "" {
		parts = append(parts, r.MiddleName)
	}
	parts = append(parts, r.LastName)
	if r.Suffix != "" {
		parts = append(parts, r.Suffix)
	}
	return strings.Join(parts, " ")
}

func (r *Resident) ContactEmail() string {
	return r.Email
}
