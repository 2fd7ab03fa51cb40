package models

import (
	"time"
)

// Feedback categories
const (
	FeedbackCategoryService    = "service"
	FeedbackCategoryWebsite    = "website"
	FeedbackCategoryStaff      = "staff"
	FeedbackCategorySuggestion = "suggestion"
	FeedbackCategoryOther      = "other"
)

// FeedbackCategories lists every valid feedback category.
var FeedbackCategories = []string{
	FeedbackCategoryService,
	FeedbackCategoryWebsite,
	FeedbackCategoryStaff,
	FeedbackCategorySuggestion,
	FeedbackCategoryOther,
}

// Feedback is a rating and comment about barangay services. Residents may
// submit while logged in (UserID set) or anonymously through the public form.
type Feedback struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID *uint     `gorm:"index" json:"user_id,omitempty"`
	User   *Resident `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Category string `gorm:"not null;default:other" json:"category"`
	Rating   int    `gorm:"not null" json:"rating"` // 1-5

	// Read and respond lifecycles are independent.
	IsRead        bool       `gorm:"not null;default:false" json:"is_read"`
	IsResponded   bool       `gorm:"not null;default:false" json:"is_responded"`
	AdminResponse string     `gorm:"type:text" json:"admin_response"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

func (Feedback) TableName() string {
	return "feedback"
}
