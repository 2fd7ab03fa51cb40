package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"barangay_portal_go/config"
	"barangay_portal_go/models"

	"gorm.io/gorm"
)

var (
	// ErrInvalidRating means the rating is outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrAlreadyResponded means the feedback already has an admin response.
	ErrAlreadyResponded = errors.New("feedback has already been responded to")
)

// FeedbackService handles resident feedback submissions and the admin
// review workflow.
type FeedbackService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFeedbackService(db *gorm.DB, cfg *config.Config) *FeedbackService {
	return &FeedbackService{DB: db, Cfg: cfg}
}

// FeedbackInput carries a feedback submission. UserID is nil for anonymous
// submissions through the public form.
type FeedbackInput struct {
	UserID   *uint
	Name     string
	Email    string
	Subject  string
	Message  string
	Category string
	Rating   int
}

// Submit validates and stores one feedback entry.
func (s *FeedbackService) Submit(input FeedbackInput) (*models.Feedback, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if input.Name == "" || input.Email == "" || input.Subject == "" || input.Message == "" {
		return nil, fmt.Errorf("name, email, subject and message are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if input.Category == "" {
		input.Category = models.FeedbackCategoryOther
	}
	valid := false
	for _, c := range models.FeedbackCategories {
		if c == input.Category {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("invalid feedback category: %s", input.Category)
	}

	feedback := models.Feedback{
		UserID:   input.UserID,
		Name:     input.Name,
		Email:    input.Email,
		Subject:  input.Subject,
		Message:  input.Message,
		Category: input.Category,
		Rating:   input.Rating,
	}
	if err := s.DB.Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	return &feedback, nil
}

// FeedbackFilters narrows the admin feedback listing.
type FeedbackFilters struct {
	Category    string
	Rating      int
	Status      string // unread, read, responded, pending
	SearchQuery string
}

// List returns one page of feedback for the admin review screen, newest
// first.
func (s *FeedbackService) List(filters FeedbackFilters, page, pageSize int) ([]models.Feedback, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := s.DB.Model(&models.Feedback{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Rating >= 1 && filters.Rating <= 5 {
		query = query.Where("rating = ?", filters.Rating)
	}
	switch filters.Status {
	case "unread":
		query = query.Where("is_read = ?", false)
	case "read":
		query = query.Where("is_read = ?", true)
	case "responded":
		query = query.Where("is_responded = ?", true)
	case "pending":
		query = query.Where("is_responded = ?", false)
	}
	if filters.SearchQuery != "" {
		like := "%" + filters.SearchQuery + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR subject LIKE ? OR message LIKE ?", like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	var items []models.Feedback
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, total, nil
}

// Get loads one feedback entry.
func (s *FeedbackService) Get(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.DB.First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// MarkAsRead flags a feedback entry as read. Idempotent.
func (s *FeedbackService) MarkAsRead(id uint) error {
	return s.DB.Model(&models.Feedback{}).
		Where("id = ? AND is_read = ?", id, false).
		Update("is_read", true).Error
}

// Respond records an admin response exactly once, stamps responded_at and
// emails the submitter.
func (s *FeedbackService) Respond(id uint, response string) (*models.Feedback, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, fmt.Errorf("response message is required")
	}

	var feedback models.Feedback
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&feedback, id).Error; err != nil {
			return err
		}
		if feedback.IsResponded {
			return ErrAlreadyResponded
		}

		now := time.Now()
		feedback.IsResponded = true
		feedback.IsRead = true
		feedback.AdminResponse = response
		feedback.RespondedAt = &now
		return tx.Save(&feedback).Error
	})
	if err != nil {
		return nil, err
	}

	if feedback.Email != "" {
		email := BuildFeedbackResponseEmail(s.Cfg, feedback.Email, feedback.Name, feedback.Subject, response)
		SendEmailAsync(s.Cfg, email)
	}
	return &feedback, nil
}

// Delete removes a feedback entry permanently.
func (s *FeedbackService) Delete(id uint) error {
	result := s.DB.Delete(&models.Feedback{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FeedbackStats summarizes feedback for the admin dashboard.
type FeedbackStats struct {
	Total         int64
	Unread        int64
	Pending       int64
	AverageRating float64
	ByCategory    map[string]int64
	ByRating      map[int]int64
}

// Stats computes totals, averages and breakdowns over all feedback.
func (s *FeedbackService) Stats() (*FeedbackStats, error) {
	stats := &FeedbackStats{
		ByCategory: make(map[string]int64),
		ByRating:   make(map[int]int64),
	}

	if err := s.DB.Model(&models.Feedback{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	if err := s.DB.Model(&models.Feedback{}).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Feedback{}).Where("is_responded = ?", false).Count(&stats.Pending).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		var avg *float64
		if err := s.DB.Model(&models.Feedback{}).Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return nil, fmt.Errorf("failed to compute average rating: %w", err)
		}
		if avg != nil {
			stats.AverageRating = *avg
		}
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var categories []bucket
	err := s.DB.Model(&models.Feedback{}).
		Select("category as key, COUNT(*) as count").
		Group("category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group feedback by category: %w", err)
	}
	for _, b := range categories {
		stats.ByCategory[b.Key] = b.Count
	}

	type ratingBucket struct {
		Key   int
		Count int64
	}
	var ratings []ratingBucket
	err = s.DB.Model(&models.Feedback{}).
		Select("rating as key, COUNT(*) as count").
		Group("rating").
		Scan(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group feedback by rating: %w", err)
	}
	for _, b := range ratings {
		stats.ByRating[b.Key] = b.Count
	}

	return stats, nil
}
