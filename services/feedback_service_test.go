package services

import (
	"testing"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func submitTestFeedback(t *testing.T, svc *FeedbackService, rating int) *models.Feedback {
	t.Helper()
	feedback, err := svc.Submit(FeedbackInput{
		Name:     "Juan Dela Cruz",
		Email:    "juan@example.com",
		Subject:  "Great service",
		Message:  "The staff were very helpful.",
		Category: models.FeedbackCategoryService,
		Rating:   rating,
	})
	require.NoError(t, err)
	return feedback
}

func TestSubmitFeedbackValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	_, err := svc.Submit(FeedbackInput{
		Name: "Juan", Email: "juan@example.com", Subject: "Hi", Message: "Hello", Rating: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Submit(FeedbackInput{
		Name: "Juan", Email: "juan@example.com", Subject: "Hi", Message: "Hello", Rating: 6,
	})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Submit(FeedbackInput{
		Name: "", Email: "juan@example.com", Subject: "Hi", Message: "Hello", Rating: 3,
	})
	assert.Error(t, err)

	_, err = svc.Submit(FeedbackInput{
		Name: "Juan", Email: "juan@example.com", Subject: "Hi", Message: "Hello",
		Category: "nonsense", Rating: 3,
	})
	assert.Error(t, err)
}

func TestSubmitFeedbackDefaultsCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	feedback, err := svc.Submit(FeedbackInput{
		Name: "  Juan  ", Email: "juan@example.com", Subject: "Hi", Message: "Hello", Rating: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackCategoryOther, feedback.Category)
	assert.Equal(t, "Juan", feedback.Name)
	assert.False(t, feedback.IsRead)
	assert.False(t, feedback.IsResponded)
}

func TestFeedbackMarkAsReadIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	feedback := submitTestFeedback(t, svc, 5)

	require.NoError(t, svc.MarkAsRead(feedback.ID))
	require.NoError(t, svc.MarkAsRead(feedback.ID))

	loaded, err := svc.Get(feedback.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsRead)
}

func TestRespondExactlyOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	feedback := submitTestFeedback(t, svc, 5)

	responded, err := svc.Respond(feedback.ID, "Thank you for your kind words!")
	require.NoError(t, err)
	assert.True(t, responded.IsResponded)
	assert.True(t, responded.IsRead)
	assert.Equal(t, "Thank you for your kind words!", responded.AdminResponse)
	require.NotNil(t, responded.RespondedAt)

	_, err = svc.Respond(feedback.ID, "Second response")
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	loaded, err := svc.Get(feedback.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thank you for your kind words!", loaded.AdminResponse)

	_, err = svc.Respond(feedback.ID, "   ")
	assert.Error(t, err)
}

func TestDeleteFeedback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	feedback := submitTestFeedback(t, svc, 3)
	require.NoError(t, svc.Delete(feedback.ID))

	err := svc.Delete(feedback.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFeedbackFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	read := submitTestFeedback(t, svc, 5)
	require.NoError(t, svc.MarkAsRead(read.ID))
	submitTestFeedback(t, svc, 2)

	items, total, err := svc.List(FeedbackFilters{Status: "unread"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsRead)

	_, total, err = svc.List(FeedbackFilters{Rating: 5}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(FeedbackFilters{Status: "pending"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(FeedbackFilters{SearchQuery: "helpful"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFeedbackStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewFeedbackService(db, testConfig())

	submitTestFeedback(t, svc, 5)
	submitTestFeedback(t, svc, 3)
	read := submitTestFeedback(t, svc, 4)
	require.NoError(t, svc.MarkAsRead(read.ID))

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Unread)
	assert.Equal(t, int64(3), stats.Pending)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.01)
	assert.Equal(t, int64(3), stats.ByCategory[models.FeedbackCategoryService])
	assert.Equal(t, int64(1), stats.ByRating[5])
	assert.Equal(t, int64(1), stats.ByRating[3])
}
