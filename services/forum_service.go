package services

import (
	"errors"
	"fmt"
	"strings"

	"barangay_portal_go/models"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	// ErrNotPostAuthor means the actor does not own the post or comment.
	ErrNotPostAuthor = errors.New("not the author of this post")
	// ErrInvalidReaction means the reaction type is not one of the accepted values.
	ErrInvalidReaction = errors.New("invalid reaction type")
	// ErrInvalidForumCategory means the category is not a known forum category.
	ErrInvalidForumCategory = errors.New("invalid forum category")
)

// ForumService manages community posts, comments and reactions. All resident
// supplied content passes through a strict sanitizer before it is stored.
type ForumService struct {
	DB        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewForumService(db *gorm.DB) *ForumService {
	// Forum content renders as plain text, so strip markup entirely rather
	// than allowing a UGC subset.
	return &ForumService{
		DB:        db,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *ForumService) sanitize(content string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(content))
}

func validForumCategory(category string) bool {
	for _, c := range models.ForumCategories {
		if c == category {
			return true
		}
	}
	return false
}

func validReactionType(reaction string) bool {
	switch reaction {
	case models.ReactionLike, models.ReactionLove, models.ReactionSupport:
		return true
	}
	return false
}

// CreatePost publishes a new forum post for a resident.
func (s *ForumService) CreatePost(authorID uint, title, content, category, imageKey string) (*models.ForumPost, error) {
	title = s.sanitize(title)
	content = s.sanitize(content)
	if title == "" {
		return nil, fmt.Errorf("post title is required")
	}
	if content == "" {
		return nil, fmt.Errorf("post content is required")
	}
	if category == "" {
		category = models.ForumCategoryDiscussions
	}
	if !validForumCategory(category) {
		return nil, ErrInvalidForumCategory
	}

	post := models.ForumPost{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		Category: category,
		ImageKey: imageKey,
		IsActive: true,
	}
	if err := s.DB.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create forum post: %w", err)
	}
	return &post, nil
}

// ForumFilters narrows the post listing.
type ForumFilters struct {
	Category    string
	SearchQuery string
}

// ListPosts returns one page of active posts, pinned posts first, then
// newest first. Reaction and comment counts are loaded for display.
func (s *ForumService) ListPosts(filters ForumFilters, page, pageSize int) ([]models.ForumPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := s.DB.Model(&models.ForumPost{}).Where("is_active = ?", true)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.SearchQuery != "" {
		like := "%" + filters.SearchQuery + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count forum posts: %w", err)
	}

	var posts []models.ForumPost
	err := query.
		Preload("Author").
		Preload("Reactions").
		Preload("Comments", "is_active = ?", true).
		Preload("Comments.Author").
		Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list forum posts: %w", err)
	}
	return posts, total, nil
}

// GetPost loads one active post with its author, reactions and comment
// thread.
func (s *ForumService) GetPost(postID uint) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.DB.
		Preload("Author").
		Preload("Reactions").
		Preload("Comments", "is_active = ?", true).
		Preload("Comments.Author").
		Preload("Comments.Reactions").
		Where("is_active = ?", true).
		First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost lets the author edit their own post.
func (s *ForumService) UpdatePost(postID, authorID uint, title, content, category string) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := s.DB.Where("is_active = ?", true).First(&post, postID).Error; err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, ErrNotPostAuthor
	}

	title = s.sanitize(title)
	content = s.sanitize(content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("post title and content are required")
	}
	if category != "" {
		if !validForumCategory(category) {
			return nil, ErrInvalidForumCategory
		}
		post.Category = category
	}

	post.Title = title
	post.Content = content
	if err := s.DB.Save(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to update forum post: %w", err)
	}
	return &post, nil
}

// DeletePost soft-deletes a post. The author may delete their own post;
// staff and admins may delete any post.
func (s *ForumService) DeletePost(postID uint, actor models.ActorRef) error {
	var post models.ForumPost
	if err := s.DB.Where("is_active = ?", true).First(&post, postID).Error; err != nil {
		return err
	}
	if actor.Kind == models.ActorKindResident && post.AuthorID != actor.ID {
		return ErrNotPostAuthor
	}
	return s.DB.Model(&post).Update("is_active", false).Error
}

// TogglePin flips the pinned flag on a post. Pinned posts sort to the top
// of the listing.
func (s *ForumService) TogglePin(postID uint) (bool, error) {
	var post models.ForumPost
	if err := s.DB.First(&post, postID).Error; err != nil {
		return false, err
	}
	post.IsPinned = !post.IsPinned
	if err := s.DB.Model(&post).Update("is_pinned", post.IsPinned).Error; err != nil {
		return false, fmt.Errorf("failed to update pin state: %w", err)
	}
	return post.IsPinned, nil
}

// ToggleReaction adds, switches or removes a resident's reaction on a post.
// Reacting again with the same type removes it; a different type replaces
// the existing one. Returns the resulting reaction type, empty if removed.
func (s *ForumService) ToggleReaction(postID, userID uint, reactionType string) (string, error) {
	if !validReactionType(reactionType) {
		return "", ErrInvalidReaction
	}

	var result string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("is_active = ?", true).First(&models.ForumPost{}, postID).Error; err != nil {
			return err
		}

		var existing models.PostReaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil && existing.ReactionType == reactionType:
			result = ""
			return tx.Delete(&existing).Error
		case err == nil:
			result = reactionType
			return tx.Model(&existing).Update("reaction_type", reactionType).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = reactionType
			return tx.Create(&models.PostReaction{
				PostID:       postID,
				UserID:       userID,
				ReactionType: reactionType,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// AddComment attaches a comment to an active post.
func (s *ForumService) AddComment(postID, authorID uint, content string) (*models.PostComment, error) {
	content = s.sanitize(content)
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	if err := s.DB.Where("is_active = ?", true).First(&models.ForumPost{}, postID).Error; err != nil {
		return nil, err
	}

	comment := models.PostComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		IsActive: true,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}

// DeleteComment soft-deletes a comment. The author may delete their own
// comment; staff and admins may delete any comment.
func (s *ForumService) DeleteComment(commentID uint, actor models.ActorRef) error {
	var comment models.PostComment
	if err := s.DB.Where("is_active = ?", true).First(&comment, commentID).Error; err != nil {
		return err
	}
	if actor.Kind == models.ActorKindResident && comment.AuthorID != actor.ID {
		return ErrNotPostAuthor
	}
	return s.DB.Model(&comment).Update("is_active", false).Error
}

// ToggleCommentReaction mirrors ToggleReaction for comments.
func (s *ForumService) ToggleCommentReaction(commentID, userID uint, reactionType string) (string, error) {
	if !validReactionType(reactionType) {
		return "", ErrInvalidReaction
	}

	var result string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("is_active = ?", true).First(&models.PostComment{}, commentID).Error; err != nil {
			return err
		}

		var existing models.CommentReaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case err == nil && existing.ReactionType == reactionType:
			result = ""
			return tx.Delete(&existing).Error
		case err == nil:
			result = reactionType
			return tx.Model(&existing).Update("reaction_type", reactionType).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = reactionType
			return tx.Create(&models.CommentReaction{
				CommentID:    commentID,
				UserID:       userID,
				ReactionType: reactionType,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
