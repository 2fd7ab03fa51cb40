package models

import (
	"time"
)

// ForumCategoryDiscussions is the default category for new posts.
const ForumCategoryDiscussions = "discussions"

// Forum post categories
var ForumCategories = []string{
	"announcements",
	"discussions",
	"events",
	"suggestions",
	"questions",
	"safety",
	"environment",
	"infrastructure",
	"other",
}

// Forum reaction types
const (
	ReactionLike    = "like"
	ReactionLove    = "love"
	ReactionSupport = "support" // Posts only
)

// ForumPost is a community forum entry authored by a resident. Content is
// sanitized before storage. Deletion is soft (IsActive=false) so comment
// threads stay consistent.
type ForumPost struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   Resident `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	Title    string `gorm:"not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Category string `gorm:"not null;default:discussions;index" json:"category"`
	ImageKey string `json:"image_key"` // Storage key for the optional post image

	IsPinned bool `gorm:"not null;default:false" json:"is_pinned"`
	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`

	Reactions []PostReaction `gorm:"foreignKey:PostID" json:"reactions,omitempty"`
	Comments  []PostComment  `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

// PostReaction is one resident's reaction to a post, at most one per resident.
type PostReaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PostID uint      `gorm:"not null;uniqueIndex:idx_post_reaction_user" json:"post_id"`
	Post   ForumPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_post_reaction_user" json:"user_id"`
	User   Resident  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	ReactionType string `gorm:"not null" json:"reaction_type"` // like, love, support
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

// PostComment is a resident comment under a forum post.
type PostComment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Post     ForumPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   Resident  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	Content  string `gorm:"type:text;not null" json:"content"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	Reactions []CommentReaction `gorm:"foreignKey:CommentID" json:"reactions,omitempty"`
}

func (PostComment) TableName() string {
	return "post_comments"
}

// CommentReaction is one resident's reaction to a comment.
type CommentReaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CommentID uint        `gorm:"not null;uniqueIndex:idx_comment_reaction_user" json:"comment_id"`
	Comment   PostComment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    uint        `gorm:"not null;uniqueIndex:idx_comment_reaction_user" json:"user_id"`
	User      Resident    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	ReactionType string `gorm:"not null" json:"reaction_type"` // like, love
}

func (CommentReaction) TableName() string {
	return "comment_reactions"
}
