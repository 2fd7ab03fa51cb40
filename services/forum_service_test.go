package services

import (
	"testing"

	"barangay_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreatePostSanitizesContent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	post, err := svc.CreatePost(author.ID,
		`<b>Basketball</b> league signups`,
		`Sign up at the hall. <script>alert("x")</script>See you there!`,
		"events", "")
	require.NoError(t, err)
	assert.Equal(t, "Basketball league signups", post.Title)
	assert.NotContains(t, post.Content, "<script>")
	assert.NotContains(t, post.Content, "<b>")
	assert.Contains(t, post.Content, "Sign up at the hall.")
	assert.True(t, post.IsActive)
}

func TestCreatePostDefaultsCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.ForumCategoryDiscussions, post.Category)

	_, err = svc.CreatePost(author.ID, "Hello", "Bad category", "gossip", "")
	assert.ErrorIs(t, err, ErrInvalidForumCategory)

	_, err = svc.CreatePost(author.ID, "", "No title", "", "")
	assert.Error(t, err)
}

func TestToggleReactionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")
	reactor := createTestResident(t, db, "reactor@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)

	// First reaction creates
	result, err := svc.ToggleReaction(post.ID, reactor.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLike, result)

	// Different type replaces
	result, err = svc.ToggleReaction(post.ID, reactor.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionLove, result)

	var count int64
	db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Same type removes
	result, err = svc.ToggleReaction(post.ID, reactor.ID, models.ReactionLove)
	require.NoError(t, err)
	assert.Equal(t, "", result)

	db.Model(&models.PostReaction{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	_, err = svc.ToggleReaction(post.ID, reactor.ID, "dislike")
	assert.ErrorIs(t, err, ErrInvalidReaction)
}

func TestDeletePostAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")
	other := createTestResident(t, db, "other@example.com")
	admin := createTestStaff(t, db, "admin1", models.RoleAdmin)

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)

	// Another resident cannot delete
	err = svc.DeletePost(post.ID, other.Ref())
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	// The author can
	require.NoError(t, svc.DeletePost(post.ID, author.Ref()))
	var saved models.ForumPost
	require.NoError(t, db.First(&saved, post.ID).Error)
	assert.False(t, saved.IsActive)

	// Admins can delete any post
	post2, err := svc.CreatePost(author.ID, "Second", "Another post", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.DeletePost(post2.ID, admin.Ref()))
}

func TestTogglePin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)

	pinned, err := svc.TogglePin(post.ID)
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = svc.TogglePin(post.ID)
	require.NoError(t, err)
	assert.False(t, pinned)
}

func TestAddCommentRequiresActivePost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)

	comment, err := svc.AddComment(post.ID, author.ID, "Nice <i>post</i>!")
	require.NoError(t, err)
	assert.Equal(t, "Nice post!", comment.Content)

	require.NoError(t, svc.DeletePost(post.ID, author.Ref()))

	_, err = svc.AddComment(post.ID, author.ID, "Too late")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")
	other := createTestResident(t, db, "other@example.com")
	staff := createTestStaff(t, db, "clerk1", models.RoleStaff)

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)
	comment, err := svc.AddComment(post.ID, author.ID, "First comment")
	require.NoError(t, err)

	err = svc.DeleteComment(comment.ID, other.Ref())
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	// Staff may moderate any comment
	require.NoError(t, svc.DeleteComment(comment.ID, staff.Ref()))
	var saved models.PostComment
	require.NoError(t, db.First(&saved, comment.ID).Error)
	assert.False(t, saved.IsActive)
}

func TestToggleCommentReaction(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)
	comment, err := svc.AddComment(post.ID, author.ID, "First comment")
	require.NoError(t, err)

	result, err := svc.ToggleCommentReaction(comment.ID, author.ID, models.ReactionSupport)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionSupport, result)

	result, err = svc.ToggleCommentReaction(comment.ID, author.ID, models.ReactionSupport)
	require.NoError(t, err)
	assert.Equal(t, "", result)
}

func TestListPostsPinnedFirstWithFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")

	older, err := svc.CreatePost(author.ID, "Road repair schedule", "Repairs start Monday", "announcements", "")
	require.NoError(t, err)
	_, err = svc.CreatePost(author.ID, "Lost dog", "Brown askal near the plaza", models.ForumCategoryDiscussions, "")
	require.NoError(t, err)
	hidden, err := svc.CreatePost(author.ID, "Hidden", "Deleted post", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.DeletePost(hidden.ID, author.Ref()))

	_, err = svc.TogglePin(older.ID)
	require.NoError(t, err)

	posts, total, err := svc.ListPosts(ForumFilters{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, posts, 2)
	assert.Equal(t, older.ID, posts[0].ID) // pinned sorts first

	posts, total, err = svc.ListPosts(ForumFilters{Category: "announcements"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	posts, total, err = svc.ListPosts(ForumFilters{SearchQuery: "askal"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Lost dog", posts[0].Title)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	author := createTestResident(t, db, "author@example.com")
	other := createTestResident(t, db, "other@example.com")

	post, err := svc.CreatePost(author.ID, "Hello", "First post", "", "")
	require.NoError(t, err)

	_, err = svc.UpdatePost(post.ID, other.ID, "Hijacked", "content", "")
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	updated, err := svc.UpdatePost(post.ID, author.ID, "Hello, edited", "Updated content", "events")
	require.NoError(t, err)
	assert.Equal(t, "Hello, edited", updated.Title)
	assert.Equal(t, "events", updated.Category)
}
