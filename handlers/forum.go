package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"barangay_portal_go/db"
	"barangay_portal_go/middleware"
	"barangay_portal_go/models"
	"barangay_portal_go/services"
	"barangay_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ForumHandler lists community posts, pinned first
func ForumHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	filters := services.ForumFilters{
		Category:    c.QueryParam("category"),
		SearchQuery: c.QueryParam("q"),
	}
	page := parsePage(c)

	service := services.NewForumService(db.DB)
	posts, total, err := service.ListPosts(filters, page, 10)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load forum")
	}

	component := pages.Forum(pages.ForumView{
		Resident:    resident,
		Posts:       posts,
		Categories:  models.ForumCategories,
		Category:    filters.Category,
		SearchQuery: filters.SearchQuery,
		Pagination:  pages.NewPagination(page, 10, total),
		Flash:       GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// CreateForumPostHandler publishes a new post with an optional image
func CreateForumPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)

	imageKey := ""
	if file, err := c.FormFile("image"); err == nil {
		if err := services.ValidateImageUpload(file); err != nil {
			SetFlash(c, err.Error())
			return hxRedirect(c, "/forum")
		}
		key := services.GenerateForumImageKey(file.Filename)
		result, err := services.Storage.Upload(c.Request().Context(), file, key)
		if err != nil {
			log.Printf("[UPLOAD] forum image: %v", err)
		} else {
			imageKey = result.Key
		}
	}

	service := services.NewForumService(db.DB)
	post, err := service.CreatePost(resident.ID,
		c.FormValue("title"), c.FormValue("content"), c.FormValue("category"), imageKey)
	if err != nil {
		SetFlash(c, "Failed to publish post: "+err.Error())
		return hxRedirect(c, "/forum")
	}

	SetFlash(c, "Post published")
	return hxRedirect(c, fmt.Sprintf("/forum/%d", post.ID))
}

// ForumPostHandler shows one post with its comment thread
func ForumPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	post, err := service.GetPost(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	component := pages.ForumPost(pages.ForumPostView{
		Resident: resident,
		Post:     post,
		Flash:    GetFlash(c),
	})
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// UpdateForumPostHandler lets the author edit their post
func UpdateForumPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	_, err = service.UpdatePost(id, resident.ID,
		c.FormValue("title"), c.FormValue("content"), c.FormValue("category"))
	if err != nil {
		if errors.Is(err, services.ErrNotPostAuthor) {
			return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own posts")
		}
		SetFlash(c, "Failed to update post: "+err.Error())
	} else {
		SetFlash(c, "Post updated")
	}
	return hxRedirect(c, fmt.Sprintf("/forum/%d", id))
}

// DeleteForumPostHandler removes a post (author only in the resident area)
func DeleteForumPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	if err := service.DeletePost(id, resident.Ref()); err != nil {
		if errors.Is(err, services.ErrNotPostAuthor) {
			return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post")
	}

	SetFlash(c, "Post deleted")
	return hxRedirect(c, "/forum")
}

// ReactToPostHandler toggles the resident's reaction on a post
func ReactToPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	reaction, err := service.ToggleReaction(id, resident.ID, c.FormValue("reaction"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidReaction) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save reaction")
	}
	return c.JSON(http.StatusOK, map[string]string{"reaction": reaction})
}

// CommentOnPostHandler adds a comment to a post
func CommentOnPostHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	if _, err := service.AddComment(id, resident.ID, c.FormValue("content")); err != nil {
		SetFlash(c, "Failed to post comment: "+err.Error())
	}
	return hxRedirect(c, fmt.Sprintf("/forum/%d", id))
}

// DeleteCommentHandler removes the resident's own comment
func DeleteCommentHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		return err
	}

	var comment models.PostComment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	service := services.NewForumService(db.DB)
	if err := service.DeleteComment(commentID, resident.Ref()); err != nil {
		if errors.Is(err, services.ErrNotPostAuthor) {
			return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}
	return hxRedirect(c, fmt.Sprintf("/forum/%d", comment.PostID))
}

// ReactToCommentHandler toggles the resident's reaction on a comment
func ReactToCommentHandler(c echo.Context) error {
	resident := middleware.GetCurrentResident(c)
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		return err
	}

	service := services.NewForumService(db.DB)
	reaction, err := service.ToggleCommentReaction(commentID, resident.ID, c.FormValue("reaction"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidReaction) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid reaction")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save reaction")
	}
	return c.JSON(http.StatusOK, map[string]string{"reaction": reaction})
}
