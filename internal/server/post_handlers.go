package server

import (
	"context"
	"encoding/json"
	"time"

	"blogify/internal/middleware"
	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts returns the viewer's feed: published posts from authors who have
// not blocked the viewer.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	limit, offset := parsePagination(c)

	posts, err := s.postService.ListVisible(c.UserContext(), userID, limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"allPosts": posts,
	})
}

// GetPublicPosts returns the latest published posts for the landing page.
func (s *Server) GetPublicPosts(c *fiber.Ctx) error {
	n := c.QueryInt("limit", 4)

	posts, err := s.postService.PublicLatest(c.UserContext(), n)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"posts":  posts,
	})
}

// SearchPosts filters visible posts by author username or category name.
// At least one filter is required.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	limit, offset := parsePagination(c)

	posts, err := s.postService.Search(c.UserContext(), userID, c.Query("author"), c.Query("category"), limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"posts":  posts,
	})
}

// GetPost returns a single post with author, category, comments, and the
// viewer's reaction flags when authenticated.
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	viewerID := middleware.CurrentUserID(c)

	post, err := s.postService.GetPost(c.UserContext(), postID, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":     "success",
		"singlePost": post,
	})
}

// CreatePost authors a new post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		ImageURL   string `json:"image_url"`
		CategoryID *uint  `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Post created successfully",
		"post":    post,
	})
}

// UpdatePost applies a partial patch to the caller's own post. Omitted
// fields keep prior values; category_id set to null clears the category.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// category_id needs three states: absent, null (clear), and a value.
	// RawMessage keeps the distinction that plain pointers lose.
	var req struct {
		Title      *string         `json:"title"`
		Content    *string         `json:"content"`
		ImageURL   *string         `json:"image_url"`
		CategoryID json.RawMessage `json:"category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	var categoryPatch **uint
	if len(req.CategoryID) > 0 {
		var inner *uint
		if string(req.CategoryID) != "null" {
			var id uint
			if err := json.Unmarshal(req.CategoryID, &id); err != nil {
				return models.RespondWithError(c, models.NewValidationError("Invalid category_id"))
			}
			inner = &id
		}
		categoryPatch = &inner
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:     userID,
		PostID:     postID,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		CategoryID: categoryPatch,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "success",
		"message":     "Post updated successfully",
		"updatedPost": post,
	})
}

// DeletePost removes the caller's own post along with its reactions, views,
// and comments.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.DeletePost(c.UserContext(), postID, userID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Post deleted successfully",
	})
}

// LikePost sets the caller's reaction on the post to a like, replacing any
// prior dislike.
func (s *Server) LikePost(c *fiber.Ctx) error {
	return s.engagementAction(c, s.engagementService.Like, "Post liked successfully")
}

// DislikePost sets the caller's reaction on the post to a dislike, replacing
// any prior like.
func (s *Server) DislikePost(c *fiber.Ctx) error {
	return s.engagementAction(c, s.engagementService.Dislike, "Post disliked successfully")
}

// ClapPost increments the post's clap counter. Claps are unbounded.
func (s *Server) ClapPost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.engagementService.Clap(c.UserContext(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "success",
		"message":     "Post clapped successfully",
		"updatedPost": post,
	})
}

// SchedulePost sets a future publication time on the caller's own post.
func (s *Server) SchedulePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		ScheduledPublish time.Time `json:"scheduled_publish"`
	}
	if err := c.BodyParser(&req); err != nil || req.ScheduledPublish.IsZero() {
		return models.RespondWithError(c, models.NewValidationError("A valid scheduled_publish timestamp is required"))
	}

	post, err := s.postService.SchedulePublish(c.UserContext(), postID, userID, req.ScheduledPublish)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":      "success",
		"message":     "Post scheduled successfully",
		"updatedPost": post,
	})
}

// RecordPostView counts the caller's view of the post at most once.
func (s *Server) RecordPostView(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.engagementService.RecordView(c.UserContext(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Post view recorded",
		"post":    post,
	})
}

// engagementAction runs a reaction mutation and responds with the refreshed
// post.
func (s *Server) engagementAction(c *fiber.Ctx, fn func(ctx context.Context, userID, postID uint) (*models.Post, error), message string) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := fn(c.UserContext(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"post":    post,
	})
}
