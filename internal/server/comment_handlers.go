package server

import (
	"blogify/internal/middleware"
	"blogify/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Message string `json:"message"`
}

// CreateComment adds a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	postID, err := parseIDParam(c, "postId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), userID, postID, req.Message)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// UpdateComment edits the caller's own comment.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), userID, commentID, req.Message)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":         "success",
		"message":        "Comment updated successfully",
		"updatedComment": comment,
	})
}

// DeleteComment removes the caller's own comment.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	commentID, err := parseIDParam(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.commentService.DeleteComment(c.UserContext(), userID, commentID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Comment deleted successfully",
	})
}
