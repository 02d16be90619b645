package server

import (
	"context"

	"blogify/internal/middleware"
	"blogify/internal/models"
	"blogify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the authenticated user's full profile, including the
// private relation lists.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	user, err := s.userService.Profile(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"user":   user,
	})
}

// GetPublicProfile returns another user's profile without the private
// relation lists.
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.PublicProfile(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"user":   user,
	})
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req struct {
		Bio            string `json:"bio"`
		Location       string `json:"location"`
		Gender         string `json:"gender"`
		AccountLevel   string `json:"account_level"`
		ProfilePicture string `json:"profile_picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:         userID,
		Bio:            req.Bio,
		Location:       req.Location,
		Gender:         req.Gender,
		AccountLevel:   req.AccountLevel,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// FollowUser creates a mutual follow between the viewer and the target.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	return s.relationshipAction(c, "id", s.userService.Follow, "You have successfully followed this user")
}

// UnfollowUser removes the mutual follow in both directions.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	return s.relationshipAction(c, "id", s.userService.Unfollow, "You have successfully unfollowed this user")
}

// BlockUser blocks the target. Blocking is one-directional.
func (s *Server) BlockUser(c *fiber.Ctx) error {
	return s.relationshipAction(c, "id", s.userService.Block, "You have successfully blocked this user")
}

// UnblockUser removes an existing block.
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	return s.relationshipAction(c, "id", s.userService.Unblock, "You have successfully unblocked this user")
}

// ViewOtherProfile records a profile view and returns the target's public
// profile. Repeat visits are not counted again.
func (s *Server) ViewOtherProfile(c *fiber.Ctx) error {
	viewerID := middleware.CurrentUserID(c)
	profileID, err := parseIDParam(c, "userId")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.userService.ViewProfile(c.UserContext(), viewerID, profileID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "You have successfully viewed this profile",
	})
}

// relationshipAction runs a viewer-vs-target social graph mutation and
// responds with the standard message envelope.
func (s *Server) relationshipAction(c *fiber.Ctx, param string, fn func(ctx context.Context, viewerID, targetID uint) error, message string) error {
	viewerID := middleware.CurrentUserID(c)
	targetID, err := parseIDParam(c, param)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := fn(c.UserContext(), viewerID, targetID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}
