package server

import (
	"blogify/internal/middleware"
	"blogify/internal/models"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory creates a new post category owned by the caller.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.UserContext(), userID, req.Name)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":      "success",
		"message":     "Category created successfully",
		"newCategory": category,
	})
}

// GetCategories lists categories.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	categories, err := s.categoryService.ListCategories(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        "success",
		"allCategories": categories,
	})
}

// GetCategory returns a single category with its posts.
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	category, err := s.categoryService.GetCategory(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"category": category,
	})
}

// UpdateCategory renames the caller's own category.
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.UserContext(), userID, id, req.Name)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":          "success",
		"message":         "Category updated successfully",
		"updatedCategory": category,
	})
}

// DeleteCategory removes the caller's own category. Posts keep existing
// with their category reference cleared.
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.categoryService.DeleteCategory(c.UserContext(), userID, id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Category deleted successfully",
	})
}
