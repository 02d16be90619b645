package service

import (
	"context"
	"strings"

	"blogify/internal/models"
	"blogify/internal/repository"
)

// CategoryService carries the category rules.
type CategoryService struct {
	catRepo repository.CategoryRepository
}

// NewCategoryService wires a CategoryService.
func NewCategoryService(catRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{catRepo: catRepo}
}

// CreateCategory adds a named topic. Names are globally unique.
func (s *CategoryService) CreateCategory(ctx context.Context, userID uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category := &models.Category{Name: name, UserID: userID}
	if err := s.catRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory fetches a category with its posts.
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.catRepo.GetByID(ctx, id)
}

// ListCategories returns all categories with their posts.
func (s *CategoryService) ListCategories(ctx context.Context, limit, offset int) ([]models.Category, error) {
	return s.catRepo.List(ctx, limit, offset)
}

// UpdateCategory renames a category. Only the creator may rename.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}

	category, err := s.catRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, models.NewForbiddenError("You can only update your own categories")
	}

	category.Name = name
	if err := s.catRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category, detaching its posts. Only the creator
// may delete.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uint) error {
	category, err := s.catRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category.UserID != userID {
		return models.NewForbiddenError("You can only delete your own categories")
	}
	return s.catRepo.Delete(ctx, id)
}
