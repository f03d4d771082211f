package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"voltshop/pkg/interfaces"
	"voltshop/pkg/store/mysql/model"
)

var slugSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// CategoryService handles category tree business logic
type CategoryService struct {
	categoryRepo categoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo categoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a category or subcategory
func (s *CategoryService) CreateCategory(ctx context.Context, req *interfaces.CreateCategoryRequest) (*interfaces.CategoryInfo, error) {
	if req.ParentID != nil {
		parent, err := s.categoryRepo.Get(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %d: %w", *req.ParentID, ErrNotFound)
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	category := &model.Category{
		ParentID:        req.ParentID,
		Name:            req.Name,
		Slug:            slug,
		IsPCComponent:   req.IsPCComponent,
		PCComponentType: req.PCComponentType,
		PCDisplayOrder:  req.PCDisplayOrder,
		DisplayOrder:    req.DisplayOrder,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return s.modelToCategoryInfo(category), nil
}

// GetCategory retrieves a category by id
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*interfaces.CategoryInfo, error) {
	category, err := s.categoryRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return s.modelToCategoryInfo(category), nil
}

// ListCategories lists all categories in display order
func (s *CategoryService) ListCategories(ctx context.Context) ([]*interfaces.CategoryInfo, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*interfaces.CategoryInfo, len(categories))
	for i, category := range categories {
		result[i] = s.modelToCategoryInfo(category)
	}
	return result, nil
}

// ListSubcategories lists the children of a category
func (s *CategoryService) ListSubcategories(ctx context.Context, parentID int64) ([]*interfaces.CategoryInfo, error) {
	parent, err := s.categoryRepo.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("category %d: %w", parentID, ErrNotFound)
	}

	categories, err := s.categoryRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	result := make([]*interfaces.CategoryInfo, len(categories))
	for i, category := range categories {
		result[i] = s.modelToCategoryInfo(category)
	}
	return result, nil
}

// ListPCComponentCategories lists configurator categories in picker order
func (s *CategoryService) ListPCComponentCategories(ctx context.Context) ([]*interfaces.CategoryInfo, error) {
	categories, err := s.categoryRepo.ListPCComponents(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*interfaces.CategoryInfo, len(categories))
	for i, category := range categories {
		result[i] = s.modelToCategoryInfo(category)
	}
	return result, nil
}

// Slugify derives a URL slug from a display name
func Slugify(name string) string {
	slug := slugSanitizer.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (s *CategoryService) modelToCategoryInfo(category *model.Category) *interfaces.CategoryInfo {
	return &interfaces.CategoryInfo{
		ID:              category.ID,
		ParentID:        category.ParentID,
		Name:            category.Name,
		Slug:            category.Slug,
		IsPCComponent:   category.IsPCComponent,
		PCComponentType: category.PCComponentType,
		PCDisplayOrder:  category.PCDisplayOrder,
		DisplayOrder:    category.DisplayOrder,
	}
}
