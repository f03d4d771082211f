package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"voltshop/pkg/store/mysql/model"
)

// CategoryRepository handles category persistence in MySQL
type CategoryRepository struct {
	ds *Datastore
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(ds *Datastore) *CategoryRepository {
	return &CategoryRepository{ds: ds}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.ds.DB(ctx).Create(category).Error
}

// Get retrieves a category by id. Returns nil when the category does not
// exist.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.ds.DB(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// List lists all categories ordered for display
func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.ds.DB(ctx).Order("display_order, name").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListChildren lists the subcategories of a category
func (r *CategoryRepository) ListChildren(ctx context.Context, parentID int64) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.ds.DB(ctx).Where("parent_id = ?", parentID).Order("display_order, name").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return categories, nil
}

// ListPCComponents lists the categories that participate in the PC
// configurator, in picker order
func (r *CategoryRepository) ListPCComponents(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.ds.DB(ctx).Where("is_pc_component = ?", true).Order("pc_display_order, name").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pc component categories: %w", err)
	}
	return categories, nil
}

// Update updates a category
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.ds.DB(ctx).Save(category).Error
}

// Delete physically deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.Category{}).Error
}
