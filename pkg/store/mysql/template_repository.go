package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"voltshop/pkg/store/mysql/model"
)

// TemplateRepository handles specification template persistence in MySQL
type TemplateRepository struct {
	ds *Datastore
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(ds *Datastore) *TemplateRepository {
	return &TemplateRepository{ds: ds}
}

// Create creates a new template
func (r *TemplateRepository) Create(ctx context.Context, template *model.SpecTemplate) error {
	return r.ds.DB(ctx).Create(template).Error
}

// Get retrieves a template by id. Returns nil when the template does not
// exist.
func (r *TemplateRepository) Get(ctx context.Context, id int64) (*model.SpecTemplate, error) {
	var template model.SpecTemplate
	err := r.ds.DB(ctx).Where("id = ?", id).First(&template).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// GetByName retrieves a template by category and machine key
func (r *TemplateRepository) GetByName(ctx context.Context, categoryID int64, name string) (*model.SpecTemplate, error) {
	var template model.SpecTemplate
	err := r.ds.DB(ctx).Where("category_id = ? AND name = ?", categoryID, name).First(&template).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template by name: %w", err)
	}
	return &template, nil
}

// ListByCategory lists a category's templates in display order
func (r *TemplateRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.SpecTemplate, error) {
	var templates []*model.SpecTemplate
	err := r.ds.DB(ctx).Where("category_id = ?", categoryID).Order("display_order, name").Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// ListByIDs retrieves templates by id
func (r *TemplateRepository) ListByIDs(ctx context.Context, ids []int64) ([]*model.SpecTemplate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var templates []*model.SpecTemplate
	err := r.ds.DB(ctx).Where("id IN ?", ids).Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list templates by ids: %w", err)
	}
	return templates, nil
}

// Update updates a template
func (r *TemplateRepository) Update(ctx context.Context, template *model.SpecTemplate) error {
	return r.ds.DB(ctx).Save(template).Error
}

// Delete physically deletes a template
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.SpecTemplate{}).Error
}
