package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"voltshop/pkg/store/mysql/model"
)

// RuleRepository handles compatibility rule persistence in MySQL
type RuleRepository struct {
	ds *Datastore
}

// NewRuleRepository creates a new rule repository
func NewRuleRepository(ds *Datastore) *RuleRepository {
	return &RuleRepository{ds: ds}
}

// Create creates a new rule
func (r *RuleRepository) Create(ctx context.Context, rule *model.CompatibilityRule) error {
	return r.ds.DB(ctx).Create(rule).Error
}

// Get retrieves a rule by id. Returns nil when the rule does not exist.
func (r *RuleRepository) Get(ctx context.Context, id int64) (*model.CompatibilityRule, error) {
	var rule model.CompatibilityRule
	err := r.ds.DB(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

// ListActive lists every active rule
func (r *RuleRepository) ListActive(ctx context.Context) ([]*model.CompatibilityRule, error) {
	var rules []*model.CompatibilityRule
	err := r.ds.DB(ctx).Where("is_active = ?", true).Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	return rules, nil
}

// ListByCategory lists rules referencing a category on either side
func (r *RuleRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.CompatibilityRule, error) {
	var rules []*model.CompatibilityRule
	err := r.ds.DB(ctx).
		Where("primary_category_id = ? OR secondary_category_id = ?", categoryID, categoryID).
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rules by category: %w", err)
	}
	return rules, nil
}

// Update updates a rule
func (r *RuleRepository) Update(ctx context.Context, rule *model.CompatibilityRule) error {
	return r.ds.DB(ctx).Save(rule).Error
}

// Delete physically deletes a rule
func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.CompatibilityRule{}).Error
}
