package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voltshop/pkg/store/mysql/model"
)

// ProductSpecRepository handles product specification persistence in MySQL
type ProductSpecRepository struct {
	ds *Datastore
}

// NewProductSpecRepository creates a new product specification repository
func NewProductSpecRepository(ds *Datastore) *ProductSpecRepository {
	return &ProductSpecRepository{ds: ds}
}

// CreateBatch inserts all specification rows for one product
func (r *ProductSpecRepository) CreateBatch(ctx context.Context, specs []*model.ProductSpec) error {
	if len(specs) == 0 {
		return nil
	}
	return r.ds.DB(ctx).Create(&specs).Error
}

// Upsert inserts or replaces one specification value on a product
func (r *ProductSpecRepository) Upsert(ctx context.Context, spec *model.ProductSpec) error {
	return r.ds.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "template_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value_enum", "value_number", "value_text", "value_boolean", "unit", "value", "display_order",
		}),
	}).Create(spec).Error
}

// ListByProduct lists one product's specification rows in display order
func (r *ProductSpecRepository) ListByProduct(ctx context.Context, productID string) ([]*model.ProductSpec, error) {
	var specs []*model.ProductSpec
	err := r.ds.DB(ctx).Where("product_id = ?", productID).Order("display_order").Find(&specs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list product specifications: %w", err)
	}
	return specs, nil
}

// ListByProducts lists specification rows for several products at once
func (r *ProductSpecRepository) ListByProducts(ctx context.Context, productIDs []string) ([]*model.ProductSpec, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var specs []*model.ProductSpec
	err := r.ds.DB(ctx).Where("product_id IN ?", productIDs).Find(&specs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list specifications for products: %w", err)
	}
	return specs, nil
}

// Get retrieves one specification row by product and template
func (r *ProductSpecRepository) Get(ctx context.Context, productID string, templateID int64) (*model.ProductSpec, error) {
	var spec model.ProductSpec
	err := r.ds.DB(ctx).Where("product_id = ? AND template_id = ?", productID, templateID).First(&spec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product specification: %w", err)
	}
	return &spec, nil
}

// DeleteByProduct deletes all of a product's specification rows
func (r *ProductSpecRepository) DeleteByProduct(ctx context.Context, productID string) error {
	return r.ds.DB(ctx).Where("product_id = ?", productID).Delete(&model.ProductSpec{}).Error
}
