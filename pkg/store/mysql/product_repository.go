package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"voltshop/pkg/store/mysql/model"
)

// ProductRepository handles product persistence in MySQL
type ProductRepository struct {
	ds *Datastore
}

// NewProductRepository creates a new product repository
func NewProductRepository(ds *Datastore) *ProductRepository {
	return &ProductRepository{ds: ds}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return r.ds.DB(ctx).Create(product).Error
}

// Get retrieves a product by id. Returns nil when the product does not exist
// or is deleted.
func (r *ProductRepository) Get(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.ds.DB(ctx).Where("id = ? AND status != ?", id, "deleted").First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// ListByIDs retrieves products by id, skipping deleted rows
func (r *ProductRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []*model.Product
	err := r.ds.DB(ctx).Where("id IN ? AND status != ?", ids, "deleted").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products by ids: %w", err)
	}
	return products, nil
}

// ListByCategory lists a category's products
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Product, error) {
	var products []*model.Product
	err := r.ds.DB(ctx).Where("category_id = ? AND status != ?", categoryID, "deleted").Order("name").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	return r.ds.DB(ctx).Save(product).Error
}

// Delete soft deletes a product by setting status to 'deleted'
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.ds.DB(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("status", "deleted").Error
}

// HardDelete physically deletes a product. Used by the creation pipeline's
// compensating delete when specification insertion fails.
func (r *ProductRepository) HardDelete(ctx context.Context, id string) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}
