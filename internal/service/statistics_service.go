package service

import (
	"context"
	"fmt"

	"voltshop/pkg/interfaces"
	"voltshop/pkg/store/mysql/model"
)

// StatisticsService reports specification completeness. Completeness is a
// data quality signal for catalog operators; it never gates a compatibility
// verdict.
type StatisticsService struct {
	categoryRepo categoryRepository
	templateRepo templateRepository
	productRepo  productRepository
	specRepo     productSpecRepository
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(
	categoryRepo categoryRepository,
	templateRepo templateRepository,
	productRepo productRepository,
	specRepo productSpecRepository,
) *StatisticsService {
	return &StatisticsService{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		productRepo:  productRepo,
		specRepo:     specRepo,
	}
}

// GetProductCompleteness reports which required specification keys one
// product is missing
func (s *StatisticsService) GetProductCompleteness(ctx context.Context, productID string) (*interfaces.ProductCompleteness, error) {
	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	required, err := s.requiredTemplates(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	specRows, err := s.specRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	present := make(map[int64]struct{}, len(specRows))
	for _, row := range specRows {
		present[row.TemplateID] = struct{}{}
	}

	return s.buildCompleteness(product, required, present), nil
}

// GetCategoryCompleteness aggregates completeness over a category's products.
// When includeProducts is set the per-product breakdown rides along.
func (s *StatisticsService) GetCategoryCompleteness(ctx context.Context, categoryID int64, includeProducts bool) (*interfaces.CategoryCompleteness, error) {
	category, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}

	required, err := s.requiredTemplates(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, len(products))
	for i, product := range products {
		productIDs[i] = product.ID
	}
	specRows, err := s.specRepo.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	presentByProduct := make(map[string]map[int64]struct{})
	for _, row := range specRows {
		if presentByProduct[row.ProductID] == nil {
			presentByProduct[row.ProductID] = make(map[int64]struct{})
		}
		presentByProduct[row.ProductID][row.TemplateID] = struct{}{}
	}

	report := &interfaces.CategoryCompleteness{
		CategoryID:   categoryID,
		ProductCount: len(products),
	}
	for _, product := range products {
		completeness := s.buildCompleteness(product, required, presentByProduct[product.ID])
		if len(completeness.MissingKeys) == 0 {
			report.CompleteCount++
		} else {
			report.IncompleteCount++
		}
		if includeProducts {
			report.Products = append(report.Products, *completeness)
		}
	}
	return report, nil
}

func (s *StatisticsService) requiredTemplates(ctx context.Context, categoryID int64) ([]*model.SpecTemplate, error) {
	rows, err := s.templateRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	var required []*model.SpecTemplate
	for _, row := range rows {
		if row.IsRequired {
			required = append(required, row)
		}
	}
	return required, nil
}

func (s *StatisticsService) buildCompleteness(product *model.Product, required []*model.SpecTemplate, present map[int64]struct{}) *interfaces.ProductCompleteness {
	completeness := &interfaces.ProductCompleteness{
		ProductID:    product.ID,
		ProductName:  product.Name,
		RequiredKeys: len(required),
	}
	for _, tpl := range required {
		if _, ok := present[tpl.ID]; !ok {
			completeness.MissingKeys = append(completeness.MissingKeys, tpl.Name)
		}
	}
	return completeness
}
