package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"voltshop/pkg/constants"
	"voltshop/pkg/enums"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql"
	"voltshop/pkg/store/mysql/model"
)

// ProductService handles the product creation pipeline and specification
// edits. Creation is all-or-nothing: validation failures collect every
// problem and persist nothing, and a failed specification write rolls the
// product row back with a compensating delete.
type ProductService struct {
	categoryRepo categoryRepository
	templateRepo templateRepository
	productRepo  productRepository
	specRepo     productSpecRepository
	ruleRepo     ruleRepository
	registry     *enums.Registry
}

// NewProductService creates a new product service
func NewProductService(
	categoryRepo categoryRepository,
	templateRepo templateRepository,
	productRepo productRepository,
	specRepo productSpecRepository,
	ruleRepo ruleRepository,
	registry *enums.Registry,
) *ProductService {
	return &ProductService{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		productRepo:  productRepo,
		specRepo:     specRepo,
		ruleRepo:     ruleRepo,
		registry:     registry,
	}
}

// CreateProductWithSpecifications validates a product's raw specification map
// against its category's templates and persists the product together with its
// normalized values. On any validation failure the full error list comes back
// and nothing is written.
func (s *ProductService) CreateProductWithSpecifications(ctx context.Context, req *interfaces.CreateProductRequest) (*interfaces.CreateProductResult, error) {
	category, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, ErrNotFound)
	}

	rows, err := s.templateRepo.ListByCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	templates := make([]specs.Template, len(rows))
	byName := make(map[string]specs.Template, len(rows))
	for i, row := range rows {
		templates[i] = mysql.ToTemplateDomain(row)
		byName[templates[i].Name] = templates[i]
	}

	crossRules, err := s.crossRulesForCategory(ctx, req.CategoryID, byName)
	if err != nil {
		return nil, err
	}

	result := &interfaces.CreateProductResult{}
	normalized := make(map[string]specs.TypedValue)
	fieldErrors := make(map[string][]specs.FieldIssue, len(templates))

	// First pass: single-field validation in display order
	for _, tpl := range templates {
		raw, provided := req.Specifications[tpl.Name]
		if !provided {
			if tpl.IsRequired {
				fieldErrors[tpl.Name] = []specs.FieldIssue{{
					Code:    constants.ErrCodeMissingField,
					Field:   tpl.Name,
					Message: fmt.Sprintf("required specification %s is missing", tpl.Name),
				}}
			}
			continue
		}

		fieldResult := specs.ValidateAndNormalize(tpl, raw, s.registry)
		if len(fieldResult.Errors) > 0 {
			fieldErrors[tpl.Name] = fieldResult.Errors
		}
		result.Warnings = append(result.Warnings, fieldResult.Warnings...)
		if fieldResult.IsValid && fieldResult.Normalized != nil {
			normalized[tpl.Name] = *fieldResult.Normalized
		}
	}

	// Second pass: with every sibling normalized, each value is re-checked
	// against the category's cross-field rules, so rule direction is
	// independent of display order. A cross-field failure replaces the key's
	// single-field errors.
	for _, tpl := range templates {
		value, ok := normalized[tpl.Name]
		if !ok {
			continue
		}
		if issue := specs.CheckCrossRules(tpl.Name, value, crossRules, normalized); issue != nil {
			fieldErrors[tpl.Name] = []specs.FieldIssue{*issue}
		}
	}

	for _, tpl := range templates {
		result.Errors = append(result.Errors, fieldErrors[tpl.Name]...)
	}

	// Unknown keys are rejected rather than silently dropped
	for key := range req.Specifications {
		if _, ok := byName[key]; !ok {
			result.Errors = append(result.Errors, specs.FieldIssue{
				Code:    constants.ErrCodeBadDefinition,
				Field:   key,
				Message: fmt.Sprintf("no specification template named %s in category %d", key, req.CategoryID),
			})
		}
	}

	if len(result.Errors) > 0 {
		result.Success = false
		return result, nil
	}

	product := &model.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Slug:          Slugify(req.Name),
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Price:         req.Price,
		Stock:         req.Stock,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		Status:        "active",
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	specRows := make([]*model.ProductSpec, 0, len(normalized))
	for _, tpl := range templates {
		value, ok := normalized[tpl.Name]
		if !ok {
			continue
		}
		specRows = append(specRows, mysql.FromTypedValue(product.ID, tpl.ID, value, tpl.DisplayOrder))
	}

	if err := s.specRepo.CreateBatch(ctx, specRows); err != nil {
		// Compensating delete keeps the catalog free of half-created products
		if delErr := s.productRepo.HardDelete(ctx, product.ID); delErr != nil {
			logger.ErrorCtx(ctx, "failed to roll back product %s after spec write failure: %v", product.ID, delErr)
		}
		return nil, fmt.Errorf("failed to store specifications: %w", err)
	}

	result.Success = true
	result.Product = s.buildProductInfo(product, specRows, byName)
	return result, nil
}

// GetProduct retrieves a product with its resolved specification values
func (s *ProductService) GetProduct(ctx context.Context, id string) (*interfaces.ProductInfo, error) {
	product, err := s.productRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	specRows, err := s.specRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	byName, err := s.templatesByName(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	return s.buildProductInfo(product, specRows, byName), nil
}

// ListProductsByCategory lists a category's products without specifications
func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*interfaces.ProductInfo, error) {
	products, err := s.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	result := make([]*interfaces.ProductInfo, len(products))
	for i, product := range products {
		result[i] = s.buildProductInfo(product, nil, nil)
	}
	return result, nil
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return s.productRepo.Delete(ctx, id)
}

// BulkApplySpecification applies one validated value to several products with
// per-product accounting. Individual failures never abort the remaining
// updates.
func (s *ProductService) BulkApplySpecification(ctx context.Context, req *interfaces.BulkApplyRequest) (*interfaces.BulkApplyResult, error) {
	row, err := s.templateRepo.Get(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("template %d: %w", req.TemplateID, ErrNotFound)
	}
	tpl := mysql.ToTemplateDomain(row)

	// The value is validated once up front; a bad value fails the whole
	// request before any product is touched
	validation := specs.ValidateAndNormalize(tpl, req.Value, s.registry)
	if !validation.IsValid || validation.Normalized == nil {
		return nil, &ValueError{Issues: validation.Errors}
	}
	value := *validation.Normalized

	result := &interfaces.BulkApplyResult{}
	for _, productID := range req.ProductIDs {
		if err := s.applyToProduct(ctx, productID, tpl, value); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, interfaces.BulkItemError{
				ProductID: productID,
				Message:   err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}

	logger.InfoCtx(ctx, "bulk apply template %d: %d succeeded, %d failed",
		req.TemplateID, result.SuccessCount, result.ErrorCount)
	return result, nil
}

func (s *ProductService) applyToProduct(ctx context.Context, productID string, tpl specs.Template, value specs.TypedValue) error {
	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found")
	}
	if product.CategoryID != tpl.CategoryID {
		return fmt.Errorf("product belongs to category %d, template to category %d", product.CategoryID, tpl.CategoryID)
	}
	return s.specRepo.Upsert(ctx, mysql.FromTypedValue(productID, tpl.ID, value, tpl.DisplayOrder))
}

// crossRulesForCategory converts same-category compatibility rules into
// cross-field validation rules keyed by template name
func (s *ProductService) crossRulesForCategory(ctx context.Context, categoryID int64, byName map[string]specs.Template) ([]specs.CrossRule, error) {
	if s.ruleRepo == nil {
		return nil, nil
	}

	rows, err := s.ruleRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}

	byID := make(map[int64]string, len(byName))
	for _, tpl := range byName {
		byID[tpl.ID] = tpl.Name
	}

	var crossRules []specs.CrossRule
	for _, row := range rows {
		if !row.IsActive || row.PrimaryCategoryID != categoryID || row.SecondaryCategoryID != categoryID {
			continue
		}
		key, ok := byID[row.PrimaryTemplateID]
		if !ok {
			continue
		}
		otherKey, ok := byID[row.SecondaryTemplateID]
		if !ok {
			continue
		}
		rule := mysql.ToRuleDomain(row, key, otherKey)
		crossRules = append(crossRules, specs.CrossRule{
			Key:         rule.PrimaryKey,
			OtherKey:    rule.SecondaryKey,
			Mode:        rule.RuleType,
			LowerFactor: rule.Params.LowerFactor,
			UpperFactor: rule.Params.UpperFactor,
			Min:         rule.Params.Min,
			Max:         rule.Params.Max,
			ValueSets:   rule.Params.ValueSets,
		})
	}
	return crossRules, nil
}

func (s *ProductService) templatesByName(ctx context.Context, categoryID int64) (map[string]specs.Template, error) {
	rows, err := s.templateRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]specs.Template, len(rows))
	for _, row := range rows {
		tpl := mysql.ToTemplateDomain(row)
		byName[tpl.Name] = tpl
	}
	return byName, nil
}

func (s *ProductService) buildProductInfo(product *model.Product, specRows []*model.ProductSpec, byName map[string]specs.Template) *interfaces.ProductInfo {
	info := &interfaces.ProductInfo{
		ID:            product.ID,
		Name:          product.Name,
		CategoryID:    product.CategoryID,
		SubcategoryID: product.SubcategoryID,
		Price:         product.Price,
		Stock:         product.Stock,
		Description:   product.Description,
		ImageURL:      product.ImageURL,
		CreatedAt:     product.CreatedAt,
	}

	byID := make(map[int64]specs.Template, len(byName))
	for _, tpl := range byName {
		byID[tpl.ID] = tpl
	}

	for _, row := range specRows {
		value := mysql.ToTypedValue(row)
		spec := interfaces.SpecificationInfo{
			TemplateID:   row.TemplateID,
			Value:        value,
			Display:      row.Value,
			DisplayOrder: row.DisplayOrder,
		}
		if tpl, ok := byID[row.TemplateID]; ok {
			spec.Name = tpl.Name
			spec.DisplayName = tpl.DisplayName
		}
		info.Specifications = append(info.Specifications, spec)
	}
	return info
}
