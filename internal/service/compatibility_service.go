package service

import (
	"context"
	"fmt"

	"voltshop/pkg/compat"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql"
	"voltshop/pkg/store/mysql/model"
)

// CompatibilityService resolves configurator selections into evaluator input
// and produces the aggregate verdict. Verdicts are cached per selection set;
// rule mutations invalidate the cache through a version bump.
type CompatibilityService struct {
	categoryRepo categoryRepository
	templateRepo templateRepository
	productRepo  productRepository
	specRepo     productSpecRepository
	ruleService  *RuleService
	cache        verdictCache
}

// NewCompatibilityService creates a new compatibility service
func NewCompatibilityService(
	categoryRepo categoryRepository,
	templateRepo templateRepository,
	productRepo productRepository,
	specRepo productSpecRepository,
	ruleService *RuleService,
	cache verdictCache,
) *CompatibilityService {
	return &CompatibilityService{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		productRepo:  productRepo,
		specRepo:     specRepo,
		ruleService:  ruleService,
		cache:        cache,
	}
}

// CheckCompatibility evaluates every active rule against a candidate
// selection. A selection naming a product that does not exist is an error;
// products missing compatibility data surface as issues in the verdict, not
// as request errors.
func (s *CompatibilityService) CheckCompatibility(ctx context.Context, selections []interfaces.SelectedComponent) (*compat.EvaluationResult, error) {
	if s.cache != nil {
		if cached := s.cache.Get(ctx, selections); cached != nil {
			logger.DebugCtx(ctx, "verdict cache hit for %d selections", len(selections))
			return cached, nil
		}
	}

	resolved, err := s.resolveSelections(ctx, selections)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleService.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	result := compat.Evaluate(resolved, rules)

	if s.cache != nil {
		s.cache.Set(ctx, selections, &result)
	}
	return &result, nil
}

// resolveSelections loads the selected products and their specification
// values keyed by template name
func (s *CompatibilityService) resolveSelections(ctx context.Context, selections []interfaces.SelectedComponent) ([]compat.Selection, error) {
	productIDs := make([]string, len(selections))
	for i, sel := range selections {
		productIDs[i] = sel.ProductID
	}

	products, err := s.productRepo.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	productByID := make(map[string]*model.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	specRows, err := s.specRepo.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load specifications: %w", err)
	}

	templateIDs := make(map[int64]struct{})
	for _, row := range specRows {
		templateIDs[row.TemplateID] = struct{}{}
	}
	ids := make([]int64, 0, len(templateIDs))
	for id := range templateIDs {
		ids = append(ids, id)
	}
	templates, err := s.templateRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	templateName := make(map[int64]string, len(templates))
	for _, tpl := range templates {
		templateName[tpl.ID] = tpl.Name
	}

	specsByProduct := make(map[string]map[string]specs.TypedValue)
	for _, row := range specRows {
		name, ok := templateName[row.TemplateID]
		if !ok {
			continue
		}
		if specsByProduct[row.ProductID] == nil {
			specsByProduct[row.ProductID] = make(map[string]specs.TypedValue)
		}
		specsByProduct[row.ProductID][name] = mysql.ToTypedValue(row)
	}

	categoryNames := make(map[int64]string)

	resolved := make([]compat.Selection, 0, len(selections))
	for _, sel := range selections {
		product, ok := productByID[sel.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", sel.ProductID, ErrNotFound)
		}
		if product.CategoryID != sel.CategoryID {
			return nil, fmt.Errorf("product %s belongs to category %d, not %d", sel.ProductID, product.CategoryID, sel.CategoryID)
		}

		categoryName, ok := categoryNames[sel.CategoryID]
		if !ok {
			category, err := s.categoryRepo.Get(ctx, sel.CategoryID)
			if err != nil {
				return nil, err
			}
			if category != nil {
				categoryName = category.Name
			}
			categoryNames[sel.CategoryID] = categoryName
		}

		values := specsByProduct[sel.ProductID]
		if values == nil {
			values = make(map[string]specs.TypedValue)
		}
		resolved = append(resolved, compat.Selection{
			CategoryID:   sel.CategoryID,
			ProductID:    sel.ProductID,
			ProductName:  product.Name,
			CategoryName: categoryName,
			Specs:        values,
		})
	}
	return resolved, nil
}
