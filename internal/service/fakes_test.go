package service

import (
	"context"
	"fmt"

	"voltshop/pkg/compat"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/store/mysql/model"
	redisstore "voltshop/pkg/store/redis"
)

// in-memory repository fakes shared by the service tests

type fakeCategoryRepo struct {
	categories map[int64]*model.Category
}

func newFakeCategoryRepo(categories ...*model.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[int64]*model.Category)}
	for _, category := range categories {
		repo.categories[category.ID] = category
	}
	return repo
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	if category.ID == 0 {
		category.ID = int64(len(f.categories) + 1)
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Get(ctx context.Context, id int64) (*model.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	var result []*model.Category
	for _, category := range f.categories {
		result = append(result, category)
	}
	return result, nil
}

func (f *fakeCategoryRepo) ListChildren(ctx context.Context, parentID int64) ([]*model.Category, error) {
	var result []*model.Category
	for _, category := range f.categories {
		if category.ParentID != nil && *category.ParentID == parentID {
			result = append(result, category)
		}
	}
	return result, nil
}

func (f *fakeCategoryRepo) ListPCComponents(ctx context.Context) ([]*model.Category, error) {
	var result []*model.Category
	for _, category := range f.categories {
		if category.IsPCComponent {
			result = append(result, category)
		}
	}
	return result, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[int64]*model.SpecTemplate
	nextID    int64
}

func newFakeTemplateRepo(templates ...*model.SpecTemplate) *fakeTemplateRepo {
	repo := &fakeTemplateRepo{templates: make(map[int64]*model.SpecTemplate), nextID: 1}
	for _, tpl := range templates {
		repo.templates[tpl.ID] = tpl
		if tpl.ID >= repo.nextID {
			repo.nextID = tpl.ID + 1
		}
	}
	return repo
}

func (f *fakeTemplateRepo) Create(ctx context.Context, template *model.SpecTemplate) error {
	if template.ID == 0 {
		template.ID = f.nextID
		f.nextID++
	}
	f.templates[template.ID] = template
	return nil
}

// Get returns a copy, matching the store where every read hydrates a fresh row
func (f *fakeTemplateRepo) Get(ctx context.Context, id int64) (*model.SpecTemplate, error) {
	tpl, ok := f.templates[id]
	if !ok {
		return nil, nil
	}
	copied := *tpl
	return &copied, nil
}

func (f *fakeTemplateRepo) GetByName(ctx context.Context, categoryID int64, name string) (*model.SpecTemplate, error) {
	for _, tpl := range f.templates {
		if tpl.CategoryID == categoryID && tpl.Name == name {
			copied := *tpl
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*model.SpecTemplate, error) {
	var result []*model.SpecTemplate
	for id := int64(1); id < f.nextID; id++ {
		if tpl, ok := f.templates[id]; ok && tpl.CategoryID == categoryID {
			result = append(result, tpl)
		}
	}
	return result, nil
}

func (f *fakeTemplateRepo) ListByIDs(ctx context.Context, ids []int64) ([]*model.SpecTemplate, error) {
	var result []*model.SpecTemplate
	for _, id := range ids {
		if tpl, ok := f.templates[id]; ok {
			result = append(result, tpl)
		}
	}
	return result, nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, template *model.SpecTemplate) error {
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id int64) error {
	delete(f.templates, id)
	return nil
}

type fakeProductRepo struct {
	products    map[string]*model.Product
	hardDeleted []string
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*model.Product)}
	for _, product := range products {
		repo.products[product.ID] = product
	}
	return repo
}

func (f *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Get(ctx context.Context, id string) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok || product.Status == "deleted" {
		return nil, nil
	}
	return product, nil
}

func (f *fakeProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*model.Product, error) {
	var result []*model.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok && product.Status != "deleted" {
			result = append(result, product)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Product, error) {
	var result []*model.Product
	for _, product := range f.products {
		if product.CategoryID == categoryID && product.Status != "deleted" {
			result = append(result, product)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if product, ok := f.products[id]; ok {
		product.Status = "deleted"
	}
	return nil
}

func (f *fakeProductRepo) HardDelete(ctx context.Context, id string) error {
	delete(f.products, id)
	f.hardDeleted = append(f.hardDeleted, id)
	return nil
}

type fakeSpecRepo struct {
	rows           []*model.ProductSpec
	createBatchErr error
	upsertErrFor   map[string]error
}

func newFakeSpecRepo(rows ...*model.ProductSpec) *fakeSpecRepo {
	return &fakeSpecRepo{rows: rows}
}

func (f *fakeSpecRepo) CreateBatch(ctx context.Context, specs []*model.ProductSpec) error {
	if f.createBatchErr != nil {
		return f.createBatchErr
	}
	f.rows = append(f.rows, specs...)
	return nil
}

func (f *fakeSpecRepo) Upsert(ctx context.Context, spec *model.ProductSpec) error {
	if err := f.upsertErrFor[spec.ProductID]; err != nil {
		return err
	}
	for i, row := range f.rows {
		if row.ProductID == spec.ProductID && row.TemplateID == spec.TemplateID {
			f.rows[i] = spec
			return nil
		}
	}
	f.rows = append(f.rows, spec)
	return nil
}

func (f *fakeSpecRepo) ListByProduct(ctx context.Context, productID string) ([]*model.ProductSpec, error) {
	var result []*model.ProductSpec
	for _, row := range f.rows {
		if row.ProductID == productID {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeSpecRepo) ListByProducts(ctx context.Context, productIDs []string) ([]*model.ProductSpec, error) {
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	var result []*model.ProductSpec
	for _, row := range f.rows {
		if _, ok := wanted[row.ProductID]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (f *fakeSpecRepo) Get(ctx context.Context, productID string, templateID int64) (*model.ProductSpec, error) {
	for _, row := range f.rows {
		if row.ProductID == productID && row.TemplateID == templateID {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeSpecRepo) DeleteByProduct(ctx context.Context, productID string) error {
	var kept []*model.ProductSpec
	for _, row := range f.rows {
		if row.ProductID != productID {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

type fakeRuleRepo struct {
	rules  map[int64]*model.CompatibilityRule
	nextID int64
}

func newFakeRuleRepo(rules ...*model.CompatibilityRule) *fakeRuleRepo {
	repo := &fakeRuleRepo{rules: make(map[int64]*model.CompatibilityRule), nextID: 1}
	for _, rule := range rules {
		repo.rules[rule.ID] = rule
		if rule.ID >= repo.nextID {
			repo.nextID = rule.ID + 1
		}
	}
	return repo
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *model.CompatibilityRule) error {
	if rule.ID == 0 {
		rule.ID = f.nextID
		f.nextID++
	}
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) Get(ctx context.Context, id int64) (*model.CompatibilityRule, error) {
	return f.rules[id], nil
}

func (f *fakeRuleRepo) ListActive(ctx context.Context) ([]*model.CompatibilityRule, error) {
	var result []*model.CompatibilityRule
	for id := int64(1); id < f.nextID; id++ {
		if rule, ok := f.rules[id]; ok && rule.IsActive {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (f *fakeRuleRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*model.CompatibilityRule, error) {
	var result []*model.CompatibilityRule
	for id := int64(1); id < f.nextID; id++ {
		if rule, ok := f.rules[id]; ok && (rule.PrimaryCategoryID == categoryID || rule.SecondaryCategoryID == categoryID) {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (f *fakeRuleRepo) Update(ctx context.Context, rule *model.CompatibilityRule) error {
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRuleRepo) Delete(ctx context.Context, id int64) error {
	delete(f.rules, id)
	return nil
}

type fakeVerdictCache struct {
	store map[string]*compat.EvaluationResult
	bumps int
}

func newFakeVerdictCache() *fakeVerdictCache {
	return &fakeVerdictCache{store: make(map[string]*compat.EvaluationResult)}
}

func (f *fakeVerdictCache) key(selections []interfaces.SelectedComponent) string {
	return fmt.Sprintf("%d:%s", f.bumps, redisstore.SelectionDigest(selections))
}

func (f *fakeVerdictCache) Get(ctx context.Context, selections []interfaces.SelectedComponent) *compat.EvaluationResult {
	return f.store[f.key(selections)]
}

func (f *fakeVerdictCache) Set(ctx context.Context, selections []interfaces.SelectedComponent, result *compat.EvaluationResult) {
	f.store[f.key(selections)] = result
}

func (f *fakeVerdictCache) BumpRulesVersion(ctx context.Context) error {
	f.bumps++
	return nil
}
