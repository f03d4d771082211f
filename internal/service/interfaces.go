package service

import (
	"context"

	"voltshop/pkg/compat"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/store/mysql"
	"voltshop/pkg/store/mysql/model"
	redisstore "voltshop/pkg/store/redis"
)

type categoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Get(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]*model.Category, error)
	ListPCComponents(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
}

type templateRepository interface {
	Create(ctx context.Context, template *model.SpecTemplate) error
	Get(ctx context.Context, id int64) (*model.SpecTemplate, error)
	GetByName(ctx context.Context, categoryID int64, name string) (*model.SpecTemplate, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.SpecTemplate, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*model.SpecTemplate, error)
	Update(ctx context.Context, template *model.SpecTemplate) error
	Delete(ctx context.Context, id int64) error
}

type productRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Get(ctx context.Context, id string) (*model.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

type productSpecRepository interface {
	CreateBatch(ctx context.Context, specs []*model.ProductSpec) error
	Upsert(ctx context.Context, spec *model.ProductSpec) error
	ListByProduct(ctx context.Context, productID string) ([]*model.ProductSpec, error)
	ListByProducts(ctx context.Context, productIDs []string) ([]*model.ProductSpec, error)
	Get(ctx context.Context, productID string, templateID int64) (*model.ProductSpec, error)
	DeleteByProduct(ctx context.Context, productID string) error
}

type ruleRepository interface {
	Create(ctx context.Context, rule *model.CompatibilityRule) error
	Get(ctx context.Context, id int64) (*model.CompatibilityRule, error)
	ListActive(ctx context.Context) ([]*model.CompatibilityRule, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.CompatibilityRule, error)
	Update(ctx context.Context, rule *model.CompatibilityRule) error
	Delete(ctx context.Context, id int64) error
}

type verdictCache interface {
	Get(ctx context.Context, selections []interfaces.SelectedComponent) *compat.EvaluationResult
	Set(ctx context.Context, selections []interfaces.SelectedComponent, result *compat.EvaluationResult)
	BumpRulesVersion(ctx context.Context) error
}

// compile-time assertions

var (
	_ categoryRepository    = (*mysql.CategoryRepository)(nil)
	_ templateRepository    = (*mysql.TemplateRepository)(nil)
	_ productRepository     = (*mysql.ProductRepository)(nil)
	_ productSpecRepository = (*mysql.ProductSpecRepository)(nil)
	_ ruleRepository        = (*mysql.RuleRepository)(nil)
	_ verdictCache          = (*redisstore.VerdictCache)(nil)
)
