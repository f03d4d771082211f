package interfaces

import (
	"time"

	"voltshop/pkg/compat"
	"voltshop/pkg/specs"
)

// CategoryInfo is the API representation of a catalog category
type CategoryInfo struct {
	ID              int64  `json:"id"`
	ParentID        *int64 `json:"parent_id,omitempty"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	IsPCComponent   bool   `json:"is_pc_component"`
	PCComponentType string `json:"pc_component_type,omitempty"`
	PCDisplayOrder  int    `json:"pc_display_order"`
	DisplayOrder    int    `json:"display_order"`
}

// CreateCategoryRequest creates a category or subcategory
type CreateCategoryRequest struct {
	ParentID        *int64 `json:"parent_id,omitempty"`
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug"`
	IsPCComponent   bool   `json:"is_pc_component"`
	PCComponentType string `json:"pc_component_type"`
	PCDisplayOrder  int    `json:"pc_display_order"`
	DisplayOrder    int    `json:"display_order"`
}

// CreateTemplateRequest creates a specification template for a category
type CreateTemplateRequest struct {
	CategoryID         int64                 `json:"category_id" binding:"required"`
	Name               string                `json:"name" binding:"required"`
	DisplayName        string                `json:"display_name" binding:"required"`
	DataType           string                `json:"data_type" binding:"required"`
	IsRequired         bool                  `json:"is_required"`
	IsCompatibilityKey bool                  `json:"is_compatibility_key"`
	IsFilterable       bool                  `json:"is_filterable"`
	EnumSource         string                `json:"enum_source"`
	EnumValues         []string              `json:"enum_values"`
	ValidationRules    specs.ValidationRules `json:"validation_rules"`
	DisplayOrder       int                   `json:"display_order"`
}

// UpdateTemplateRequest updates mutable template fields
type UpdateTemplateRequest struct {
	DisplayName        *string                `json:"display_name,omitempty"`
	IsRequired         *bool                  `json:"is_required,omitempty"`
	IsCompatibilityKey *bool                  `json:"is_compatibility_key,omitempty"`
	IsFilterable       *bool                  `json:"is_filterable,omitempty"`
	EnumValues         []string               `json:"enum_values,omitempty"`
	ValidationRules    *specs.ValidationRules `json:"validation_rules,omitempty"`
	DisplayOrder       *int                   `json:"display_order,omitempty"`
}

// TemplateResult pairs a persisted template with non-blocking definition
// warnings
type TemplateResult struct {
	Template specs.Template     `json:"template"`
	Warnings []specs.FieldIssue `json:"warnings,omitempty"`
}

// CreateRuleRequest creates a compatibility rule between two categories
type CreateRuleRequest struct {
	Name                             string            `json:"name"`
	PrimaryCategoryID                int64             `json:"primary_category_id" binding:"required"`
	SecondaryCategoryID              int64             `json:"secondary_category_id" binding:"required"`
	PrimarySpecificationTemplateID   int64             `json:"primary_specification_template_id" binding:"required"`
	SecondarySpecificationTemplateID int64             `json:"secondary_specification_template_id" binding:"required"`
	RuleType                         string            `json:"rule_type" binding:"required"`
	Params                           compat.RuleParams `json:"params"`
	Severity                         string            `json:"severity"`
	Message                          string            `json:"message"`
}

// RuleResult pairs a persisted rule with non-blocking definition warnings
type RuleResult struct {
	Rule     compat.Rule        `json:"rule"`
	Warnings []specs.FieldIssue `json:"warnings,omitempty"`
}

// CreateProductRequest creates a product together with its specification
// values. Specifications is the raw key-value map validated against the
// category's templates.
type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	CategoryID     int64                  `json:"category_id" binding:"required"`
	SubcategoryID  *int64                 `json:"subcategory_id,omitempty"`
	Price          float64                `json:"price"`
	Stock          int                    `json:"stock"`
	Description    string                 `json:"description"`
	ImageURL       string                 `json:"image_url"`
	Specifications map[string]interface{} `json:"specifications"`
}

// ProductInfo is the API representation of a product with its specifications
type ProductInfo struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	CategoryID     int64               `json:"category_id"`
	SubcategoryID  *int64              `json:"subcategory_id,omitempty"`
	Price          float64             `json:"price"`
	Stock          int                 `json:"stock"`
	Description    string              `json:"description,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"`
	Specifications []SpecificationInfo `json:"specifications,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// SpecificationInfo is one resolved specification value on a product
type SpecificationInfo struct {
	TemplateID   int64            `json:"template_id"`
	Name         string           `json:"name"`
	DisplayName  string           `json:"display_name"`
	Value        specs.TypedValue `json:"value"`
	Display      string           `json:"display"`
	DisplayOrder int              `json:"display_order"`
}

// CreateProductResult is the outcome of the product creation pipeline. On
// validation failure Success is false, Errors lists every problem found and
// nothing was persisted.
type CreateProductResult struct {
	Success  bool               `json:"success"`
	Product  *ProductInfo       `json:"product,omitempty"`
	Errors   []specs.FieldIssue `json:"errors,omitempty"`
	Warnings []specs.FieldIssue `json:"warnings,omitempty"`
}

// BulkApplyRequest applies one template value to several products
type BulkApplyRequest struct {
	TemplateID int64       `json:"template_id" binding:"required"`
	Value      interface{} `json:"value" binding:"required"`
	ProductIDs []string    `json:"product_ids" binding:"required"`
}

// BulkApplyResult reports per-product accounting for a bulk edit. Failures on
// individual products never abort the remaining updates.
type BulkApplyResult struct {
	SuccessCount int             `json:"success_count"`
	ErrorCount   int             `json:"error_count"`
	Errors       []BulkItemError `json:"errors,omitempty"`
}

// BulkItemError is one product's failure inside a bulk edit
type BulkItemError struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}

// SelectedComponent is one entry of a configurator selection
type SelectedComponent struct {
	CategoryID int64  `json:"category_id" binding:"required"`
	ProductID  string `json:"product_id" binding:"required"`
}

// CompatibilityCheckRequest asks for a verdict over a candidate selection
type CompatibilityCheckRequest struct {
	Selections []SelectedComponent `json:"selections" binding:"required"`
}

// ProductCompleteness reports which required specification keys a product is
// missing. This is reporting only; it never gates compatibility.
type ProductCompleteness struct {
	ProductID    string   `json:"product_id"`
	ProductName  string   `json:"product_name"`
	RequiredKeys int      `json:"required_keys"`
	MissingKeys  []string `json:"missing_keys"`
}

// CategoryCompleteness aggregates completeness over one category's products
type CategoryCompleteness struct {
	CategoryID      int64                 `json:"category_id"`
	ProductCount    int                   `json:"product_count"`
	CompleteCount   int                   `json:"complete_count"`
	IncompleteCount int                   `json:"incomplete_count"`
	Products        []ProductCompleteness `json:"products,omitempty"`
}
