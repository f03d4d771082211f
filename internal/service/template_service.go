package service

import (
	"context"
	"fmt"

	"voltshop/pkg/enums"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql"
	"voltshop/pkg/store/mysql/model"
)

// TemplateService handles specification template business logic. Definition
// errors block creation and updates; warnings are returned alongside the
// persisted template.
type TemplateService struct {
	categoryRepo categoryRepository
	templateRepo templateRepository
	registry     *enums.Registry
}

// NewTemplateService creates a new template service
func NewTemplateService(categoryRepo categoryRepository, templateRepo templateRepository, registry *enums.Registry) *TemplateService {
	return &TemplateService{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		registry:     registry,
	}
}

// CreateTemplate creates a specification template after checking its
// definition against the shared enumerations
func (s *TemplateService) CreateTemplate(ctx context.Context, req *interfaces.CreateTemplateRequest) (*interfaces.TemplateResult, error) {
	category, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, ErrNotFound)
	}

	existing, err := s.templateRepo.GetByName(ctx, req.CategoryID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing template: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("template %q already exists in category %d", req.Name, req.CategoryID)
	}

	tpl := specs.Template{
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		DisplayName:        req.DisplayName,
		DataType:           req.DataType,
		IsRequired:         req.IsRequired,
		IsCompatibilityKey: req.IsCompatibilityKey,
		IsFilterable:       req.IsFilterable,
		EnumSource:         req.EnumSource,
		EnumValues:         req.EnumValues,
		ValidationRules:    req.ValidationRules,
		DisplayOrder:       req.DisplayOrder,
	}

	check := specs.ValidateTemplateDefinition(tpl, s.registry)
	if !check.IsValid {
		return nil, &DefinitionError{Issues: check.Errors}
	}

	row := mysql.FromTemplateDomain(tpl)
	if err := s.templateRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	created := mysql.ToTemplateDomain(row)
	return &interfaces.TemplateResult{Template: created, Warnings: check.Warnings}, nil
}

// GetTemplate retrieves a template by id
func (s *TemplateService) GetTemplate(ctx context.Context, id int64) (*specs.Template, error) {
	row, err := s.templateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
	}
	tpl := mysql.ToTemplateDomain(row)
	return &tpl, nil
}

// GetTemplatesForCategory lists a category's templates in display order. An
// unknown category is an error; a category with no templates yet returns an
// empty list.
func (s *TemplateService) GetTemplatesForCategory(ctx context.Context, categoryID int64) ([]specs.Template, error) {
	category, err := s.categoryRepo.Get(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}

	rows, err := s.templateRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	templates := make([]specs.Template, len(rows))
	for i, row := range rows {
		templates[i] = mysql.ToTemplateDomain(row)
	}
	return templates, nil
}

// UpdateTemplate updates mutable template fields and re-checks the definition
func (s *TemplateService) UpdateTemplate(ctx context.Context, id int64, req *interfaces.UpdateTemplateRequest) (*interfaces.TemplateResult, error) {
	row, err := s.templateRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
	}

	if req.DisplayName != nil {
		row.DisplayName = *req.DisplayName
	}
	if req.IsRequired != nil {
		row.IsRequired = *req.IsRequired
	}
	if req.IsCompatibilityKey != nil {
		row.IsCompatibilityKey = *req.IsCompatibilityKey
	}
	if req.IsFilterable != nil {
		row.IsFilterable = *req.IsFilterable
	}
	if req.EnumValues != nil {
		row.EnumValues = model.JSONStringArray(req.EnumValues)
	}
	if req.ValidationRules != nil {
		updated := mysql.FromTemplateDomain(specs.Template{ValidationRules: *req.ValidationRules})
		row.ValidationRules = updated.ValidationRules
	}
	if req.DisplayOrder != nil {
		row.DisplayOrder = *req.DisplayOrder
	}

	tpl := mysql.ToTemplateDomain(row)
	check := specs.ValidateTemplateDefinition(tpl, s.registry)
	if !check.IsValid {
		return nil, &DefinitionError{Issues: check.Errors}
	}

	if err := s.templateRepo.Update(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return &interfaces.TemplateResult{Template: tpl, Warnings: check.Warnings}, nil
}

// DeleteTemplate deletes a template
func (s *TemplateService) DeleteTemplate(ctx context.Context, id int64) error {
	row, err := s.templateRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("template %d: %w", id, ErrNotFound)
	}
	return s.templateRepo.Delete(ctx, id)
}
