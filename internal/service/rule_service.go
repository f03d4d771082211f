package service

import (
	"context"
	"fmt"

	"voltshop/pkg/compat"
	"voltshop/pkg/constants"
	"voltshop/pkg/interfaces"
	"voltshop/pkg/logger"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql"
	"voltshop/pkg/store/mysql/model"
)

// RuleService handles compatibility rule authoring. Every mutation bumps the
// verdict cache version so previously computed verdicts are recomputed.
type RuleService struct {
	categoryRepo categoryRepository
	templateRepo templateRepository
	ruleRepo     ruleRepository
	cache        verdictCache
}

// NewRuleService creates a new rule service
func NewRuleService(categoryRepo categoryRepository, templateRepo templateRepository, ruleRepo ruleRepository, cache verdictCache) *RuleService {
	return &RuleService{
		categoryRepo: categoryRepo,
		templateRepo: templateRepo,
		ruleRepo:     ruleRepo,
		cache:        cache,
	}
}

// CreateRule creates a compatibility rule after checking its definition
// against the referenced templates
func (s *RuleService) CreateRule(ctx context.Context, req *interfaces.CreateRuleRequest) (*interfaces.RuleResult, error) {
	primaryTpl, err := s.loadTemplate(ctx, req.PrimarySpecificationTemplateID)
	if err != nil {
		return nil, err
	}
	secondaryTpl, err := s.loadTemplate(ctx, req.SecondarySpecificationTemplateID)
	if err != nil {
		return nil, err
	}

	severity := req.Severity
	if severity == "" {
		severity = constants.SeverityError
	}

	rule := compat.Rule{
		Name:                req.Name,
		PrimaryCategoryID:   req.PrimaryCategoryID,
		SecondaryCategoryID: req.SecondaryCategoryID,
		PrimaryKey:          primaryTpl.Name,
		SecondaryKey:        secondaryTpl.Name,
		RuleType:            req.RuleType,
		Params:              req.Params,
		Severity:            severity,
		Message:             req.Message,
	}

	check := compat.ValidateRuleDefinition(rule, primaryTpl, secondaryTpl)
	if !check.IsValid {
		return nil, &DefinitionError{Issues: check.Errors}
	}

	row := &model.CompatibilityRule{
		Name:                req.Name,
		PrimaryCategoryID:   req.PrimaryCategoryID,
		SecondaryCategoryID: req.SecondaryCategoryID,
		PrimaryTemplateID:   req.PrimarySpecificationTemplateID,
		SecondaryTemplateID: req.SecondarySpecificationTemplateID,
		RuleType:            req.RuleType,
		Params:              mysql.RuleParamsToJSONMap(req.Params),
		Severity:            severity,
		Message:             req.Message,
		IsActive:            true,
	}

	if err := s.ruleRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	s.invalidateVerdicts(ctx)

	rule.ID = row.ID
	return &interfaces.RuleResult{Rule: rule, Warnings: check.Warnings}, nil
}

// ListActiveRules lists every active rule with its template keys resolved
func (s *RuleService) ListActiveRules(ctx context.Context) ([]compat.Rule, error) {
	rows, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveRules(ctx, rows)
}

// ListRulesForCategory lists rules referencing a category on either side
func (s *RuleService) ListRulesForCategory(ctx context.Context, categoryID int64) ([]compat.Rule, error) {
	rows, err := s.ruleRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.resolveRules(ctx, rows)
}

// SetRuleActive toggles a rule without deleting its definition
func (s *RuleService) SetRuleActive(ctx context.Context, id int64, active bool) error {
	row, err := s.ruleRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}

	row.IsActive = active
	if err := s.ruleRepo.Update(ctx, row); err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	s.invalidateVerdicts(ctx)
	return nil
}

// DeleteRule deletes a rule
func (s *RuleService) DeleteRule(ctx context.Context, id int64) error {
	row, err := s.ruleRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("rule %d: %w", id, ErrNotFound)
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateVerdicts(ctx)
	return nil
}

// resolveRules converts rule rows to domain rules, resolving template ids to
// template keys. Rules whose templates no longer exist keep empty keys so the
// evaluator fails closed on them instead of silently passing.
func (s *RuleService) resolveRules(ctx context.Context, rows []*model.CompatibilityRule) ([]compat.Rule, error) {
	idSet := make(map[int64]struct{})
	for _, row := range rows {
		idSet[row.PrimaryTemplateID] = struct{}{}
		idSet[row.SecondaryTemplateID] = struct{}{}
	}
	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	templates, err := s.templateRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rule templates: %w", err)
	}
	byID := make(map[int64]*model.SpecTemplate, len(templates))
	for _, tpl := range templates {
		byID[tpl.ID] = tpl
	}

	rules := make([]compat.Rule, 0, len(rows))
	for _, row := range rows {
		var primaryKey, secondaryKey string
		if tpl, ok := byID[row.PrimaryTemplateID]; ok {
			primaryKey = tpl.Name
		} else {
			logger.WarnCtx(ctx, "rule %d references missing template %d", row.ID, row.PrimaryTemplateID)
		}
		if tpl, ok := byID[row.SecondaryTemplateID]; ok {
			secondaryKey = tpl.Name
		} else {
			logger.WarnCtx(ctx, "rule %d references missing template %d", row.ID, row.SecondaryTemplateID)
		}
		rules = append(rules, mysql.ToRuleDomain(row, primaryKey, secondaryKey))
	}
	return rules, nil
}

func (s *RuleService) loadTemplate(ctx context.Context, id int64) (*specs.Template, error) {
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

func (s *RuleService) invalidateVerdicts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.BumpRulesVersion(ctx); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate verdict cache: %v", err)
	}
}
