package compat

import (
	"fmt"

	"voltshop/pkg/constants"
	"voltshop/pkg/specs"
)

// ValidateRuleDefinition checks a rule definition at creation or update time.
// The referenced templates are supplied by the caller (nil when unresolved).
// Errors block persistence; warnings do not.
func ValidateRuleDefinition(rule Rule, primaryTpl, secondaryTpl *specs.Template) specs.ValidationResult {
	result := specs.ValidationResult{IsValid: true}

	addError := func(field, message string) {
		result.Errors = append(result.Errors, specs.FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   field,
			Message: message,
		})
		result.IsValid = false
	}
	addWarning := func(field, message string) {
		result.Warnings = append(result.Warnings, specs.FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   field,
			Message: message,
		})
	}

	if primaryTpl == nil {
		addError("primary_specification_template_id", "primary specification template not found")
	} else if primaryTpl.CategoryID != rule.PrimaryCategoryID {
		addError("primary_specification_template_id",
			fmt.Sprintf("template %s belongs to category %d, not %d", primaryTpl.Name, primaryTpl.CategoryID, rule.PrimaryCategoryID))
	}
	if secondaryTpl == nil {
		addError("secondary_specification_template_id", "secondary specification template not found")
	} else if secondaryTpl.CategoryID != rule.SecondaryCategoryID {
		addError("secondary_specification_template_id",
			fmt.Sprintf("template %s belongs to category %d, not %d", secondaryTpl.Name, secondaryTpl.CategoryID, rule.SecondaryCategoryID))
	}

	switch rule.RuleType {
	case constants.RuleTypeExactMatch:
		// No parameters required
	case constants.RuleTypeRange:
		hasFactors := rule.Params.LowerFactor != nil && rule.Params.UpperFactor != nil
		hasWindow := rule.Params.Min != nil || rule.Params.Max != nil
		if !hasFactors && !hasWindow {
			addError("params", "range rule needs lower_factor/upper_factor or min/max")
		}
		if hasFactors && hasWindow {
			addWarning("params", "range rule defines both factor and absolute windows, the factor window wins")
		}
		if hasFactors && *rule.Params.LowerFactor > *rule.Params.UpperFactor {
			addError("params", "lower_factor exceeds upper_factor")
		}
	case constants.RuleTypeValueSet:
		if len(rule.Params.ValueSets) == 0 {
			addError("params", "value_set rule needs at least one value set")
		}
	default:
		addError("rule_type", fmt.Sprintf("unknown rule type %q", rule.RuleType))
	}

	if primaryTpl != nil && !primaryTpl.IsCompatibilityKey {
		addWarning("primary_specification_template_id",
			fmt.Sprintf("template %s is not flagged as a compatibility key", primaryTpl.Name))
	}
	if secondaryTpl != nil && !secondaryTpl.IsCompatibilityKey {
		addWarning("secondary_specification_template_id",
			fmt.Sprintf("template %s is not flagged as a compatibility key", secondaryTpl.Name))
	}

	return result
}
