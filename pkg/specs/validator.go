package specs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"voltshop/pkg/constants"
	"voltshop/pkg/enums"
)

// ValidateAndNormalize checks a raw input value against the template's data
// type and constraints and produces a normalized typed value, or a structured
// error list. The enumeration registry supplies the canonical value sets for
// socket, memory type, chipset and power connector templates.
func ValidateAndNormalize(tpl Template, raw interface{}, reg *enums.Registry) ValidationResult {
	result := ValidationResult{IsValid: true}

	switch {
	case constants.IsNumericDataType(tpl.DataType):
		validateNumber(tpl, raw, &result)
	case tpl.DataType == constants.DataTypeBoolean:
		validateBoolean(tpl, raw, &result)
	case constants.IsEnumDataType(tpl.DataType):
		validateEnum(tpl, raw, reg, &result)
	case tpl.DataType == constants.DataTypeText:
		validateText(tpl, raw, &result)
	default:
		result.addError(FieldIssue{
			Code:    constants.ErrCodeTypeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("template %s has unknown data type %q", tpl.Name, tpl.DataType),
		})
	}

	return result
}

// ValidateWithContext validates a single field and, when the template is a
// compatibility key, re-checks the normalized value against any cross-field
// rule whose referenced sibling has already been normalized. A cross-field
// failure replaces the single-field error list for the key, since the
// cross-field check supersedes the narrower check.
func ValidateWithContext(tpl Template, raw interface{}, reg *enums.Registry, crossRules []CrossRule, context map[string]TypedValue) ValidationResult {
	result := ValidateAndNormalize(tpl, raw, reg)
	if result.Normalized == nil || len(crossRules) == 0 {
		return result
	}

	if issue := CheckCrossRules(tpl.Name, *result.Normalized, crossRules, context); issue != nil {
		result.Errors = []FieldIssue{*issue}
		result.IsValid = false
	}

	return result
}

// CheckCrossRules applies every cross-field rule keyed to field against the
// already-normalized context and returns the first failing issue, nil when
// all pass. Rules whose referenced sibling is absent from the context are
// skipped.
func CheckCrossRules(field string, value TypedValue, crossRules []CrossRule, context map[string]TypedValue) *FieldIssue {
	for _, rule := range crossRules {
		if rule.Key != field {
			continue
		}
		other, ok := context[rule.OtherKey]
		if !ok {
			continue
		}
		if issue := checkCrossRule(field, value, rule, other); issue != nil {
			return issue
		}
	}
	return nil
}

func validateNumber(tpl Template, raw interface{}, result *ValidationResult) {
	rules := tpl.ValidationRules

	value, ok := parseNumber(raw, rules.Unit)
	if !ok {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeTypeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be a number, got %v", tpl.Name, raw),
		})
		return
	}

	// Bounds are inclusive on both ends
	if rules.Min != nil && value < *rules.Min {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeRangeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be at least %s", tpl.Name, formatNumber(*rules.Min)),
		})
		return
	}
	if rules.Max != nil && value > *rules.Max {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeRangeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be at most %s", tpl.Name, formatNumber(*rules.Max)),
		})
		return
	}

	normalized := NumberValue(value, rules.Unit)
	result.Normalized = &normalized
}

func validateBoolean(tpl Template, raw interface{}, result *ValidationResult) {
	switch v := raw.(type) {
	case bool:
		normalized := BoolValue(v)
		result.Normalized = &normalized
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			normalized := BoolValue(true)
			result.Normalized = &normalized
		case "false":
			normalized := BoolValue(false)
			result.Normalized = &normalized
		default:
			result.addError(FieldIssue{
				Code:    constants.ErrCodeTypeError,
				Field:   tpl.Name,
				Message: fmt.Sprintf("%s must be true or false, got %q", tpl.Name, v),
			})
		}
	default:
		result.addError(FieldIssue{
			Code:    constants.ErrCodeTypeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be a boolean, got %v", tpl.Name, raw),
		})
	}
}

func validateEnum(tpl Template, raw interface{}, reg *enums.Registry, result *ValidationResult) {
	input, ok := raw.(string)
	if !ok {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeTypeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be a string, got %v", tpl.Name, raw),
		})
		return
	}

	canonical := input

	// Closed enumerations validate against the shared registry first
	if tpl.EnumSource != "" && reg != nil && reg.HasSource(tpl.EnumSource) {
		resolved, found := reg.Canonical(tpl.EnumSource, input)
		if !found {
			values, _ := reg.Values(tpl.EnumSource)
			result.addError(FieldIssue{
				Code:        constants.ErrCodeEnumViolation,
				Field:       tpl.Name,
				Message:     fmt.Sprintf("%q is not a valid %s, allowed values: %s", input, tpl.EnumSource, formatAllowed(values)),
				Suggestions: values,
			})
			return
		}
		canonical = resolved
	}

	// Template-level restriction narrows the canonical set further
	if len(tpl.EnumValues) > 0 {
		matched := ""
		for _, allowed := range tpl.EnumValues {
			if strings.EqualFold(allowed, canonical) {
				matched = allowed
				break
			}
		}
		if matched == "" {
			result.addError(FieldIssue{
				Code:        constants.ErrCodeEnumViolation,
				Field:       tpl.Name,
				Message:     fmt.Sprintf("%q is not allowed for %s, allowed values: %s", input, tpl.Name, formatAllowed(tpl.EnumValues)),
				Suggestions: tpl.EnumValues,
			})
			return
		}
		// Keep registry spelling when a source is bound, template spelling otherwise
		if tpl.EnumSource == "" {
			canonical = matched
		}
	}

	normalized := EnumValue(canonical)
	result.Normalized = &normalized
}

func validateText(tpl Template, raw interface{}, result *ValidationResult) {
	input, ok := raw.(string)
	if !ok {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeTypeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be a string, got %v", tpl.Name, raw),
		})
		return
	}

	rules := tpl.ValidationRules
	if rules.MinLength != nil && len(input) < *rules.MinLength {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeRangeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be at least %d characters", tpl.Name, *rules.MinLength),
		})
		return
	}
	if rules.MaxLength != nil && len(input) > *rules.MaxLength {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeRangeError,
			Field:   tpl.Name,
			Message: fmt.Sprintf("%s must be at most %d characters", tpl.Name, *rules.MaxLength),
		})
		return
	}
	if rules.Pattern != "" {
		re, err := regexp.Compile(rules.Pattern)
		if err == nil && !re.MatchString(input) {
			result.addError(FieldIssue{
				Code:    constants.ErrCodeTypeError,
				Field:   tpl.Name,
				Message: fmt.Sprintf("%s does not match the required format", tpl.Name),
			})
			return
		}
	}

	normalized := TextValue(input)
	result.Normalized = &normalized
}

// checkCrossRule applies one cross-field rule and returns the issue on
// failure, nil on success
func checkCrossRule(field string, value TypedValue, rule CrossRule, other TypedValue) *FieldIssue {
	switch rule.Mode {
	case constants.RuleTypeExactMatch:
		if value.Compare() != other.Compare() {
			return &FieldIssue{
				Code:    constants.ErrCodeRuleViolation,
				Field:   field,
				Message: fmt.Sprintf("%s (%s) must match %s (%s)", field, value.Display(), rule.OtherKey, other.Display()),
			}
		}
	case constants.RuleTypeRange:
		if value.Kind != KindNumber || other.Kind != KindNumber {
			return &FieldIssue{
				Code:    constants.ErrCodeRuleViolation,
				Field:   field,
				Message: fmt.Sprintf("%s and %s must both be numeric to compare", field, rule.OtherKey),
			}
		}
		lower, upper := crossWindow(rule, other.Number)
		if value.Number < lower || value.Number > upper {
			return &FieldIssue{
				Code:    constants.ErrCodeRuleViolation,
				Field:   field,
				Message: fmt.Sprintf("%s (%s) must be between %s and %s given %s", field, value.Display(), formatNumber(lower), formatNumber(upper), rule.OtherKey),
			}
		}
	case constants.RuleTypeValueSet:
		allowed := rule.ValueSets[other.Compare()]
		for _, a := range allowed {
			if strings.EqualFold(a, value.Compare()) {
				return nil
			}
		}
		return &FieldIssue{
			Code:        constants.ErrCodeRuleViolation,
			Field:       field,
			Message:     fmt.Sprintf("%s (%s) is not compatible with %s (%s), allowed: %s", field, value.Display(), rule.OtherKey, other.Display(), formatAllowed(allowed)),
			Suggestions: allowed,
		}
	}
	return nil
}

// crossWindow resolves the rule's range window. A one-sided absolute window
// leaves the other bound open.
func crossWindow(rule CrossRule, base float64) (float64, float64) {
	if rule.LowerFactor != nil && rule.UpperFactor != nil {
		return base * *rule.LowerFactor, base * *rule.UpperFactor
	}
	lower, upper := math.Inf(-1), math.Inf(1)
	if rule.Min != nil {
		lower = *rule.Min
	}
	if rule.Max != nil {
		upper = *rule.Max
	}
	return lower, upper
}

// parseNumber coerces raw into a float64. Strings may carry the template's
// unit as a suffix ("650 W" with unit "W" parses as 650).
func parseNumber(raw interface{}, unit string) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if unit != "" {
			trimmed := strings.TrimSpace(strings.TrimSuffix(s, unit))
			if trimmed != s {
				s = trimmed
			} else {
				lower := strings.ToLower(s)
				if strings.HasSuffix(lower, strings.ToLower(unit)) {
					s = strings.TrimSpace(s[:len(s)-len(unit)])
				}
			}
		}
		value, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
