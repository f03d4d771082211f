package specs

import (
	"fmt"
	"regexp"

	"voltshop/pkg/constants"
	"voltshop/pkg/enums"
)

// ValidateTemplateDefinition checks a template definition at creation or
// update time. Errors block persistence; warnings do not.
//
// Templates whose data type is a closed enumeration (socket, memory type,
// chipset) must bind the matching enumeration source and may only restrict to
// a subset of its canonical values.
func ValidateTemplateDefinition(tpl Template, reg *enums.Registry) ValidationResult {
	result := ValidationResult{IsValid: true}

	if tpl.Name == "" {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "name",
			Message: "template name is required",
		})
	}
	if tpl.DisplayName == "" {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "display_name",
			Message: "template display name is required",
		})
	}
	if tpl.DataType == "" {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "data_type",
			Message: "template data type is required",
		})
		return result
	}
	if !constants.IsKnownDataType(tpl.DataType) {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "data_type",
			Message: fmt.Sprintf("unknown data type %q", tpl.DataType),
		})
		return result
	}

	if constants.IsClosedEnumDataType(tpl.DataType) {
		checkClosedEnumBinding(tpl, reg, &result)
	} else if tpl.DataType == constants.DataTypeEnum && tpl.EnumSource == "" && len(tpl.EnumValues) == 0 {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "enum_values",
			Message: fmt.Sprintf("enum template %s must declare enum_values or an enum_source", tpl.Name),
		})
	}

	rules := tpl.ValidationRules
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "validation_rules",
			Message: fmt.Sprintf("min bound %s exceeds max bound %s", formatNumber(*rules.Min), formatNumber(*rules.Max)),
		})
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "validation_rules",
			Message: fmt.Sprintf("min length %d exceeds max length %d", *rules.MinLength, *rules.MaxLength),
		})
	}
	if rules.Pattern != "" {
		if _, err := regexp.Compile(rules.Pattern); err != nil {
			result.addError(FieldIssue{
				Code:    constants.ErrCodeBadDefinition,
				Field:   "validation_rules",
				Message: fmt.Sprintf("invalid pattern: %v", err),
			})
		}
	}

	// A compatibility key that is optional or unfilterable still works, but the
	// configurator cannot rely on it being present or searchable
	if tpl.IsCompatibilityKey && !tpl.IsRequired {
		result.addWarning(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "is_required",
			Message: fmt.Sprintf("compatibility key %s should be required", tpl.Name),
		})
	}
	if tpl.IsCompatibilityKey && !tpl.IsFilterable {
		result.addWarning(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "is_filterable",
			Message: fmt.Sprintf("compatibility key %s should be filterable", tpl.Name),
		})
	}

	return result
}

func checkClosedEnumBinding(tpl Template, reg *enums.Registry, result *ValidationResult) {
	expected, _ := enums.SourceForDataType(tpl.DataType)

	if tpl.EnumSource == "" {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "enum_source",
			Message: fmt.Sprintf("%s template %s must declare enum_source %q", tpl.DataType, tpl.Name, expected),
		})
		return
	}
	if tpl.EnumSource != expected {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "enum_source",
			Message: fmt.Sprintf("%s template %s must use enum_source %q, got %q", tpl.DataType, tpl.Name, expected, tpl.EnumSource),
		})
		return
	}
	if reg == nil || !reg.HasSource(tpl.EnumSource) {
		result.addError(FieldIssue{
			Code:    constants.ErrCodeBadDefinition,
			Field:   "enum_source",
			Message: fmt.Sprintf("enumeration source %q is not defined", tpl.EnumSource),
		})
		return
	}

	// enum_values must be a subset of the source's canonical set
	var unknown []string
	for _, v := range tpl.EnumValues {
		if !reg.Contains(tpl.EnumSource, v) {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		values, _ := reg.Values(tpl.EnumSource)
		result.addError(FieldIssue{
			Code:        constants.ErrCodeBadDefinition,
			Field:       "enum_values",
			Message:     fmt.Sprintf("values not in %s: %s", tpl.EnumSource, formatAllowed(unknown)),
			Suggestions: values,
		})
	}
}
