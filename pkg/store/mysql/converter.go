package mysql

import (
	"encoding/json"

	"voltshop/pkg/compat"
	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql/model"
)

// ToTemplateDomain converts a MySQL SpecTemplate row to the domain template
func ToTemplateDomain(row *model.SpecTemplate) specs.Template {
	tpl := specs.Template{
		ID:                 row.ID,
		CategoryID:         row.CategoryID,
		Name:               row.Name,
		DisplayName:        row.DisplayName,
		DataType:           row.DataType,
		IsRequired:         row.IsRequired,
		IsCompatibilityKey: row.IsCompatibilityKey,
		IsFilterable:       row.IsFilterable,
		EnumSource:         row.EnumSource,
		EnumValues:         []string(row.EnumValues),
		DisplayOrder:       row.DisplayOrder,
	}
	if row.ValidationRules != nil {
		// JSON round trip keeps the column schemaless while the domain stays typed
		if data, err := json.Marshal(row.ValidationRules); err == nil {
			_ = json.Unmarshal(data, &tpl.ValidationRules)
		}
	}
	return tpl
}

// FromTemplateDomain converts a domain template to its MySQL row
func FromTemplateDomain(tpl specs.Template) *model.SpecTemplate {
	row := &model.SpecTemplate{
		ID:                 tpl.ID,
		CategoryID:         tpl.CategoryID,
		Name:               tpl.Name,
		DisplayName:        tpl.DisplayName,
		DataType:           tpl.DataType,
		IsRequired:         tpl.IsRequired,
		IsCompatibilityKey: tpl.IsCompatibilityKey,
		IsFilterable:       tpl.IsFilterable,
		EnumSource:         tpl.EnumSource,
		EnumValues:         model.JSONStringArray(tpl.EnumValues),
		DisplayOrder:       tpl.DisplayOrder,
	}
	if data, err := json.Marshal(tpl.ValidationRules); err == nil {
		var m model.JSONMap
		if json.Unmarshal(data, &m) == nil {
			row.ValidationRules = m
		}
	}
	return row
}

// ToTypedValue reconstructs the tagged union from a specification row's
// typed columns
func ToTypedValue(row *model.ProductSpec) specs.TypedValue {
	switch {
	case row.ValueEnum != nil:
		return specs.EnumValue(*row.ValueEnum)
	case row.ValueNumber != nil:
		return specs.NumberValue(*row.ValueNumber, row.Unit)
	case row.ValueBoolean != nil:
		return specs.BoolValue(*row.ValueBoolean)
	case row.ValueText != nil:
		return specs.TextValue(*row.ValueText)
	default:
		return specs.TextValue(row.Value)
	}
}

// FromTypedValue builds a specification row from the tagged union, populating
// exactly one typed column
func FromTypedValue(productID string, templateID int64, value specs.TypedValue, displayOrder int) *model.ProductSpec {
	row := &model.ProductSpec{
		ProductID:    productID,
		TemplateID:   templateID,
		Value:        value.Display(),
		DisplayOrder: displayOrder,
	}
	switch value.Kind {
	case specs.KindEnum:
		v := value.Enum
		row.ValueEnum = &v
	case specs.KindNumber:
		v := value.Number
		row.ValueNumber = &v
		row.Unit = value.Unit
	case specs.KindBoolean:
		v := value.Bool
		row.ValueBoolean = &v
	default:
		v := value.Text
		row.ValueText = &v
	}
	return row
}

// ToRuleDomain converts a rule row to the domain rule. The template keys are
// resolved by the caller since the row only stores template ids.
func ToRuleDomain(row *model.CompatibilityRule, primaryKey, secondaryKey string) compat.Rule {
	rule := compat.Rule{
		ID:                  row.ID,
		Name:                row.Name,
		PrimaryCategoryID:   row.PrimaryCategoryID,
		SecondaryCategoryID: row.SecondaryCategoryID,
		PrimaryKey:          primaryKey,
		SecondaryKey:        secondaryKey,
		RuleType:            row.RuleType,
		Severity:            row.Severity,
		Message:             row.Message,
	}
	if row.Params != nil {
		if data, err := json.Marshal(row.Params); err == nil {
			_ = json.Unmarshal(data, &rule.Params)
		}
	}
	return rule
}

// RuleParamsToJSONMap converts typed rule parameters to the schemaless column
func RuleParamsToJSONMap(params compat.RuleParams) model.JSONMap {
	data, err := json.Marshal(params)
	if err != nil {
		return nil
	}
	var m model.JSONMap
	if json.Unmarshal(data, &m) != nil {
		return nil
	}
	return m
}
