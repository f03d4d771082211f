package mysql

import (
	"testing"

	"voltshop/pkg/specs"
	"voltshop/pkg/store/mysql/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPopulated(row *model.ProductSpec) int {
	count := 0
	if row.ValueEnum != nil {
		count++
	}
	if row.ValueNumber != nil {
		count++
	}
	if row.ValueText != nil {
		count++
	}
	if row.ValueBoolean != nil {
		count++
	}
	return count
}

func TestFromTypedValue_ExactlyOneColumnPopulated(t *testing.T) {
	tests := []struct {
		name  string
		value specs.TypedValue
	}{
		{"enum", specs.EnumValue("AM4")},
		{"number", specs.NumberValue(650, "W")},
		{"text", specs.TextValue("Corsair")},
		{"boolean", specs.BoolValue(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FromTypedValue("prod-1", 7, tt.value, 3)
			assert.Equal(t, 1, countPopulated(row))
			assert.Equal(t, "prod-1", row.ProductID)
			assert.Equal(t, int64(7), row.TemplateID)
			assert.Equal(t, tt.value.Display(), row.Value)
		})
	}
}

func TestTypedValueRoundTrip(t *testing.T) {
	values := []specs.TypedValue{
		specs.EnumValue("DDR5"),
		specs.NumberValue(3200, "MHz"),
		specs.NumberValue(16, ""),
		specs.TextValue("some text"),
		specs.BoolValue(false),
	}

	for _, value := range values {
		row := FromTypedValue("prod-1", 1, value, 0)
		back := ToTypedValue(row)
		assert.Equal(t, value, back)
	}
}

func TestTemplateDomainRoundTrip(t *testing.T) {
	min, max := 1.0, 500.0
	tpl := specs.Template{
		ID:                 12,
		CategoryID:         3,
		Name:               "tdp",
		DisplayName:        "TDP",
		DataType:           "power_consumption",
		IsRequired:         true,
		IsCompatibilityKey: true,
		IsFilterable:       true,
		ValidationRules:    specs.ValidationRules{Min: &min, Max: &max, Unit: "W"},
		DisplayOrder:       4,
	}

	row := FromTemplateDomain(tpl)
	back := ToTemplateDomain(row)

	assert.Equal(t, tpl.Name, back.Name)
	assert.Equal(t, tpl.DataType, back.DataType)
	assert.Equal(t, tpl.IsCompatibilityKey, back.IsCompatibilityKey)
	require.NotNil(t, back.ValidationRules.Min)
	assert.Equal(t, min, *back.ValidationRules.Min)
	assert.Equal(t, "W", back.ValidationRules.Unit)
}
