package compat

import (
	"testing"

	"voltshop/pkg/constants"
	"voltshop/pkg/specs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compatibilityTemplate(id, categoryID int64, name string) *specs.Template {
	return &specs.Template{
		ID:                 id,
		CategoryID:         categoryID,
		Name:               name,
		DisplayName:        name,
		DataType:           constants.DataTypeSocket,
		IsCompatibilityKey: true,
	}
}

func TestValidateRuleDefinition(t *testing.T) {
	primary := compatibilityTemplate(10, catCPU, "socket")
	secondary := compatibilityTemplate(20, catMotherboard, "socket")

	t.Run("valid exact match rule", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeExactMatch,
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
	})

	t.Run("missing template", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeExactMatch,
		}
		result := ValidateRuleDefinition(rule, nil, secondary)
		require.False(t, result.IsValid)
		assert.Equal(t, "primary_specification_template_id", result.Errors[0].Field)
	})

	t.Run("template from wrong category", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catMemory,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeExactMatch,
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		assert.False(t, result.IsValid)
	})

	t.Run("range rule without parameters", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeRange,
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		require.False(t, result.IsValid)
		assert.Contains(t, result.Errors[0].Message, "range rule")
	})

	t.Run("range rule with both windows warns", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeRange,
			Params: RuleParams{
				LowerFactor: floatPtr(1),
				UpperFactor: floatPtr(2),
				Min:         floatPtr(100),
			},
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("value_set rule without sets", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeValueSet,
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		assert.False(t, result.IsValid)
	})

	t.Run("unknown rule type", func(t *testing.T) {
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            "fuzzy_match",
		}
		result := ValidateRuleDefinition(rule, primary, secondary)
		assert.False(t, result.IsValid)
	})

	t.Run("non-compatibility-key template warns", func(t *testing.T) {
		plain := compatibilityTemplate(30, catCPU, "socket")
		plain.IsCompatibilityKey = false
		rule := Rule{
			PrimaryCategoryID:   catCPU,
			SecondaryCategoryID: catMotherboard,
			RuleType:            constants.RuleTypeExactMatch,
		}
		result := ValidateRuleDefinition(rule, plain, secondary)
		assert.True(t, result.IsValid)
		assert.NotEmpty(t, result.Warnings)
	})
}
