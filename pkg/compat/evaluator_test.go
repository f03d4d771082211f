package compat

import (
	"testing"

	"voltshop/pkg/constants"
	"voltshop/pkg/specs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	catCPU         = int64(1)
	catMotherboard = int64(2)
	catMemory      = int64(3)
	catPSU         = int64(4)
)

func floatPtr(v float64) *float64 { return &v }

func cpuSelection(socket string) Selection {
	return Selection{
		CategoryID:  catCPU,
		ProductID:   "cpu-1",
		ProductName: "Ryzen 7 5800X",
		Specs: map[string]specs.TypedValue{
			"socket": specs.EnumValue(socket),
			"tdp":    specs.NumberValue(105, "W"),
		},
	}
}

func motherboardSelection(socket string) Selection {
	sel := Selection{
		CategoryID:  catMotherboard,
		ProductID:   "mb-1",
		ProductName: "B550 Tomahawk",
		Specs:       map[string]specs.TypedValue{},
	}
	if socket != "" {
		sel.Specs["socket"] = specs.EnumValue(socket)
	}
	return sel
}

func socketMatchRule() Rule {
	return Rule{
		ID:                  1,
		Name:                "cpu-mb-socket",
		PrimaryCategoryID:   catCPU,
		SecondaryCategoryID: catMotherboard,
		PrimaryKey:          "socket",
		SecondaryKey:        "socket",
		RuleType:            constants.RuleTypeExactMatch,
	}
}

func TestEvaluate_ExactMatch(t *testing.T) {
	rules := []Rule{socketMatchRule()}

	t.Run("matching sockets produce a valid verdict with zero issues", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("AM4")}, rules)
		assert.Equal(t, constants.StatusValid, result.Status)
		assert.Empty(t, result.Issues)
	})

	t.Run("mismatching sockets produce one violation naming both components", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("LGA1700")}, rules)
		require.Equal(t, constants.StatusError, result.Status)
		require.Len(t, result.Issues, 1)

		issue := result.Issues[0]
		assert.Equal(t, constants.IssueTypeRuleViolation, issue.Type)
		assert.Equal(t, "Ryzen 7 5800X", issue.Component1)
		assert.Equal(t, "B550 Tomahawk", issue.Component2)
		assert.Equal(t, constants.SeverityError, issue.Severity)
		assert.Contains(t, issue.Message, "AM4")
		assert.Contains(t, issue.Message, "LGA1700")
	})
}

func TestEvaluate_MissingSpecificationFailsClosed(t *testing.T) {
	rules := []Rule{socketMatchRule()}

	// Motherboard has no socket row at all: not valid, despite no explicit mismatch
	result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("")}, rules)

	require.Equal(t, constants.StatusError, result.Status)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, constants.IssueTypeMissingSpecification, issue.Type)
	assert.Equal(t, constants.SeverityHigh, issue.Severity)
	assert.Contains(t, issue.Message, "socket")
	assert.Equal(t, "mb-1", issue.Details["product_id"])
}

func TestEvaluate_RuleAppliesInEitherOrder(t *testing.T) {
	// Rule declared motherboard-first must still fire for a cpu-first selection list
	rule := Rule{
		ID:                  2,
		PrimaryCategoryID:   catMotherboard,
		SecondaryCategoryID: catCPU,
		PrimaryKey:          "socket",
		SecondaryKey:        "socket",
		RuleType:            constants.RuleTypeExactMatch,
	}

	result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("LGA1700")}, []Rule{rule})
	assert.Equal(t, constants.StatusError, result.Status)
	assert.Len(t, result.Issues, 1)
}

func TestEvaluate_Range(t *testing.T) {
	rule := Rule{
		ID:                  3,
		PrimaryCategoryID:   catCPU,
		SecondaryCategoryID: catPSU,
		PrimaryKey:          "tdp",
		SecondaryKey:        "wattage",
		RuleType:            constants.RuleTypeRange,
		Params: RuleParams{
			LowerFactor: floatPtr(3),
			UpperFactor: floatPtr(20),
		},
	}

	psu := func(wattage float64) Selection {
		return Selection{
			CategoryID:  catPSU,
			ProductID:   "psu-1",
			ProductName: "RM650",
			Specs: map[string]specs.TypedValue{
				"wattage": specs.NumberValue(wattage, "W"),
			},
		}
	}

	t.Run("within factor window", func(t *testing.T) {
		// cpu tdp 105, window [315, 2100]
		result := Evaluate([]Selection{cpuSelection("AM4"), psu(650)}, []Rule{rule})
		assert.Equal(t, constants.StatusValid, result.Status)
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), psu(315)}, []Rule{rule})
		assert.Equal(t, constants.StatusValid, result.Status)
		result = Evaluate([]Selection{cpuSelection("AM4"), psu(2100)}, []Rule{rule})
		assert.Equal(t, constants.StatusValid, result.Status)
	})

	t.Run("below the window", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), psu(300)}, []Rule{rule})
		require.Equal(t, constants.StatusError, result.Status)
		assert.Equal(t, constants.IssueTypeRuleViolation, result.Issues[0].Type)
	})

	t.Run("absolute window used when factors absent", func(t *testing.T) {
		absolute := rule
		absolute.Params = RuleParams{Min: floatPtr(500), Max: floatPtr(1200)}
		result := Evaluate([]Selection{cpuSelection("AM4"), psu(650)}, []Rule{absolute})
		assert.Equal(t, constants.StatusValid, result.Status)
		result = Evaluate([]Selection{cpuSelection("AM4"), psu(450)}, []Rule{absolute})
		assert.Equal(t, constants.StatusError, result.Status)
	})

	t.Run("one-sided absolute window leaves the other bound open", func(t *testing.T) {
		minOnly := rule
		minOnly.Params = RuleParams{Min: floatPtr(500)}
		result := Evaluate([]Selection{cpuSelection("AM4"), psu(650)}, []Rule{minOnly})
		assert.Equal(t, constants.StatusValid, result.Status)
		result = Evaluate([]Selection{cpuSelection("AM4"), psu(450)}, []Rule{minOnly})
		assert.Equal(t, constants.StatusError, result.Status)

		maxOnly := rule
		maxOnly.Params = RuleParams{Max: floatPtr(1200)}
		result = Evaluate([]Selection{cpuSelection("AM4"), psu(650)}, []Rule{maxOnly})
		assert.Equal(t, constants.StatusValid, result.Status)
		result = Evaluate([]Selection{cpuSelection("AM4"), psu(1300)}, []Rule{maxOnly})
		assert.Equal(t, constants.StatusError, result.Status)
	})

	t.Run("non-numeric secondary fails", func(t *testing.T) {
		bad := psu(0)
		bad.Specs["wattage"] = specs.TextValue("lots")
		result := Evaluate([]Selection{cpuSelection("AM4"), bad}, []Rule{rule})
		assert.Equal(t, constants.StatusError, result.Status)
	})
}

func TestEvaluate_ValueSet(t *testing.T) {
	rule := Rule{
		ID:                  4,
		PrimaryCategoryID:   catCPU,
		SecondaryCategoryID: catMotherboard,
		PrimaryKey:          "socket",
		SecondaryKey:        "chipset",
		RuleType:            constants.RuleTypeValueSet,
		Params: RuleParams{
			ValueSets: map[string][]string{
				"AM4":     {"B550", "X570"},
				"LGA1700": {"Z690", "Z790"},
			},
		},
	}

	mb := func(chipset string) Selection {
		return Selection{
			CategoryID:  catMotherboard,
			ProductID:   "mb-1",
			ProductName: "B550 Tomahawk",
			Specs: map[string]specs.TypedValue{
				"chipset": specs.EnumValue(chipset),
			},
		}
	}

	t.Run("member of the keyed set", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), mb("B550")}, []Rule{rule})
		assert.Equal(t, constants.StatusValid, result.Status)
	})

	t.Run("non-member", func(t *testing.T) {
		result := Evaluate([]Selection{cpuSelection("AM4"), mb("Z690")}, []Rule{rule})
		require.Equal(t, constants.StatusError, result.Status)
		assert.Contains(t, result.Issues[0].Message, "B550")
	})

	t.Run("primary value with no set fails closed", func(t *testing.T) {
		weird := cpuSelection("sTRX4")
		result := Evaluate([]Selection{weird, mb("B550")}, []Rule{rule})
		assert.Equal(t, constants.StatusError, result.Status)
	})
}

func TestEvaluate_RulesForUnselectedCategoriesAreSkipped(t *testing.T) {
	rules := []Rule{socketMatchRule(), {
		ID:                  5,
		PrimaryCategoryID:   catMemory,
		SecondaryCategoryID: catMotherboard,
		PrimaryKey:          "memory_type",
		SecondaryKey:        "memory_type",
		RuleType:            constants.RuleTypeExactMatch,
	}}

	// No memory selected: the memory rule must not fire
	result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("AM4")}, rules)
	assert.Equal(t, constants.StatusValid, result.Status)
	assert.Empty(t, result.Issues)
}

func TestEvaluate_WarningSeverityRule(t *testing.T) {
	rule := socketMatchRule()
	rule.Severity = constants.SeverityWarning

	result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("LGA1700")}, []Rule{rule})
	assert.Equal(t, constants.StatusWarning, result.Status)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, constants.SeverityWarning, result.Issues[0].Severity)
}

func TestEvaluate_AllIssuesReported(t *testing.T) {
	// Two failing rules must both appear: the evaluator never fails fast
	rules := []Rule{socketMatchRule(), {
		ID:                  6,
		PrimaryCategoryID:   catCPU,
		SecondaryCategoryID: catMotherboard,
		PrimaryKey:          "tdp",
		SecondaryKey:        "vrm_rating",
		RuleType:            constants.RuleTypeRange,
		Params:              RuleParams{LowerFactor: floatPtr(1), UpperFactor: floatPtr(2)},
	}}

	result := Evaluate([]Selection{cpuSelection("AM4"), motherboardSelection("LGA1700")}, rules)
	assert.Equal(t, constants.StatusError, result.Status)
	// One socket mismatch plus one missing vrm_rating specification
	assert.Len(t, result.Issues, 2)
}

func TestReduceStatus(t *testing.T) {
	tests := []struct {
		name   string
		issues []Issue
		want   string
	}{
		{"no issues", nil, constants.StatusValid},
		{"only warnings", []Issue{{Severity: constants.SeverityWarning}}, constants.StatusWarning},
		{"single error", []Issue{{Severity: constants.SeverityError}}, constants.StatusError},
		{"high counts as error", []Issue{{Severity: constants.SeverityHigh}}, constants.StatusError},
		{
			"error dominates warnings",
			[]Issue{{Severity: constants.SeverityWarning}, {Severity: constants.SeverityError}, {Severity: constants.SeverityWarning}},
			constants.StatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReduceStatus(tt.issues))
		})
	}
}
