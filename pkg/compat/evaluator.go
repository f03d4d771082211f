package compat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"voltshop/pkg/constants"
	"voltshop/pkg/specs"
)

// Evaluate runs every applicable rule against the selected components and
// aggregates the per-rule diagnostics into a single verdict. The evaluation
// is stateless: it is a pure function of the selections and the rule list and
// may be called concurrently.
//
// A rule applies when both of its categories appear among the selections, in
// either order. A selected product missing the specification a rule
// references fails the rule (fail-closed) rather than skipping it.
func Evaluate(selections []Selection, rules []Rule) EvaluationResult {
	result := EvaluationResult{Status: constants.StatusValid, Issues: []Issue{}}

	byCategory := make(map[int64][]Selection, len(selections))
	for _, sel := range selections {
		byCategory[sel.CategoryID] = append(byCategory[sel.CategoryID], sel)
	}

	for _, rule := range rules {
		primaries, okP := byCategory[rule.PrimaryCategoryID]
		secondaries, okS := byCategory[rule.SecondaryCategoryID]
		if !okP || !okS {
			continue
		}
		for _, primary := range primaries {
			for _, secondary := range secondaries {
				if primary.CategoryID == secondary.CategoryID && primary.ProductID == secondary.ProductID {
					continue
				}
				if issue := evaluateRule(rule, primary, secondary); issue != nil {
					result.Issues = append(result.Issues, *issue)
				}
			}
		}
	}

	result.Status = ReduceStatus(result.Issues)
	return result
}

// ReduceStatus computes the aggregate status for an issue list. The reduction
// is monotonic toward error: adding issues can never move the status back
// toward valid.
func ReduceStatus(issues []Issue) string {
	status := constants.StatusValid
	for _, issue := range issues {
		if constants.IsErrorSeverity(issue.Severity) {
			return constants.StatusError
		}
		status = constants.StatusWarning
	}
	return status
}

// evaluateRule checks one rule against one primary/secondary pair and returns
// the issue on failure, nil on success
func evaluateRule(rule Rule, primary, secondary Selection) *Issue {
	primaryValue, ok := primary.Specs[rule.PrimaryKey]
	if !ok {
		return missingSpecIssue(rule, primary, secondary, primary, rule.PrimaryKey)
	}
	secondaryValue, ok := secondary.Specs[rule.SecondaryKey]
	if !ok {
		return missingSpecIssue(rule, primary, secondary, secondary, rule.SecondaryKey)
	}

	switch rule.RuleType {
	case constants.RuleTypeExactMatch:
		return checkExactMatch(rule, primary, secondary, primaryValue, secondaryValue)
	case constants.RuleTypeRange:
		return checkRange(rule, primary, secondary, primaryValue, secondaryValue)
	case constants.RuleTypeValueSet:
		return checkValueSet(rule, primary, secondary, primaryValue, secondaryValue)
	default:
		return &Issue{
			Type:       constants.IssueTypeRuleViolation,
			Component1: componentName(primary),
			Component2: componentName(secondary),
			Message:    fmt.Sprintf("rule %d has unknown type %q", rule.ID, rule.RuleType),
			Severity:   constants.SeverityError,
		}
	}
}

func checkExactMatch(rule Rule, primary, secondary Selection, pv, sv specs.TypedValue) *Issue {
	if pv.Compare() == sv.Compare() {
		return nil
	}
	return violation(rule, primary, secondary,
		fmt.Sprintf("%s %s (%s) does not match %s %s (%s)",
			componentName(primary), rule.PrimaryKey, pv.Display(),
			componentName(secondary), rule.SecondaryKey, sv.Display()),
		map[string]interface{}{
			"primary_value":   pv.Display(),
			"secondary_value": sv.Display(),
		})
}

func checkRange(rule Rule, primary, secondary Selection, pv, sv specs.TypedValue) *Issue {
	if pv.Kind != specs.KindNumber || sv.Kind != specs.KindNumber {
		return violation(rule, primary, secondary,
			fmt.Sprintf("%s and %s must both be numeric to compare", rule.PrimaryKey, rule.SecondaryKey),
			nil)
	}

	lower, upper := rangeWindow(rule.Params, pv.Number)
	if sv.Number < lower || sv.Number > upper {
		return violation(rule, primary, secondary,
			fmt.Sprintf("%s %s (%s) is outside the range %s to %s required by %s %s (%s)",
				componentName(secondary), rule.SecondaryKey, sv.Display(),
				formatNumber(lower), formatNumber(upper),
				componentName(primary), rule.PrimaryKey, pv.Display()),
			map[string]interface{}{
				"primary_value":   pv.Number,
				"secondary_value": sv.Number,
				"lower":           lower,
				"upper":           upper,
			})
	}
	return nil
}

func checkValueSet(rule Rule, primary, secondary Selection, pv, sv specs.TypedValue) *Issue {
	allowed, ok := rule.Params.ValueSets[pv.Compare()]
	if !ok {
		// No set defined for this primary value: fail closed rather than pass
		return violation(rule, primary, secondary,
			fmt.Sprintf("no compatible %s values are defined for %s %s (%s)",
				rule.SecondaryKey, componentName(primary), rule.PrimaryKey, pv.Display()),
			map[string]interface{}{"primary_value": pv.Display()})
	}
	for _, a := range allowed {
		if strings.EqualFold(a, sv.Compare()) {
			return nil
		}
	}
	return violation(rule, primary, secondary,
		fmt.Sprintf("%s %s (%s) is not among the %s values compatible with %s (%s): %s",
			componentName(secondary), rule.SecondaryKey, sv.Display(),
			rule.SecondaryKey, pv.Display(), componentName(primary),
			strings.Join(allowed, ", ")),
		map[string]interface{}{
			"primary_value":   pv.Display(),
			"secondary_value": sv.Display(),
			"allowed":         allowed,
		})
}

func missingSpecIssue(rule Rule, primary, secondary, missing Selection, key string) *Issue {
	return &Issue{
		Type:       constants.IssueTypeMissingSpecification,
		Component1: componentName(primary),
		Component2: componentName(secondary),
		Message:    fmt.Sprintf("%s has no %s specification required by rule %s", componentName(missing), key, ruleName(rule)),
		Details: map[string]interface{}{
			"rule_id":     rule.ID,
			"missing_key": key,
			"product_id":  missing.ProductID,
		},
		Severity: constants.SeverityHigh,
	}
}

func violation(rule Rule, primary, secondary Selection, message string, details map[string]interface{}) *Issue {
	severity := rule.Severity
	if severity == "" {
		severity = constants.SeverityError
	}
	if rule.Message != "" {
		message = rule.Message + ": " + message
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	details["rule_id"] = rule.ID
	return &Issue{
		Type:       constants.IssueTypeRuleViolation,
		Component1: componentName(primary),
		Component2: componentName(secondary),
		Message:    message,
		Details:    details,
		Severity:   severity,
	}
}

// rangeWindow resolves the rule's window. A one-sided absolute window leaves
// the other bound open.
func rangeWindow(params RuleParams, base float64) (float64, float64) {
	if params.LowerFactor != nil && params.UpperFactor != nil {
		return base * *params.LowerFactor, base * *params.UpperFactor
	}
	lower, upper := math.Inf(-1), math.Inf(1)
	if params.Min != nil {
		lower = *params.Min
	}
	if params.Max != nil {
		upper = *params.Max
	}
	return lower, upper
}

func componentName(sel Selection) string {
	if sel.ProductName != "" {
		return sel.ProductName
	}
	return sel.ProductID
}

func ruleName(rule Rule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return strconv.FormatInt(rule.ID, 10)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
