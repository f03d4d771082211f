// Package compat implements the declarative compatibility rule interpreter
// for the PC configurator. Rules are data, not code: each rule pairs two
// categories and two specification keys with a comparison mode, so new
// component types require new rows, not new code.
package compat

import (
	"voltshop/pkg/specs"
)

// Rule is one declarative compatibility constraint between two categories.
// Keys are the template names the rule compares, resolved by the caller so
// the evaluator stays independent of the catalog store.
type Rule struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	PrimaryCategoryID   int64      `json:"primary_category_id"`
	SecondaryCategoryID int64      `json:"secondary_category_id"`
	PrimaryKey          string     `json:"primary_key"`
	SecondaryKey        string     `json:"secondary_key"`
	RuleType            string     `json:"rule_type"`
	Params              RuleParams `json:"params"`
	Severity            string     `json:"severity,omitempty"` // defaults to error
	Message             string     `json:"message,omitempty"`  // optional operator-facing explanation
}

// RuleParams carries the comparison parameters per rule type. Range rules use
// either the factor window applied to the primary value or the absolute
// min/max window; value_set rules map a primary value to its allowed
// secondary values.
type RuleParams struct {
	LowerFactor *float64            `json:"lower_factor,omitempty"`
	UpperFactor *float64            `json:"upper_factor,omitempty"`
	Min         *float64            `json:"min,omitempty"`
	Max         *float64            `json:"max,omitempty"`
	ValueSets   map[string][]string `json:"value_sets,omitempty"`
}

// Selection is one chosen component with its resolved specification values
// keyed by template name.
type Selection struct {
	CategoryID   int64                       `json:"category_id"`
	ProductID    string                      `json:"product_id"`
	ProductName  string                      `json:"product_name"`
	CategoryName string                      `json:"category_name,omitempty"`
	Specs        map[string]specs.TypedValue `json:"specs"`
}

// Issue is one diagnostic produced by evaluating a rule
type Issue struct {
	Type       string                 `json:"type"`
	Component1 string                 `json:"component1"`
	Component2 string                 `json:"component2"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Severity   string                 `json:"severity"`
}

// EvaluationResult is the aggregate verdict over every applicable rule.
// Status is the strict three-state reduction: any error-class issue forces
// error, otherwise any warning forces warning, otherwise valid.
type EvaluationResult struct {
	Status string  `json:"status"`
	Issues []Issue `json:"issues"`
}
