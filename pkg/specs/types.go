// Package specs implements typed specification values, template definition
// checks and the value validator for the product catalog. Everything here is a
// pure function of its inputs; the enumeration registry is passed in
// explicitly rather than read from global state.
package specs

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the typed value variants
type ValueKind string

const (
	KindEnum    ValueKind = "enum"
	KindNumber  ValueKind = "number"
	KindText    ValueKind = "text"
	KindBoolean ValueKind = "boolean"
)

// TypedValue is a tagged union holding exactly one normalized specification
// value. The kind field tells which payload is populated. Number and boolean
// payloads serialize even at their zero values, so a 0 W draw or a false flag
// survives the trip through the API.
type TypedValue struct {
	Kind   ValueKind `json:"kind"`
	Enum   string    `json:"enum,omitempty"`
	Number float64   `json:"number"`
	Unit   string    `json:"unit,omitempty"`
	Text   string    `json:"text,omitempty"`
	Bool   bool      `json:"boolean"`
}

// EnumValue builds an enum-kind typed value
func EnumValue(v string) TypedValue {
	return TypedValue{Kind: KindEnum, Enum: v}
}

// NumberValue builds a number-kind typed value with an optional unit
func NumberValue(v float64, unit string) TypedValue {
	return TypedValue{Kind: KindNumber, Number: v, Unit: unit}
}

// TextValue builds a text-kind typed value
func TextValue(v string) TypedValue {
	return TypedValue{Kind: KindText, Text: v}
}

// BoolValue builds a boolean-kind typed value
func BoolValue(v bool) TypedValue {
	return TypedValue{Kind: KindBoolean, Bool: v}
}

// Display returns the denormalized display string for the value
func (v TypedValue) Display() string {
	switch v.Kind {
	case KindEnum:
		return v.Enum
	case KindNumber:
		s := strconv.FormatFloat(v.Number, 'f', -1, 64)
		if v.Unit != "" {
			return s + " " + v.Unit
		}
		return s
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Text
	}
}

// Compare returns the string used for exact-match and value-set comparisons.
// Units are excluded so "3200 MHz" and "3200" compare equal.
func (v TypedValue) Compare() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Display()
}

// Template is the schema definition for one named attribute of a category's
// products.
type Template struct {
	ID                 int64           `json:"id"`
	CategoryID         int64           `json:"category_id"`
	Name               string          `json:"name"`
	DisplayName        string          `json:"display_name"`
	DataType           string          `json:"data_type"`
	IsRequired         bool            `json:"is_required"`
	IsCompatibilityKey bool            `json:"is_compatibility_key"`
	IsFilterable       bool            `json:"is_filterable"`
	EnumSource         string          `json:"enum_source,omitempty"`
	EnumValues         []string        `json:"enum_values,omitempty"`
	ValidationRules    ValidationRules `json:"validation_rules"`
	DisplayOrder       int             `json:"display_order"`
}

// ValidationRules carries the per-template constraints applied by the
// validator. Numeric bounds are inclusive.
type ValidationRules struct {
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// FieldIssue is a single validation error or warning on one field
type FieldIssue struct {
	Code        string   `json:"code"`
	Field       string   `json:"field"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ValidationResult is the outcome of validating one raw value or one
// template definition
type ValidationResult struct {
	IsValid    bool         `json:"is_valid"`
	Errors     []FieldIssue `json:"errors,omitempty"`
	Warnings   []FieldIssue `json:"warnings,omitempty"`
	Normalized *TypedValue  `json:"normalized,omitempty"`
}

func (r *ValidationResult) addError(issue FieldIssue) {
	r.Errors = append(r.Errors, issue)
	r.IsValid = false
}

func (r *ValidationResult) addWarning(issue FieldIssue) {
	r.Warnings = append(r.Warnings, issue)
}

// Merge folds another result into r, keeping r invalid if either was
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}

// CrossRule is a same-category compatibility constraint evaluated against
// already-normalized sibling values during product validation.
type CrossRule struct {
	Key         string              // field the rule constrains
	OtherKey    string              // previously validated field it references
	Mode        string              // exact_match, range or value_set
	LowerFactor *float64            // range: window is [other*lower, other*upper]
	UpperFactor *float64            //
	Min         *float64            // range: absolute window when factors absent
	Max         *float64            //
	ValueSets   map[string][]string // value_set: allowed values keyed by the other field's value
}

func formatAllowed(values []string) string {
	return strings.Join(values, ", ")
}
