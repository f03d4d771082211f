package constants

// Compatibility rule comparison modes
const (
	RuleTypeExactMatch = "exact_match"
	RuleTypeRange      = "range"
	RuleTypeValueSet   = "value_set"
)

// Issue types emitted by the compatibility evaluator
const (
	IssueTypeRuleViolation        = "rule_violation"
	IssueTypeMissingSpecification = "missing_specification"
)

// Issue severities. High is reserved for missing compatibility data and
// counts as error-class when reducing the aggregate status.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
	SeverityHigh    = "high"
)

// Aggregate compatibility statuses
const (
	StatusValid   = "valid"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Field-level validation error codes
const (
	ErrCodeTypeError     = "type_error"
	ErrCodeRangeError    = "range_error"
	ErrCodeEnumViolation = "enum_violation"
	ErrCodeMissingField  = "missing_required"
	ErrCodeRuleViolation = "rule_violation"
	ErrCodeBadDefinition = "invalid_definition"
)

// IsErrorSeverity reports whether severity forces the aggregate status to error
func IsErrorSeverity(severity string) bool {
	return severity == SeverityError || severity == SeverityHigh
}
