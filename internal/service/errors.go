package service

import (
	"errors"
	"fmt"
	"strings"

	"voltshop/pkg/specs"
)

// ErrNotFound marks lookups for entities that do not exist. Handlers map it
// to a 404.
var ErrNotFound = errors.New("not found")

// DefinitionError rejects a template or rule definition that failed its
// creation-time check. The field issues carry the individual problems.
type DefinitionError struct {
	Issues []specs.FieldIssue
}

func (e *DefinitionError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("invalid definition: %s", strings.Join(msgs, "; "))
}

// ValueError rejects a raw specification value that failed validation before
// any write happened
type ValueError struct {
	Issues []specs.FieldIssue
}

func (e *ValueError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.Message
	}
	return fmt.Sprintf("invalid value: %s", strings.Join(msgs, "; "))
}
