package form

import (
	"fmt"
	"strings"
)

// Reason classifies a violation.
type Reason string

const (
	ReasonTypeMismatch Reason = "type_mismatch"
	ReasonConstraint   Reason = "constraint_violation"
	ReasonRequired     Reason = "required"
)

// Violation is one field-level rejection.
type Violation struct {
	Field      string `json:"field"`
	Reason     Reason `json:"reason"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
	Value      any    `json:"value"`
}

// ValidationError carries every violation found in one request.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("%s: invalid request: %s", e.Entity, strings.Join(msgs, "; "))
}

// Fields lists the violated field names in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.Field)
	}
	return out
}
