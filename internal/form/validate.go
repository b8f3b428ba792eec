package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// validate and htmlPolicy are shared by every request; both are safe for
// concurrent use once built.
var (
	validate   = validator.New()
	htmlPolicy = bluemonday.UGCPolicy()
)

// Result is the outcome of validating one normalized request.
type Result struct {
	// Values holds the accepted fields in canonical Go types: string,
	// bool, int64, and int64 or float64 for numbers. Unknown fields are
	// not carried over.
	Values     Values
	Violations []Violation
}

// Accepted reports whether no field was rejected.
func (r Result) Accepted() bool { return len(r.Violations) == 0 }

// Err returns a *ValidationError for a rejected result and nil otherwise.
func (r Result) Err(entity string) error {
	if r.Accepted() {
		return nil
	}
	return &ValidationError{Entity: entity, Violations: r.Violations}
}

// Validate classifies in against c. Every field is checked and every
// violation is collected in contract order. in is never modified.
func Validate(c Contract, in Values) Result {
	res := Result{Values: make(Values)}
	for _, f := range c.Fields {
		raw, present := in[f.Name]
		if !present || raw == nil {
			if !f.Optional {
				res.Violations = append(res.Violations, Violation{
					Field:      f.Name,
					Reason:     ReasonRequired,
					Constraint: "required",
					Message:    f.Name + " is required",
				})
			}
			continue
		}

		val, ok := typed(f.Type, raw)
		if !ok {
			res.Violations = append(res.Violations, Violation{
				Field:      f.Name,
				Reason:     ReasonTypeMismatch,
				Constraint: string(f.Type),
				Message:    typeMessage(f),
				Value:      raw,
			})
			continue
		}

		if f.Rule != "" {
			if err := validate.Var(val, f.Rule); err != nil {
				res.Violations = append(res.Violations, constraintViolation(f, val, err))
				continue
			}
		}

		if s, isString := val.(string); isString && f.Sanitize {
			val = htmlPolicy.Sanitize(s)
		}
		res.Values[f.Name] = val
	}
	return res
}

// typed converts v to the canonical Go type for t, if v already holds a
// value of that type.
func typed(t FieldType, v any) (any, bool) {
	switch t {
	case TypeString:
		s, ok := v.(string)
		return s, ok
	case TypeBoolean:
		b, ok := v.(bool)
		return b, ok
	case TypeInteger:
		return asInt(v)
	case TypeNumber:
		if n, ok := asInt(v); ok {
			return n, true
		}
		return asFloat(v)
	}
	return nil, false
}

func asInt(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return nil, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil, false
		}
		return i, true
	}
	return nil, false
}

func asFloat(v any) (any, bool) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func typeMessage(f FieldSpec) string {
	switch f.Type {
	case TypeBoolean:
		return f.Name + " must be true or false"
	case TypeInteger:
		return f.Name + " must be an integer"
	case TypeNumber:
		return f.Name + " must be a number"
	}
	return f.Name + " must be a string"
}

func constraintViolation(f FieldSpec, val any, err error) Violation {
	v := Violation{
		Field:      f.Name,
		Reason:     ReasonConstraint,
		Constraint: f.Rule,
		Message:    f.Name + " is invalid",
		Value:      val,
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		v.Constraint = fe.Tag()
		if fe.Param() != "" {
			v.Constraint += "=" + fe.Param()
		}
		v.Message = f.Name + " must be " + describe(fe.Tag(), fe.Param())
	}
	return v
}

// describe renders a validator tag as the tail of a user-facing message.
func describe(tag, param string) string {
	switch tag {
	case "gte":
		return "≥ " + param
	case "lte":
		return "≤ " + param
	case "gt":
		return "> " + param
	case "lt":
		return "< " + param
	case "min":
		return "at least " + param
	case "max":
		return "at most " + param
	case "oneof":
		return "one of " + strings.Join(strings.Fields(param), ", ")
	case "url", "uri":
		return "a valid URL"
	}
	if param == "" {
		return fmt.Sprintf("valid (%s)", tag)
	}
	return fmt.Sprintf("valid (%s=%s)", tag, param)
}
