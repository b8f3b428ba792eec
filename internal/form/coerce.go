package form

import "strconv"

// CoerceInt parses a base-10 integer string. Any other value, including a
// string that does not parse, is returned unchanged with ok=false.
func CoerceInt(v any) (any, bool) {
	s, isString := v.(string)
	if !isString {
		return v, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return v, false
	}
	return n, true
}

// CoerceBool maps the literals "true" and "false". Everything else is
// returned unchanged with ok=false.
func CoerceBool(v any) (any, bool) {
	s, isString := v.(string)
	if !isString {
		return v, false
	}
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return v, false
}

// Coerce applies the rule for t. String fields have no rule.
func Coerce(t FieldType, v any) (any, bool) {
	switch t {
	case TypeInteger, TypeNumber:
		return CoerceInt(v)
	case TypeBoolean:
		return CoerceBool(v)
	}
	return v, false
}
