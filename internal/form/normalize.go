package form

// Normalize returns a copy of raw in which every field declared in fields
// has been coerced to its declared type. Fields that fail coercion keep
// their raw value so validation can name them; fields not present in raw
// stay absent, and undeclared fields pass through.
func Normalize(raw Values, fields []FieldSpec) Values {
	out, _ := NormalizeCount(raw, fields)
	return out
}

// NormalizeCount is Normalize that also reports how many fields of each type
// were converted.
func NormalizeCount(raw Values, fields []FieldSpec) (Values, map[FieldType]int) {
	out := raw.Clone()
	counts := make(map[FieldType]int)
	for _, f := range fields {
		v, ok := out[f.Name]
		if !ok {
			continue
		}
		if typed, changed := Coerce(f.Type, v); changed {
			out[f.Name] = typed
			counts[f.Type]++
		}
	}
	return out, counts
}
