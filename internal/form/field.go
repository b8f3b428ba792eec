package form

// Values is a request body keyed by field name. Form-encoded bodies carry
// strings; JSON bodies may already carry typed values.
type Values map[string]any

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// FieldType is the declared type of a contract field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// FieldSpec describes one field of an entity contract.
//
// Rule is a go-playground/validator tag evaluated against the typed value
// (for example "gte=0"). Sanitize marks string fields that may carry HTML
// and are cleaned before the payload is accepted.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Optional bool
	Rule     string
	Sanitize bool
}

// Contract is the ordered field table of one entity.
type Contract struct {
	Entity string
	Fields []FieldSpec
}

// Field returns the FieldSpec named name.
func (c Contract) Field(name string) (FieldSpec, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
