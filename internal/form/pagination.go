package form

import (
	"math"
	"net/url"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination is the query contract shared by list endpoints.
type Pagination struct {
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Search *string `json:"search,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// PaginationContract is the field table for list queries. Unlike entity
// bodies, an active filter that is not "true" or "false" is rejected.
var PaginationContract = Contract{
	Entity: "pagination",
	Fields: []FieldSpec{
		{Name: "page", Type: TypeInteger, Optional: true, Rule: "gte=1"},
		{Name: "limit", Type: TypeInteger, Optional: true, Rule: "gte=1"},
		{Name: "search", Type: TypeString, Optional: true},
		{Name: "active", Type: TypeBoolean, Optional: true},
	},
}

// ParsePagination reads page, limit, search and active from q. Parameters
// sent with an empty value count as absent.
func ParsePagination(q url.Values) (Pagination, error) {
	raw := make(Values)
	for _, f := range PaginationContract.Fields {
		if v := q.Get(f.Name); v != "" {
			raw[f.Name] = v
		}
	}

	res := Validate(PaginationContract, Normalize(raw, PaginationContract.Fields))
	if err := res.Err(PaginationContract.Entity); err != nil {
		return Pagination{}, err
	}

	p := Pagination{Page: DefaultPage, Limit: DefaultLimit}
	if err := Decode(res.Values, &p); err != nil {
		return Pagination{}, err
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return Pagination{}, &ValidationError{Entity: PaginationContract.Entity, Violations: []Violation{{
			Field:      "page",
			Reason:     ReasonConstraint,
			Constraint: "offset",
			Message:    "page is too large for limit",
			Value:      p.Page,
		}}}
	}
	return p, nil
}

// Offset is the number of rows skipped before the current page. It
// saturates at math.MaxInt instead of wrapping.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}
