// Package problem writes RFC 9457 problem details responses.
package problem

import (
	"encoding/json"
	"net/http"
	"strconv"

	"trustcms/internal/form"
)

const typeBase = "https://trustcms.dev/errors/"

// Details is an RFC 9457 problem document
type Details struct {
	Type   string           `json:"type"`
	Title  string           `json:"title"`
	Status int              `json:"status"`
	Detail string           `json:"detail,omitempty"`
	Errors []form.Violation `json:"errors,omitempty"`
}

// Write sends p with its status code
func (p *Details) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func New(status int, slug, title, detail string) *Details {
	return &Details{
		Type:   typeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

func BadRequest(detail string) *Details {
	return New(http.StatusBadRequest, "bad-request", "Bad Request", detail)
}

func NotFound(detail string) *Details {
	return New(http.StatusNotFound, "not-found", "Not Found", detail)
}

func UnsupportedMediaType(detail string) *Details {
	return New(http.StatusUnsupportedMediaType, "unsupported-media-type", "Unsupported Media Type", detail)
}

func TooLarge(limit int64) *Details {
	return New(http.StatusRequestEntityTooLarge, "too-large", "Request Entity Too Large",
		"request body exceeds "+strconv.FormatInt(limit, 10)+" bytes")
}

func Internal() *Details {
	return New(http.StatusInternalServerError, "internal", "Internal Server Error", "")
}

// Validation lists every violation of a rejected request.
func Validation(err *form.ValidationError) *Details {
	detail := "One or more fields failed validation"
	if len(err.Violations) > 0 {
		detail = err.Violations[0].Message
		if n := len(err.Violations) - 1; n > 0 {
			detail += " (and " + pluralErrors(n) + ")"
		}
	}
	p := New(http.StatusUnprocessableEntity, "validation", "Validation Error", detail)
	p.Errors = err.Violations
	return p
}

func pluralErrors(n int) string {
	if n == 1 {
		return "1 more error"
	}
	return strconv.Itoa(n) + " more errors"
}
