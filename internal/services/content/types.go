package content

import (
	"trustcms/internal/domain/content"
	"trustcms/internal/store/repositories"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = repositories.ErrNotFound

// ListResponse represents one page of content
type ListResponse struct {
	Items []*content.Item `json:"items"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

// ServiceError represents a content service error
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return "content service " + e.Op + ": " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
