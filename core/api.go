package core

import (
	"context"

	"github.com/pkg/errors"
)

// API is the thin contract every service talks to the remote REST backend
// through. Implemented by storage/rest and mockable in tests.
type API interface {
	// List fetches the full collection at path. A non-array payload is
	// treated as an empty collection, never as an error.
	List(ctx context.Context, path string) ([]Record, error)

	// Create POSTs body and returns the persisted record as echoed by the
	// backend (id included). A non-object payload yields an empty Record.
	Create(ctx context.Context, path string, body interface{}) (Record, error)

	// Patch applies a partial field set to an existing record.
	Patch(ctx context.Context, path string, body interface{}) error

	// Delete destroys a record. No request body is sent.
	Delete(ctx context.Context, path string) error
}

// APIError carries the backend's own error message when present, the raw
// details, and the HTTP status (0 when not applicable).
type APIError struct {
	Message string
	Details interface{}
	Status  int
}

func (e *APIError) Error() string { return e.Message }

// APIMessage extracts the user-facing message from an API or validation
// error, falling back to the page-specific text for anything else.
func APIMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch cause := errors.Cause(err).(type) {
	case *APIError:
		return cause.Message
	case *ValidationError:
		return cause.Error()
	default:
		return fallback
	}
}
