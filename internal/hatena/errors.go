package hatena

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the client. Callers match them
// with errors.Is.
var (
	// ErrNotFound indicates the remote entry id does not exist.
	ErrNotFound = errors.New("entry not found")

	// ErrConflict indicates the remote rejected an update (e.g. stale revision).
	ErrConflict = errors.New("entry update conflict")

	// ErrUpload indicates an image upload to Fotolife failed.
	ErrUpload = errors.New("image upload failed")

	// ErrMissingEntryID indicates no entry id was supplied via flag or front matter.
	ErrMissingEntryID = errors.New("no entry id given (pass --entry-id or add an id field to the front matter)")
)

// APIError carries the HTTP status and response body of a failed API call
// for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status %d: %s", e.StatusCode, e.Body)
}

// apiError builds an *APIError, wrapping the sentinel matching the status
// so callers can use errors.Is as well as errors.As.
func apiError(status int, body string) error {
	apiErr := &APIError{StatusCode: status, Body: body}
	switch status {
	case 404:
		return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
	case 409, 412:
		return fmt.Errorf("%w: %w", ErrConflict, apiErr)
	}
	return apiErr
}
