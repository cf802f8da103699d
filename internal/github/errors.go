package github

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the GitHub API, with the fields the
// relay cares about lifted out of the response body.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a GitHub 404. The file upserter's
// probe step relies on this to distinguish "create" from a real failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is a GitHub 409, which contents writes
// return when the supplied sha no longer matches the blob.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
