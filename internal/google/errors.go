package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// AuthError reports a failure to obtain a usable credential: a missing or
// malformed client descriptor, an unreadable token or a failed handshake.
type AuthError struct {
	Path string // file involved, if any
	Msg  string
	Err  error
}

func (e *AuthError) Error() string {
	msg := e.Msg
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RemoteServiceError wraps a failed Google API call with the service and
// operation that failed.
type RemoteServiceError struct {
	Service   string // docs, drive, directory
	Operation string // create, batchUpdate, share, list, delete
	Err       error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Operation, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// NewRemoteServiceError wraps err for the given service and operation.
func NewRemoteServiceError(service, operation string, err error) *RemoteServiceError {
	return &RemoteServiceError{Service: service, Operation: operation, Err: err}
}

// StatusCode returns the HTTP status of a Google API error, or 0 when err
// did not come from a Google API response.
func StatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// IsPermissionDenied reports whether err is a 403 response from a Google API.
func IsPermissionDenied(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
