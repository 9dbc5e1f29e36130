package drive

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// Error wraps every failure returned by the Drive service so that callers
// can distinguish remote failures from local ones (path resolution, disk IO)
// with a single errors.As check.
type Error struct {
	// Op names the operation that failed, e.g. "list files" or "share file"
	Op string

	// Err is the underlying error from the API client
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("drive: failed to %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns a short human-readable description of the failure,
// preferring the message the API returned over the transport error text.
func (e *Error) Message() string {
	var apiErr *googleapi.Error
	if errors.As(e.Err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return e.Err.Error()
}

// wrapError wraps an API error with the operation name. Returns nil for a
// nil error so call sites can wrap unconditionally.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
