package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse indicates the external service returned a success
// status with a body that does not match the expected response shape. The
// body is treated as untrusted input and never rendered or persisted.
var ErrInvalidResponse = errors.New("analysis: response does not match expected shape")

// ValidationError reports a request field that failed validation, with a
// human-readable message suitable for inline display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError reports a non-success status from the external service. The
// message is the server-supplied body text when present.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("analysis failed (status %d): %s", e.StatusCode, e.Message)
}
