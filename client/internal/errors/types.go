// Package errors defines the single error type returned by the Witness client
// and the classification used to decide whether a failed call may be polled again.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCategory determines how the polling helper treats a failure.
type ErrorCategory int

const (
	// Recoverable failures may succeed on a later attempt.
	// Examples: connection refused, 429 Too Many Requests, 503 Service Unavailable.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will not change by asking again.
	// Examples: 400 Bad Request, 401 Unauthorized, a malformed success body.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Issue is one entry of the "issues" array in a Witness error body.
type Issue struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Path    []any  `json:"path,omitempty"`
}

// Error is returned by every Witness API call that fails.
type Error struct {
	Message string
	Code    string
	Issues  []Issue

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Underlying is the transport or decoding failure, if any.
	Underlying error
}

// Error renders the message, then the code and each issue on their own lines.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Code != "" {
		b.WriteString("\nError Code: ")
		b.WriteString(e.Code)
	}
	if len(e.Issues) > 0 {
		b.WriteString("\nIssues:")
		for _, issue := range e.Issues {
			b.WriteString("\n - ")
			b.WriteString(issue.Message)
		}
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Category classifies e for retry decisions.
func (e *Error) Category() ErrorCategory {
	if e.StatusCode == 0 {
		return Recoverable
	}
	return getHTTPErrorCategory(e.StatusCode)
}

// IsNotFound reports whether e came from a 404 response.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var we *Error
	if stderrors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// IsIrrecoverable returns true if the error should not be retried.
// Errors that are not *Error (context cancellation, option errors) are irrecoverable.
func IsIrrecoverable(err error) bool {
	if we, ok := As(err); ok {
		return we.Category() == Irrecoverable
	}
	return true
}
