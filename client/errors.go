package client

import (
	witnesserrors "github.com/WitnessCo/client-go/client/internal/errors"
)

// Re-export the error model so callers compare against a single package.
type (
	// Error is returned by every failed API call.
	Error = witnesserrors.Error
	// Issue is one entry of Error.Issues.
	Issue = witnesserrors.Issue
)

// InvalidJSONMessage is Error.Message when a successful response is not a JSON object.
const InvalidJSONMessage = witnesserrors.InvalidJSONMessage

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) { return witnesserrors.As(err) }

// IsNotFound reports whether err is a Witness error produced by a 404 response.
func IsNotFound(err error) bool {
	we, ok := witnesserrors.As(err)
	return ok && we.IsNotFound()
}
