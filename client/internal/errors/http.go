package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// InvalidJSONMessage is the message of the error returned when a successful
// response does not carry a JSON object.
const InvalidJSONMessage = "Invalid JSON response received."

const defaultMessage = "An error occurred."

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		return Irrecoverable
	}
}

// NewTransportError wraps a failure that happened before any response was received.
func NewTransportError(err error) *Error {
	return &Error{
		Message:    fmt.Sprintf("Request Error occurred: %v", err),
		Underlying: err,
	}
}

// NewInvalidJSONError reports a successful response whose body is not a JSON object.
func NewInvalidJSONError(statusCode int, err error) *Error {
	return &Error{Message: InvalidJSONMessage, StatusCode: statusCode, Underlying: err}
}

// FromHTTPResponse builds the error for a response with status >= 400.
//
// A JSON object body fills message, code and issues. Any other body yields a
// message naming the HTTP status and the request URL.
func FromHTTPResponse(statusCode int, status, url string, body []byte) *Error {
	obj, err := types.DecodeObject(body)
	if err != nil {
		return &Error{
			Message:    fmt.Sprintf("HTTP Error occurred: %s", describeStatus(statusCode, status, url)),
			StatusCode: statusCode,
		}
	}

	e := &Error{
		Message:    defaultMessage,
		StatusCode: statusCode,
	}
	if v, ok := obj["message"]; ok && v != nil {
		e.Message = stringify(v)
	}
	if v, ok := obj["code"]; ok && v != nil {
		e.Code = stringify(v)
	}
	if raw, ok := obj["issues"].([]any); ok {
		e.Issues = make([]Issue, 0, len(raw))
		for _, item := range raw {
			e.Issues = append(e.Issues, issueFrom(item))
		}
	}
	return e
}

func issueFrom(item any) Issue {
	m, ok := item.(map[string]any)
	if !ok {
		return Issue{Message: stringify(item)}
	}
	var issue Issue
	if v, ok := m["message"]; ok && v != nil {
		issue.Message = stringify(v)
	}
	if v, ok := m["code"]; ok && v != nil {
		issue.Code = stringify(v)
	}
	if p, ok := m["path"].([]any); ok {
		issue.Path = p
	}
	return issue
}

// describeStatus renders "<code> <Client|Server> Error: <reason> for url: <url>".
func describeStatus(statusCode int, status, url string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(statusCode)))
	if reason == "" {
		reason = http.StatusText(statusCode)
	}
	side := "Client"
	if statusCode >= 500 {
		side = "Server"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", statusCode, side, reason, url)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
