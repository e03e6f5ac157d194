package types

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// Session issues requests against the Witness API. *resty.Client satisfies it.
type Session interface {
	R() *resty.Request
}

// ValidateBaseURL checks that raw is an absolute http(s) URL and returns it
// without a trailing slash.
func ValidateBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", fmt.Errorf("base URL cannot be empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL: scheme must be http or https")
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", fmt.Errorf("invalid base URL: host is required")
	}
	return trimmed, nil
}
