package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
//
// Options only record settings; the transport stack and the session are built
// after every option has been applied, so their order does not matter.
type Option func(*Client) error

// WithBaseURL points the client at a non-production Witness deployment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithToken sets the bearer token sent as "Authorization: Bearer <token>".
// An empty token leaves the header off.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = strings.TrimSpace(token)
		return nil
	}
}

// WithHTTPClient supplies the underlying http.Client. The client is copied, so
// the wrappers installed by New never leak into the caller's instance.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single HTTP request including connection setup and
// reading the response. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging logs every request and response at debug level when enabled is true.
// It overrides WITNESS_DEBUG / DEBUG in either direction.
//
// Do not enable this option in production: dumps include bodies, and only
// the Authorization header is redacted.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return fmt.Errorf("user agent cannot be empty")
		}
		c.userAgent = ua
		return nil
	}
}
