package client

import (
	"io"
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs each request and response at debug level.
//
// Enable it with WithDebugLogging(true) or by exporting WITNESS_DEBUG=true
// (DEBUG=true also works). The Authorization header is redacted; bodies are not.
//
//	export WITNESS_DEBUG=true
//	go run main.go  # Client will now log all HTTP traffic
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := req.Header.Get(requestIDHeader)

	redacted := req.Clone(req.Context())
	redacted.Body = nil
	if redacted.Header.Get("Authorization") != "" {
		redacted.Header.Set("Authorization", "Bearer [REDACTED]")
	}
	if reqDump, err := httputil.DumpRequestOut(redacted, false); err == nil {
		ev := log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump))
		if body := peekBody(req); body != "" {
			ev = ev.Str("request_body", body)
		}
		ev.Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// peekBody reads a copy of the request body through GetBody, leaving req.Body untouched.
func peekBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	rc, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return ""
	}
	return string(b)
}

// debugLoggingRequested reports whether WITNESS_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("WITNESS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
