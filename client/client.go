// Package client is a Go SDK for the Witness API, a Merkle-tree timestamping
// service that checkpoints its root hash on chain.
//
// Every endpoint is a method on Client that returns the decoded JSON object
// as a Response, or a *Error describing why the call failed.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client/internal/api"
	"github.com/WitnessCo/client-go/client/internal/types"
	"github.com/WitnessCo/client-go/internal/config"
)

const (
	requestIDHeader  = "X-Request-Id"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "witness-go/" + Version
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client holds the base URL, the optional bearer token and the session used
// for every call. Configuration is fixed after New returns, so a Client may be
// shared by concurrent goroutines.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	timeout   time.Duration
	debug     bool

	http    *http.Client
	session *resty.Client

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the production API unless WithBaseURL says
// otherwise. No network activity happens here.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{},
		debug:     debugLoggingRequested(), // WithDebugLogging overrides
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("witness client: %w", err)
		}
	}

	baseURL, err := types.ValidateBaseURL(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("witness client: %w", err)
	}
	c.baseURL = baseURL

	switch {
	case c.timeout > 0:
		c.http.Timeout = c.timeout
	case c.http.Timeout == 0:
		c.http.Timeout = defaultTimeout
	}

	c.wrapTransport()
	c.session = c.newSession()
	return c, nil
}

// NewFromEnv constructs a Client from WITNESS_BASE_URL, WITNESS_TOKEN,
// WITNESS_TIMEOUT and WITNESS_DEBUG. Explicit options win over the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("witness client: load config: %w", err)
	}
	envOpts := []Option{
		WithBaseURL(cfg.BaseURL),
		WithToken(cfg.Token),
		WithDebugLogging(cfg.Debug),
	}
	if cfg.Timeout > 0 {
		envOpts = append(envOpts, WithHTTPTimeout(cfg.Timeout))
	}
	return New(append(envOpts, opts...)...)
}

// wrapTransport installs, from the outside in: metrics, then debug logging
// when enabled, then the configured (or default) transport.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base}
	}
	c.http.Transport = &metricsTransport{base: base}
}

// newSession builds the resty session carrying the headers shared by every request.
func (c *Client) newSession() *resty.Client {
	s := resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", c.userAgent).
		SetLogger(restyLogger{})
	if c.token != "" {
		s.SetAuthToken(c.token)
	}
	s.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader(requestIDHeader, uuid.NewString())
		return nil
	})
	return s
}

// BaseURL returns the normalised API origin the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections held by the session. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// restyLogger routes resty's internal warnings through zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Warn().Msgf(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }

// --------------------------------------------------------------------
// Service operations - delegated to internal/api
// --------------------------------------------------------------------

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) (Response, error) {
	return api.Health(ctx, c.session)
}

// GetTreeState returns the current state of the tree.
func (c *Client) GetTreeState(ctx context.Context) (Response, error) {
	return api.GetTreeState(ctx, c.session)
}

// GetNodeHashByID returns the hash of the node at level and index.
func (c *Client) GetNodeHashByID(ctx context.Context, level, index string) (Response, error) {
	return api.GetNodeHashByID(ctx, c.session, level, index)
}

// --------------------------------------------------------------------
// Checkpoint operations - delegated to internal/api
// --------------------------------------------------------------------

// GetLatestCheckpoint returns the latest on-chain checkpoint. Accepts WithChainID.
func (c *Client) GetLatestCheckpoint(ctx context.Context, opts ...RequestOption) (Response, error) {
	o := collectRequestOptions(opts)
	return api.GetLatestCheckpoint(ctx, c.session, o.chainID)
}

// GetLatestCheckpointForAllChains returns the latest on-chain checkpoint for every chain.
func (c *Client) GetLatestCheckpointForAllChains(ctx context.Context) (Response, error) {
	return api.GetLatestCheckpointForAllChains(ctx, c.session)
}

// GetEarliestCheckpointCoveringLeafIndex returns the first checkpoint that
// includes leafIndex. Accepts WithChainID.
func (c *Client) GetEarliestCheckpointCoveringLeafIndex(ctx context.Context, leafIndex string, opts ...RequestOption) (Response, error) {
	o := collectRequestOptions(opts)
	return api.GetEarliestCheckpointCoveringLeafIndex(ctx, c.session, leafIndex, o.chainID)
}

// GetCheckpointByTransactionHash returns the checkpoint posted in txHash.
func (c *Client) GetCheckpointByTransactionHash(ctx context.Context, txHash string) (Response, error) {
	return api.GetCheckpointByTransactionHash(ctx, c.session, txHash)
}

// GetCheckpointByTimestamp returns the first checkpoint at or after a unix
// timestamp in seconds. Accepts WithChainID.
func (c *Client) GetCheckpointByTimestamp(ctx context.Context, timestamp string, opts ...RequestOption) (Response, error) {
	o := collectRequestOptions(opts)
	return api.GetCheckpointByTimestamp(ctx, c.session, timestamp, o.chainID)
}

// --------------------------------------------------------------------
// Leaf operations - delegated to internal/api
// --------------------------------------------------------------------

// GetLeafIndexByHash returns the index of leafHash in the tree.
func (c *Client) GetLeafIndexByHash(ctx context.Context, leafHash string) (Response, error) {
	return api.GetLeafIndexByHash(ctx, c.session, leafHash)
}

// GetTimestampByLeafHash returns the checkpoint timestamp for leafHash. Accepts WithChainID.
func (c *Client) GetTimestampByLeafHash(ctx context.Context, leafHash string, opts ...RequestOption) (Response, error) {
	o := collectRequestOptions(opts)
	return api.GetTimestampByLeafHash(ctx, c.session, leafHash, o.chainID)
}

// PostLeafHash inserts a new leaf hash and returns its hash and index.
func (c *Client) PostLeafHash(ctx context.Context, leafHash string) (Response, error) {
	return api.PostLeafHash(ctx, c.session, leafHash)
}

// --------------------------------------------------------------------
// Proof operations - delegated to internal/api
// --------------------------------------------------------------------

// GetProofForLeafHash returns the inclusion proof for leafHash. Accepts
// WithTargetTreeSize and WithChainID.
func (c *Client) GetProofForLeafHash(ctx context.Context, leafHash string, opts ...RequestOption) (Response, error) {
	o := collectRequestOptions(opts)
	return api.GetProofForLeafHash(ctx, c.session, leafHash, o.targetTreeSize, o.chainID)
}

// PostProof asks the server to verify proof. proof may be a Proof, a Response
// returned by GetProofForLeafHash, or any value that encodes to the same JSON.
func (c *Client) PostProof(ctx context.Context, proof any) (Response, error) {
	return api.PostProof(ctx, c.session, proof)
}
