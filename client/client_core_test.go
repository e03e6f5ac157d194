package client

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("WITNESS_DEBUG", "")
	t.Setenv("DEBUG", "")

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://api.witness.co", c.BaseURL())
	assert.Equal(t, 30*time.Second, c.http.Timeout)
	mt, ok := c.http.Transport.(*metricsTransport)
	require.True(t, ok, "metrics transport must be outermost")
	assert.Equal(t, http.DefaultTransport, mt.base)
	assert.Empty(t, c.session.Token)
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := []Option{
		WithBaseURL(""),
		WithBaseURL("ftp://api.witness.co"),
		WithHTTPTimeout(0),
		WithHTTPClient(nil),
		WithUserAgent(" "),
	}
	for i, opt := range cases {
		_, err := New(opt)
		assert.Error(t, err, "case %d", i)
	}
}

func TestNew_TrimsBaseURLAndSetsToken(t *testing.T) {
	c, err := New(WithBaseURL("https://staging.witness.co/"), WithToken("  tok  "))
	require.NoError(t, err)
	assert.Equal(t, "https://staging.witness.co", c.BaseURL())
	assert.Equal(t, "tok", c.session.Token)
	assert.Equal(t, "application/json", c.session.Header.Get("Content-Type"))
	assert.Equal(t, "witness-go/"+Version, c.session.Header.Get("User-Agent"))
}

func TestWithHTTPClient_DoesNotMutateCallerClient(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) { return nil, http.ErrHandlerTimeout })
	hc := &http.Client{Transport: rt, Timeout: 3 * time.Second}

	c, err := New(WithHTTPClient(hc), WithDebugLogging(true))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.http.Timeout)
	assert.IsType(t, roundTripFunc(nil), hc.Transport)

	mt := c.http.Transport.(*metricsTransport)
	dt, ok := mt.base.(*debugTransport)
	require.True(t, ok, "debug transport sits beneath metrics")
	assert.IsType(t, roundTripFunc(nil), dt.base)
}

func TestNew_TimeoutOptionWinsOverHTTPClient(t *testing.T) {
	c, err := New(WithHTTPTimeout(2*time.Second), WithHTTPClient(&http.Client{Timeout: time.Minute}))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
}

func TestCloseIdempotent(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("WITNESS_BASE_URL", "http://localhost:9999")
	t.Setenv("WITNESS_TOKEN", "env-token")
	t.Setenv("WITNESS_TIMEOUT", "7s")

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", c.BaseURL())
	assert.Equal(t, "env-token", c.session.Token)
	assert.Equal(t, 7*time.Second, c.http.Timeout)

	c, err = NewFromEnv(WithBaseURL("https://override.example"))
	require.NoError(t, err)
	assert.Equal(t, "https://override.example", c.BaseURL())
}

func TestNewFromEnv_IgnoresBareToken(t *testing.T) {
	for _, k := range []string{"WITNESS_BASE_URL", "WITNESS_TOKEN"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("TOKEN", "unrelated-ci-secret")
	t.Setenv("BASE_URL", "http://elsewhere.example")

	c, err := NewFromEnv()
	require.NoError(t, err)
	assert.Empty(t, c.token)
	assert.Empty(t, c.session.Token)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestCollectRequestOptions(t *testing.T) {
	o := collectRequestOptions(nil)
	assert.Equal(t, int64(8453), o.chainID)
	assert.Empty(t, o.targetTreeSize)

	o = collectRequestOptions([]RequestOption{WithChainID(84532), nil, WithTargetTreeSize("100")})
	assert.Equal(t, int64(84532), o.chainID)
	assert.Equal(t, "100", o.targetTreeSize)
}
