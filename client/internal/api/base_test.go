package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	witnesserrors "github.com/WitnessCo/client-go/client/internal/errors"
	"github.com/WitnessCo/client-go/client/internal/types"
)

func TestHandleResponse_StructuredError(t *testing.T) {
	t.Parallel()
	srv, _ := newStub(t, http.StatusNotFound, `{"message": "Not found", "code": "NOT_FOUND", "issues": [{"message": "no checkpoint"}]}`)

	_, err := GetLatestCheckpoint(context.Background(), newSession(srv.URL), 8453)
	we, ok := witnesserrors.As(err)
	require.True(t, ok, "expected *errors.Error, got %T", err)
	assert.Equal(t, "Not found", we.Message)
	assert.Equal(t, "NOT_FOUND", we.Code)
	assert.Contains(t, err.Error(), "Error Code: NOT_FOUND")
	assert.Contains(t, err.Error(), "no checkpoint")
}

func TestHandleResponse_NonJSONErrorBody(t *testing.T) {
	t.Parallel()
	srv, _ := newStub(t, http.StatusInternalServerError, "Internal Server Error")

	_, err := GetTreeState(context.Background(), newSession(srv.URL))
	we, ok := witnesserrors.As(err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(we.Message, "HTTP Error occurred: 500 Server Error"), we.Message)
	assert.Contains(t, we.Message, srv.URL+PathGetTreeState)
	assert.Empty(t, we.Code)
	assert.Empty(t, we.Issues)
}

func TestHandleResponse_InvalidSuccessJSON(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"not json", "", "[1,2,3]"} {
		srv, _ := newStub(t, http.StatusOK, body)
		_, err := Health(context.Background(), newSession(srv.URL))
		require.Error(t, err)
		assert.Equal(t, "Invalid JSON response received.", err.Error(), "body %q", body)
	}
}

func TestHandleResponse_NonObjectSuccessJSON(t *testing.T) {
	t.Parallel()
	srv, _ := newStub(t, http.StatusOK, `[1,2]`)
	_, err := Health(context.Background(), newSession(srv.URL))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotObject), "err=%v", err)

	srv, _ = newStub(t, http.StatusOK, `not json`)
	_, err = Health(context.Background(), newSession(srv.URL))
	require.Error(t, err)
	assert.False(t, errors.Is(err, types.ErrNotObject))
}

func TestHandleResponse_TransportFailure(t *testing.T) {
	t.Parallel()
	s := resty.New().SetBaseURL("http://witness.invalid").SetTransport(&errRT{})

	_, err := GetTreeState(context.Background(), s)
	we, ok := witnesserrors.As(err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(we.Message, "Request Error occurred: "), we.Message)
	assert.Contains(t, we.Message, "boom")
	assert.Zero(t, we.StatusCode)
	assert.Empty(t, we.Code)
	assert.Empty(t, we.Issues)
}

func TestHandleResponse_CancelledContext(t *testing.T) {
	t.Parallel()
	srv, _ := newStub(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Health(ctx, newSession(srv.URL))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "err=%v", err)
}
