package client_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WitnessCo/client-go/client"
	"github.com/WitnessCo/client-go/witnesstest"
)

func fastPolling() []client.WaitOption {
	return []client.WaitOption{
		client.WithPollInterval(5 * time.Millisecond),
		client.WithMaxPollInterval(20 * time.Millisecond),
	}
}

func TestWaitForCheckpointedLeafHash_ReturnsOnceCheckpointed(t *testing.T) {
	t.Parallel()
	srv := witnesstest.NewServer()
	defer srv.Close()
	c := newClient(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.PostLeafHash(ctx, "0x01")
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		srv.Checkpoint(client.DefaultChainID, 1700000000)
	}()

	cp, err := c.WaitForCheckpointedLeafHash(ctx, "0x01", fastPolling()...)
	require.NoError(t, err)
	assert.NotEmpty(t, cp["rootHash"])

	polls := 0
	for _, r := range srv.Requests() {
		if r.Path == "/getEarliestCheckpointCoveringLeafIndex" {
			polls++
			assert.Equal(t, "0", r.Query.Get("leafIndex"))
			assert.Equal(t, "8453", r.Query.Get("chainId"))
		}
	}
	assert.Greater(t, polls, 1)
}

func TestWaitForCheckpointedLeafHash_UnknownLeaf(t *testing.T) {
	t.Parallel()
	srv := witnesstest.NewServer()
	defer srv.Close()

	_, err := newClient(t, srv).WaitForCheckpointedLeafHash(context.Background(), "0x99", fastPolling()...)
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestWaitForCheckpointedLeafHash_StopsOnIrrecoverableError(t *testing.T) {
	t.Parallel()
	srv := witnesstest.NewServer()
	defer srv.Close()
	srv.AddLeaf("0x01")
	srv.Respond("/getEarliestCheckpointCoveringLeafIndex", http.StatusBadRequest, `{"message": "Input validation failed", "code": "BAD_REQUEST"}`)

	_, err := newClient(t, srv).WaitForCheckpointedLeafHash(context.Background(), "0x01", fastPolling()...)
	we, ok := client.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_REQUEST", we.Code)

	polls := 0
	for _, r := range srv.Requests() {
		if r.Path == "/getEarliestCheckpointCoveringLeafIndex" {
			polls++
		}
	}
	assert.Equal(t, 1, polls)
}

func TestWaitForCheckpointedLeafHash_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	srv := witnesstest.NewServer()
	defer srv.Close()
	srv.AddLeaf("0x01")
	srv.Respond("/getEarliestCheckpointCoveringLeafIndex", http.StatusServiceUnavailable, "upstream unavailable")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := newClient(t, srv).WaitForCheckpointedLeafHash(ctx, "0x01", fastPolling()...)
	require.Error(t, err)

	polls := 0
	for _, r := range srv.Requests() {
		if r.Path == "/getEarliestCheckpointCoveringLeafIndex" {
			polls++
		}
	}
	assert.Greater(t, polls, 1)
}

func TestWaitForCheckpointedLeafHash_ContextDeadline(t *testing.T) {
	t.Parallel()
	srv := witnesstest.NewServer()
	defer srv.Close()
	srv.AddLeaf("0x01")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := newClient(t, srv).WaitForCheckpointedLeafHash(ctx, "0x01", fastPolling()...)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
