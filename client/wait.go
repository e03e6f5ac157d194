package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	witnesserrors "github.com/WitnessCo/client-go/client/internal/errors"
)

// WaitOption tunes WaitForCheckpointedLeafHash.
type WaitOption func(*waitConfig)

type waitConfig struct {
	chainID     int64
	interval    time.Duration
	maxInterval time.Duration
}

// WithWaitChainID waits for a checkpoint on chainID instead of DefaultChainID.
func WithWaitChainID(chainID int64) WaitOption {
	return func(w *waitConfig) { w.chainID = chainID }
}

// WithPollInterval sets the delay before the second poll. Later delays grow
// exponentially up to the maximum interval.
func WithPollInterval(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithMaxPollInterval caps the delay between polls.
func WithMaxPollInterval(d time.Duration) WaitOption {
	return func(w *waitConfig) {
		if d > 0 {
			w.maxInterval = d
		}
	}
}

// WaitForCheckpointedLeafHash blocks until leafHash is covered by an on-chain
// checkpoint and returns that checkpoint.
//
// The leaf index is resolved once; a failure there is returned as-is. The
// checkpoint lookup is then polled while it answers 404 or fails in a
// recoverable way (transport, 408, 429, 5xx). Any other failure is returned
// immediately. Bound the wait with a context deadline.
func (c *Client) WaitForCheckpointedLeafHash(ctx context.Context, leafHash string, opts ...WaitOption) (Response, error) {
	cfg := waitConfig{
		chainID:     DefaultChainID,
		interval:    time.Second,
		maxInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.maxInterval < cfg.interval {
		cfg.maxInterval = cfg.interval
	}

	idx, err := c.GetLeafIndexByHash(ctx, leafHash)
	if err != nil {
		return nil, err
	}
	leafIndex, err := leafIndexFrom(idx)
	if err != nil {
		return nil, fmt.Errorf("wait for checkpoint: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = cfg.interval
	exp.Multiplier = 2
	exp.MaxInterval = cfg.maxInterval
	exp.MaxElapsedTime = 0 // bounded by ctx
	exp.Reset()

	attempts := 0
	var checkpoint Response
	op := func() error {
		attempts++
		res, err := c.GetEarliestCheckpointCoveringLeafIndex(ctx, leafIndex, WithChainID(cfg.chainID))
		if err == nil {
			checkpoint = res
			return nil
		}
		if !keepPolling(err) {
			return backoff.Permanent(err)
		}
		log.Debug().
			Err(err).
			Str("leaf_hash", leafHash).
			Str("leaf_index", leafIndex).
			Int64("chain_id", cfg.chainID).
			Int("attempt", attempts).
			Msg("leaf not yet checkpointed")
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(exp, ctx)); err != nil {
		return nil, err
	}
	return checkpoint, nil
}

// keepPolling reports whether a failed checkpoint lookup may succeed later.
func keepPolling(err error) bool {
	if we, ok := witnesserrors.As(err); ok && we.IsNotFound() {
		return true
	}
	return !witnesserrors.IsIrrecoverable(err)
}

// leafIndexFrom extracts "leafIndex" from a /getLeafIndexByHash response.
func leafIndexFrom(res Response) (string, error) {
	switch v := res["leafIndex"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case json.Number:
		return v.String(), nil
	case float64:
		return fmt.Sprintf("%.0f", v), nil
	}
	return "", fmt.Errorf("response has no leafIndex")
}
