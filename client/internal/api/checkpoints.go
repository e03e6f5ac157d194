package api

import (
	"context"
	"strconv"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// GetLatestCheckpoint returns the most recent on-chain checkpoint for chainID.
func GetLatestCheckpoint(ctx context.Context, s types.Session, chainID int64) (types.Response, error) {
	return get(ctx, s, PathGetLatestCheckpoint, map[string]string{
		"chainId": formatChainID(chainID),
	})
}

// GetLatestCheckpointForAllChains returns the latest checkpoint of every chain the service posts to.
func GetLatestCheckpointForAllChains(ctx context.Context, s types.Session) (types.Response, error) {
	return get(ctx, s, PathGetLatestCheckpointForAllChains, nil)
}

// GetEarliestCheckpointCoveringLeafIndex returns the first checkpoint whose tree includes leafIndex.
func GetEarliestCheckpointCoveringLeafIndex(ctx context.Context, s types.Session, leafIndex string, chainID int64) (types.Response, error) {
	return get(ctx, s, PathGetEarliestCheckpointCoveringLeafIndex, map[string]string{
		"leafIndex": leafIndex,
		"chainId":   formatChainID(chainID),
	})
}

// GetCheckpointByTransactionHash returns the checkpoint posted in txHash.
func GetCheckpointByTransactionHash(ctx context.Context, s types.Session, txHash string) (types.Response, error) {
	return get(ctx, s, PathGetCheckpointByTransactionHash, map[string]string{
		"txHash": txHash,
	})
}

// GetCheckpointByTimestamp returns the first checkpoint at or after timestamp (unix seconds).
func GetCheckpointByTimestamp(ctx context.Context, s types.Session, timestamp string, chainID int64) (types.Response, error) {
	return get(ctx, s, PathGetCheckpointByTimestamp, map[string]string{
		"timestamp": timestamp,
		"chainId":   formatChainID(chainID),
	})
}

func formatChainID(chainID int64) string {
	return strconv.FormatInt(chainID, 10)
}
