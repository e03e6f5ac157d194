package api

import (
	"context"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// GetLeafIndexByHash looks up the insertion index of leafHash.
func GetLeafIndexByHash(ctx context.Context, s types.Session, leafHash string) (types.Response, error) {
	return get(ctx, s, PathGetLeafIndexByHash, map[string]string{
		"leafHash": leafHash,
	})
}

// GetTimestampByLeafHash returns the timestamp of the checkpoint that first covered leafHash.
func GetTimestampByLeafHash(ctx context.Context, s types.Session, leafHash string, chainID int64) (types.Response, error) {
	return get(ctx, s, PathGetTimestampByLeafHash, map[string]string{
		"leafHash": leafHash,
		"chainId":  formatChainID(chainID),
	})
}

// PostLeafHash inserts leafHash into the tree.
func PostLeafHash(ctx context.Context, s types.Session, leafHash string) (types.Response, error) {
	return post(ctx, s, PathPostLeafHash, types.PostLeafHashRequest{LeafHash: leafHash})
}
