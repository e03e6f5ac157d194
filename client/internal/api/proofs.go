package api

import (
	"context"
	"encoding/json"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// GetProofForLeafHash returns the inclusion proof for leafHash. targetTreeSize
// is sent only when non-empty; the server then picks the latest checkpointed size.
func GetProofForLeafHash(ctx context.Context, s types.Session, leafHash, targetTreeSize string, chainID int64) (types.Response, error) {
	params := map[string]string{
		"leafHash": leafHash,
		"chainId":  formatChainID(chainID),
	}
	if targetTreeSize != "" {
		params["targetTreeSize"] = targetTreeSize
	}
	return get(ctx, s, PathGetProofForLeafHash, params)
}

// PostProof submits proof for server-side verification. The value is encoded
// as-is, so a Response from GetProofForLeafHash can be posted back unchanged.
func PostProof(ctx context.Context, s types.Session, proof any) (types.Response, error) {
	if proof == nil {
		proof = json.RawMessage("null")
	}
	return post(ctx, s, PathPostProof, proof)
}
