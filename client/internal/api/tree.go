package api

import (
	"context"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// GetNodeHashByID returns the hash of the node at (level, index).
func GetNodeHashByID(ctx context.Context, s types.Session, level, index string) (types.Response, error) {
	return get(ctx, s, PathGetNodeHashByID, map[string]string{
		"level": level,
		"index": index,
	})
}

// GetTreeState returns the current state of the tree.
func GetTreeState(ctx context.Context, s types.Session) (types.Response, error) {
	return get(ctx, s, PathGetTreeState, nil)
}
