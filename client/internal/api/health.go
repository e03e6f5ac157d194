package api

import (
	"context"

	"github.com/WitnessCo/client-go/client/internal/types"
)

// Health calls the liveness endpoint.
func Health(ctx context.Context, s types.Session) (types.Response, error) {
	return get(ctx, s, PathHealth, nil)
}
