package client

// RequestOption sets an optional query parameter on a single call. Options
// that an endpoint does not accept are ignored by it.
type RequestOption func(*requestOptions)

type requestOptions struct {
	chainID        int64
	targetTreeSize string
}

// WithChainID selects the chain for chain-scoped endpoints. Without it,
// DefaultChainID (8453) is sent.
func WithChainID(chainID int64) RequestOption {
	return func(o *requestOptions) { o.chainID = chainID }
}

// WithTargetTreeSize asks GetProofForLeafHash for a proof against a specific
// tree size. An empty size leaves the parameter out of the request.
func WithTargetTreeSize(size string) RequestOption {
	return func(o *requestOptions) { o.targetTreeSize = size }
}

func collectRequestOptions(opts []RequestOption) requestOptions {
	o := requestOptions{chainID: DefaultChainID}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
