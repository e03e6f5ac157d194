package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	witnesserrors "github.com/WitnessCo/client-go/client/internal/errors"
	"github.com/WitnessCo/client-go/client/internal/types"
)

// Remote routes, relative to the base URL.
const (
	PathHealth                                 = "/_health"
	PathGetLatestCheckpoint                    = "/getLatestCheckpoint"
	PathGetLatestCheckpointForAllChains        = "/getLatestCheckpointForAllChains"
	PathGetEarliestCheckpointCoveringLeafIndex = "/getEarliestCheckpointCoveringLeafIndex"
	PathGetCheckpointByTransactionHash         = "/getCheckpointByTransactionHash"
	PathGetCheckpointByTimestamp               = "/getCheckpointByTimestamp"
	PathGetLeafIndexByHash                     = "/getLeafIndexByHash"
	PathGetTimestampByLeafHash                 = "/getTimestampByLeafHash"
	PathGetNodeHashByID                        = "/getNodeHashById"
	PathGetProofForLeafHash                    = "/getProofForLeafHash"
	PathPostProof                              = "/postProof"
	PathGetTreeState                           = "/getTreeState"
	PathPostLeafHash                           = "/postLeafHash"
)

// get issues a GET with the given query parameters. A nil or empty map sends no query.
func get(ctx context.Context, s types.Session, path string, params map[string]string) (types.Response, error) {
	req := s.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(path)
	return handleResponse(resp, err)
}

// post issues a POST with body encoded as JSON by the session.
func post(ctx context.Context, s types.Session, path string, body any) (types.Response, error) {
	resp, err := s.R().SetContext(ctx).SetBody(body).Post(path)
	return handleResponse(resp, err)
}

// handleResponse normalises every outcome of a call into a JSON object or a *errors.Error.
func handleResponse(resp *resty.Response, err error) (types.Response, error) {
	if err != nil {
		return nil, witnesserrors.NewTransportError(err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, witnesserrors.FromHTTPResponse(resp.StatusCode(), resp.Status(), requestURL(resp), resp.Body())
	}

	obj, err := types.DecodeObject(resp.Body())
	if err != nil {
		return nil, witnesserrors.NewInvalidJSONError(resp.StatusCode(), err)
	}
	return obj, nil
}

func requestURL(resp *resty.Response) string {
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		return resp.RawResponse.Request.URL.String()
	}
	if resp.Request != nil {
		return resp.Request.URL
	}
	return ""
}
