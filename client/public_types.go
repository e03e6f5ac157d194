package client

import "github.com/WitnessCo/client-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Response is the untyped JSON object returned by every endpoint.
	//
	// A successful response whose body is not a JSON object fails with an
	// *Error whose Message is InvalidJSONMessage. When the body was valid JSON
	// of another shape (an array, a string), the error also matches
	// errors.Is(err, ErrNotObject); otherwise it unwraps to the decoder error.
	Response = types.Response
	// Proof is a typed body for PostProof.
	Proof = types.Proof
)

const (
	// DefaultChainID is sent on chain-scoped endpoints unless WithChainID is given.
	DefaultChainID = types.DefaultChainID
	// DefaultBaseURL is the production Witness API origin.
	DefaultBaseURL = types.DefaultBaseURL
)

// Version of this client, reported in the default User-Agent.
const Version = "0.1.0"

// ErrNotObject marks a response body that is valid JSON but not an object.
var ErrNotObject = types.ErrNotObject

// DecodeResponse decodes body the way the client decodes responses: a single
// JSON object, numbers kept as json.Number.
func DecodeResponse(body []byte) (Response, error) {
	return types.DecodeObject(body)
}
