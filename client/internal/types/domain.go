package types

// ------------------------------
// Witness Domain Constants
// ------------------------------

// DefaultChainID is the chain queried when a chain-scoped call does not name one (Base mainnet).
const DefaultChainID int64 = 8453

// DefaultBaseURL is the production Witness API origin.
const DefaultBaseURL = "https://api.witness.co"

// Proof is the body accepted by /postProof.
//
// Hashes and the leaf index are sent as strings; the server treats indexes as
// big integers.
type Proof struct {
	LeftHashes     []string `json:"leftHashes"`
	RightHashes    []string `json:"rightHashes"`
	TargetRootHash string   `json:"targetRootHash"`
	LeafHash       string   `json:"leafHash"`
	LeafIndex      string   `json:"leafIndex"`
}
