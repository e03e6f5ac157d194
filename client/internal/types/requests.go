package types

// ------------------------------
// Request Types
// ------------------------------

// PostLeafHashRequest is the body sent to /postLeafHash.
type PostLeafHashRequest struct {
	LeafHash string `json:"leafHash"`
}
