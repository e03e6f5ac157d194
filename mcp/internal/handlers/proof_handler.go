package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client"
)

// ProofHandler exposes get_proof_for_leaf_hash and verify_proof.
type ProofHandler struct {
	client *client.Client
}

func NewProofHandler(c *client.Client) *ProofHandler { return &ProofHandler{client: c} }

func (ph *ProofHandler) RegisterTools(s *server.MCPServer) error {
	get := mcp.NewTool("get_proof_for_leaf_hash",
		mcp.WithDescription("Return a Merkle inclusion proof for a leaf hash against a checkpointed tree size"),
		mcp.WithString("leaf_hash", mcp.Required(), mcp.Description("Leaf hash, 0x-prefixed hex")),
		mcp.WithString("target_tree_size", mcp.Description("Tree size to prove against; defaults to the latest checkpoint")),
		withChainID(),
	)
	verify := mcp.NewTool("verify_proof",
		mcp.WithDescription("Ask the Witness API to verify a proof; returns {\"success\": bool}. Pass the JSON returned by get_proof_for_leaf_hash unchanged"),
		mcp.WithString("proof", mcp.Required(), mcp.Description("Proof as a JSON object string")),
	)
	s.AddTool(get, ph.handleGetProof)
	s.AddTool(verify, ph.handleVerifyProof)
	return nil
}

func (ph *ProofHandler) handleGetProof(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leafHash, err := req.RequireString("leaf_hash")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	size := req.GetString("target_tree_size", "")
	log.Debug().Str("leaf_hash", leafHash).Str("target_tree_size", size).Msg("get_proof_for_leaf_hash invoked")

	start := time.Now()
	res, err := ph.client.GetProofForLeafHash(ctx, leafHash,
		client.WithTargetTreeSize(size),
		client.WithChainID(chainID(req)))
	return toolResult("get_proof_for_leaf_hash", start, res, err)
}

func (ph *ProofHandler) handleVerifyProof(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("proof")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	proof, err := client.DecodeResponse([]byte(raw))
	if err != nil {
		return mcp.NewToolResultError("proof must be a JSON object: " + err.Error()), nil
	}

	start := time.Now()
	res, err := ph.client.PostProof(ctx, proof)
	return toolResult("verify_proof", start, res, err)
}
