package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client"
)

// LeafHandler exposes leaf submission and leaf lookups.
type LeafHandler struct {
	client *client.Client
}

func NewLeafHandler(c *client.Client) *LeafHandler { return &LeafHandler{client: c} }

func (lh *LeafHandler) RegisterTools(s *server.MCPServer) error {
	// post_leaf_hash needs WITNESS_TOKEN on the production API
	post := mcp.NewTool("post_leaf_hash",
		mcp.WithDescription("Submit a 32-byte hash as a new leaf; returns its leaf index. It is timestamped once a later checkpoint covers it"),
		mcp.WithString("leaf_hash", mcp.Required(), mcp.Description("Leaf hash, 0x-prefixed hex")),
	)
	index := mcp.NewTool("get_leaf_index_by_hash",
		mcp.WithDescription("Return the index of a previously submitted leaf hash"),
		mcp.WithString("leaf_hash", mcp.Required(), mcp.Description("Leaf hash, 0x-prefixed hex")),
	)
	timestamp := mcp.NewTool("get_timestamp_by_leaf_hash",
		mcp.WithDescription("Return the on-chain timestamp of the first checkpoint covering a leaf hash"),
		mcp.WithString("leaf_hash", mcp.Required(), mcp.Description("Leaf hash, 0x-prefixed hex")),
		withChainID(),
	)
	s.AddTool(post, lh.handlePostLeafHash)
	s.AddTool(index, lh.handleGetLeafIndex)
	s.AddTool(timestamp, lh.handleGetTimestamp)
	return nil
}

func (lh *LeafHandler) handlePostLeafHash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leafHash, err := req.RequireString("leaf_hash")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Str("leaf_hash", leafHash).Msg("post_leaf_hash invoked")

	start := time.Now()
	res, err := lh.client.PostLeafHash(ctx, leafHash)
	return toolResult("post_leaf_hash", start, res, err)
}

func (lh *LeafHandler) handleGetLeafIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leafHash, err := req.RequireString("leaf_hash")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	res, err := lh.client.GetLeafIndexByHash(ctx, leafHash)
	return toolResult("get_leaf_index_by_hash", start, res, err)
}

func (lh *LeafHandler) handleGetTimestamp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leafHash, err := req.RequireString("leaf_hash")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	res, err := lh.client.GetTimestampByLeafHash(ctx, leafHash, client.WithChainID(chainID(req)))
	return toolResult("get_timestamp_by_leaf_hash", start, res, err)
}
