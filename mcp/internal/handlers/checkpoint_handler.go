package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client"
)

// CheckpointHandler exposes the on-chain checkpoint lookups.
type CheckpointHandler struct {
	client *client.Client
}

func NewCheckpointHandler(c *client.Client) *CheckpointHandler {
	return &CheckpointHandler{client: c}
}

// RegisterTools registers get_latest_checkpoint, get_checkpoint_by_timestamp
// and get_checkpoint_by_transaction_hash.
func (ch *CheckpointHandler) RegisterTools(s *server.MCPServer) error {
	latest := mcp.NewTool("get_latest_checkpoint",
		mcp.WithDescription("Return the most recent on-chain checkpoint of the Witness tree (tree size, root hash, transaction)"),
		withChainID(),
	)
	byTimestamp := mcp.NewTool("get_checkpoint_by_timestamp",
		mcp.WithDescription("Return the checkpoint that was current at a unix timestamp"),
		mcp.WithString("timestamp", mcp.Required(), mcp.Description("Unix timestamp in seconds")),
		withChainID(),
	)
	byTx := mcp.NewTool("get_checkpoint_by_transaction_hash",
		mcp.WithDescription("Return the checkpoint written by an on-chain transaction"),
		mcp.WithString("tx_hash", mcp.Required(), mcp.Description("Transaction hash, 0x-prefixed")),
	)

	s.AddTool(latest, ch.handleLatest)
	s.AddTool(byTimestamp, ch.handleByTimestamp)
	s.AddTool(byTx, ch.handleByTransactionHash)
	return nil
}

func (ch *CheckpointHandler) handleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chain := chainID(req)
	log.Debug().Int64("chain_id", chain).Msg("get_latest_checkpoint invoked")

	start := time.Now()
	res, err := ch.client.GetLatestCheckpoint(ctx, client.WithChainID(chain))
	return toolResult("get_latest_checkpoint", start, res, err)
}

func (ch *CheckpointHandler) handleByTimestamp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ts, err := req.RequireString("timestamp")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chain := chainID(req)
	log.Debug().Str("timestamp", ts).Int64("chain_id", chain).Msg("get_checkpoint_by_timestamp invoked")

	start := time.Now()
	res, err := ch.client.GetCheckpointByTimestamp(ctx, ts, client.WithChainID(chain))
	return toolResult("get_checkpoint_by_timestamp", start, res, err)
}

func (ch *CheckpointHandler) handleByTransactionHash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	txHash, err := req.RequireString("tx_hash")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	log.Debug().Str("tx_hash", txHash).Msg("get_checkpoint_by_transaction_hash invoked")

	start := time.Now()
	res, err := ch.client.GetCheckpointByTransactionHash(ctx, txHash)
	return toolResult("get_checkpoint_by_transaction_hash", start, res, err)
}
