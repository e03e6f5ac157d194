package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client"
)

// toolResult turns an API call outcome into a tool result. API failures are
// reported as tool errors, never as protocol errors.
func toolResult(tool string, start time.Time, res client.Response, err error) (*mcp.CallToolResult, error) {
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call failed")
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
	}
	log.Debug().Str("tool", tool).Dur("elapsed", elapsed).Msg("tool call completed")

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: encode response: %v", tool, err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// chainID reads the optional chain_id argument.
func chainID(req mcp.CallToolRequest) int64 {
	return int64(req.GetInt("chain_id", int(client.DefaultChainID)))
}

func withChainID() mcp.ToolOption {
	return mcp.WithNumber("chain_id", mcp.Description("Chain ID of the checkpoint (default 8453, Base)"))
}
