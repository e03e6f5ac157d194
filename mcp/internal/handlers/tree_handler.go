package handlers

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/WitnessCo/client-go/client"
)

// TreeHandler exposes witness_health and get_tree_state.
type TreeHandler struct {
	client *client.Client
}

func NewTreeHandler(c *client.Client) *TreeHandler { return &TreeHandler{client: c} }

func (th *TreeHandler) RegisterTools(s *server.MCPServer) error {
	health := mcp.NewTool("witness_health",
		mcp.WithDescription("Check that the Witness API is reachable"),
	)
	state := mcp.NewTool("get_tree_state",
		mcp.WithDescription("Return the current size and root hash of the Witness tree, plus the latest checkpointed size"),
	)
	s.AddTool(health, th.handleHealth)
	s.AddTool(state, th.handleTreeState)
	return nil
}

func (th *TreeHandler) handleHealth(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	res, err := th.client.Health(ctx)
	return toolResult("witness_health", start, res, err)
}

func (th *TreeHandler) handleTreeState(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	res, err := th.client.GetTreeState(ctx)
	return toolResult("get_tree_state", start, res, err)
}
