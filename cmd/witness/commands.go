package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WitnessCo/client-go/client"
)

func newHealthCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.Health(ctx)
			})
		},
	}
}

func newLatestCheckpointCmd(g *globalFlags) *cobra.Command {
	var chainID int64
	cmd := &cobra.Command{
		Use:   "latest-checkpoint",
		Short: "Show the latest on-chain checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetLatestCheckpoint(ctx, client.WithChainID(chainID))
			})
		},
	}
	addChainIDFlag(cmd, &chainID)
	return cmd
}

func newLatestCheckpointsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "latest-checkpoints",
		Short: "Show the latest checkpoint on every chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetLatestCheckpointForAllChains(ctx)
			})
		},
	}
}

func newCheckpointCoveringCmd(g *globalFlags) *cobra.Command {
	var leafIndex string
	var chainID int64
	cmd := &cobra.Command{
		Use:   "checkpoint-covering",
		Short: "Show the earliest checkpoint that includes a leaf index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetEarliestCheckpointCoveringLeafIndex(ctx, leafIndex, client.WithChainID(chainID))
			})
		},
	}
	cmd.Flags().StringVar(&leafIndex, "leaf-index", "", "Leaf index (required)")
	_ = cmd.MarkFlagRequired("leaf-index")
	addChainIDFlag(cmd, &chainID)
	return cmd
}

func newCheckpointByTxCmd(g *globalFlags) *cobra.Command {
	var txHash string
	cmd := &cobra.Command{
		Use:   "checkpoint-by-tx",
		Short: "Show the checkpoint written by a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetCheckpointByTransactionHash(ctx, txHash)
			})
		},
	}
	cmd.Flags().StringVar(&txHash, "tx-hash", "", "Transaction hash (required)")
	_ = cmd.MarkFlagRequired("tx-hash")
	return cmd
}

func newCheckpointByTimestampCmd(g *globalFlags) *cobra.Command {
	var timestamp string
	var chainID int64
	cmd := &cobra.Command{
		Use:   "checkpoint-by-timestamp",
		Short: "Show the checkpoint in effect at a unix timestamp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetCheckpointByTimestamp(ctx, timestamp, client.WithChainID(chainID))
			})
		},
	}
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Unix timestamp in seconds (required)")
	_ = cmd.MarkFlagRequired("timestamp")
	addChainIDFlag(cmd, &chainID)
	return cmd
}

func newLeafIndexCmd(g *globalFlags) *cobra.Command {
	var leafHash string
	cmd := &cobra.Command{
		Use:   "leaf-index",
		Short: "Look up the index of a leaf hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetLeafIndexByHash(ctx, leafHash)
			})
		},
	}
	addLeafHashFlag(cmd, &leafHash)
	return cmd
}

func newLeafTimestampCmd(g *globalFlags) *cobra.Command {
	var leafHash string
	var chainID int64
	cmd := &cobra.Command{
		Use:   "leaf-timestamp",
		Short: "Show when a leaf hash was checkpointed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetTimestampByLeafHash(ctx, leafHash, client.WithChainID(chainID))
			})
		},
	}
	addLeafHashFlag(cmd, &leafHash)
	addChainIDFlag(cmd, &chainID)
	return cmd
}

func newNodeHashCmd(g *globalFlags) *cobra.Command {
	var level, index string
	cmd := &cobra.Command{
		Use:   "node-hash",
		Short: "Show the hash of a tree node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetNodeHashByID(ctx, level, index)
			})
		},
	}
	cmd.Flags().StringVar(&level, "level", "", "Node level, 0 for leaves (required)")
	cmd.Flags().StringVar(&index, "index", "", "Node index within the level (required)")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}

func newProofCmd(g *globalFlags) *cobra.Command {
	var leafHash, targetTreeSize string
	var chainID int64
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Fetch an inclusion proof for a leaf hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetProofForLeafHash(ctx, leafHash,
					client.WithTargetTreeSize(targetTreeSize),
					client.WithChainID(chainID))
			})
		},
	}
	addLeafHashFlag(cmd, &leafHash)
	cmd.Flags().StringVar(&targetTreeSize, "target-tree-size", "", "Tree size to prove against (default: latest checkpoint)")
	addChainIDFlag(cmd, &chainID)
	return cmd
}

func newVerifyProofCmd(g *globalFlags) *cobra.Command {
	var proofArg string
	cmd := &cobra.Command{
		Use:   "verify-proof",
		Short: "Ask the API to verify a proof",
		Long: "Ask the API to verify a proof. --proof takes inline JSON, @path to read a file, " +
			"or - to read stdin. The output of `witness proof` can be piped in unchanged.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proof, err := readProof(cmd, proofArg)
			if err != nil {
				return err
			}
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.PostProof(ctx, proof)
			})
		},
	}
	cmd.Flags().StringVar(&proofArg, "proof", "-", "Proof JSON, @file, or - for stdin")
	return cmd
}

func newTreeStateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tree-state",
		Short: "Show the current tree state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.GetTreeState(ctx)
			})
		},
	}
}

func newPostLeafCmd(g *globalFlags) *cobra.Command {
	var leafHash string
	cmd := &cobra.Command{
		Use:   "post-leaf",
		Short: "Submit a leaf hash for timestamping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.PostLeafHash(ctx, leafHash)
			})
		},
	}
	addLeafHashFlag(cmd, &leafHash)
	return cmd
}

func newWaitCheckpointCmd(g *globalFlags) *cobra.Command {
	var leafHash string
	var chainID int64
	var interval, maxInterval, wait time.Duration
	cmd := &cobra.Command{
		Use:   "wait-checkpoint",
		Short: "Block until a leaf hash is covered by an on-chain checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if wait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
			}
			cmd.SetContext(ctx)
			return g.call(cmd, func(ctx context.Context, c *client.Client) (client.Response, error) {
				return c.WaitForCheckpointedLeafHash(ctx, leafHash,
					client.WithWaitChainID(chainID),
					client.WithPollInterval(interval),
					client.WithMaxPollInterval(maxInterval))
			})
		},
	}
	addLeafHashFlag(cmd, &leafHash)
	addChainIDFlag(cmd, &chainID)
	cmd.Flags().DurationVar(&interval, "poll-interval", time.Second, "Initial delay between polls")
	cmd.Flags().DurationVar(&maxInterval, "max-poll-interval", 30*time.Second, "Upper bound on the delay between polls")
	cmd.Flags().DurationVar(&wait, "wait", 10*time.Minute, "Give up after this long (0 waits forever)")
	return cmd
}

func addChainIDFlag(cmd *cobra.Command, chainID *int64) {
	cmd.Flags().Int64Var(chainID, "chain-id", client.DefaultChainID, "Chain ID")
}

func addLeafHashFlag(cmd *cobra.Command, leafHash *string) {
	cmd.Flags().StringVar(leafHash, "leaf-hash", "", "Leaf hash, 0x-prefixed hex (required)")
	_ = cmd.MarkFlagRequired("leaf-hash")
}

// readProof resolves --proof into raw JSON.
func readProof(cmd *cobra.Command, arg string) (json.RawMessage, error) {
	var raw []byte
	var err error
	switch {
	case arg == "-":
		raw, err = io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(arg, "@"):
		raw, err = os.ReadFile(strings.TrimPrefix(arg, "@"))
	default:
		raw = []byte(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("read proof: %w", err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("read proof: not valid JSON")
	}
	return json.RawMessage(raw), nil
}
