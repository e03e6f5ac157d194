package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/WitnessCo/client-go/client"
	"github.com/WitnessCo/client-go/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	baseURL string
	token   string
	debug   bool
	timeout time.Duration
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Config{BaseURL: client.DefaultBaseURL, Timeout: 30 * time.Second}
	}
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "witness",
		Short:         "Query and write to the Witness Merkle-tree timestamping API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.InitLoggerTo(cmd.ErrOrStderr())
			if g.debug {
				config.SetLogLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				config.SetLogLevel(cfg.Level())
			}
			if cfgErr != nil {
				return fmt.Errorf("load config: %w", cfgErr)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.baseURL, "base-url", cfg.BaseURL, "Witness API base URL (env WITNESS_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&g.token, "token", cfg.Token, "Bearer token for write endpoints (env WITNESS_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&g.debug, "debug", "d", cfg.Debug, "Log HTTP requests and responses")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", cfg.Timeout, "HTTP timeout per request")

	rootCmd.AddCommand(
		newHealthCmd(g),
		newLatestCheckpointCmd(g),
		newLatestCheckpointsCmd(g),
		newCheckpointCoveringCmd(g),
		newCheckpointByTxCmd(g),
		newCheckpointByTimestampCmd(g),
		newLeafIndexCmd(g),
		newLeafTimestampCmd(g),
		newNodeHashCmd(g),
		newProofCmd(g),
		newVerifyProofCmd(g),
		newTreeStateCmd(g),
		newPostLeafCmd(g),
		newWaitCheckpointCmd(g),
	)
	return rootCmd
}

func (g *globalFlags) newClient() (*client.Client, error) {
	opts := []client.Option{
		client.WithBaseURL(g.baseURL),
		client.WithToken(g.token),
		client.WithDebugLogging(g.debug),
	}
	if g.timeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(g.timeout))
	}
	return client.New(opts...)
}

// call runs one API call and prints its response as indented JSON.
func (g *globalFlags) call(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) (client.Response, error)) error {
	c, err := g.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	start := time.Now()
	res, err := fn(cmd.Context(), c)
	elapsed := time.Since(start)
	if err != nil {
		log.Debug().
			Err(err).
			Str("command", cmd.Name()).
			Str("base_url", c.BaseURL()).
			Dur("elapsed", elapsed).
			Msg("request failed")
		return err
	}
	log.Debug().
		Str("command", cmd.Name()).
		Dur("elapsed", elapsed).
		Msg("request completed")

	return printJSON(cmd, res)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
