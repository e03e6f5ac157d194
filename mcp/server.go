// Package mcp serves the Witness API to MCP hosts as a set of tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/WitnessCo/client-go/client"
	"github.com/WitnessCo/client-go/internal/config"
	"github.com/WitnessCo/client-go/mcp/internal/handlers"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing every Witness tool backed by c.
func NewServer(name, version string, c *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	registerers := []struct {
		name string
		h    toolRegisterer
	}{
		{"tree", handlers.NewTreeHandler(c)},
		{"checkpoint", handlers.NewCheckpointHandler(c)},
		{"leaf", handlers.NewLeafHandler(c)},
		{"proof", handlers.NewProofHandler(c)},
	}
	for _, r := range registerers {
		if err := r.h.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", r.name, err)
		}
	}
	return s, nil
}

// RunMCPServer loads configuration from the environment and serves until
// stdin closes (stdio) or a shutdown signal arrives (HTTP).
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	config.InitLogger()
	config.SetLogLevel(cfg.Level())

	opts := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithToken(cfg.Token),
		client.WithDebugLogging(cfg.Debug),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(cfg.Timeout))
	}
	witness, err := client.New(opts...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() { _ = witness.Close() }()
	log.Info().Str("base_url", witness.BaseURL()).Bool("token", cfg.Token != "").Msg("Witness client created")

	s, err := NewServer(cfg.MCPName, cfg.MCPVersion, witness)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		log.Info().Msg("Starting Witness MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

func serveHTTP(s *server.MCPServer, cfg config.Config) error {
	log.Info().Str("addr", cfg.MCPAddr).Msg("Starting Witness MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:         cfg.MCPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.MCPReadTimeout,
		WriteTimeout: 0, // SSE streams have no deadline
		IdleTimeout:  cfg.MCPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.MCPShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio picks stdio when MCP_STDIO=true or stdin is not a terminal.
// MCP_HTTP=true forces HTTP.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	if fi, err := os.Stdin.Stat(); err == nil {
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
