package config

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"WITNESS_BASE_URL", "WITNESS_TOKEN", "WITNESS_TIMEOUT", "WITNESS_DEBUG", "DEBUG", "WITNESS_LOG_LEVEL", "LOG_LEVEL"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.witness.co", cfg.BaseURL)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, ":11547", cfg.MCPAddr)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("WITNESS_BASE_URL", "http://localhost:3000")
	t.Setenv("WITNESS_TOKEN", "secret")
	t.Setenv("WITNESS_TIMEOUT", "5s")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("WITNESS_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("WARN"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("verbose"))
}

func TestLoad_IgnoresUnprefixedVariables(t *testing.T) {
	for _, k := range []string{"WITNESS_BASE_URL", "WITNESS_TOKEN", "WITNESS_TIMEOUT", "WITNESS_MCP_ADDR"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("TOKEN", "unrelated-ci-secret")
	t.Setenv("BASE_URL", "http://elsewhere.example")
	t.Setenv("TIMEOUT", "1ms")
	t.Setenv("MCP_ADDR", ":1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, "https://api.witness.co", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, ":11547", cfg.MCPAddr)
}

func TestLoad_PrefixedMCPVariables(t *testing.T) {
	t.Setenv("WITNESS_MCP_ADDR", ":9000")
	t.Setenv("WITNESS_MCP_NAME", "witness-dev")
	t.Setenv("WITNESS_MCP_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.MCPAddr)
	assert.Equal(t, "witness-dev", cfg.MCPName)
	assert.Equal(t, 3*time.Second, cfg.MCPShutdownTimeout)
}
