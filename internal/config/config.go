// Package config loads process configuration for the Witness CLI, MCP server
// and NewFromEnv from WITNESS_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is prepended to every variable name, e.g. WITNESS_BASE_URL.
const Prefix = "WITNESS"

// Config groups all tunables. Keys are derived from field names under the
// WITNESS_ prefix. Only Debug and LogLevel also accept the bare DEBUG and
// LOG_LEVEL variables.
type Config struct {
	BaseURL string        `split_words:"true" default:"https://api.witness.co"`
	Token   string        `split_words:"true"`
	Timeout time.Duration `split_words:"true" default:"30s"`
	Debug   bool          `envconfig:"DEBUG"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	MCPName            string        `split_words:"true" default:"witness-mcp-server"`
	MCPVersion         string        `split_words:"true" default:"0.1.0"`
	MCPAddr            string        `split_words:"true" default:":11547"`
	MCPShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	MCPReadTimeout     time.Duration `split_words:"true" default:"5s"`
	MCPIdleTimeout     time.Duration `split_words:"true" default:"120s"`
}

// Load populates Config from environment variables (prefix WITNESS_).
func Load() (Config, error) {
	var c Config
	return c, envconfig.Process(Prefix, &c)
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	return ParseLogLevel(c.LogLevel)
}

// ParseLogLevel maps debug|info|warn|error to a zerolog level. Anything else is info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
