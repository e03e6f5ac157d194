// Command witness is a command-line client for the Witness API.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
