package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/cmd"
	"github.com/authzed/readkit/pkg/framing"
	"github.com/authzed/readkit/pkg/view"
)

func main() {
	// Set up root logger
	// This will typically be overwritten by the logging setup for a given command.
	logging.SetGlobalLogger(zerolog.New(os.Stderr).Level(zerolog.InfoLevel))

	config := cmd.NewConfigWithOptionsAndDefaults()
	rootCmd := cmd.NewCommandTree("readkit", config)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes malformed input from other failures.
func exitCode(err error) int {
	for _, malformed := range []error{
		view.ErrInsufficientElements,
		view.ErrTerminationNotFound,
		framing.ErrMalformed,
		framing.ErrFrameTooLarge,
	} {
		if errors.Is(err, malformed) {
			return 2
		}
	}
	return 1
}
