package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/authzed/readkit/internal/logging"
)

func RegisterRootFlags(cmd *cobra.Command, config *Config) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cobraotel.New(cmd.Use).RegisterFlags(cmd.PersistentFlags())
	RegisterConfigFlags(cmd.PersistentFlags(), config)
}

// DefaultPreRunE sets up viper, zerolog, and OpenTelemetry flag handling for a
// command, then optionally prints the resolved configuration.
func DefaultPreRunE(programName string, config *Config) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, programName+".env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
		cobraotel.New(programName,
			cobraotel.WithLogger(zerologr.New(&logging.Logger)),
		).RunE(),
		func(cmd *cobra.Command, args []string) error {
			logging.Debug().Fields(config.DebugMap()).Msg("configuration")
			if !config.PrintConfig {
				return nil
			}

			encoded, err := json.MarshalIndent(config.DebugMap(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode configuration: %w", err)
			}
			_, err = fmt.Fprintln(cmd.ErrOrStderr(), string(encoded))
			return err
		},
	)
}

// DefaultPostRunE writes the readkit metrics once a command has finished, if
// requested.
func DefaultPostRunE(config *Config) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		if !config.PrintMetrics {
			return nil
		}
		return WriteMetrics(cmd.ErrOrStderr(), prometheus.DefaultGatherer)
	}
}

func NewRootCommand(programName string, config *Config) *cobra.Command {
	return &cobra.Command{
		Use:                programName,
		Short:              "Decode and identify record-oriented streams",
		Long:               "A toolkit for reading length-prefixed frames, netstrings and lines, and for identifying files by their magic numbers",
		PersistentPreRunE:  DefaultPreRunE(programName, config),
		PersistentPostRunE: DefaultPostRunE(config),
		SilenceErrors:      true,
		SilenceUsage:       true,
	}
}
