package cmd

import "github.com/spf13/cobra"

// NewCommandTree returns the root command with every readkit subcommand
// registered, all sharing the given config.
func NewCommandTree(programName string, config *Config) *cobra.Command {
	rootCmd := NewRootCommand(programName, config)
	RegisterRootFlags(rootCmd, config)

	rootCmd.AddCommand(
		NewFramesCommand(config),
		NewNetstringsCommand(config),
		NewLinesCommand(config),
		NewIdentifyCommand(config),
		NewVersionCommand(programName),
	)
	return rootCmd
}
