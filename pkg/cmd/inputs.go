package cmd

import (
	"io"
	"os"

	"github.com/jzelinskie/stringz"
	"github.com/spf13/cobra"
)

type input struct {
	name string
	open func() (io.ReadCloser, error)
}

// inputsFromArgs returns the files named by args, with "-" or no arguments at
// all standing for standard input.
func inputsFromArgs(cmd *cobra.Command, config *Config, args []string) []input {
	if len(args) == 0 {
		args = []string{"-"}
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		if path == "-" {
			inputs = append(inputs, input{
				name: stringz.DefaultEmpty(config.StdinName, "stdin"),
				open: func() (io.ReadCloser, error) {
					return io.NopCloser(cmd.InOrStdin()), nil
				},
			})
			continue
		}

		inputs = append(inputs, input{
			name: path,
			open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}
	return inputs
}
