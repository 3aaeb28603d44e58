package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/magic"
	"github.com/authzed/readkit/pkg/source"
)

func NewIdentifyCommand(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "identify [files...]",
		Short:   "identify the type of each input from its magic number",
		Example: "  readkit identify *.qoi *.ico",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := identifyAll(cmd.Context(), inputsFromArgs(cmd, config, args), config.Concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, result := range results {
				if err := printIdentified(out, result); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

type identified struct {
	name   string
	result *magic.Result
}

// identifyAll identifies the inputs concurrently, at most limit at a time, and
// returns the results in the order of inputs.
func identifyAll(ctx context.Context, inputs []input, limit int) ([]identified, error) {
	results := make([]identified, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, in := range inputs {
		g.Go(func() error {
			result, err := identifyInput(ctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			results[i] = identified{name: in.name, result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func identifyInput(ctx context.Context, in input) (*magic.Result, error) {
	r, err := in.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer r.Close()

	result, err := magic.Identify(ctx, cursor.New(source.WithMetrics(source.FromReader(r), "identify")))
	if err != nil {
		return nil, err
	}

	if result == nil {
		logger := logging.Component("identify")
		logger.Debug().Str("input", in.name).Msg("no magic number matched")
	}
	return result, nil
}

func printIdentified(out io.Writer, id identified) error {
	if id.result == nil {
		_, err := fmt.Fprintf(out, "%s: %s\n", id.name, color.YellowString("unknown"))
		return err
	}

	if _, err := fmt.Fprintf(out, "%s: %s (%s)\n", id.name, color.GreenString(id.result.Tag.Name), id.result.Tag.Mime); err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(id.result.Details)) {
		switch value := id.result.Details[key].(type) {
		case []string:
			if _, err := fmt.Fprintf(out, "  %s:\n", key); err != nil {
				return err
			}
			for _, item := range value {
				if _, err := fmt.Fprintf(out, "    - %s\n", item); err != nil {
					return err
				}
			}

		default:
			if _, err := fmt.Fprintf(out, "  %s: %v\n", key, value); err != nil {
				return err
			}
		}
	}
	return nil
}
