package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/framing"
	"github.com/authzed/readkit/pkg/source"
)

type recordDecoder func(ctx context.Context, r io.Reader, name string, out io.Writer) (int, error)

func NewFramesCommand(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "frames [files...]",
		Short:   "print the length-prefixed frames of each input",
		Long:    "Print the frames of each input, where every frame is a 4-byte big-endian payload length followed by the payload.",
		Example: "  readkit frames capture.bin",
		RunE: decodeRunE(config, "frames", func(ctx context.Context, r io.Reader, name string, out io.Writer) (int, error) {
			frames := framing.LengthPrefixed(source.WithMetrics(source.FromReader(r), "frames"), config.FramingOptions()...)
			return printPayloads(ctx, frames.All(ctx), name, out)
		}),
	}
}

func NewNetstringsCommand(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:     "netstrings [files...]",
		Short:   "print the netstrings of each input",
		Example: "  printf '5:hello,5:world,' | readkit netstrings",
		RunE: decodeRunE(config, "netstrings", func(ctx context.Context, r io.Reader, name string, out io.Writer) (int, error) {
			records := framing.Netstrings(source.WithMetrics(source.FromReader(r), "netstrings"), config.FramingOptions()...)
			return printPayloads(ctx, records.All(ctx), name, out)
		}),
	}
}

func NewLinesCommand(config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lines [files...]",
		Short: "print the lines of each input, prefixed with their position",
		RunE: decodeRunE(config, "lines", func(ctx context.Context, r io.Reader, name string, out io.Writer) (int, error) {
			lines := framing.Lines(source.WithMetrics(source.FromRuneReader(r), "lines"), config.FramingOptions()...)

			count := 0
			for line, err := range lines.All(ctx) {
				if err != nil {
					return count, fmt.Errorf("line %d: %w", count+1, err)
				}
				count++
				if _, err := fmt.Fprintf(out, "%s:%d: %s\n", name, count, line); err != nil {
					return count, err
				}
			}
			return count, nil
		}),
	}
}

// printPayloads writes one line per record, numbering records from 1 like
// lines are.
func printPayloads(ctx context.Context, records iter.Seq2[[]byte, error], name string, out io.Writer) (int, error) {
	count := 0
	for payload, err := range records {
		if err != nil {
			return count, fmt.Errorf("record %d: %w", count+1, err)
		}
		count++
		if _, err := fmt.Fprintf(out, "%s\t%d\t%s\t%q\n", name, count, humanize.Bytes(uint64(len(payload))), payload); err != nil {
			return count, err
		}
	}
	return count, nil
}

func decodeRunE(config *Config, format string, decode recordDecoder) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		for _, in := range inputsFromArgs(cmd, config, args) {
			if err := decodeInput(ctx, in, format, decode, cmd.OutOrStdout()); err != nil {
				return err
			}
		}
		return nil
	}
}

func decodeInput(ctx context.Context, in input, format string, decode recordDecoder, out io.Writer) error {
	r, err := in.open()
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer r.Close()

	count, err := decode(ctx, r, in.name, out)
	if err != nil {
		return fmt.Errorf("%s: %w", in.name, err)
	}

	logger := logging.Component("decode")
	logger.Debug().Str("input", in.name).Str("format", format).Int("records", count).Msg("decoded input")
	return nil
}
