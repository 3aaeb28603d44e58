package cmd

import (
	"github.com/spf13/pflag"

	"github.com/authzed/readkit/pkg/framing"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.options.go . Config
type Config struct {
	// Decoding limits
	MaxFrameSize  int  `debugmap:"visible" default:"16777216"`
	MaxLineLength int  `debugmap:"visible" default:"65536"`
	KeepCR        bool `debugmap:"visible"`

	// Number of inputs identified at once
	Concurrency int `debugmap:"visible" default:"4"`

	// Name reported for standard input; "stdin" when empty
	StdinName string `debugmap:"visible"`

	PrintMetrics bool `debugmap:"visible"`
	PrintConfig  bool `debugmap:"visible"`
}

// RegisterConfigFlags binds the fields of config to flags, defaulting each to
// its `default` tag.
func RegisterConfigFlags(flags *pflag.FlagSet, config *Config) {
	defaults := NewConfigWithOptionsAndDefaults()

	flags.IntVar(&config.MaxFrameSize, "max-frame-size", defaults.MaxFrameSize, "largest frame or netstring payload accepted, in bytes")
	flags.IntVar(&config.MaxLineLength, "max-line-length", defaults.MaxLineLength, "longest line accepted, in characters")
	flags.BoolVar(&config.KeepCR, "keep-cr", defaults.KeepCR, "keep carriage returns at the end of lines")
	flags.IntVar(&config.Concurrency, "concurrency", defaults.Concurrency, "number of inputs to identify concurrently")
	flags.StringVar(&config.StdinName, "stdin-name", defaults.StdinName, `name reported for standard input (default "stdin")`)
	flags.BoolVar(&config.PrintMetrics, "print-metrics", defaults.PrintMetrics, "write readkit metrics to stderr after running")
	flags.BoolVar(&config.PrintConfig, "print-config", defaults.PrintConfig, "write the resolved configuration to stderr before running")
}

// FramingOptions returns the decoder options described by the config.
func (c *Config) FramingOptions() []framing.Option {
	opts := []framing.Option{
		framing.WithMaxFrameSize(c.MaxFrameSize),
		framing.WithMaxLineLength(c.MaxLineLength),
	}
	if c.KeepCR {
		opts = append(opts, framing.WithKeepCR())
	}
	return opts
}
