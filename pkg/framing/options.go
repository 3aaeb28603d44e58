// Package framing decodes record-oriented byte and text streams on top of
// cursors and views: length-prefixed frames, netstrings and lines.
package framing

const (
	// DefaultMaxFrameSize is the largest frame or netstring payload accepted
	// unless overridden with WithMaxFrameSize.
	DefaultMaxFrameSize = 16 << 20

	// DefaultMaxLineLength is the longest line, in runes, accepted unless
	// overridden with WithMaxLineLength.
	DefaultMaxLineLength = 64 << 10
)

type options struct {
	maxFrameSize  int
	maxLineLength int
	keepCR        bool
}

// Option configures a decoder.
type Option func(*options)

// WithMaxFrameSize sets the largest payload accepted by the frame and netstring
// decoders.
func WithMaxFrameSize(size int) Option {
	return func(o *options) {
		o.maxFrameSize = size
	}
}

// WithMaxLineLength sets the longest line, in runes and excluding the line
// terminator, accepted by the line decoder.
func WithMaxLineLength(length int) Option {
	return func(o *options) {
		o.maxLineLength = length
	}
}

// WithKeepCR keeps a carriage return that precedes a line feed instead of
// stripping it.
func WithKeepCR() Option {
	return func(o *options) {
		o.keepCR = true
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxFrameSize:  DefaultMaxFrameSize,
		maxLineLength: DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
