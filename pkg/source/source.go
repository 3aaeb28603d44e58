// Package source defines the producer contract consumed by cursors, along with
// adapters from slices, strings, readers, channels and iterators.
//
// A Source is an opaque, forward-only producer: every call to Next returns the
// next element, reports the end of the sequence, or fails. Sources may block
// and should honor cancellation of the supplied context.
package source

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// Source produces elements one at a time.
//
// Next returns (value, true, nil) for an element, (zero, false, nil) once the
// sequence has ended, and (zero, false, err) on failure. A source that has
// ended keeps reporting the end on subsequent calls.
type Source[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Func adapts a function to the Source interface.
type Func[T any] func(ctx context.Context) (T, bool, error)

// Next calls f.
func (f Func[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Empty returns a source that has already ended.
func Empty[T any]() Source[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		var zero T
		return zero, false, nil
	})
}

// SliceSource yields the elements of a slice in order. It does not copy the slice.
type SliceSource[T any] struct {
	items []T
	pos   int
}

var _ Source[byte] = (*SliceSource[byte])(nil)

// FromSlice returns a source over items.
func FromSlice[T any](items []T) *SliceSource[T] {
	return &SliceSource[T]{items: items}
}

// Bytes returns a source over the given bytes.
func Bytes(b []byte) *SliceSource[byte] {
	return FromSlice(b)
}

// Runes returns a source over the runes of s.
func Runes(s string) *SliceSource[rune] {
	return FromSlice([]rune(s))
}

// Next implements Source.
func (s *SliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	if s.pos >= len(s.items) {
		return zero, false, nil
	}

	value := s.items[s.pos]
	s.pos++
	return value, true, nil
}

// Remaining returns the number of elements not yet produced.
func (s *SliceSource[T]) Remaining() int {
	return len(s.items) - s.pos
}

// FromReader returns a byte source reading from r. Readers that do not
// implement io.ByteReader are wrapped in a bufio.Reader. io.EOF ends the
// sequence; any other error is returned as a failure.
func FromReader(r io.Reader) Source[byte] {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return Func[byte](func(ctx context.Context) (byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return b, true, nil
	})
}

// FromRuneReader returns a rune source reading UTF-8 from r. Readers that do
// not implement io.RuneReader are wrapped in a bufio.Reader.
func FromRuneReader(r io.Reader) Source[rune] {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}

	return Func[rune](func(ctx context.Context) (rune, bool, error) {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}

		ch, _, err := rr.ReadRune()
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return ch, true, nil
	})
}

// Concat returns a source yielding every element of each source in turn.
func Concat[T any](sources ...Source[T]) Source[T] {
	remaining := sources
	return Func[T](func(ctx context.Context) (T, bool, error) {
		for len(remaining) > 0 {
			value, ok, err := remaining[0].Next(ctx)
			if err != nil {
				var zero T
				return zero, false, err
			}
			if ok {
				return value, true, nil
			}
			remaining = remaining[1:]
		}

		var zero T
		return zero, false, nil
	})
}
