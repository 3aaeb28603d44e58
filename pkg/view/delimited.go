package view

import (
	"context"
	"slices"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerrors"
	"github.com/authzed/readkit/pkg/source"
)

// DelimitedView yields elements from a borrowed cursor until the elements most
// recently yielded equal the terminator, or the source ends. The terminator is
// yielded as part of the sequence. Found reports which of the two happened.
type DelimitedView[T comparable] struct {
	cursor     *cursor.Cursor[T]
	terminator []T
	recent     *window[T]
	count      int
	found      bool
	ended      bool
}

var _ source.Source[byte] = (*DelimitedView[byte])(nil)

func newDelimited[T comparable](c *cursor.Cursor[T], terminator []T) *DelimitedView[T] {
	if len(terminator) == 0 {
		readerrors.MustPanic("terminator must not be empty")
	}

	return &DelimitedView[T]{
		cursor:     c,
		terminator: slices.Clone(terminator),
		recent:     newWindow[T](len(terminator)),
	}
}

// Next returns the next element, or reports the end once the terminator has
// been yielded or the source has ended.
func (v *DelimitedView[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if v.found || v.ended {
		return zero, false, nil
	}

	value, ok, err := v.cursor.Next(ctx)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		v.ended = true
		return zero, false, nil
	}

	v.count++
	v.recent.push(value)
	v.found = v.recent.equals(v.terminator)
	return value, true, nil
}

// Found returns whether the terminator has been yielded.
func (v *DelimitedView[T]) Found() bool {
	return v.found
}

// Count returns the number of elements yielded so far, terminator included.
func (v *DelimitedView[T]) Count() int {
	return v.count
}

// ReadUntil reads from c up to and including the first occurrence of
// terminator.
//
// If maxSize elements have been read without a match, it returns a
// *TerminationNotFoundError. If the source ends first it returns the same error,
// unless nothing at all was read, in which case it returns (nil, false, nil).
// The elements read before a failure are consumed.
//
// It panics if terminator is empty or maxSize is negative.
func ReadUntil[T comparable](ctx context.Context, c *cursor.Cursor[T], terminator []T, maxSize int) ([]T, bool, error) {
	if maxSize < 0 {
		readerrors.MustPanic("maximum size %d must not be negative", maxSize)
	}

	v := newDelimited(c, terminator)
	var out []T
	for {
		if len(out) == maxSize {
			return nil, false, &TerminationNotFoundError{Maximum: maxSize, Actual: len(out)}
		}

		value, ok, err := v.Next(ctx)
		if err != nil {
			return nil, false, err
		}

		if !ok {
			if len(out) == 0 {
				return nil, false, nil
			}
			return nil, false, &TerminationNotFoundError{Maximum: maxSize, Actual: len(out)}
		}

		out = append(out, value)
		if v.Found() {
			return out, true, nil
		}
	}
}

// ReadUntilExclusive is ReadUntil with the trailing terminator removed from the
// result. The terminator is still consumed from c.
func ReadUntilExclusive[T comparable](ctx context.Context, c *cursor.Cursor[T], terminator []T, maxSize int) ([]T, bool, error) {
	out, ok, err := ReadUntil(ctx, c, terminator, maxSize)
	if err != nil || !ok {
		return nil, ok, err
	}
	return out[:len(out)-len(terminator)], true, nil
}
