// Package view implements scoped reads over a cursor: bounded reads that take
// between a minimum and a maximum number of elements, terminated reads that stop
// at a delimiter, and the handoff runner that lends a cursor to a transform and
// takes it back once the transform returns.
package view

import (
	"context"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerrors"
	"github.com/authzed/readkit/pkg/source"
)

// maxPrealloc caps the capacity reserved up front for a bounded read, so that a
// large maximum taken from untrusted input does not allocate before any element
// has arrived.
const maxPrealloc = 4096

// BoundedView yields at most max elements from a borrowed cursor. If the source
// ends before min elements were yielded, the read that observes the end fails
// with an *InsufficientElementsError.
type BoundedView[T any] struct {
	cursor   *cursor.Cursor[T]
	min      int
	max      int
	consumed int
}

var _ source.Source[byte] = (*BoundedView[byte])(nil)

func newBounded[T any](c *cursor.Cursor[T], min, max int) *BoundedView[T] {
	return &BoundedView[T]{cursor: c, min: min, max: max}
}

// Next returns the next element of the window.
func (v *BoundedView[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if v.consumed >= v.max {
		return zero, false, nil
	}

	value, ok, err := v.cursor.Next(ctx)
	if err != nil {
		return zero, false, err
	}

	if !ok {
		if v.consumed < v.min {
			return zero, false, &InsufficientElementsError{Minimum: v.min, Actual: v.consumed}
		}
		return zero, false, nil
	}

	v.consumed++
	readerrors.DebugAssertf(func() bool { return v.consumed <= v.max },
		"bounded view yielded %d elements past its maximum of %d", v.consumed, v.max)
	return value, true, nil
}

// Consumed returns the number of elements yielded so far.
func (v *BoundedView[T]) Consumed() int {
	return v.consumed
}

// Remaining returns how many more elements the view may yield at most.
func (v *BoundedView[T]) Remaining() int {
	return v.max - v.consumed
}

// ReadBounded reads between min and max elements from c.
//
// It returns (nil, false, nil) if the source had nothing left, even when min is
// zero. If the source ends after some but fewer than min elements, it returns an
// *InsufficientElementsError. Otherwise it returns up to max elements. With max
// of zero no element is consumed and the result is an empty slice whenever the
// source has more to give.
//
// It panics unless 0 <= min <= max.
func ReadBounded[T any](ctx context.Context, c *cursor.Cursor[T], min, max int) ([]T, bool, error) {
	checkBounds(min, max)

	more, err := c.HasMore(ctx)
	if err != nil || !more {
		return nil, false, err
	}

	v := newBounded(c, min, max)
	out := make([]T, 0, minInt(max, maxPrealloc))
	for {
		value, ok, err := v.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			break
		}
		out = append(out, value)
	}

	return out, true, nil
}

// ReadExactly reads exactly n elements from c. It is ReadBounded(ctx, c, n, n).
func ReadExactly[T any](ctx context.Context, c *cursor.Cursor[T], n int) ([]T, bool, error) {
	return ReadBounded(ctx, c, n, n)
}

func checkBounds(min, max int) {
	if min < 0 {
		readerrors.MustPanic("min %d must not be negative", min)
	}
	if min > max {
		readerrors.MustPanic("min %d exceeds max %d", min, max)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
