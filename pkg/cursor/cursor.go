// Package cursor implements a single-lookahead cursor over a source.
//
// A Cursor owns its source exclusively. Exactly one reader may use a given
// source at a time: when a cursor is lent to a view with Take, the parent must
// not be read until Restore hands the advanced state back. Cursors are not safe
// for concurrent use.
package cursor

import (
	"context"

	"github.com/authzed/readkit/pkg/readerrors"
	"github.com/authzed/readkit/pkg/source"
)

// Cursor wraps a source with one slot of lookahead.
type Cursor[T any] struct {
	src       source.Source[T]
	lookahead T
	buffered  bool
	offset    int
}

var _ source.Source[byte] = (*Cursor[byte])(nil)

// New returns a cursor reading from src.
func New[T any](src source.Source[T]) *Cursor[T] {
	if src == nil {
		readerrors.MustPanic("cursor requires a non-nil source")
	}
	return &Cursor[T]{src: src}
}

// Next returns the buffered lookahead if present, otherwise the next element of
// the source. It returns (zero, false, nil) once the source has ended. Failures
// of the source are returned unchanged and leave the cursor as it was.
func (c *Cursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if c.src == nil {
		return zero, false, readerrors.MustBugf("cursor read while lent to a view")
	}

	if c.buffered {
		value := c.lookahead
		c.lookahead, c.buffered = zero, false
		c.offset++
		return value, true, nil
	}

	// The cursor is only mutated once the source has produced a value, so a
	// failed or cancelled read behaves as if it never started.
	value, ok, err := c.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}

	c.offset++
	return value, true, nil
}

// HasMore reports whether another element is available, reading one element
// ahead into the lookahead slot if none is buffered yet.
func (c *Cursor[T]) HasMore(ctx context.Context) (bool, error) {
	if c.src == nil {
		return false, readerrors.MustBugf("cursor read while lent to a view")
	}

	if c.buffered {
		return true, nil
	}

	value, ok, err := c.src.Next(ctx)
	if err != nil || !ok {
		return false, err
	}

	c.lookahead, c.buffered = value, true
	return true, nil
}

// Discard reads and drops up to n elements, returning how many were dropped.
// It stops early at the end of the source.
func (c *Cursor[T]) Discard(ctx context.Context, n int) (int, error) {
	discarded := 0
	for discarded < n {
		_, ok, err := c.Next(ctx)
		if err != nil {
			return discarded, err
		}
		if !ok {
			break
		}
		discarded++
	}
	return discarded, nil
}

// Offset returns the number of elements handed out by Next so far.
func (c *Cursor[T]) Offset() int {
	return c.offset
}

// Lent returns whether the cursor's state is currently held by a child.
func (c *Cursor[T]) Lent() bool {
	return c.src == nil
}

// Take moves the cursor's entire state (source, lookahead and offset) into a
// new cursor and leaves c empty. c must not be read until Restore is called
// with the returned child.
func (c *Cursor[T]) Take() *Cursor[T] {
	if c.src == nil {
		readerrors.MustPanic("cannot take a cursor that is already lent")
	}

	child := *c
	*c = Cursor[T]{}
	return &child
}

// Restore moves the advanced state of child back into c, which must have been
// emptied by the Take that produced child. The child is left empty afterwards,
// so any view still holding it can no longer read.
func (c *Cursor[T]) Restore(child *Cursor[T]) {
	if c.src != nil {
		readerrors.MustPanic("cannot restore into a cursor that is not lent")
	}

	*c = *child
	*child = Cursor[T]{}
}
