package view

import (
	"context"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerrors"
)

// BoundedFunc transforms a bounded window into a result.
type BoundedFunc[T, R any] func(ctx context.Context, v *BoundedView[T]) (R, error)

// DelimitedFunc transforms a delimited run of elements into a result.
type DelimitedFunc[T comparable, R any] func(ctx context.Context, v *DelimitedView[T]) (R, error)

// WithBounded lends c to fn through a view of between min and max elements.
//
// If c has nothing left, fn is not called and the result is (zero, false, nil).
// fn may stop reading at any point. Once it returns successfully, whatever is
// left of the window is discarded, so c continues max elements past where the
// window started, or at the end of the source. If fn fails, c is left wherever
// fn stopped and the error is returned unchanged.
//
// The view must not be used after fn returns. It panics unless 0 <= min <= max.
func WithBounded[T, R any](ctx context.Context, c *cursor.Cursor[T], min, max int, fn BoundedFunc[T, R]) (R, bool, error) {
	checkBounds(min, max)

	var zero R
	more, err := c.HasMore(ctx)
	if err != nil || !more {
		return zero, false, err
	}

	child := c.Take()
	defer c.Restore(child)

	v := newBounded(child, min, max)
	result, err := fn(ctx, v)
	if err != nil {
		return zero, false, err
	}

	skipped, err := child.Discard(ctx, v.Remaining())
	if err != nil {
		return zero, false, err
	}

	if skipped > 0 {
		logging.Ctx(ctx).Trace().
			Int("consumed", v.Consumed()).
			Int("skipped", skipped).
			Int("max", max).
			Msg("discarded unread elements of bounded view")
	}

	return result, true, nil
}

// WithDelimited lends c to fn through a view that ends after terminator, or at
// the end of the source. There is no size cap and no error for a missing
// terminator; fn decides through Found whether the run was complete.
//
// If c has nothing left, fn is not called and the result is (zero, false, nil).
// Nothing fn leaves unread is skipped: c continues exactly where fn stopped.
// The view must not be used after fn returns. It panics if terminator is empty.
func WithDelimited[T comparable, R any](ctx context.Context, c *cursor.Cursor[T], terminator []T, fn DelimitedFunc[T, R]) (R, bool, error) {
	if len(terminator) == 0 {
		readerrors.MustPanic("terminator must not be empty")
	}

	var zero R
	more, err := c.HasMore(ctx)
	if err != nil || !more {
		return zero, false, err
	}

	child := c.Take()
	defer c.Restore(child)

	result, err := fn(ctx, newDelimited(child, terminator))
	if err != nil {
		return zero, false, err
	}
	return result, true, nil
}
