// Package readerloop turns a cursor and a read function into a derived,
// forward-only sequence: bytes into tokens, tokens into records, and so on.
package readerloop

import (
	"context"
	"iter"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/authzed/readkit/internal/logging"
	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerrors"
	"github.com/authzed/readkit/pkg/source"
)

var tracer = otel.Tracer("readkit/pkg/readerloop")

// ReadFunc reads one output from the cursor. It returns (value, true, nil) to
// produce a value, (zero, false, nil) to end the sequence, or an error, which
// also ends it.
type ReadFunc[E, O any] func(ctx context.Context, c *cursor.Cursor[E]) (O, bool, error)

// Loop repeatedly applies a ReadFunc to a cursor. It is itself a Source, so
// loops can be stacked. A Loop cannot be restarted: once it has ended, every
// further read reports the end.
type Loop[E, O any] struct {
	cursor   *cursor.Cursor[E]
	read     ReadFunc[E, O]
	produced int
	done     bool
}

var _ source.Source[int] = (*Loop[byte, int])(nil)

// New returns a loop applying read to a new cursor over src.
func New[E, O any](src source.Source[E], read ReadFunc[E, O]) *Loop[E, O] {
	return FromCursor(cursor.New(src), read)
}

// FromCursor returns a loop applying read to c. The loop owns c until it ends.
func FromCursor[E, O any](c *cursor.Cursor[E], read ReadFunc[E, O]) *Loop[E, O] {
	if c == nil {
		readerrors.MustPanic("reader loop requires a cursor")
	}
	if read == nil {
		readerrors.MustPanic("reader loop requires a read function")
	}
	return &Loop[E, O]{cursor: c, read: read}
}

// Next produces the next output. The read function is not called once the
// cursor has nothing left. Any error, whether from the source or from the read
// function, is returned to this call only and ends the loop.
func (l *Loop[E, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	if l.done {
		return zero, false, nil
	}

	more, err := l.cursor.HasMore(ctx)
	if err != nil {
		l.finish(ctx, "source failed", err)
		return zero, false, err
	}
	if !more {
		l.finish(ctx, "source exhausted", nil)
		return zero, false, nil
	}

	start := l.cursor.Offset()
	ctx, span := tracer.Start(ctx, "readOutput", trace.WithAttributes(
		attribute.Int("readkit.index", l.produced),
		attribute.Int("readkit.offset", start),
	))
	defer span.End()

	value, ok, err := l.read(ctx, l.cursor)
	span.SetAttributes(attribute.Int("readkit.consumed", l.cursor.Offset()-start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.finish(ctx, "read failed", err)
		return zero, false, err
	}

	if !ok {
		l.finish(ctx, "read produced no output", nil)
		return zero, false, nil
	}

	l.produced++
	return value, true, nil
}

func (l *Loop[E, O]) finish(ctx context.Context, reason string, err error) {
	l.done = true

	var event *zerolog.Event
	if err != nil {
		event = logging.Ctx(ctx).Debug().Err(err)
	} else {
		event = logging.Ctx(ctx).Trace()
	}
	event.Str("reason", reason).
		Int("produced", l.produced).
		Int("offset", l.cursor.Offset()).
		Msg("reader loop ended")
}

// All returns an iterator over the remaining outputs. A failure is yielded
// once, with a zero value, as the final pair.
func (l *Loop[E, O]) All(ctx context.Context) iter.Seq2[O, error] {
	return func(yield func(O, error) bool) {
		for {
			value, ok, err := l.Next(ctx)
			if err != nil {
				var zero O
				yield(zero, err)
				return
			}
			if !ok || !yield(value, nil) {
				return
			}
		}
	}
}

// Collect reads the remaining outputs into a slice. On failure it returns the
// outputs read so far along with the error.
func (l *Loop[E, O]) Collect(ctx context.Context) ([]O, error) {
	var out []O
	for value, err := range l.All(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, value)
	}
	return out, nil
}

// Done returns whether the loop has ended.
func (l *Loop[E, O]) Done() bool {
	return l.done
}

// Produced returns the number of outputs produced so far.
func (l *Loop[E, O]) Produced() int {
	return l.produced
}

// Cursor returns the cursor the loop reads from. It must not be read while the
// loop is still being iterated; once the loop has ended because the read
// function produced no output, it holds whatever elements were left.
func (l *Loop[E, O]) Cursor() *cursor.Cursor[E] {
	return l.cursor
}
