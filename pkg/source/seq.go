package source

import (
	"context"
	"iter"
)

// PullSource adapts a push iterator into a Source using iter.Pull2.
type PullSource[T any] struct {
	next func() (T, error, bool)
	stop func()
}

var _ Source[byte] = (*PullSource[byte])(nil)

// FromSeq returns a source over an infallible iterator.
func FromSeq[T any](seq iter.Seq[T]) *PullSource[T] {
	return FromSeq2(func(yield func(T, error) bool) {
		for value := range seq {
			if !yield(value, nil) {
				return
			}
		}
	})
}

// FromSeq2 returns a source over an iterator of values and errors. The first
// non-nil error is returned as a failure and ends the source.
func FromSeq2[T any](seq iter.Seq2[T, error]) *PullSource[T] {
	next, stop := iter.Pull2(seq)
	return &PullSource[T]{next: next, stop: stop}
}

// Next implements Source.
func (p *PullSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	value, err, ok := p.next()
	if !ok {
		return zero, false, nil
	}
	if err != nil {
		p.stop()
		return zero, false, err
	}
	return value, true, nil
}

// Close stops the underlying iterator.
func (p *PullSource[T]) Close() {
	p.stop()
}
