package source

import (
	"context"
	"sync"
)

// FromChannel returns a source receiving from ch. The sequence ends when ch is
// closed. A read blocked on the channel returns the context error on
// cancellation without consuming anything.
func FromChannel[T any](ch <-chan T) Source[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		select {
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()

		case value, ok := <-ch:
			return value, ok, nil
		}
	})
}

// EmitFunc hands a value to the consumer of a Producer. It blocks until the
// value is received and returns false once the producer has been closed, after
// which the producing function should return.
type EmitFunc[T any] func(value T) bool

type produced[T any] struct {
	value T
	err   error
}

// Producer runs a producing function on its own goroutine and exposes its
// output as a Source. Values are handed over unbuffered, so the producer never
// runs more than one element ahead of the consumer.
type Producer[T any] struct {
	items     chan produced[T]
	closed    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

var _ Source[byte] = (*Producer[byte])(nil)

// Produce starts fn on a new goroutine. Every value passed to emit becomes the
// next element of the returned source; a non-nil error returned by fn becomes
// the final failure. Close must be called to release the goroutine if the
// source is not read to its end.
func Produce[T any](fn func(emit EmitFunc[T]) error) *Producer[T] {
	p := &Producer[T]{
		items:  make(chan produced[T]),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go p.run(fn)
	return p
}

func (p *Producer[T]) run(fn func(emit EmitFunc[T]) error) {
	defer close(p.done)
	defer close(p.items)

	if err := fn(p.emit); err != nil {
		select {
		case p.items <- produced[T]{err: err}:
		case <-p.closed:
		}
	}
}

func (p *Producer[T]) emit(value T) bool {
	select {
	case p.items <- produced[T]{value: value}:
		return true

	case <-p.closed:
		return false
	}
}

// Next implements Source.
func (p *Producer[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()

	case item, ok := <-p.items:
		if !ok {
			return zero, false, nil
		}
		if item.err != nil {
			return zero, false, item.err
		}
		return item.value, true, nil
	}
}

// Close stops the producer and waits for its goroutine to exit. It is safe to
// call more than once.
func (p *Producer[T]) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)
	})
	<-p.done
}
