package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	require.Equal(t, []int{1, 2, 3}, drain(t, FromChannel(ch)))
}

func TestFromChannelCancellation(t *testing.T) {
	ch := make(chan int)
	src := FromChannel(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok, err := src.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, ok)
}

func TestProducer(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	p := Produce(func(emit EmitFunc[string]) error {
		for _, word := range []string{"apple", "orange"} {
			if !emit(word) {
				return nil
			}
		}
		return nil
	})
	defer p.Close()

	require.Equal(t, []string{"apple", "orange"}, drain[string](t, p))
}

func TestProducerFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("upstream failed")
	p := Produce(func(emit EmitFunc[int]) error {
		emit(1)
		return boom
	})
	defer p.Close()

	value, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, value)

	_, ok, err = p.Next(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, ok)

	_, ok, err = p.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProducerCloseReleasesGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	p := Produce(func(emit EmitFunc[int]) error {
		for i := 0; ; i++ {
			if !emit(i) {
				return nil
			}
		}
	})

	value, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 0, value)

	p.Close()
	p.Close()
}

func TestProducerCancelledReadDoesNotConsume(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	release := make(chan struct{})
	p := Produce(func(emit EmitFunc[int]) error {
		<-release
		emit(42)
		return nil
	})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := p.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)

	close(release)

	value, ok, err := p.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, value)
}
