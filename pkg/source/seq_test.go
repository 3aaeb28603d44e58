package source

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFromSeq(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	src := FromSeq(slices.Values([]string{"a", "b"}))
	defer src.Close()

	require.Equal(t, []string{"a", "b"}, drain[string](t, src))
}

func TestFromSeq2Failure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("boom")
	src := FromSeq2(func(yield func(int, error) bool) {
		if !yield(1, nil) {
			return
		}
		if !yield(0, boom) {
			return
		}
		yield(2, nil)
	})
	defer src.Close()

	value, ok, err := src.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, value)

	_, ok, err = src.Next(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, ok)

	_, ok, err = src.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFromSeqCloseEarly(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	src := FromSeq(func(yield func(int) bool) {
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})

	_, ok, err := src.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	src.Close()
}
