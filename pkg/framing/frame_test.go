package framing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authzed/readkit/pkg/readerrors"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

func encodeFrames(t *testing.T, payloads ...string) []byte {
	t.Helper()

	var out []byte
	for _, payload := range payloads {
		var err error
		out, err = AppendFrame(out, []byte(payload))
		require.NoError(t, err)
	}
	return out
}

func TestLengthPrefixed(t *testing.T) {
	for _, tc := range []struct {
		name     string
		payloads []string
	}{
		{"no frames", nil},
		{"single frame", []string{"hello"}},
		{"several frames", []string{"a", "bc", "def"}},
		{"empty frames", []string{"", "x", ""}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			frames, err := LengthPrefixed(source.Bytes(encodeFrames(t, tc.payloads...))).Collect(context.Background())
			require.NoError(t, err)

			got := make([]string, 0, len(frames))
			for _, frame := range frames {
				got = append(got, string(frame))
			}
			require.Equal(t, len(tc.payloads), len(got))
			for i := range tc.payloads {
				require.Equal(t, tc.payloads[i], got[i])
			}
		})
	}
}

func TestLengthPrefixedHello(t *testing.T) {
	frames, err := LengthPrefixed(source.Bytes([]byte{0x00, 0x00, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'})).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("hello")}, frames)
}

func TestLengthPrefixedFailures(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   []byte
		opts    []Option
		wantErr error
		details map[string]string
	}{
		{
			name:    "truncated prefix",
			input:   []byte{0x00, 0x00},
			wantErr: ErrMalformed,
			details: map[string]string{"format": "frame", "offset": "0", "reason": "truncated length prefix", "minimum": "4", "actual": "2"},
		},
		{
			name:    "truncated payload",
			input:   []byte{0x00, 0x00, 0x00, 0x05, 'h', 'i'},
			wantErr: view.ErrInsufficientElements,
			details: map[string]string{"minimum": "5", "actual": "2"},
		},
		{
			name:    "missing payload",
			input:   []byte{0x00, 0x00, 0x00, 0x05},
			wantErr: view.ErrInsufficientElements,
			details: map[string]string{"minimum": "5", "actual": "0"},
		},
		{
			name:    "frame too large",
			input:   []byte{0x00, 0x01, 0x00, 0x00},
			opts:    []Option{WithMaxFrameSize(1024)},
			wantErr: ErrFrameTooLarge,
			details: map[string]string{"size": "65536", "maximum": "1024"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LengthPrefixed(source.Bytes(tc.input), tc.opts...).Collect(context.Background())
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.details, readerrors.DetailsOf(err))
		})
	}
}

func TestFrameTooLargeMessage(t *testing.T) {
	err := &FrameTooLargeError{Size: 20_000_000, Maximum: DefaultMaxFrameSize}
	require.EqualError(t, err, "frame of 20 MB exceeds the maximum of 17 MB")
}
