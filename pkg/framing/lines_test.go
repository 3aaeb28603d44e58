package framing

import (
	"context"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

func TestLines(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		opts  []Option
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "terminated", input: "one\ntwo\n", want: []string{"one", "two"}},
		{name: "final line without terminator", input: "one\ntwo", want: []string{"one", "two"}},
		{name: "blank lines", input: "\n\nx\n", want: []string{"", "", "x"}},
		{name: "crlf", input: "GET / HTTP/1.1\r\nHost: x\r\n", want: []string{"GET / HTTP/1.1", "Host: x"}},
		{name: "crlf kept", input: "a\r\nb\r\n", opts: []Option{WithKeepCR()}, want: []string{"a\r", "b\r"}},
		{name: "multibyte", input: "héllo\nwörld\n", want: []string{"héllo", "wörld"}},
		{name: "line at the limit", input: "abcd\nef\n", opts: []Option{WithMaxLineLength(4)}, want: []string{"abcd", "ef"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := Lines(source.Runes(tc.input), tc.opts...).Collect(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.want, lines)
		})
	}
}

func TestLinesFromReader(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader("ünïcode\nlines\n"))
	lines, err := Lines(source.FromRuneReader(r)).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ünïcode", "lines"}, lines)
}

func TestLineTooLong(t *testing.T) {
	lines, err := Lines(source.Runes("ok\ntoo long\n"), WithMaxLineLength(4)).Collect(context.Background())
	require.Equal(t, []string{"ok"}, lines)
	require.Equal(t, &view.TerminationNotFoundError{Maximum: 4, Actual: 4}, err)
}

func TestReadLineTooLongPosition(t *testing.T) {
	for _, tc := range []struct {
		name       string
		input      string
		wantOffset int
		wantNext   rune
	}{
		{name: "plain", input: "abcdef\nnext\n", wantOffset: 4, wantNext: 'e'},
		{name: "carriage return counts", input: "abc\r\n", wantOffset: 4, wantNext: '\n'},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(source.Runes(tc.input))
			_, _, err := ReadLine(context.Background(), c, 3, false)
			require.Equal(t, &view.TerminationNotFoundError{Maximum: 3, Actual: 3}, err)
			require.Equal(t, tc.wantOffset, c.Offset())

			next, ok, err := c.Next(context.Background())
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, tc.wantNext, next)
		})
	}
}
