package framing

import (
	"context"
	"strings"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerloop"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

const formatLine = "line"

var lineFeed = []rune{'\n'}

// Lines decodes '\n'-terminated lines. The terminator is not part of the
// returned line, a preceding '\r' is stripped unless WithKeepCR is given, and a
// final line without a terminator is returned as-is.
func Lines(src source.Source[rune], opts ...Option) *readerloop.Loop[rune, string] {
	o := newOptions(opts)
	return readerloop.New(src, instrumented(formatLine, func(ctx context.Context, c *cursor.Cursor[rune]) (string, bool, error) {
		return ReadLine(ctx, c, o.maxLineLength, o.keepCR)
	}))
}

// ReadLine reads one line of at most maxLength runes from c, counting a
// trailing '\r' even when it is stripped. A longer line fails with a
// *view.TerminationNotFoundError once rune maxLength+1 has been read; that rune
// is consumed too, so c continues right after it. It returns ("", false, nil)
// if c has nothing left.
func ReadLine(ctx context.Context, c *cursor.Cursor[rune], maxLength int, keepCR bool) (string, bool, error) {
	return view.WithDelimited(ctx, c, lineFeed, func(ctx context.Context, v *view.DelimitedView[rune]) (string, error) {
		var sb strings.Builder
		length := 0
		for {
			r, ok, err := v.Next(ctx)
			if err != nil {
				return "", err
			}
			if !ok || v.Found() {
				break
			}

			if length == maxLength {
				return "", &view.TerminationNotFoundError{Maximum: maxLength, Actual: length}
			}
			sb.WriteRune(r)
			length++
		}

		line := sb.String()
		if !keepCR {
			line = strings.TrimSuffix(line, "\r")
		}
		return line, nil
	})
}
