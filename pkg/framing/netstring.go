package framing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerloop"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

const formatNetstring = "netstring"

// Netstrings decodes records of the form "<length>:<payload>," where length is
// the decimal payload size in bytes.
func Netstrings(src source.Source[byte], opts ...Option) *readerloop.Loop[byte, []byte] {
	o := newOptions(opts)
	return readerloop.New(src, instrumented(formatNetstring, func(ctx context.Context, c *cursor.Cursor[byte]) ([]byte, bool, error) {
		return ReadNetstring(ctx, c, o.maxFrameSize)
	}))
}

// ReadNetstring reads a single netstring from c. It returns (nil, false, nil)
// if c has nothing left.
func ReadNetstring(ctx context.Context, c *cursor.Cursor[byte], maxSize int) ([]byte, bool, error) {
	start := c.Offset()
	malformed := func(reason string) error {
		return &MalformedError{Format: formatNetstring, Offset: start, Reason: reason}
	}

	// The separator may follow at most as many digits as the maximum has.
	maxDigits := len(strconv.Itoa(maxSize))
	digits, ok, err := view.ReadUntilExclusive(ctx, c, []byte{':'}, maxDigits+1)
	if err != nil {
		if errors.Is(err, view.ErrTerminationNotFound) {
			return nil, false, errors.Join(malformed("length is not followed by ':'"), err)
		}
		return nil, false, fmt.Errorf("reading netstring length: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	size, err := parseLength(digits)
	if err != nil {
		return nil, false, malformed(err.Error())
	}
	if size > maxSize {
		return nil, false, &FrameTooLargeError{Size: size, Maximum: maxSize}
	}

	payload, _, err := readPayload(ctx, c, size)
	if err != nil {
		return nil, false, err
	}

	comma, ok, err := c.Next(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("reading netstring terminator: %w", err)
	}
	if !ok {
		return nil, false, malformed("missing trailing ','")
	}
	if comma != ',' {
		return nil, false, malformed(fmt.Sprintf("expected ',' after payload, found %q", comma))
	}

	return payload, true, nil
}

func parseLength(digits []byte) (int, error) {
	if len(digits) == 0 {
		return 0, errors.New("empty length")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, errors.New("length has leading zeros")
	}

	size := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("invalid length digit %q", d)
		}
		digit := int(d - '0')
		if size > (math.MaxInt-digit)/10 {
			return 0, errors.New("length overflows")
		}
		size = size*10 + digit
	}
	return size, nil
}

// AppendNetstring appends payload to dst as a netstring.
func AppendNetstring(dst, payload []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(payload)), 10)
	dst = append(dst, ':')
	dst = append(dst, payload...)
	return append(dst, ',')
}
