package framing

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ccoveille/go-safecast/v2"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerloop"
	"github.com/authzed/readkit/pkg/source"
	"github.com/authzed/readkit/pkg/view"
)

const (
	formatFrame = "frame"

	prefixSize = 4
)

// LengthPrefixed decodes frames made of a 4-byte big-endian payload length
// followed by the payload.
func LengthPrefixed(src source.Source[byte], opts ...Option) *readerloop.Loop[byte, []byte] {
	o := newOptions(opts)
	return readerloop.New(src, instrumented(formatFrame, func(ctx context.Context, c *cursor.Cursor[byte]) ([]byte, bool, error) {
		return ReadFrame(ctx, c, o.maxFrameSize)
	}))
}

// ReadFrame reads a single length-prefixed frame from c. It returns
// (nil, false, nil) if c has nothing left.
func ReadFrame(ctx context.Context, c *cursor.Cursor[byte], maxSize int) ([]byte, bool, error) {
	start := c.Offset()
	prefix, ok, err := view.ReadExactly(ctx, c, prefixSize)
	if err != nil {
		if errors.Is(err, view.ErrInsufficientElements) {
			return nil, false, errors.Join(&MalformedError{Format: formatFrame, Offset: start, Reason: "truncated length prefix"}, err)
		}
		return nil, false, fmt.Errorf("reading frame length: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	size, err := safecast.Convert[int](binary.BigEndian.Uint32(prefix))
	if err != nil {
		return nil, false, fmt.Errorf("converting frame length: %w", err)
	}
	if size > maxSize {
		return nil, false, &FrameTooLargeError{Size: size, Maximum: maxSize}
	}

	return readPayload(ctx, c, size)
}

// readPayload reads exactly size elements, treating the end of the source as a
// truncated payload rather than the end of the stream.
func readPayload(ctx context.Context, c *cursor.Cursor[byte], size int) ([]byte, bool, error) {
	if size == 0 {
		return []byte{}, true, nil
	}

	payload, ok, err := view.ReadExactly(ctx, c, size)
	if err != nil {
		return nil, false, fmt.Errorf("reading payload: %w", err)
	}
	if !ok {
		return nil, false, fmt.Errorf("reading payload: %w", &view.InsufficientElementsError{Minimum: size, Actual: 0})
	}
	return payload, true, nil
}

// AppendFrame appends payload to dst as a length-prefixed frame.
func AppendFrame(dst, payload []byte) ([]byte, error) {
	size, err := safecast.Convert[uint32](len(payload))
	if err != nil {
		return dst, fmt.Errorf("converting frame length: %w", err)
	}
	dst = binary.BigEndian.AppendUint32(dst, size)
	return append(dst, payload...), nil
}
