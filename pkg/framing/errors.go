package framing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/dustin/go-humanize"
)

var (
	// ErrMalformed matches every *MalformedError.
	ErrMalformed = errors.New("malformed record")

	// ErrFrameTooLarge matches every *FrameTooLargeError.
	ErrFrameTooLarge = errors.New("frame too large")
)

// MalformedError is returned for a record that is syntactically invalid.
type MalformedError struct {
	Format string
	Offset int
	Reason string
}

func (err *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s record at offset %d: %s", err.Format, err.Offset, err.Reason)
}

func (err *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// DetailsMetadata returns the metadata for details for this error.
func (err *MalformedError) DetailsMetadata() map[string]string {
	return map[string]string{
		"format": err.Format,
		"offset": strconv.Itoa(err.Offset),
		"reason": err.Reason,
	}
}

// FrameTooLargeError is returned when a record declares a payload larger than
// the configured maximum. The payload is not read.
type FrameTooLargeError struct {
	Size    int
	Maximum int
}

func (err *FrameTooLargeError) Error() string {
	return fmt.Sprintf("frame of %s exceeds the maximum of %s", formatSize(err.Size), formatSize(err.Maximum))
}

func (err *FrameTooLargeError) Is(target error) bool {
	return target == ErrFrameTooLarge
}

// DetailsMetadata returns the metadata for details for this error.
func (err *FrameTooLargeError) DetailsMetadata() map[string]string {
	return map[string]string{
		"size":    strconv.Itoa(err.Size),
		"maximum": strconv.Itoa(err.Maximum),
	}
}

func formatSize(size int) string {
	unsigned, err := safecast.Convert[uint64](size)
	if err != nil {
		return strconv.Itoa(size)
	}
	return humanize.Bytes(unsigned)
}
