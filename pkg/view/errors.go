package view

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrInsufficientElements matches every *InsufficientElementsError.
	ErrInsufficientElements = errors.New("insufficient elements")

	// ErrTerminationNotFound matches every *TerminationNotFoundError.
	ErrTerminationNotFound = errors.New("termination not found")
)

// InsufficientElementsError is returned when the source ends before a bounded
// read has collected its minimum number of elements.
type InsufficientElementsError struct {
	Minimum int
	Actual  int
}

func (err *InsufficientElementsError) Error() string {
	return fmt.Sprintf("insufficient elements: expected at least %d, source ended after %d", err.Minimum, err.Actual)
}

// Is allows errors.Is(err, ErrInsufficientElements).
func (err *InsufficientElementsError) Is(target error) bool {
	return target == ErrInsufficientElements
}

// DetailsMetadata returns the metadata for details for this error.
func (err *InsufficientElementsError) DetailsMetadata() map[string]string {
	return map[string]string{
		"minimum": strconv.Itoa(err.Minimum),
		"actual":  strconv.Itoa(err.Actual),
	}
}

// TerminationNotFoundError is returned when a terminated read reaches its size
// cap, or the end of the source, without seeing the terminator.
type TerminationNotFoundError struct {
	Maximum int
	Actual  int
}

func (err *TerminationNotFoundError) Error() string {
	if err.Actual < err.Maximum {
		return fmt.Sprintf("termination not found: source ended after %d elements", err.Actual)
	}
	return fmt.Sprintf("termination not found within %d elements", err.Maximum)
}

// Is allows errors.Is(err, ErrTerminationNotFound).
func (err *TerminationNotFoundError) Is(target error) bool {
	return target == ErrTerminationNotFound
}

// DetailsMetadata returns the metadata for details for this error.
func (err *TerminationNotFoundError) DetailsMetadata() map[string]string {
	return map[string]string{
		"maximum": strconv.Itoa(err.Maximum),
		"actual":  strconv.Itoa(err.Actual),
	}
}
