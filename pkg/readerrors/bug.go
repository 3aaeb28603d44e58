package readerrors

import (
	"fmt"
	"os"
	"strings"
)

// Based on: https://stackoverflow.com/a/58945030
func isInTests() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// IsInTests returns whether the current binary is a `go test` binary.
func IsInTests() bool {
	return isInTests()
}

// MustPanic panics with the formatted message. It is used for precondition
// violations at call sites, which are programming errors rather than
// recoverable read failures.
func MustPanic(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// MustBugf returns an error representing a bug in the calling code, such as
// reading from a cursor that has been lent to a view. Will panic if run under testing.
func MustBugf(format string, args ...any) error {
	if isInTests() {
		panic(fmt.Sprintf(format, args...))
	}

	return fmt.Errorf("BUG: "+format, args...)
}
