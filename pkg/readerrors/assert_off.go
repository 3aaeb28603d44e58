//go:build !ci

package readerrors

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op in non-CI builds.
func DebugAssertf(condition func() bool, format string, args ...any) {
	// Do nothing on purpose
}
