package ui

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for registration and tree operations.
var (
	// ErrNilKind is returned when a callback is registered without an event kind.
	ErrNilKind = errors.New("event kind cannot be nil")

	// ErrNilListener is returned when a nil listener is registered or removed.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrDuplicateKind is returned when two kinds are registered under one name.
	ErrDuplicateKind = errors.New("event kind already registered")

	// ErrCycle is returned when adding an element would make it its own ancestor.
	ErrCycle = errors.New("element cannot be added to its own subtree")
)

// AssertionError is the panic value raised by debug assertions.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return "uiflow assertion failed: " + e.Message
}

// assert panics with an AssertionError when debug checks are compiled in and
// cond is false. In release builds the call is a no-op.
func assert(cond bool, format string, args ...any) {
	if DebugChecks && !cond {
		panic(&AssertionError{Message: fmt.Sprintf(format, args...)})
	}
}

// Assertf is the exported form of the debug assertion, for packages that
// drive dispatch.
func Assertf(cond bool, format string, args ...any) {
	assert(cond, format, args...)
}
