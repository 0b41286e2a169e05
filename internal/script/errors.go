package script

import "github.com/pkg/errors"

var (
	// ErrClosed is returned when running code on a closed engine.
	ErrClosed = errors.New("script engine is closed")

	// ErrUnknownElement is raised when a script names an element that is
	// not in the tree.
	ErrUnknownElement = errors.New("unknown element")

	// ErrUnknownKind is raised when a script names an unregistered kind.
	ErrUnknownKind = errors.New("unknown event kind")
)
