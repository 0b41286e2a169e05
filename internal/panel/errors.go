package panel

import "github.com/pkg/errors"

// Panel errors.
var (
	// ErrForeignElement indicates an element that is not attached to the panel.
	ErrForeignElement = errors.New("element does not belong to this panel")

	// ErrNotFocusable indicates a focus request for an element that cannot
	// hold focus.
	ErrNotFocusable = errors.New("element is not focusable")

	// ErrInvalidPointer indicates a pointer id outside the supported range.
	ErrInvalidPointer = errors.New("invalid pointer id")

	// ErrNilRoot indicates an attempt to install a nil root.
	ErrNilRoot = errors.New("root element is nil")

	// ErrRootHasParent indicates a root candidate that is still a child.
	ErrRootHasParent = errors.New("root element has a parent")
)
