package dispatch

import "github.com/pkg/errors"

// Dispatch errors. They report integration bugs and are never retried.
var (
	// ErrTargetRequired indicates an assigned-target event was sent without a target.
	ErrTargetRequired = errors.New("dispatch: event requires an explicit target")

	// ErrUnknownRouting indicates a kind carries a routing value outside the known set.
	ErrUnknownRouting = errors.New("dispatch: unknown routing strategy")

	// ErrNilHost indicates an event was dispatched without a panel.
	ErrNilHost = errors.New("dispatch: nil panel")
)
