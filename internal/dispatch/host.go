package dispatch

import (
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// Host is the panel an event is dispatched in. It supplies the state the
// routing strategies consult.
type Host interface {
	ui.Panel

	// FocusedElement returns the element holding keyboard focus, or nil.
	FocusedElement() *ui.Element

	// Pointers returns the pointer state store shared by the host's panels.
	Pointers() *pointer.Store

	// Tracker returns the host's element-under-pointer tracker. It may be nil.
	Tracker() *pointer.Tracker

	// ReleasePointer ends the capture of pointerID by el.
	ReleasePointer(pointerID int, el *ui.Element)
}

// Tracer observes every callback step of a dispatch.
type Tracer interface {
	Step(evt *ui.Event, node *ui.Element, phase ui.Phase)
}

// TracerFunc is a function adapter for Tracer.
type TracerFunc func(evt *ui.Event, node *ui.Element, phase ui.Phase)

// Step implements Tracer.
func (f TracerFunc) Step(evt *ui.Event, node *ui.Element, phase ui.Phase) {
	f(evt, node, phase)
}
