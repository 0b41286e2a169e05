package dispatch

import (
	"github.com/pkg/errors"

	"github.com/dshills/uiflow/internal/ui"
)

// Route is the outcome of target resolution.
type Route struct {
	// Target is the element the event is dispatched to. It is nil only when
	// the host has no root.
	Target *ui.Element

	// Captured restricts traversal to Target because it holds the pointer.
	Captured bool
}

// Resolve selects the target of evt using the routing strategy of its kind.
func Resolve(evt *ui.Event, host Host) (Route, error) {
	switch r := evt.Kind().Routing(); r {
	case ui.RouteFocusedOrRoot:
		return ToFocusedOrRoot(evt, host), nil
	case ui.RouteUnderPointerOrRoot:
		return ToElementUnderPointerOrRoot(evt, host), nil
	case ui.RouteCapturingOrUnderPointer:
		return ToCapturingOrUnderPointer(evt, host), nil
	case ui.RouteAssignedTarget:
		return ToAssignedTarget(evt)
	case ui.RoutePanelRoot:
		return ToPanelRoot(host), nil
	default:
		return Route{}, errors.Wrapf(ErrUnknownRouting, "%s routing %d", evt.Kind(), r)
	}
}

// ToFocusedOrRoot targets the preset target, else the focused element, else
// the panel root. The root fallback is flagged on the event.
func ToFocusedOrRoot(evt *ui.Event, host Host) Route {
	if t := evt.Target(); t != nil {
		return Route{Target: t}
	}
	if f := host.FocusedElement(); f != nil {
		return Route{Target: f}
	}
	evt.MarkLegacySurfaceFallback()
	return Route{Target: host.Root()}
}

// ToElementUnderPointerOrRoot targets the preset target, else the committed
// element under the event's pointer, else the panel root.
func ToElementUnderPointerOrRoot(evt *ui.Event, host Host) Route {
	if t := evt.Target(); t != nil {
		return Route{Target: t}
	}
	if tr := host.Tracker(); tr != nil {
		if top := tr.TopElement(evt.Pointer.PointerID); top != nil {
			return Route{Target: top}
		}
	}
	return Route{Target: host.Root()}
}

// ToCapturingOrUnderPointer targets the element capturing the event's
// pointer when it is still attached to host and agrees with any preset
// target. The captured event ignores the disabled gate. A captor that left
// the host loses its capture and the event falls back to
// ToElementUnderPointerOrRoot.
func ToCapturingOrUnderPointer(evt *ui.Event, host Host) Route {
	pid := evt.Pointer.PointerID
	captor := host.Pointers().Capturing(pid)
	if captor == nil {
		return ToElementUnderPointerOrRoot(evt, host)
	}
	if captor.Panel() != ui.Panel(host) {
		host.ReleasePointer(pid, captor)
		return ToElementUnderPointerOrRoot(evt, host)
	}
	if t := evt.Target(); t != nil && t != captor {
		return ToElementUnderPointerOrRoot(evt, host)
	}

	evt.SetSkipDisabledElements(false)
	return Route{Target: captor, Captured: true}
}

// ToAssignedTarget requires a preset target.
func ToAssignedTarget(evt *ui.Event) (Route, error) {
	if evt.Target() == nil {
		return Route{}, errors.Wrapf(ErrTargetRequired, "%s", evt.Kind())
	}
	return Route{Target: evt.Target()}, nil
}

// ToPanelRoot always targets the panel root.
func ToPanelRoot(host Host) Route {
	return Route{Target: host.Root()}
}
