package ui

import (
	"fmt"
	"time"

	"github.com/dshills/uiflow/internal/input/key"
)

// Phase is the propagation phase an event is currently in.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseTrickleDown
	PhaseBubbleUp
)

func (p Phase) String() string {
	switch p {
	case PhaseTrickleDown:
		return "trickle-down"
	case PhaseBubbleUp:
		return "bubble-up"
	default:
		return "none"
	}
}

type eventFlags uint16

const (
	flagPropagationStopped eventFlags = 1 << iota
	flagImmediateStopped
	flagDefaultPrevented
	flagSkipDisabled
	flagDispatching
	flagDispatched
	flagFocusProcessed
	flagLegacyFallback
)

// MenuItem is an entry appended to a contextual menu populate event.
type MenuItem struct {
	Label  string
	Action func()
}

// Event is a pooled, typed message routed through an element tree.
//
// Events are obtained with AcquireEvent and returned with Dispose. An event
// must not be used after its last Dispose.
type Event struct {
	kind      *Kind
	id        uint64
	timestamp time.Time

	target        *Element
	currentTarget *Element
	relatedTarget *Element
	panel         Panel

	phase       Phase
	propagation Propagation
	flags       eventFlags

	compat   *Event
	refCount int
	released bool

	menu []MenuItem

	// Pointer is the pointer payload for pointer-shaped kinds.
	Pointer PointerData

	// Key is the keystroke for keyboard kinds.
	Key key.Stroke

	// Command is the command name for command kinds.
	Command string
}

func (e *Event) Kind() *Kind             { return e.kind }
func (e *Event) TypeID() TypeID          { return e.kind.id }
func (e *Event) Category() Category      { return e.kind.category }
func (e *Event) ID() uint64              { return e.id }
func (e *Event) Timestamp() time.Time    { return e.timestamp }
func (e *Event) Target() *Element        { return e.target }
func (e *Event) CurrentTarget() *Element { return e.currentTarget }
func (e *Event) RelatedTarget() *Element { return e.relatedTarget }
func (e *Event) Phase() Phase            { return e.phase }
func (e *Event) Panel() Panel            { return e.panel }

// SetTimestamp overrides the acquisition time, for replayed input.
func (e *Event) SetTimestamp(t time.Time) { e.timestamp = t }

// SetTarget presets the target. Routing strategies honor a preset target.
func (e *Event) SetTarget(el *Element) { e.target = el }

// SetRelatedTarget records the other element of an over/out or enter/leave pair.
func (e *Event) SetRelatedTarget(el *Element) { e.relatedTarget = el }

// Bubbles reports whether the event visits ancestors after the target.
func (e *Event) Bubbles() bool { return e.propagation&PropagationBubbles != 0 }

// TricklesDown reports whether the event visits ancestors before the target.
func (e *Event) TricklesDown() bool { return e.propagation&PropagationTricklesDown != 0 }

// SkipDisabledElements reports whether disabled elements are skipped.
func (e *Event) SkipDisabledElements() bool { return e.flags&flagSkipDisabled != 0 }

// SetSkipDisabledElements changes the disabled gate for this event.
func (e *Event) SetSkipDisabledElements(skip bool) { e.setFlag(flagSkipDisabled, skip) }

// StopPropagation halts traversal after the current element finishes.
func (e *Event) StopPropagation() {
	e.flags |= flagPropagationStopped
}

// StopImmediatePropagation halts traversal at once, skipping the remaining
// callbacks of the current element. It implies StopPropagation.
func (e *Event) StopImmediatePropagation() {
	e.flags |= flagPropagationStopped | flagImmediateStopped
}

func (e *Event) IsPropagationStopped() bool          { return e.flags&flagPropagationStopped != 0 }
func (e *Event) IsImmediatePropagationStopped() bool { return e.flags&flagImmediateStopped != 0 }

// PreventDefault suppresses the default actions of elements visited after the call.
func (e *Event) PreventDefault()          { e.flags |= flagDefaultPrevented }
func (e *Event) IsDefaultPrevented() bool { return e.flags&flagDefaultPrevented != 0 }

// Dispatching reports whether the event is currently being propagated.
func (e *Event) Dispatching() bool { return e.flags&flagDispatching != 0 }

// Dispatched reports whether a dispatch of this event has completed.
func (e *Event) Dispatched() bool { return e.flags&flagDispatched != 0 }

// MarkFocusProcessed records that focus navigation already consumed the event.
func (e *Event) MarkFocusProcessed()  { e.flags |= flagFocusProcessed }
func (e *Event) FocusProcessed() bool { return e.flags&flagFocusProcessed != 0 }

// LegacySurfaceFallback reports whether routing fell back to the panel root
// because nothing held focus.
func (e *Event) LegacySurfaceFallback() bool { return e.flags&flagLegacyFallback != 0 }

// Compat returns the legacy-shaped shadow event mirrored with this one, if any.
func (e *Event) Compat() *Event { return e.compat }

// LocalPosition converts the pointer position into the current target's frame.
func (e *Event) LocalPosition() Vec2 {
	if e.currentTarget == nil {
		return e.Pointer.Position
	}
	return e.currentTarget.WorldToLocal(e.Pointer.Position)
}

// AppendMenuItem adds an entry while populating a contextual menu.
func (e *Event) AppendMenuItem(label string, action func()) {
	e.menu = append(e.menu, MenuItem{Label: label, Action: action})
}

// MenuItems returns the entries appended so far.
func (e *Event) MenuItems() []MenuItem { return e.menu }

func (e *Event) String() string {
	return fmt.Sprintf("%s#%d(target=%s phase=%s)", e.kind, e.id, e.target, e.phase)
}

func (e *Event) setFlag(f eventFlags, on bool) {
	if on {
		e.flags |= f
	} else {
		e.flags &^= f
	}
}

// The methods below are used by dispatchers while driving propagation.

// BeginDispatch marks the event as in flight within panel.
func (e *Event) BeginDispatch(panel Panel) {
	e.assertLive()
	e.panel = panel
	e.flags |= flagDispatching
}

// EndDispatch resets the propagation state. It must run on every exit path.
func (e *Event) EndDispatch() {
	e.phase = PhaseNone
	e.currentTarget = nil
	e.flags &^= flagDispatching
	e.flags |= flagDispatched
}

// SetPhase moves the event to phase p.
func (e *Event) SetPhase(p Phase) { e.phase = p }

// SetCurrentTarget records the element whose handlers are running.
func (e *Event) SetCurrentTarget(el *Element) { e.currentTarget = el }

// MarkLegacySurfaceFallback flags a root fallback by focus routing.
func (e *Event) MarkLegacySurfaceFallback() { e.flags |= flagLegacyFallback }

// AttachCompat links shadow as the compatibility event of e. The link owns
// one reference to shadow, released when e is released.
func (e *Event) AttachCompat(shadow *Event) {
	if e.compat != nil {
		e.compat.Dispose()
	}
	e.compat = shadow
}

// DetachCompat drops the compatibility link and releases the shadow.
func (e *Event) DetachCompat() {
	if e.compat != nil {
		e.compat.Dispose()
		e.compat = nil
	}
}

// CopyStopStateFrom merges the stop and focus-processed status of other into e.
func (e *Event) CopyStopStateFrom(other *Event) {
	e.flags |= other.flags & (flagPropagationStopped | flagImmediateStopped | flagFocusProcessed)
}

// AssertLive panics in debug builds when e was already released.
func (e *Event) AssertLive() { e.assertLive() }

func (e *Event) assertLive() {
	assert(!e.released && e.refCount > 0, "use of released event %s#%d", e.kind, e.id)
}
