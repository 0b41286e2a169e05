package ui

import "time"

// maxPooledEvents bounds the free list so a burst does not pin memory.
const maxPooledEvents = 256

// eventPool is a process-wide free list. It is not synchronized: the engine
// runs on the single thread that receives input.
type eventPool struct {
	free   []*Event
	nextID uint64
}

var events eventPool

// AcquireEvent returns a cleared event of the given kind with a reference
// count of one. Its propagation flags and disabled gate come from the kind.
func AcquireEvent(kind *Kind) *Event {
	var e *Event
	if n := len(events.free); n > 0 {
		e = events.free[n-1]
		events.free[n-1] = nil
		events.free = events.free[:n-1]
	} else {
		e = &Event{}
	}

	events.nextID++
	menu := e.menu[:0]
	*e = Event{
		kind:        kind,
		id:          events.nextID,
		timestamp:   time.Now(),
		propagation: kind.propagation,
		refCount:    1,
		menu:        menu,
	}
	e.Pointer.Button = ButtonNone
	if kind.SkipsDisabledByDefault() {
		e.flags |= flagSkipDisabled
	}
	return e
}

// Retain adds a reference. Senders that keep an event across a deferred
// operation pair Retain with an extra Dispose.
func (e *Event) Retain() {
	e.assertLive()
	e.refCount++
}

// RefCount returns the number of outstanding references.
func (e *Event) RefCount() int { return e.refCount }

// Dispose releases one reference. The last release returns the event, and
// any attached compatibility event, to the pool.
func (e *Event) Dispose() {
	e.assertLive()
	if e.refCount <= 0 {
		return
	}
	e.refCount--
	if e.refCount > 0 {
		return
	}

	if e.compat != nil {
		e.compat.Dispose()
		e.compat = nil
	}
	for i := range e.menu {
		e.menu[i] = MenuItem{}
	}
	e.target, e.currentTarget, e.relatedTarget, e.panel = nil, nil, nil, nil
	e.released = true

	if len(events.free) < maxPooledEvents {
		events.free = append(events.free, e)
	}
}

// pooledEvents reports the free-list size.
func pooledEvents() int { return len(events.free) }
