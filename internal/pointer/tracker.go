package pointer

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/ui"
)

// DefaultMaxCommitPasses bounds how often Commit re-runs when synthesized
// events keep moving the pointer.
const DefaultMaxCommitPasses = 4

// Sender dispatches a synthesized event. The tracker keeps ownership of the
// event and disposes it after Send returns.
type Sender interface {
	Send(evt *ui.Event)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(evt *ui.Event)

// Send implements Sender.
func (f SenderFunc) Send(evt *ui.Event) { f(evt) }

// trigger is what the tracker remembers of the first event that moved a
// pointer during a cycle.
type trigger struct {
	kind    *ui.Kind
	pointer ui.PointerData
	compat  bool
}

type underPointer struct {
	pending   *ui.Element
	committed *ui.Element
	trigger   trigger
	triggered bool
}

// Tracker holds pending and committed element-under-pointer state.
type Tracker struct {
	sender    Sender
	records   [MaxPointers]underPointer
	maxPasses int
	log       *logrus.Entry

	holds      int
	committing bool
	recommit   bool
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxCommitPasses sets how often Commit re-runs for pointers moved by
// its own synthesized events.
func WithMaxCommitPasses(n int) TrackerOption {
	return func(t *Tracker) {
		if n > 0 {
			t.maxPasses = n
		}
	}
}

// WithTrackerLogger sets the logger used for transition tracing.
func WithTrackerLogger(l *logrus.Entry) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTracker creates a tracker that dispatches through sender.
func NewTracker(sender Sender, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		sender:    sender,
		maxPasses: DefaultMaxCommitPasses,
		log:       logging.Component(logging.Discard(), "tracker"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetElementUnderPointer claims el as the element under pointer id for this
// cycle. trig is the event that caused the claim; it may be nil. The first
// trigger of a cycle is kept, later ones only refresh the position.
func (t *Tracker) SetElementUnderPointer(id int, el *ui.Element, trig *ui.Event) {
	if !Valid(id) {
		return
	}
	r := &t.records[id]
	if r.pending == el {
		return
	}
	r.pending = el
	if t.committing {
		t.recommit = true
	}

	if trig == nil {
		return
	}
	if !r.triggered {
		r.trigger = trigger{kind: trig.Kind(), pointer: trig.Pointer, compat: trig.Compat() != nil}
		r.triggered = true
		return
	}
	r.trigger.pointer.Position = trig.Pointer.Position
	r.trigger.pointer.Delta = trig.Pointer.Delta
}

// TopElement returns the committed element under pointer id.
func (t *Tracker) TopElement(id int) *ui.Element {
	if !Valid(id) {
		return nil
	}
	return t.records[id].committed
}

// PendingElement returns the element claimed for pointer id this cycle.
func (t *Tracker) PendingElement(id int) *ui.Element {
	if !Valid(id) {
		return nil
	}
	return t.records[id].pending
}

// ClearElement moves every pointer off the subtree of el. A pending claim
// inside the subtree becomes nil; a pending claim elsewhere is kept, so the
// next Commit leaves the detached element for the claimed one. Panels call
// it before el is detached.
func (t *Tracker) ClearElement(el *ui.Element) bool {
	changed := false
	for id := range t.records {
		r := &t.records[id]
		switch {
		case r.pending != nil && el.Contains(r.pending):
			t.SetElementUnderPointer(id, nil, nil)
			changed = true
		case r.committed != nil && el.Contains(r.committed):
			changed = true
		}
	}
	return changed
}

// Hold defers Commit until the matching Release. Holds nest; dispatchers
// hold the tracker for the length of each dispatch.
func (t *Tracker) Hold() { t.holds++ }

// Release ends a Hold. The outermost Release commits.
func (t *Tracker) Release() {
	if t.holds == 0 {
		return
	}
	t.holds--
	if t.holds == 0 {
		t.Commit()
	}
}

// Drop ends a Hold without committing. It is used when a dispatch unwinds
// abnormally.
func (t *Tracker) Drop() {
	if t.holds > 0 {
		t.holds--
	}
}

// Held reports whether a Hold is active.
func (t *Tracker) Held() bool { return t.holds > 0 }

// Dirty reports whether any pointer has an uncommitted change.
func (t *Tracker) Dirty() bool {
	for i := range t.records {
		if t.records[i].pending != t.records[i].committed {
			return true
		}
	}
	return false
}

// Commit makes pending state visible and dispatches the synthesized
// transition events. Pointers are processed in id order. Commit is a no-op
// while the tracker is held, since the outermost Release commits, and while
// a commit is running; pointers moved by synthesized events are picked up
// by another pass of the running commit.
func (t *Tracker) Commit() {
	if t.holds > 0 || t.committing {
		return
	}
	t.committing = true
	defer func() {
		t.committing = false
		t.recommit = false
	}()

	for pass := 0; pass < t.maxPasses; pass++ {
		t.recommit = false
		for id := range t.records {
			r := &t.records[id]
			if r.pending == r.committed {
				r.triggered = false
				continue
			}
			prev, cur, trig := r.committed, r.pending, r.trigger
			hasTrigger := r.triggered
			r.committed = cur
			r.triggered = false
			if !hasTrigger {
				trig = trigger{pointer: ui.PointerData{
					PointerID:   id,
					PointerType: TypeOf(id),
					IsPrimary:   id == MousePointerID,
					Button:      ui.ButtonNone,
				}}
			}
			t.transition(id, prev, cur, trig)
		}
		if !t.recommit {
			return
		}
	}
	if t.recommit {
		t.log.WithField("passes", t.maxPasses).Warn("element under pointer still changing after commit passes")
	}
}

func (t *Tracker) transition(id int, prev, cur *ui.Element, trig trigger) {
	t.log.WithFields(logrus.Fields{
		"pointer": id,
		"from":    prev.String(),
		"to":      cur.String(),
	}).Debug("element under pointer changed")

	t.overOut(ui.KindPointerOut, ui.KindPointerOver, prev, cur, trig)
	t.enterLeave(ui.KindPointerLeave, ui.KindPointerEnter, prev, cur, trig)

	if trig.pointer.IsPrimary || trig.compat {
		t.overOut(ui.KindMouseOut, ui.KindMouseOver, prev, cur, trig)
		t.enterLeave(ui.KindMouseLeave, ui.KindMouseEnter, prev, cur, trig)
	}
	if trig.kind != nil && ui.IsDragKind(trig.kind) {
		t.enterLeave(ui.KindDragLeave, ui.KindDragEnter, prev, cur, trig)
	}
}

func (t *Tracker) overOut(out, over *ui.Kind, prev, cur *ui.Element, trig trigger) {
	if prev != nil {
		t.send(out, prev, cur, trig)
	}
	if cur != nil {
		t.send(over, cur, prev, trig)
	}
}

// enterLeave sends leave from prev up to the common ancestor, inner to
// outer, then enter from below the common ancestor down to cur, outer to
// inner. Shared ancestors receive neither.
func (t *Tracker) enterLeave(leave, enter *ui.Kind, prev, cur *ui.Element, trig trigger) {
	common := ui.CommonAncestor(prev, cur)

	for el := prev; el != nil && el != common; el = el.Parent() {
		t.send(leave, el, cur, trig)
	}

	var chain []*ui.Element
	for el := cur; el != nil && el != common; el = el.Parent() {
		chain = append(chain, el)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		t.send(enter, chain[i], prev, trig)
	}
}

func (t *Tracker) send(kind *ui.Kind, target, related *ui.Element, trig trigger) {
	evt := ui.AcquireEvent(kind)
	evt.Pointer = trig.pointer
	evt.SetTarget(target)
	evt.SetRelatedTarget(related)
	t.sender.Send(evt)
	evt.Dispose()
}

// Reset forgets all under-pointer state without sending events.
func (t *Tracker) Reset() {
	t.records = [MaxPointers]underPointer{}
	t.holds = 0
	t.committing = false
	t.recommit = false
}
