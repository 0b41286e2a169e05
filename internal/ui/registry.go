package ui

// callbackList is one ordered phase list of an element.
//
// While invoking > 0 the live slice is frozen: readers iterate it as a
// snapshot and writers go to a single staged copy. When the outermost
// invocation ends the staged copy becomes live and functors removed during
// the pass are released. Removal also flags the functor so snapshots skip it
// immediately.
type callbackList struct {
	entries   []*functor
	staged    []*functor
	hasStaged bool
	invoking  int
	graveyard []*functor
	category  Category
}

// view returns the list as writers currently see it.
func (l *callbackList) view() []*functor {
	if l.hasStaged {
		return l.staged
	}
	return l.entries
}

// store replaces the writable list after a mutation.
func (l *callbackList) store(list []*functor) {
	if l.invoking > 0 {
		l.staged = list
		l.hasStaged = true
		return
	}
	l.entries = list
}

// writable returns a list that may be mutated without touching a snapshot.
func (l *callbackList) writable() []*functor {
	if l.invoking == 0 || l.hasStaged {
		return l.view()
	}
	cp := make([]*functor, len(l.entries), len(l.entries)+1)
	copy(cp, l.entries)
	l.staged = cp
	l.hasStaged = true
	return cp
}

func (l *callbackList) indexOf(kind *Kind, listener Listener) int {
	for i, f := range l.view() {
		if f.matches(kind, listener) {
			return i
		}
	}
	return -1
}

// add registers (kind, listener). An existing registration keeps its place
// and only has its policy updated. It reports whether a new entry was added.
func (l *callbackList) add(kind *Kind, listener Listener, policy InvokePolicy) bool {
	if i := l.indexOf(kind, listener); i >= 0 {
		l.view()[i].policy = policy
		return false
	}
	list := append(l.writable(), acquireFunctor(kind, listener, policy))
	l.store(list)
	l.recomputeCategory()
	return true
}

// remove unregisters (kind, listener) and returns the removed functor, or nil.
// The functor is released now, or when the outermost invocation ends.
func (l *callbackList) remove(kind *Kind, listener Listener) *functor {
	i := l.indexOf(kind, listener)
	if i < 0 {
		return nil
	}
	list := l.writable()
	f := list[i]
	f.removed = true
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	l.store(list[:len(list)-1])
	l.recomputeCategory()

	if l.invoking > 0 {
		l.graveyard = append(l.graveyard, f)
	} else {
		releaseFunctor(f)
	}
	return f
}

func (l *callbackList) clear() {
	for _, f := range append([]*functor(nil), l.view()...) {
		l.remove(f.kind, f.listener)
	}
}

func (l *callbackList) recomputeCategory() {
	var c Category
	for _, f := range l.view() {
		c |= f.kind.category
	}
	l.category = c
}

func (l *callbackList) len() int { return len(l.view()) }

func (l *callbackList) beginInvoke() {
	l.invoking++
}

func (l *callbackList) endInvoke() {
	l.invoking--
	if l.invoking > 0 {
		return
	}
	if l.hasStaged {
		l.entries = l.staged
		l.staged = nil
		l.hasStaged = false
	}
	for i, f := range l.graveyard {
		releaseFunctor(f)
		l.graveyard[i] = nil
	}
	l.graveyard = l.graveyard[:0]
}

// invoke runs the callbacks registered for evt's kind, in registration order.
func (l *callbackList) invoke(evt *Event, owner *Element) {
	if len(l.entries) == 0 || !l.category.Has(evt.kind.category) {
		return
	}

	l.beginInvoke()
	defer l.endInvoke()

	snapshot := l.entries
	gateChecked, enabled := false, true
	for _, f := range snapshot {
		if f.removed || f.kind != evt.kind {
			continue
		}
		if evt.currentTarget != owner {
			continue
		}
		if evt.SkipDisabledElements() && f.policy&InvokeIncludeDisabled == 0 {
			if !gateChecked {
				enabled = owner.EnabledInHierarchy()
				gateChecked = true
			}
			if !enabled {
				continue
			}
		}
		if f.policy&InvokeOnce != 0 {
			l.remove(f.kind, f.listener)
		}

		f.listener.HandleEvent(evt)

		if evt.IsImmediatePropagationStopped() {
			break
		}
	}
}

// callbackRegistry holds the two phase lists of an element.
type callbackRegistry struct {
	trickle callbackList
	bubble  callbackList
}

func (r *callbackRegistry) list(phase Phase) *callbackList {
	if phase == PhaseTrickleDown {
		return &r.trickle
	}
	return &r.bubble
}

func (r *callbackRegistry) category() Category {
	return r.trickle.category | r.bubble.category
}
