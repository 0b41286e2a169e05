package ui

import "github.com/pkg/errors"

// Panel is the root context an element tree is attached to. The element
// tree only needs to report detachment; routing state lives in the panel.
type Panel interface {
	// Root returns the panel's root element.
	Root() *Element

	// ElementDetaching is called before el leaves the tree, while its
	// ancestors are still reachable.
	ElementDetaching(el *Element)
}

// Behavior is an element's own event handling, run by the dispatcher around
// the registered callbacks. HandledCategories feeds the interest bitmasks so
// that elements with behavior are kept on propagation paths.
type Behavior interface {
	HandledCategories() Category
	HandleTrickleDown(evt *Event)
	HandleBubbleUp(evt *Event)
	DefaultActionAtTarget(evt *Event)
	DefaultAction(evt *Event)
}

// BehaviorFuncs implements Behavior from optional functions.
type BehaviorFuncs struct {
	Categories  Category
	TrickleDown func(*Event)
	BubbleUp    func(*Event)
	AtTarget    func(*Event)
	Default     func(*Event)
}

func (b BehaviorFuncs) HandledCategories() Category { return b.Categories }

func (b BehaviorFuncs) HandleTrickleDown(evt *Event) {
	if b.TrickleDown != nil {
		b.TrickleDown(evt)
	}
}

func (b BehaviorFuncs) HandleBubbleUp(evt *Event) {
	if b.BubbleUp != nil {
		b.BubbleUp(evt)
	}
}

func (b BehaviorFuncs) DefaultActionAtTarget(evt *Event) {
	if b.AtTarget != nil {
		b.AtTarget(evt)
	}
}

func (b BehaviorFuncs) DefaultAction(evt *Event) {
	if b.Default != nil {
		b.Default(evt)
	}
}

// PickingMode controls whether picking can return an element.
type PickingMode uint8

const (
	PickPosition PickingMode = iota
	PickIgnore
)

// Element is a node of the retained tree. It owns its two callback lists and
// caches the categories it and its ancestors are interested in.
type Element struct {
	name     string
	parent   *Element
	children []*Element
	panel    Panel

	// bounds is expressed in the parent's frame.
	bounds Rect

	enabled       bool
	focusable     bool
	compositeRoot bool
	picking       PickingMode

	behavior  Behavior
	callbacks callbackRegistry

	selfInterest   Category
	parentInterest Category
	parentValid    bool

	// Data is free for the application.
	Data any
}

// NewElement creates an enabled, detached element.
func NewElement(name string) *Element {
	return &Element{name: name, enabled: true}
}

func (e *Element) Name() string { return e.name }

func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.name
}

func (e *Element) Parent() *Element { return e.parent }

// Children returns the child list. Callers must not modify it.
func (e *Element) Children() []*Element { return e.children }

// Panel returns the panel the element is attached to, or nil.
func (e *Element) Panel() Panel { return e.panel }

// IsAttached reports whether the element belongs to a panel.
func (e *Element) IsAttached() bool { return e.panel != nil }

// Add appends child, removing it from its previous parent first.
func (e *Element) Add(child *Element) error {
	return e.Insert(len(e.children), child)
}

// Insert places child at index i among e's children.
func (e *Element) Insert(i int, child *Element) error {
	if child == nil {
		return errors.New("cannot add nil element")
	}
	if child == e || child.IsAncestorOf(e) {
		return errors.Wrapf(ErrCycle, "adding %s to %s", child, e)
	}
	if child.parent != nil {
		child.RemoveFromHierarchy()
		if i > len(e.children) {
			i = len(e.children)
		}
	}
	if i < 0 || i > len(e.children) {
		return errors.Errorf("insert index %d out of range [0,%d]", i, len(e.children))
	}

	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = child
	child.parent = e
	child.invalidateParentInterest()
	child.setPanel(e.panel)
	return nil
}

// Remove detaches child from e. It reports whether child was a child of e.
func (e *Element) Remove(child *Element) bool {
	idx := -1
	for i, c := range e.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	if child.panel != nil {
		child.panel.ElementDetaching(child)
	}
	copy(e.children[idx:], e.children[idx+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	child.parent = nil
	child.invalidateParentInterest()
	child.setPanel(nil)
	return true
}

// RemoveFromHierarchy detaches e from its parent, if any.
func (e *Element) RemoveFromHierarchy() {
	if e.parent != nil {
		e.parent.Remove(e)
	}
}

// AttachToPanel makes e the root of p's tree. Panels call this when their
// root is set; it propagates p to every descendant.
func (e *Element) AttachToPanel(p Panel) {
	e.setPanel(p)
}

// DetachFromPanel clears the panel of a root element.
func (e *Element) DetachFromPanel() {
	if e.panel != nil {
		e.panel.ElementDetaching(e)
	}
	e.setPanel(nil)
}

func (e *Element) setPanel(p Panel) {
	e.panel = p
	for _, c := range e.children {
		c.setPanel(p)
	}
}

// IsAncestorOf reports whether e is a strict ancestor of other.
func (e *Element) IsAncestorOf(other *Element) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	return other == e || e.IsAncestorOf(other)
}

// CommonAncestor returns the deepest element that contains both a and b.
func CommonAncestor(a, b *Element) *Element {
	if a == nil || b == nil {
		return nil
	}
	depth := func(x *Element) int {
		d := 0
		for p := x.parent; p != nil; p = p.parent {
			d++
		}
		return d
	}
	da, db := depth(a), depth(b)
	for ; da > db; da-- {
		a = a.parent
	}
	for ; db > da; db-- {
		b = b.parent
	}
	for a != b {
		a, b = a.parent, b.parent
	}
	return a
}

// SetEnabled changes the element's own enabled state.
func (e *Element) SetEnabled(enabled bool) { e.enabled = enabled }

// EnabledSelf reports the element's own enabled state.
func (e *Element) EnabledSelf() bool { return e.enabled }

// EnabledInHierarchy reports whether e and all its ancestors are enabled.
func (e *Element) EnabledInHierarchy() bool {
	for x := e; x != nil; x = x.parent {
		if !x.enabled {
			return false
		}
	}
	return true
}

func (e *Element) SetFocusable(f bool) { e.focusable = f }
func (e *Element) Focusable() bool     { return e.focusable }

// SetCompositeRoot marks e as a compound control that wraps default actions
// around events targeted at its descendants.
func (e *Element) SetCompositeRoot(c bool) { e.compositeRoot = c }
func (e *Element) IsCompositeRoot() bool   { return e.compositeRoot }

func (e *Element) SetPickingMode(m PickingMode) { e.picking = m }
func (e *Element) PickingMode() PickingMode     { return e.picking }

// SetBounds places e within its parent's frame.
func (e *Element) SetBounds(r Rect) { e.bounds = r }
func (e *Element) Bounds() Rect     { return e.bounds }

// WorldOrigin returns the position of e's frame origin in panel coordinates.
func (e *Element) WorldOrigin() Vec2 {
	var o Vec2
	for x := e; x != nil; x = x.parent {
		o = o.Add(x.bounds.Min)
	}
	return o
}

// WorldBounds returns e's rect in panel coordinates.
func (e *Element) WorldBounds() Rect {
	if e.parent == nil {
		return e.bounds
	}
	return e.bounds.Translate(e.parent.WorldOrigin())
}

// WorldToLocal converts a panel position into e's frame.
func (e *Element) WorldToLocal(p Vec2) Vec2 { return p.Sub(e.WorldOrigin()) }

// LocalToWorld converts a position in e's frame into panel coordinates.
func (e *Element) LocalToWorld(p Vec2) Vec2 { return p.Add(e.WorldOrigin()) }

// SetBehavior installs e's own event handling.
func (e *Element) SetBehavior(b Behavior) {
	e.behavior = b
	e.updateSelfInterest()
}

func (e *Element) Behavior() Behavior { return e.behavior }

// RegisterCallback adds listener for kind. Registering the same (kind,
// listener) pair twice in one phase keeps a single entry and updates its
// policy. Registrations made while that list is being invoked take effect
// from the next pass.
func (e *Element) RegisterCallback(kind *Kind, listener Listener, opts ...CallbackOption) error {
	if kind == nil {
		return ErrNilKind
	}
	if listener == nil {
		return ErrNilListener
	}
	cfg := defaultCallbackConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	e.callbacks.list(cfg.phase).add(kind, listener, cfg.policy)
	e.updateSelfInterest()
	return nil
}

// UnregisterCallback removes listener for kind from the phase selected by
// opts. It reports whether a registration was removed. Removing a callback
// while it is being invoked stops it from running again in that pass.
func (e *Element) UnregisterCallback(kind *Kind, listener Listener, opts ...CallbackOption) bool {
	if kind == nil || listener == nil {
		return false
	}
	cfg := defaultCallbackConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	removed := e.callbacks.list(cfg.phase).remove(kind, listener) != nil
	if removed {
		e.updateSelfInterest()
	}
	return removed
}

// ClearCallbacks removes every registration of both phases.
func (e *Element) ClearCallbacks() {
	e.callbacks.trickle.clear()
	e.callbacks.bubble.clear()
	e.updateSelfInterest()
}

// CallbackCount returns the number of registrations in phase.
func (e *Element) CallbackCount(phase Phase) int {
	return e.callbacks.list(phase).len()
}

// InvokeCallbacks runs e's callbacks of phase for evt. The dispatcher sets
// evt's current target to e before calling it.
func (e *Element) InvokeCallbacks(evt *Event, phase Phase) {
	e.callbacks.list(phase).invoke(evt, e)
	// Invoke-once callbacks may have left.
	e.updateSelfInterest()
}

// HasCallbacks reports whether any callback of phase handles a category in c.
func (e *Element) HasCallbacks(phase Phase, c Category) bool {
	return e.callbacks.list(phase).category.Has(c)
}

// SelfInterest is the union of categories handled by e's callbacks and behavior.
func (e *Element) SelfInterest() Category { return e.selfInterest }

// HasSelfInterest reports whether e itself handles any category in c.
func (e *Element) HasSelfInterest(c Category) bool { return e.selfInterest.Has(c) }

// ParentInterest is the union of the self interest of all ancestors.
func (e *Element) ParentInterest() Category {
	if !e.parentValid {
		var c Category
		if e.parent != nil {
			c = e.parent.selfInterest | e.parent.ParentInterest()
		}
		e.parentInterest = c
		e.parentValid = true
	}
	return e.parentInterest
}

// HasParentInterest reports whether any ancestor handles a category in c.
func (e *Element) HasParentInterest(c Category) bool { return e.ParentInterest().Has(c) }

func (e *Element) updateSelfInterest() {
	c := e.callbacks.category()
	if e.behavior != nil {
		c |= e.behavior.HandledCategories()
	}
	if c == e.selfInterest {
		return
	}
	e.selfInterest = c
	for _, child := range e.children {
		child.invalidateParentInterest()
	}
}

func (e *Element) invalidateParentInterest() {
	if !e.parentValid {
		// Descendants of an invalid element are invalid too.
		return
	}
	e.parentValid = false
	for _, c := range e.children {
		c.invalidateParentInterest()
	}
}
