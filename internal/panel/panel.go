package panel

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/dshills/uiflow/internal/dispatch"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// MenuPresenter shows a populated contextual menu. The panel keeps the
// populate event alive until done is called; Present may return before that.
type MenuPresenter interface {
	Present(evt *ui.Event, done func())
}

// MenuPresenterFunc is a function adapter for MenuPresenter.
type MenuPresenterFunc func(evt *ui.Event, done func())

// Present implements MenuPresenter.
func (f MenuPresenterFunc) Present(evt *ui.Event, done func()) { f(evt, done) }

// Panel is the root context of an element tree. It implements dispatch.Host.
// A Panel is not safe for concurrent use.
type Panel struct {
	id   uuid.UUID
	name string

	root    *ui.Element
	focused *ui.Element

	store      *pointer.Store
	tracker    *pointer.Tracker
	dispatcher *dispatch.Dispatcher
	context    pointer.Context
	clicks     *input.ClickDetector
	menus      MenuPresenter
	log        *logrus.Entry

	trackerOpts []pointer.TrackerOption

	// pressTargets remembers the target of the last pointer down per pointer
	// for click synthesis.
	pressTargets [pointer.MaxPointers]*ui.Element
}

// Option configures a Panel.
type Option func(*Panel)

// WithName sets the panel's name, used in logs.
func WithName(name string) Option {
	return func(p *Panel) {
		p.name = name
	}
}

// WithStore shares a pointer store between panels.
func WithStore(s *pointer.Store) Option {
	return func(p *Panel) {
		p.store = s
	}
}

// WithDispatcher sets the dispatcher events are routed through.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(p *Panel) {
		p.dispatcher = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(p *Panel) {
		p.log = l
	}
}

// WithContext selects the pointer context positions are saved under.
func WithContext(ctx pointer.Context) Option {
	return func(p *Panel) {
		p.context = ctx
	}
}

// WithClickDetector replaces the default click detector.
func WithClickDetector(d *input.ClickDetector) Option {
	return func(p *Panel) {
		p.clicks = d
	}
}

// WithMenuPresenter sets the presenter for contextual menus. Without one,
// populate events are still dispatched but never shown.
func WithMenuPresenter(m MenuPresenter) Option {
	return func(p *Panel) {
		p.menus = m
	}
}

// WithTrackerOptions passes options to the panel's tracker.
func WithTrackerOptions(opts ...pointer.TrackerOption) Option {
	return func(p *Panel) {
		p.trackerOpts = append(p.trackerOpts, opts...)
	}
}

// New creates a panel with an empty root element.
func New(opts ...Option) *Panel {
	p := &Panel{
		id:      uuid.New(),
		name:    "panel",
		context: pointer.ContextRuntime,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.store == nil {
		p.store = pointer.NewStore()
	}
	if p.dispatcher == nil {
		p.dispatcher = dispatch.NewWithDefaults()
	}
	if p.clicks == nil {
		p.clicks = input.NewClickDetector(0, 0)
	}
	if p.log == nil {
		p.log = logging.Component(logging.Discard(), "panel")
	}
	p.log = p.log.WithField("panel", p.name)

	trackerOpts := append([]pointer.TrackerOption{
		pointer.WithTrackerLogger(p.log.WithField("component", "tracker")),
	}, p.trackerOpts...)
	p.tracker = pointer.NewTracker(pointer.SenderFunc(p.sendSynthesized), trackerOpts...)

	p.root = ui.NewElement("root")
	p.root.AttachToPanel(p)
	return p
}

// ID returns the panel's unique id.
func (p *Panel) ID() uuid.UUID { return p.id }

// Name returns the panel's name.
func (p *Panel) Name() string { return p.name }

// Root implements ui.Panel.
func (p *Panel) Root() *ui.Element { return p.root }

// FocusedElement implements dispatch.Host.
func (p *Panel) FocusedElement() *ui.Element { return p.focused }

// Pointers implements dispatch.Host.
func (p *Panel) Pointers() *pointer.Store { return p.store }

// Tracker implements dispatch.Host.
func (p *Panel) Tracker() *pointer.Tracker { return p.tracker }

// Dispatcher returns the dispatcher events are routed through.
func (p *Panel) Dispatcher() *dispatch.Dispatcher { return p.dispatcher }

// Context returns the pointer context the panel saves positions under.
func (p *Panel) Context() pointer.Context { return p.context }

// SetRoot replaces the root element. The old root is detached with the
// usual notifications.
func (p *Panel) SetRoot(el *ui.Element) error {
	if el == nil {
		return ErrNilRoot
	}
	if el.Parent() != nil {
		return errors.Wrapf(ErrRootHasParent, "element %s", el)
	}
	if el == p.root {
		return nil
	}

	bounds := p.root.Bounds()
	p.root.DetachFromPanel()

	p.root = el
	if el.Bounds().Empty() {
		el.SetBounds(bounds)
	}
	el.AttachToPanel(p)
	return nil
}

// Send dispatches evt in the panel. The caller keeps ownership of evt.
// Configuration errors are returned; the dispatcher logs them.
func (p *Panel) Send(evt *ui.Event) error {
	return p.dispatcher.Dispatch(evt, p)
}

// sendSynthesized is the tracker's sender.
func (p *Panel) sendSynthesized(evt *ui.Event) {
	_ = p.Send(evt)
}

// send acquires an event of kind, lets fill prepare it and sends it.
func (p *Panel) send(kind *ui.Kind, target *ui.Element, fill func(*ui.Event)) error {
	evt := ui.AcquireEvent(kind)
	defer evt.Dispose()
	evt.SetTarget(target)
	if fill != nil {
		fill(evt)
	}
	return p.Send(evt)
}

// ElementDetaching implements ui.Panel. Focus inside the detached subtree
// is cleared, pointers over it are moved to nil and pending clicks on it
// are forgotten. Captures are released lazily by routing.
func (p *Panel) ElementDetaching(el *ui.Element) {
	if p.focused != nil && el.Contains(p.focused) {
		p.log.WithField("element", el.String()).Debug("focused element detached")
		p.changeFocus(p.focused, nil)
	}
	if p.tracker.ClearElement(el) {
		p.tracker.Commit()
	}
	for i, t := range p.pressTargets {
		if t != nil && el.Contains(t) {
			p.pressTargets[i] = nil
		}
	}
}

// Resize sets the root bounds and notifies the root with PanelResized.
func (p *Panel) Resize(bounds ui.Rect) error {
	p.root.SetBounds(bounds)
	return p.send(ui.KindPanelResized, nil, nil)
}

// Close drops the panel's pointer state from the shared store.
func (p *Panel) Close() {
	for _, id := range p.store.CapturedBy(p.root) {
		p.store.Release(id)
	}
	p.store.ForgetPanel(p)
	p.tracker.Reset()
	p.pressTargets = [pointer.MaxPointers]*ui.Element{}
	p.focused = nil
}
