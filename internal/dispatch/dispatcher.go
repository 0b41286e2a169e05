package dispatch

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// Dispatcher routes events through element trees.
type Dispatcher struct {
	config  Config
	log     *logrus.Entry
	tracer  Tracer
	metrics *Metrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. Dispatch steps are logged at trace level.
func WithLogger(l *logrus.Entry) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTracer installs a tracer called for every callback step.
func WithTracer(t Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// New creates a new dispatcher with the given configuration.
func New(config Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		config: config,
		log:    logging.Component(logging.Discard(), "dispatch"),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config { return d.config }

// SetConfig replaces the configuration between dispatches. Enabling
// metrics starts a fresh collector; disabling them drops it.
func (d *Dispatcher) SetConfig(config Config) {
	switch {
	case config.EnableMetrics && d.metrics == nil:
		d.metrics = NewMetrics()
	case !config.EnableMetrics:
		d.metrics = nil
	}
	d.config = config
}

// Metrics returns the metrics collector, or nil when metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics { return d.metrics }

// SetTracer replaces the tracer. A nil tracer disables tracing.
func (d *Dispatcher) SetTracer(t Tracer) { d.tracer = t }

// Dispatch sends evt through host's tree. An event that is already stopped
// is not dispatched. Errors report integration bugs such as a missing
// target for an assigned-target kind; expected conditions like a stopped
// event or an empty path are not errors.
//
// The host's tracker is held for the length of the dispatch. When the
// outermost dispatch ends the tracker commits, so element-under-pointer
// changes claimed during it, or during dispatches nested in its callbacks,
// become visible once.
func (d *Dispatcher) Dispatch(evt *ui.Event, host Host) error {
	if host == nil {
		return ErrNilHost
	}
	tr := host.Tracker()
	if tr == nil {
		return d.dispatch(evt, host)
	}

	tr.Hold()
	done := false
	defer func() {
		if !done {
			tr.Drop()
		}
	}()
	err := d.dispatch(evt, host)
	done = true
	tr.Release()
	return err
}

func (d *Dispatcher) dispatch(evt *ui.Event, host Host) error {
	evt.AssertLive()
	if evt.IsPropagationStopped() {
		return nil
	}
	start := time.Now()

	d.PrepareCompat(evt)
	route, err := Resolve(evt, host)
	if err != nil {
		evt.DetachCompat()
		d.log.WithError(err).WithField("kind", evt.Kind().Name()).Error("dispatch rejected")
		if d.metrics != nil {
			d.metrics.RecordError(evt.Kind().Name())
		}
		return err
	}

	if route.Target != nil {
		evt.SetTarget(route.Target)
		if d.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			d.log.WithFields(logrus.Fields{
				"event":    evt.String(),
				"routing":  evt.Kind().Routing().String(),
				"captured": route.Captured,
				"compat":   evt.Compat() != nil,
			}).Trace("dispatch")
		}
		d.run(evt, host, route)
	}
	finishCompat(evt)

	if d.metrics != nil {
		d.metrics.RecordDispatch(evt, route, time.Since(start))
	}
	return nil
}

// run drives the phases. Propagation state is reset on every exit path.
func (d *Dispatcher) run(evt *ui.Event, host Host, route Route) {
	evt.BeginDispatch(host)
	syncShadow(evt, host)
	defer func() {
		if shadow := evt.Compat(); shadow != nil {
			shadow.EndDispatch()
		}
		evt.EndDispatch()
	}()

	if d.config.CapturePrePass && evt.Kind().Routing() == ui.RouteFocusedOrRoot {
		d.capturePrePass(evt, host, route)
		if evt.IsPropagationStopped() {
			return
		}
	}

	if !evt.Bubbles() && !evt.TricklesDown() {
		d.single(evt, route.Target)
		return
	}

	var path *ui.PropagationPath
	if route.Captured {
		path = ui.SingleNodePath(route.Target)
	} else {
		cats := evt.Category()
		if shadow := evt.Compat(); shadow != nil {
			cats |= shadow.Category()
		}
		path = ui.BuildPath(route.Target, cats)
	}
	defer path.Release()

	d.propagate(evt, host, path, route)
}

// capturePrePass gives the mouse captor the event first when it is not the
// target or one of its ancestors.
func (d *Dispatcher) capturePrePass(evt *ui.Event, host Host, route Route) {
	captor := host.Pointers().Capturing(pointer.MousePointerID)
	if captor == nil || captor.Panel() != ui.Panel(host) || captor.Contains(route.Target) {
		return
	}

	skip := evt.SkipDisabledElements()
	evt.SetSkipDisabledElements(false)
	d.single(evt, captor)
	evt.SetSkipDisabledElements(skip)
}

func (d *Dispatcher) propagate(evt *ui.Event, host Host, path *ui.PropagationPath, route Route) {
	shadow := evt.Compat()
	attached := route.Target.Panel() == ui.Panel(host)

	if evt.TricklesDown() {
		for _, node := range path.TrickleDown() {
			if finished(evt, shadow) {
				break
			}
			ui.Assertf(!attached || node.Panel() == ui.Panel(host), "%s detached during dispatch of %s", node, evt)
			d.trickleAt(evt, node)
			if shadow != nil && node.HasSelfInterest(shadow.Category()) {
				d.trickleAt(shadow, node)
			}
		}
	}

	for _, node := range path.BubbleUp() {
		if finished(evt, shadow) {
			break
		}
		ui.Assertf(!attached || node.Panel() == ui.Panel(host), "%s detached during dispatch of %s", node, evt)
		d.bubbleAt(evt, node, route, evt.Bubbles())
		if shadow != nil && node.HasSelfInterest(shadow.Category()) {
			d.bubbleAt(shadow, node, route, shadow.Bubbles())
		}
	}
}

// single delivers evt to node alone, folding both phases. The shadow
// follows the primary in each phase.
func (d *Dispatcher) single(evt *ui.Event, node *ui.Element) {
	route := Route{Target: node, Captured: true}
	shadow := evt.Compat()
	if shadow != nil && !node.HasSelfInterest(shadow.Category()) {
		shadow = nil
	}

	d.trickleAt(evt, node)
	if shadow != nil {
		d.trickleAt(shadow, node)
	}
	d.bubbleAt(evt, node, route, true)
	if shadow != nil {
		d.bubbleAt(shadow, node, route, true)
	}
}

func (d *Dispatcher) trickleAt(evt *ui.Event, node *ui.Element) {
	if evt.IsPropagationStopped() {
		return
	}
	evt.SetPhase(ui.PhaseTrickleDown)
	evt.SetCurrentTarget(node)

	d.step(evt, node, ui.PhaseTrickleDown)
	node.InvokeCallbacks(evt, ui.PhaseTrickleDown)
	if evt.IsImmediatePropagationStopped() {
		return
	}
	if b := behaviorFor(evt, node); b != nil {
		b.HandleTrickleDown(evt)
	}
}

// bubbleAt runs one bubble-up step. The target and composite roots wrap
// their handling with default actions, which only PreventDefault suppresses.
func (d *Dispatcher) bubbleAt(evt *ui.Event, node *ui.Element, route Route, callbacks bool) {
	if evt.IsPropagationStopped() {
		return
	}
	evt.SetPhase(ui.PhaseBubbleUp)
	evt.SetCurrentTarget(node)

	wraps := node == route.Target || node.IsCompositeRoot()
	b := behaviorFor(evt, node)

	if wraps && b != nil && !evt.IsDefaultPrevented() {
		b.DefaultActionAtTarget(evt)
	}
	if callbacks && !evt.IsImmediatePropagationStopped() {
		if !route.Captured || node == route.Target {
			d.step(evt, node, ui.PhaseBubbleUp)
			node.InvokeCallbacks(evt, ui.PhaseBubbleUp)
		}
		if b != nil && !evt.IsImmediatePropagationStopped() {
			b.HandleBubbleUp(evt)
		}
	}
	if wraps && b != nil && !evt.IsDefaultPrevented() {
		b.DefaultAction(evt)
	}
}

func (d *Dispatcher) step(evt *ui.Event, node *ui.Element, phase ui.Phase) {
	if d.tracer != nil {
		d.tracer.Step(evt, node, phase)
	}
}

// behaviorFor returns node's behavior when it handles evt and passes the
// disabled gate.
func behaviorFor(evt *ui.Event, node *ui.Element) ui.Behavior {
	b := node.Behavior()
	if b == nil || !b.HandledCategories().Has(evt.Category()) {
		return nil
	}
	if evt.SkipDisabledElements() && !node.EnabledInHierarchy() {
		return nil
	}
	return b
}

// finished reports whether neither the primary nor its shadow may continue.
func finished(evt, shadow *ui.Event) bool {
	if !evt.IsPropagationStopped() {
		return false
	}
	return shadow == nil || shadow.IsPropagationStopped()
}
