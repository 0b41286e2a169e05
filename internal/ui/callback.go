package ui

// Listener receives events registered on an element. Listener values are
// compared with == to deduplicate registrations, so implementations must be
// comparable; pointer types are the usual choice.
type Listener interface {
	HandleEvent(evt *Event)
}

// Callback adapts a function to Listener. The *Callback pointer is the
// identity used for deduplication and removal.
type Callback struct {
	fn func(*Event)
}

// NewCallback wraps fn.
func NewCallback(fn func(*Event)) *Callback {
	return &Callback{fn: fn}
}

// HandleEvent implements Listener.
func (c *Callback) HandleEvent(evt *Event) {
	c.fn(evt)
}

// InvokePolicy controls when a registered callback runs.
type InvokePolicy uint8

const (
	// InvokeDefault runs the callback on enabled elements only when the event
	// skips disabled elements.
	InvokeDefault InvokePolicy = 0

	// InvokeIncludeDisabled runs the callback even when its element is disabled.
	InvokeIncludeDisabled InvokePolicy = 1 << iota

	// InvokeOnce unregisters the callback right before its first invocation.
	InvokeOnce
)

// CallbackOption configures a registration.
type CallbackOption func(*callbackConfig)

type callbackConfig struct {
	phase  Phase
	policy InvokePolicy
}

func defaultCallbackConfig() callbackConfig {
	return callbackConfig{phase: PhaseBubbleUp, policy: InvokeDefault}
}

// WithTrickleDown registers in the trickle-down list instead of bubble-up.
func WithTrickleDown() CallbackOption {
	return func(c *callbackConfig) {
		c.phase = PhaseTrickleDown
	}
}

// WithIncludeDisabled lets the callback run on disabled elements.
func WithIncludeDisabled() CallbackOption {
	return func(c *callbackConfig) {
		c.policy |= InvokeIncludeDisabled
	}
}

// WithInvokeOnce removes the callback after it runs once.
func WithInvokeOnce() CallbackOption {
	return func(c *callbackConfig) {
		c.policy |= InvokeOnce
	}
}

// WithPolicy replaces the whole invoke policy.
func WithPolicy(p InvokePolicy) CallbackOption {
	return func(c *callbackConfig) {
		c.policy = p
	}
}

// functor is a registered callback. Identity is (kind, listener); it holds
// no reference to its element.
type functor struct {
	kind     *Kind
	listener Listener
	policy   InvokePolicy
	removed  bool
}

func (f *functor) matches(kind *Kind, l Listener) bool {
	return f.kind == kind && f.listener == l
}

const maxPooledFunctors = 256

// functorPool recycles functor wrappers. Unsynchronized, like the event pool.
var functorPool []*functor

func acquireFunctor(kind *Kind, l Listener, policy InvokePolicy) *functor {
	var f *functor
	if n := len(functorPool); n > 0 {
		f = functorPool[n-1]
		functorPool[n-1] = nil
		functorPool = functorPool[:n-1]
	} else {
		f = &functor{}
	}
	*f = functor{kind: kind, listener: l, policy: policy}
	return f
}

func releaseFunctor(f *functor) {
	*f = functor{}
	if len(functorPool) < maxPooledFunctors {
		functorPool = append(functorPool, f)
	}
}
