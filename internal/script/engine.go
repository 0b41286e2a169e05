package script

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/uiflow/internal/logging"
	"github.com/dshills/uiflow/internal/ui"
)

// Host is the panel surface scripts can drive.
type Host interface {
	Root() *ui.Element
	Focus(el *ui.Element) error
	Blur()
	CapturePointer(id int, el *ui.Element) error
	ReleasePointer(id int, el *ui.Element)
}

// subscription is one ui.on registration.
type subscription struct {
	el   *ui.Element
	kind *ui.Kind
	cb   *ui.Callback
	opts []ui.CallbackOption
}

// Engine runs Lua scripts against a Host.
type Engine struct {
	L      *lua.LState
	host   Host
	status func(string)
	log    *logrus.Entry

	subs   map[string]subscription
	nextID int
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithStatus sets the sink for ui.status.
func WithStatus(fn func(string)) Option {
	return func(e *Engine) {
		e.status = fn
	}
}

// WithLogger sets the logger for handler failures.
func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates a sandboxed Lua state bound to host.
func NewEngine(host Host, opts ...Option) *Engine {
	e := &Engine{
		host:   host,
		status: func(string) {},
		log:    logging.Component(nil, "script"),
		subs:   make(map[string]subscription),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.L.SetGlobal("ui", e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"on":         e.on,
		"off":        e.off,
		"status":     e.setStatus,
		"find":       e.find,
		"focus":      e.focus,
		"capture":    e.capture,
		"release":    e.release,
		"bounds":     e.bounds,
		"set_bounds": e.setBounds,
	}))
	return e
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoFile runs the script at path.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrClosed
	}
	return errors.Wrapf(e.L.DoFile(path), "run %s", path)
}

// DoString runs code.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrClosed
	}
	return errors.Wrap(e.L.DoString(code), "run script")
}

// Subscriptions returns the number of live ui.on registrations.
func (e *Engine) Subscriptions() int { return len(e.subs) }

// Close unregisters every handler and closes the Lua state. It is safe to
// call more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	for id := range e.subs {
		e.unsubscribe(id)
	}
	e.closed = true
	e.L.Close()
}

func (e *Engine) unsubscribe(id string) bool {
	sub, ok := e.subs[id]
	if !ok {
		return false
	}
	delete(e.subs, id)
	sub.el.UnregisterCallback(sub.kind, sub.cb, sub.opts...)
	return true
}

// lookup finds the first element named name in tree order.
func (e *Engine) lookup(name string) *ui.Element {
	var walk func(*ui.Element) *ui.Element
	walk = func(el *ui.Element) *ui.Element {
		if el.Name() == name {
			return el
		}
		for _, c := range el.Children() {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(e.host.Root())
}

func (e *Engine) checkElement(L *lua.LState, n int) *ui.Element {
	name := L.CheckString(n)
	el := e.lookup(name)
	if el == nil {
		L.ArgError(n, fmt.Sprintf("%v %q", ErrUnknownElement, name))
	}
	return el
}

// call runs fn with args, logging instead of propagating Lua errors:
// handlers run inside dispatch, which has nowhere to return them.
func (e *Engine) call(fn *lua.LFunction, owner string, args ...lua.LValue) {
	if e.closed {
		return
	}
	err := e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	if err != nil {
		e.log.WithError(err).WithField("handler", owner).Warn("script handler failed")
	}
}

// ui.on(name, kind, fn [, opts]) -> id
func (e *Engine) on(L *lua.LState) int {
	el := e.checkElement(L, 1)
	kindName := L.CheckString(2)
	fn := L.CheckFunction(3)
	opts := L.OptTable(4, nil)

	kind, ok := ui.KindByName(kindName)
	if !ok {
		L.ArgError(2, fmt.Sprintf("%v %q", ErrUnknownKind, kindName))
		return 0
	}

	var cbOpts []ui.CallbackOption
	if opts != nil {
		if lua.LVAsBool(opts.RawGetString("trickle")) {
			cbOpts = append(cbOpts, ui.WithTrickleDown())
		}
		if lua.LVAsBool(opts.RawGetString("once")) {
			cbOpts = append(cbOpts, ui.WithInvokeOnce())
		}
		if lua.LVAsBool(opts.RawGetString("disabled")) {
			cbOpts = append(cbOpts, ui.WithIncludeDisabled())
		}
	}

	e.nextID++
	id := fmt.Sprintf("%s.%s#%d", el.Name(), kind.Name(), e.nextID)
	cb := ui.NewCallback(func(evt *ui.Event) {
		t, done := e.eventTable(evt)
		defer done()
		e.call(fn, id, t)
	})
	if err := el.RegisterCallback(kind, cb, cbOpts...); err != nil {
		L.RaiseError("ui.on: %v", err)
		return 0
	}
	e.subs[id] = subscription{el: el, kind: kind, cb: cb, opts: cbOpts}

	L.Push(lua.LString(id))
	return 1
}

// ui.off(id) -> bool
func (e *Engine) off(L *lua.LState) int {
	L.Push(lua.LBool(e.unsubscribe(L.CheckString(1))))
	return 1
}

// ui.status(text)
func (e *Engine) setStatus(L *lua.LState) int {
	e.status(L.CheckString(1))
	return 0
}

// ui.find(name) -> bool
func (e *Engine) find(L *lua.LState) int {
	L.Push(lua.LBool(e.lookup(L.CheckString(1)) != nil))
	return 1
}

// pushResult follows the Lua convention: true, or nil and a message.
func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// ui.focus(name or nil) -> true | nil, err
func (e *Engine) focus(L *lua.LState) int {
	if L.Get(1) == lua.LNil {
		e.host.Blur()
		return pushResult(L, nil)
	}
	return pushResult(L, e.host.Focus(e.checkElement(L, 1)))
}

// ui.capture(name [, pointer]) -> true | nil, err
func (e *Engine) capture(L *lua.LState) int {
	el := e.checkElement(L, 1)
	return pushResult(L, e.host.CapturePointer(L.OptInt(2, 0), el))
}

// ui.release(name [, pointer])
func (e *Engine) release(L *lua.LState) int {
	el := e.checkElement(L, 1)
	e.host.ReleasePointer(L.OptInt(2, 0), el)
	return 0
}

// ui.bounds(name) -> x, y, w, h
func (e *Engine) bounds(L *lua.LState) int {
	b := e.checkElement(L, 1).Bounds()
	L.Push(lua.LNumber(b.Min.X))
	L.Push(lua.LNumber(b.Min.Y))
	L.Push(lua.LNumber(b.Width()))
	L.Push(lua.LNumber(b.Height()))
	return 4
}

// ui.set_bounds(name, x, y, w, h)
func (e *Engine) setBounds(L *lua.LState) int {
	el := e.checkElement(L, 1)
	el.SetBounds(ui.NewRect(
		float64(L.CheckNumber(2)),
		float64(L.CheckNumber(3)),
		float64(L.CheckNumber(4)),
		float64(L.CheckNumber(5)),
	))
	return 0
}
