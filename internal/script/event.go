package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/ui"
)

// eventTable builds the table a handler receives for evt. The returned
// func must run when the handler returns; afterwards the table's methods
// raise an error because evt may already be back in the pool.
func (e *Engine) eventTable(evt *ui.Event) (*lua.LTable, func()) {
	L := e.L
	live := true
	t := L.NewTable()

	t.RawSetString("kind", lua.LString(evt.Kind().Name()))
	t.RawSetString("phase", lua.LString(evt.Phase().String()))
	t.RawSetString("target", elementName(evt.Target()))
	t.RawSetString("current", elementName(evt.CurrentTarget()))
	t.RawSetString("related", elementName(evt.RelatedTarget()))

	mods := key.ModNone
	switch {
	case ui.IsPointerKind(evt.Kind()):
		p := evt.Pointer
		local := evt.LocalPosition()
		t.RawSetString("pointer", lua.LNumber(p.PointerID))
		t.RawSetString("x", lua.LNumber(p.Position.X))
		t.RawSetString("y", lua.LNumber(p.Position.Y))
		t.RawSetString("lx", lua.LNumber(local.X))
		t.RawSetString("ly", lua.LNumber(local.Y))
		t.RawSetString("button", lua.LString(p.Button.String()))
		t.RawSetString("buttons", lua.LNumber(p.PressedButtons))
		t.RawSetString("clicks", lua.LNumber(p.ClickCount))
		mods = p.Modifiers
	case evt.Category().Has(ui.CategoryKeyboard):
		t.RawSetString("key", lua.LString(evt.Key.Key.String()))
		if evt.Key.Key == key.KeyRune {
			t.RawSetString("rune", lua.LString(string(evt.Key.Rune)))
		}
		mods = evt.Key.Modifiers
	case evt.Category().Has(ui.CategoryCommand):
		t.RawSetString("command", lua.LString(evt.Command))
	}
	t.RawSetString("mods", lua.LString(mods.String()))

	method := func(name string, fn func(L *lua.LState) int) {
		t.RawSetString(name, L.NewFunction(func(L *lua.LState) int {
			if !live {
				L.RaiseError("event.%s called after its handler returned", name)
				return 0
			}
			return fn(L)
		}))
	}
	method("stop", func(*lua.LState) int {
		evt.StopPropagation()
		return 0
	})
	method("stop_now", func(*lua.LState) int {
		evt.StopImmediatePropagation()
		return 0
	})
	method("prevent_default", func(*lua.LState) int {
		evt.PreventDefault()
		return 0
	})
	method("menu", func(L *lua.LState) int {
		label := L.CheckString(1)
		fn := L.CheckFunction(2)
		evt.AppendMenuItem(label, func() { e.call(fn, "menu:"+label) })
		return 0
	})

	return t, func() { live = false }
}

func elementName(el *ui.Element) lua.LValue {
	if el == nil {
		return lua.LNil
	}
	return lua.LString(el.Name())
}
