// Package script binds Lua handlers to element callbacks.
//
// An Engine owns one sandboxed gopher-lua state and exposes a global "ui"
// table to scripts. Handlers registered from Lua become ordinary element
// callbacks, so they take part in trickle-down and bubble-up like Go ones.
//
// # Basic usage
//
//	eng := script.NewEngine(p, script.WithStatus(setStatus))
//	defer eng.Close()
//	if err := eng.DoFile("behaviors.lua"); err != nil {
//		return err
//	}
//
// A script:
//
//	ui.on("ok", "Click", function(evt)
//	    ui.status("clicked " .. evt.clicks .. " times")
//	    evt.prevent_default()
//	end)
//
//	ui.on("root", "KeyDown", function(evt)
//	    if evt.rune == "r" then ui.set_bounds("drag", 40, 2, 14, 5) end
//	end, { trickle = true })
//
// # The ui table
//
//	ui.on(name, kind, fn [, {trickle, once, disabled}]) -> id
//	ui.off(id) -> bool
//	ui.status(text)
//	ui.find(name) -> bool
//	ui.focus(name or nil) -> true | nil, err
//	ui.capture(name [, pointer]) -> true | nil, err
//	ui.release(name [, pointer])
//	ui.bounds(name) -> x, y, w, h
//	ui.set_bounds(name, x, y, w, h)
//
// Handlers receive an event table with kind, phase, target, current,
// related, pointer, x, y, lx, ly, button, buttons, clicks, key, rune, mods
// and command fields, and stop, stop_now, prevent_default and
// menu(label, fn) methods. The table is only valid while the handler runs.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened; package, io,
// os and debug are not. dofile, loadfile, load and loadstring are removed.
//
// # Threading
//
// An Engine is not safe for concurrent use. Scripts run on the goroutine
// that dispatches events, like every other callback.
package script
