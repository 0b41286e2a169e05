package main

import (
	"fmt"

	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/panel"
	"github.com/dshills/uiflow/internal/ui"
)

var dragHome = ui.NewRect(40, 2, 14, 5)

// demo is the element tree shown by run and replayed by trace:
//
//	root
//	├── buttons (composite root)
//	│   ├── ok
//	│   └── cancel
//	├── drag
//	└── disabled
type demo struct {
	p      *panel.Panel
	status func(string)
	quit   func()

	buttons, ok, cancel, drag, disabled *ui.Element

	grab ui.Vec2
}

func newDemo(p *panel.Panel, status func(string), quit func()) (*demo, error) {
	d := &demo{
		p:        p,
		status:   status,
		quit:     quit,
		buttons:  ui.NewElement("buttons"),
		ok:       ui.NewElement("ok"),
		cancel:   ui.NewElement("cancel"),
		drag:     ui.NewElement("drag"),
		disabled: ui.NewElement("disabled"),
	}

	d.buttons.SetBounds(ui.NewRect(2, 1, 30, 7))
	d.buttons.SetCompositeRoot(true)
	d.ok.SetBounds(ui.NewRect(2, 2, 10, 3))
	d.ok.SetFocusable(true)
	d.cancel.SetBounds(ui.NewRect(14, 2, 12, 3))
	d.cancel.SetFocusable(true)
	d.drag.SetBounds(dragHome)
	d.drag.SetFocusable(true)
	d.disabled.SetBounds(ui.NewRect(2, 10, 20, 4))
	d.disabled.SetEnabled(false)

	root := p.Root()
	for _, link := range []struct{ parent, child *ui.Element }{
		{root, d.buttons},
		{d.buttons, d.ok},
		{d.buttons, d.cancel},
		{root, d.drag},
		{root, d.disabled},
	} {
		if err := link.parent.Add(link.child); err != nil {
			return nil, err
		}
	}

	if err := d.wire(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *demo) on(el *ui.Element, kind *ui.Kind, fn func(*ui.Event), opts ...ui.CallbackOption) error {
	return el.RegisterCallback(kind, ui.NewCallback(fn), opts...)
}

func (d *demo) wire() error {
	d.buttons.SetBehavior(ui.BehaviorFuncs{
		Categories: ui.CategoryClick,
		Default: func(evt *ui.Event) {
			d.status(fmt.Sprintf("buttons: default action for %s", evt.Target().Name()))
		},
	})

	root := d.p.Root()
	steps := []error{
		d.on(d.ok, ui.KindClick, func(evt *ui.Event) {
			d.status(fmt.Sprintf("ok clicked x%d", evt.Pointer.ClickCount))
		}),
		d.on(d.cancel, ui.KindClick, func(evt *ui.Event) {
			evt.PreventDefault()
			d.status("cancel clicked")
		}),
		d.on(d.drag, ui.KindPointerDown, d.startDrag),
		d.on(d.drag, ui.KindPointerMove, d.moveDrag),
		d.on(d.drag, ui.KindPointerUp, d.endDrag),
		d.on(d.drag, ui.KindGotPointerCapture, func(*ui.Event) { d.status("drag: got capture") }),
		d.on(d.drag, ui.KindLostPointerCapture, func(*ui.Event) { d.status("drag: lost capture") }),
		d.on(d.drag, ui.KindPointerEnter, func(*ui.Event) { d.status("drag: pointer enter") }, ui.WithTrickleDown()),
		d.on(d.drag, ui.KindPointerLeave, func(*ui.Event) { d.status("drag: pointer leave") }, ui.WithTrickleDown()),
		d.on(d.drag, ui.KindContextualMenuPopulate, func(evt *ui.Event) {
			evt.AppendMenuItem("Reset drag", d.resetDrag)
		}),
		d.on(d.disabled, ui.KindClick, func(*ui.Event) { d.status("disabled clicked") }),
		d.on(root, ui.KindContextualMenuPopulate, func(evt *ui.Event) {
			evt.AppendMenuItem("Clear focus", d.p.Blur)
		}),
		d.on(root, ui.KindKeyDown, d.keyDown),
		d.on(root, ui.KindExecuteCommand, func(evt *ui.Event) {
			d.status("command: " + evt.Command)
		}),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *demo) startDrag(evt *ui.Event) {
	if evt.Pointer.Button != ui.ButtonPrimary {
		return
	}
	d.grab = evt.LocalPosition()
	if err := d.p.CapturePointer(evt.Pointer.PointerID, d.drag); err != nil {
		d.status("drag: " + err.Error())
	}
	evt.StopPropagation()
}

func (d *demo) moveDrag(evt *ui.Event) {
	if !d.p.HasPointerCapture(evt.Pointer.PointerID, d.drag) {
		return
	}
	origin := d.drag.Parent().WorldToLocal(evt.Pointer.Position).Sub(d.grab)
	b := d.drag.Bounds()
	d.drag.SetBounds(ui.NewRect(origin.X, origin.Y, b.Width(), b.Height()))
}

func (d *demo) endDrag(evt *ui.Event) {
	d.p.ReleasePointer(evt.Pointer.PointerID, d.drag)
}

func (d *demo) resetDrag() {
	d.drag.SetBounds(dragHome)
	d.status("drag: reset")
}

func (d *demo) keyDown(evt *ui.Event) {
	k := evt.Key
	switch {
	case k.Key == key.KeyTab:
		d.focusNext(k.Modifiers.HasShift())
		evt.StopPropagation()
	case k.Key == key.KeyRune && (k.Rune == 'q' || (k.Rune == 'c' && k.Modifiers.HasCtrl())):
		d.quit()
	case k.Key == key.KeyEscape:
		d.p.Blur()
	}
}

// focusNext moves focus to the next focusable element in tree order.
func (d *demo) focusNext(backward bool) {
	var order []*ui.Element
	var walk func(*ui.Element)
	walk = func(el *ui.Element) {
		if el.Focusable() && el.EnabledInHierarchy() {
			order = append(order, el)
		}
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(d.p.Root())
	if len(order) == 0 {
		return
	}

	next := 0
	for i, el := range order {
		if el == d.p.FocusedElement() {
			step := 1
			if backward {
				step = len(order) - 1
			}
			next = (i + step) % len(order)
			break
		}
	}
	if err := d.p.Focus(order[next]); err != nil {
		d.status(err.Error())
		return
	}
	d.status("focus: " + order[next].Name())
}
