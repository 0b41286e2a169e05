// Package panel hosts an element tree and turns decoded input into
// dispatched events.
//
// A Panel owns the root element, keyboard focus, the element-under-pointer
// tracker and the dispatcher it routes through. It shares a pointer.Store
// with other panels of the same application so that button state and
// captures follow the pointer across panels.
//
// # Basic usage
//
//	p := panel.New(panel.WithLogger(logging.Component(logger, "panel")))
//	p.Resize(ui.NewRect(0, 0, 80, 24))
//
//	button := ui.NewElement("ok")
//	button.SetBounds(ui.NewRect(2, 2, 10, 1))
//	button.RegisterCallback(ui.KindClick, ui.NewCallback(func(evt *ui.Event) {
//	    // clicked
//	}))
//	p.Root().Add(button)
//
//	for _, s := range translator.Translate(tcellEvent, nil) {
//	    p.HandleSample(s)
//	}
//
// Picking: pointer samples are hit-tested against element world bounds,
// children last-to-first, so later siblings are on top. Elements with
// ui.PickIgnore are transparent to picking but their children are not.
//
// Focus: Focus sends FocusOut and FocusIn, moves focus, then sends Blur and
// Focus. A pointer down that is not default-prevented focuses the nearest
// focusable ancestor of its target.
//
// Capture: CapturePointer and ReleasePointer notify the old and new captor
// with LostPointerCapture and GotPointerCapture.
package panel
