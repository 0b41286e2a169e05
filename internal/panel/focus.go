package panel

import (
	"github.com/pkg/errors"

	"github.com/dshills/uiflow/internal/ui"
)

// Focus moves keyboard focus to el. A nil el clears focus.
func (p *Panel) Focus(el *ui.Element) error {
	if el == nil {
		p.Blur()
		return nil
	}
	if el.Panel() != ui.Panel(p) {
		return errors.Wrapf(ErrForeignElement, "focus %s", el)
	}
	if !el.Focusable() || !el.EnabledInHierarchy() {
		return errors.Wrapf(ErrNotFocusable, "focus %s", el)
	}
	if el == p.focused {
		return nil
	}
	p.changeFocus(p.focused, el)
	return nil
}

// Blur clears keyboard focus.
func (p *Panel) Blur() {
	if p.focused != nil {
		p.changeFocus(p.focused, nil)
	}
}

// changeFocus sends FocusOut and FocusIn while old still holds focus, moves
// focus, then sends Blur and Focus.
func (p *Panel) changeFocus(old, cur *ui.Element) {
	related := func(r *ui.Element) func(*ui.Event) {
		return func(evt *ui.Event) { evt.SetRelatedTarget(r) }
	}

	if old != nil {
		_ = p.send(ui.KindFocusOut, old, related(cur))
	}
	if cur != nil {
		_ = p.send(ui.KindFocusIn, cur, related(old))
	}

	p.focused = cur
	p.log.WithField("from", old.String()).WithField("to", cur.String()).Debug("focus changed")

	if old != nil {
		_ = p.send(ui.KindBlur, old, related(cur))
	}
	if cur != nil {
		_ = p.send(ui.KindFocus, cur, related(old))
	}
}

// focusFrom focuses the nearest focusable, enabled ancestor of el, if any.
func (p *Panel) focusFrom(el *ui.Element) {
	for n := el; n != nil; n = n.Parent() {
		if n.Focusable() && n.EnabledInHierarchy() {
			if n != p.focused {
				p.changeFocus(p.focused, n)
			}
			return
		}
	}
}
