package panel

import (
	"github.com/pkg/errors"

	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// CapturePointer routes all events of pointer id to el until released. The
// previous captor receives LostPointerCapture, el receives
// GotPointerCapture.
func (p *Panel) CapturePointer(id int, el *ui.Element) error {
	if !pointer.Valid(id) {
		return errors.Wrapf(ErrInvalidPointer, "pointer %d", id)
	}
	if el == nil {
		p.ReleasePointer(id, p.store.Capturing(id))
		return nil
	}
	if el.Panel() != ui.Panel(p) {
		return errors.Wrapf(ErrForeignElement, "capture %s", el)
	}

	prev := p.store.Capture(id, el)
	if prev == el {
		return nil
	}
	p.log.WithField("pointer", id).WithField("element", el.String()).Debug("pointer captured")

	if prev != nil {
		p.sendCapture(ui.KindLostPointerCapture, id, prev)
	}
	p.sendCapture(ui.KindGotPointerCapture, id, el)
	return nil
}

// ReleasePointer ends the capture of pointer id by el and sends it
// LostPointerCapture. It does nothing when el is not the captor.
func (p *Panel) ReleasePointer(id int, el *ui.Element) {
	if el == nil || !p.store.HasCapture(id, el) {
		return
	}
	p.store.Release(id)
	p.log.WithField("pointer", id).WithField("element", el.String()).Debug("pointer released")
	p.sendCapture(ui.KindLostPointerCapture, id, el)
}

// HasPointerCapture reports whether el captures pointer id.
func (p *Panel) HasPointerCapture(id int, el *ui.Element) bool {
	return p.store.HasCapture(id, el)
}

func (p *Panel) sendCapture(kind *ui.Kind, id int, target *ui.Element) {
	_ = p.send(kind, target, func(evt *ui.Event) {
		evt.Pointer.PointerID = id
		evt.Pointer.PointerType = pointer.TypeOf(id)
		evt.Pointer.IsPrimary = id == pointer.MousePointerID
	})
}
