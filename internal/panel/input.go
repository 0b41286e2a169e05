package panel

import (
	"github.com/pkg/errors"

	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// HandleSample turns one decoded input sample into dispatched events.
func (p *Panel) HandleSample(s input.Sample) error {
	switch s.Type {
	case input.SampleNone:
		return nil
	case input.SampleResize:
		return p.Resize(ui.Rect{Max: s.Size})
	case input.SampleLeave:
		return p.pointerLeft(s.PointerID)
	}

	if s.IsPointer() {
		return p.handlePointer(s)
	}

	evt := input.NewEvent(s)
	if evt == nil {
		return nil
	}
	defer evt.Dispose()
	return p.Send(evt)
}

func (p *Panel) handlePointer(s input.Sample) error {
	id := s.PointerID
	if !pointer.Valid(id) {
		return errors.Wrapf(ErrInvalidPointer, "pointer %d", id)
	}

	p.store.SavePosition(p.context, id, s.Position, p)
	switch s.Type {
	case input.SamplePointerDown:
		p.store.PressButton(id, s.Button)
	case input.SamplePointerUp:
		p.store.ReleaseButton(id, s.Button)
	case input.SamplePointerCancel:
		p.store.ReleaseAllButtons(id)
	}
	s.Buttons = p.store.PressedButtons(id)

	evt := input.NewEvent(s)
	defer evt.Dispose()
	p.dispatcher.PrepareCompat(evt)

	hit := p.Pick(s.Position)
	p.tracker.SetElementUnderPointer(id, hit, evt)
	// A captor that left the panel is released by routing; the event then
	// needs the picked target.
	if captor := p.store.Capturing(id); captor == nil || captor.Panel() != ui.Panel(p) {
		if hit == nil {
			hit = p.root
		}
		evt.SetTarget(hit)
	}

	if err := p.Send(evt); err != nil {
		return err
	}
	target := evt.Target()

	switch s.Type {
	case input.SamplePointerDown:
		p.pressTargets[id] = target
		if !evt.IsDefaultPrevented() && !evt.FocusProcessed() {
			p.focusFrom(target)
		}

	case input.SamplePointerUp:
		pressed := p.pressTargets[id]
		if s.Buttons == 0 {
			p.pressTargets[id] = nil
		}
		if pressed != nil && pressed == target {
			if err := p.click(s, target); err != nil {
				return err
			}
		}
		if s.Button == ui.ButtonSecondary && target != nil && target.IsAttached() {
			return p.contextMenu(s, target)
		}

	case input.SamplePointerCancel:
		p.pressTargets[id] = nil
	}
	return nil
}

// pointerLeft handles a pointer leaving the surface: its buttons are
// released and nothing is under it anymore.
func (p *Panel) pointerLeft(id int) error {
	if !pointer.Valid(id) {
		return errors.Wrapf(ErrInvalidPointer, "pointer %d", id)
	}
	p.store.ReleaseAllButtons(id)
	p.pressTargets[id] = nil
	p.tracker.SetElementUnderPointer(id, nil, nil)
	p.tracker.Commit()
	return nil
}

// Pick returns the deepest element whose world bounds contain pos, or nil
// when pos is outside the root.
func (p *Panel) Pick(pos ui.Vec2) *ui.Element {
	return pick(p.root, pos)
}

func pick(el *ui.Element, pos ui.Vec2) *ui.Element {
	if !el.WorldBounds().Contains(pos) {
		return nil
	}
	children := el.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := pick(children[i], pos); hit != nil {
			return hit
		}
	}
	if el.PickingMode() == ui.PickIgnore {
		return nil
	}
	return el
}

func (p *Panel) click(s input.Sample, target *ui.Element) error {
	count := p.clicks.Record(s.Button, s.Position, s.Time)
	return p.send(ui.KindClick, target, func(evt *ui.Event) {
		if !s.Time.IsZero() {
			evt.SetTimestamp(s.Time)
		}
		input.FillPointer(&evt.Pointer, s)
		evt.Pointer.ClickCount = count
	})
}

// contextMenu sends ContextualMenuPopulate to target and hands the
// populated event to the presenter. The event stays retained until the
// presenter calls done.
func (p *Panel) contextMenu(s input.Sample, target *ui.Element) error {
	evt := ui.AcquireEvent(ui.KindContextualMenuPopulate)
	defer evt.Dispose()
	evt.SetTarget(target)
	input.FillPointer(&evt.Pointer, s)

	if err := p.Send(evt); err != nil {
		return err
	}
	if p.menus == nil || evt.IsDefaultPrevented() || len(evt.MenuItems()) == 0 {
		return nil
	}

	evt.Retain()
	released := false
	p.menus.Present(evt, func() {
		if !released {
			released = true
			evt.Dispose()
		}
	})
	return nil
}
