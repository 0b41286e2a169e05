package dispatch

import "github.com/dshills/uiflow/internal/ui"

// legacyMirror maps pointer kinds to the mouse kind mirrored alongside them.
var legacyMirror = map[*ui.Kind]*ui.Kind{
	ui.KindPointerDown:   ui.KindMouseDown,
	ui.KindPointerUp:     ui.KindMouseUp,
	ui.KindPointerMove:   ui.KindMouseMove,
	ui.KindPointerCancel: ui.KindMouseUp,
}

// MirrorKind returns the legacy kind mirrored for k, or nil.
func MirrorKind(k *ui.Kind) *ui.Kind {
	return legacyMirror[k]
}

// PrepareCompat attaches a mouse-shaped shadow to evt when legacy mouse
// events are enabled and evt comes from the primary pointer. It is
// idempotent; panels call it before pre-dispatch bookkeeping so that the
// tracker sees the mirror.
func (d *Dispatcher) PrepareCompat(evt *ui.Event) {
	if !d.config.LegacyMouseEvents || evt.Compat() != nil {
		return
	}
	mirror := MirrorKind(evt.Kind())
	if mirror == nil || !evt.Pointer.IsPrimary {
		return
	}

	shadow := ui.AcquireEvent(mirror)
	shadow.Pointer = evt.Pointer
	shadow.Key = evt.Key
	shadow.SetTimestamp(evt.Timestamp())
	shadow.SetSkipDisabledElements(evt.SkipDisabledElements())
	evt.AttachCompat(shadow)
}

// finishCompat merges the shadow's stop state into evt and releases it.
func finishCompat(evt *ui.Event) {
	shadow := evt.Compat()
	if shadow == nil {
		return
	}
	evt.CopyStopStateFrom(shadow)
	evt.DetachCompat()
}

// syncShadow aligns the shadow's routing state with the primary before the
// walk starts.
func syncShadow(evt *ui.Event, host Host) {
	shadow := evt.Compat()
	if shadow == nil {
		return
	}
	shadow.SetTarget(evt.Target())
	shadow.SetSkipDisabledElements(evt.SkipDisabledElements())
	shadow.BeginDispatch(host)
}
