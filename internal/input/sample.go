package input

import (
	"time"

	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/ui"
)

// SampleType identifies what a Sample describes.
type SampleType uint8

const (
	SampleNone SampleType = iota
	SamplePointerDown
	SamplePointerUp
	SamplePointerMove
	SamplePointerCancel
	SampleWheel
	SampleKeyDown
	SampleKeyUp
	SampleCommand
	// SampleResize reports a new surface size in Size.
	SampleResize
	// SampleLeave reports that the pointer left the surface.
	SampleLeave
)

var sampleTypeNames = [...]string{
	SampleNone:          "none",
	SamplePointerDown:   "pointer-down",
	SamplePointerUp:     "pointer-up",
	SamplePointerMove:   "pointer-move",
	SamplePointerCancel: "pointer-cancel",
	SampleWheel:         "wheel",
	SampleKeyDown:       "key-down",
	SampleKeyUp:         "key-up",
	SampleCommand:       "command",
	SampleResize:        "resize",
	SampleLeave:         "leave",
}

func (t SampleType) String() string {
	if int(t) < len(sampleTypeNames) {
		return sampleTypeNames[t]
	}
	return "unknown"
}

// ParseSampleType maps a name produced by String back to a SampleType.
func ParseSampleType(s string) (SampleType, bool) {
	for i, name := range sampleTypeNames {
		if name == s {
			return SampleType(i), true
		}
	}
	return SampleNone, false
}

// Sample is one decoded input occurrence. Which fields are meaningful
// depends on Type.
type Sample struct {
	Type SampleType
	Time time.Time

	PointerID   int
	PointerType ui.PointerType
	Primary     bool
	Button      ui.Button
	Buttons     ui.Buttons
	Position    ui.Vec2
	Delta       ui.Vec2
	Wheel       ui.Vec2
	Modifiers   key.Modifier

	Pressure           float64
	TangentialPressure float64
	Tilt               ui.Vec2
	Twist              float64
	Radius             ui.Vec2

	Key     key.Stroke
	Command string
	Size    ui.Vec2
}

// IsPointer reports whether s carries a pointer position.
func (s Sample) IsPointer() bool {
	switch s.Type {
	case SamplePointerDown, SamplePointerUp, SamplePointerMove, SamplePointerCancel, SampleWheel:
		return true
	}
	return false
}

// Kind returns the event kind s maps to, or nil for samples that do not
// become events on their own.
func (s Sample) Kind() *ui.Kind {
	switch s.Type {
	case SamplePointerDown:
		return ui.KindPointerDown
	case SamplePointerUp:
		return ui.KindPointerUp
	case SamplePointerMove:
		return ui.KindPointerMove
	case SamplePointerCancel:
		return ui.KindPointerCancel
	case SampleWheel:
		return ui.KindWheel
	case SampleKeyDown:
		return ui.KindKeyDown
	case SampleKeyUp:
		return ui.KindKeyUp
	case SampleCommand:
		return ui.KindExecuteCommand
	default:
		return nil
	}
}

// NewEvent acquires an event for s and fills its payload. It returns nil
// when s has no kind; the caller owns the returned event.
func NewEvent(s Sample) *ui.Event {
	kind := s.Kind()
	if kind == nil {
		return nil
	}
	evt := ui.AcquireEvent(kind)
	if !s.Time.IsZero() {
		evt.SetTimestamp(s.Time)
	}
	if s.IsPointer() {
		FillPointer(&evt.Pointer, s)
	}
	switch s.Type {
	case SampleKeyDown, SampleKeyUp:
		evt.Key = s.Key
	case SampleCommand:
		evt.Command = s.Command
	}
	return evt
}

// FillPointer copies the pointer fields of s into p.
func FillPointer(p *ui.PointerData, s Sample) {
	p.PointerID = s.PointerID
	p.PointerType = s.PointerType
	p.IsPrimary = s.Primary
	p.Button = s.Button
	p.PressedButtons = s.Buttons
	p.Position = s.Position
	p.Delta = s.Delta
	p.WheelDelta = s.Wheel
	p.Modifiers = s.Modifiers
	p.Pressure = s.Pressure
	p.TangentialPressure = s.TangentialPressure
	p.Tilt = s.Tilt
	p.Twist = s.Twist
	p.Radius = s.Radius
}
