package ui

import "github.com/dshills/uiflow/internal/input/key"

// PointerType identifies the device class behind a pointer id.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

func (t PointerType) String() string {
	switch t {
	case PointerMouse:
		return "mouse"
	case PointerTouch:
		return "touch"
	case PointerPen:
		return "pen"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button. ButtonNone marks samples where no
// button changed state (moves, wheel).
type Button int8

const (
	ButtonNone      Button = -1
	ButtonPrimary   Button = 0
	ButtonSecondary Button = 1
	ButtonMiddle    Button = 2
	ButtonBack      Button = 3
	ButtonForward   Button = 4
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "none"
	}
}

// Buttons is a pressed-button bitmask, one bit per Button.
type Buttons uint8

// Has reports whether b is pressed.
func (m Buttons) Has(b Button) bool {
	return b >= 0 && m&(1<<uint(b)) != 0
}

// With returns m with b pressed.
func (m Buttons) With(b Button) Buttons {
	if b < 0 {
		return m
	}
	return m | 1<<uint(b)
}

// Without returns m with b released.
func (m Buttons) Without(b Button) Buttons {
	if b < 0 {
		return m
	}
	return m &^ (1 << uint(b))
}

// PointerData is the pointer payload of pointer, mouse, wheel, click and drag
// events. Position is in panel coordinates; see Event.LocalPosition for the
// current target's frame.
type PointerData struct {
	PointerID      int
	PointerType    PointerType
	IsPrimary      bool
	Button         Button
	PressedButtons Buttons
	Position       Vec2
	Delta          Vec2
	WheelDelta     Vec2
	Modifiers      key.Modifier
	ClickCount     int

	// Stylus and touch details. Zero for mice.
	Pressure           float64
	TangentialPressure float64
	Tilt               Vec2
	Twist              float64
	Radius             Vec2
}
