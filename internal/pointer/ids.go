package pointer

import "github.com/dshills/uiflow/internal/ui"

// Pointer id layout.
const (
	MousePointerID = 0

	TouchPointerIDBase = 1
	TouchPointerCount  = 20

	PenPointerIDBase = TouchPointerIDBase + TouchPointerCount
	PenPointerCount  = 2

	// MaxPointers is one past the largest valid pointer id.
	MaxPointers = 32
)

// Valid reports whether id is within the tracked range.
func Valid(id int) bool {
	return id >= 0 && id < MaxPointers
}

// TypeOf returns the device class implied by id.
func TypeOf(id int) ui.PointerType {
	switch {
	case id >= TouchPointerIDBase && id < TouchPointerIDBase+TouchPointerCount:
		return ui.PointerTouch
	case id >= PenPointerIDBase && id < PenPointerIDBase+PenPointerCount:
		return ui.PointerPen
	default:
		return ui.PointerMouse
	}
}

// TouchID returns the pointer id of the n-th touch contact.
func TouchID(n int) int { return TouchPointerIDBase + n%TouchPointerCount }

// PenID returns the pointer id of the n-th pen.
func PenID(n int) int { return PenPointerIDBase + n%PenPointerCount }
