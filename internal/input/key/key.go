package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Stroke.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is used for character keys. The character is stored in Stroke.Rune.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyRune:      "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsNavigationKey returns true for arrows, Home/End and paging keys.
func (k Key) IsNavigationKey() bool {
	return (k >= KeyUp && k <= KeyRight) || (k >= KeyHome && k <= KeyPageDown)
}

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func FromName(name string) Key {
	name = strings.TrimSpace(name)
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return Key(k)
		}
	}
	switch strings.ToLower(name) {
	case "esc":
		return KeyEscape
	case "return", "cr":
		return KeyEnter
	case "del":
		return KeyDelete
	case "pgup":
		return KeyPageUp
	case "pgdn":
		return KeyPageDown
	}
	return KeyNone
}

// Stroke is a decoded keystroke.
type Stroke struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// String renders the stroke like "Ctrl+a" or "Shift+Enter".
func (s Stroke) String() string {
	name := s.Key.String()
	if s.Key == KeyRune {
		name = string(s.Rune)
	}
	if s.Modifiers.IsEmpty() {
		return name
	}
	return s.Modifiers.String() + "+" + name
}
