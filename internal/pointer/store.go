package pointer

import (
	"github.com/dshills/uiflow/internal/ui"
)

// Context separates position bookkeeping of independent input consumers
// sharing one pointer, such as an editor and the runtime it hosts.
type Context uint8

const (
	ContextRuntime Context = iota
	ContextEditor

	contextCount
)

func (c Context) String() string {
	switch c {
	case ContextRuntime:
		return "runtime"
	case ContextEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// ParseContext maps a configuration value to a Context.
func ParseContext(s string) (Context, bool) {
	switch s {
	case "runtime", "":
		return ContextRuntime, true
	case "editor":
		return ContextEditor, true
	default:
		return ContextRuntime, false
	}
}

// Location is the last saved position of a pointer in one context.
type Location struct {
	Position ui.Vec2
	Panel    ui.Panel

	// Outside is set when the position fell outside the panel root's bounds
	// at save time.
	Outside bool
}

// Store holds per-pointer button, position and capture state. One Store is
// shared by every panel fed from the same input device set.
type Store struct {
	pressed   [MaxPointers]ui.Buttons
	locations [contextCount][MaxPointers]Location
	saved     [contextCount][MaxPointers]bool
	captors   [MaxPointers]*ui.Element
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// PressButton marks b as held by pointer id. Pressing twice is harmless.
func (s *Store) PressButton(id int, b ui.Button) {
	if Valid(id) {
		s.pressed[id] = s.pressed[id].With(b)
	}
}

// ReleaseButton marks b as released by pointer id.
func (s *Store) ReleaseButton(id int, b ui.Button) {
	if Valid(id) {
		s.pressed[id] = s.pressed[id].Without(b)
	}
}

// ReleaseAllButtons clears every button of pointer id. It is used when the
// pointer is lost, for example when it leaves the owning surface.
func (s *Store) ReleaseAllButtons(id int) {
	if Valid(id) {
		s.pressed[id] = 0
	}
}

// PressedButtons returns the buttons held by pointer id.
func (s *Store) PressedButtons(id int) ui.Buttons {
	if !Valid(id) {
		return 0
	}
	return s.pressed[id]
}

// IsPressed reports whether pointer id holds b.
func (s *Store) IsPressed(id int, b ui.Button) bool {
	return s.PressedButtons(id).Has(b)
}

// SavePosition records where pointer id was last seen in ctx.
func (s *Store) SavePosition(ctx Context, id int, pos ui.Vec2, panel ui.Panel) {
	if !Valid(id) || ctx >= contextCount {
		return
	}
	loc := Location{Position: pos, Panel: panel}
	if panel != nil {
		if root := panel.Root(); root != nil {
			loc.Outside = !root.WorldBounds().Contains(pos)
		}
	}
	s.locations[ctx][id] = loc
	s.saved[ctx][id] = true
}

// Location returns the last saved location of pointer id in ctx.
func (s *Store) Location(ctx Context, id int) (Location, bool) {
	if !Valid(id) || ctx >= contextCount || !s.saved[ctx][id] {
		return Location{}, false
	}
	return s.locations[ctx][id], true
}

// ForgetPanel drops every saved location owned by panel.
func (s *Store) ForgetPanel(panel ui.Panel) {
	for c := range s.locations {
		for id := range s.locations[c] {
			if s.saved[c][id] && s.locations[c][id].Panel == panel {
				s.locations[c][id] = Location{}
				s.saved[c][id] = false
			}
		}
	}
}

// Capture routes all traffic of pointer id to el. It returns the previous
// captor, or nil.
func (s *Store) Capture(id int, el *ui.Element) *ui.Element {
	if !Valid(id) {
		return nil
	}
	prev := s.captors[id]
	s.captors[id] = el
	return prev
}

// Release ends the capture of pointer id and returns the former captor.
func (s *Store) Release(id int) *ui.Element {
	return s.Capture(id, nil)
}

// Capturing returns the element capturing pointer id, or nil.
func (s *Store) Capturing(id int) *ui.Element {
	if !Valid(id) {
		return nil
	}
	return s.captors[id]
}

// HasCapture reports whether el captures pointer id.
func (s *Store) HasCapture(id int, el *ui.Element) bool {
	return el != nil && s.Capturing(id) == el
}

// CapturedBy returns the pointer ids el or one of its descendants capture.
func (s *Store) CapturedBy(el *ui.Element) []int {
	var ids []int
	for id, c := range s.captors {
		if c != nil && el.Contains(c) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reset clears all state.
func (s *Store) Reset() {
	*s = Store{}
}
