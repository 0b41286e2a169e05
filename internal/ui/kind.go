package ui

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// TypeID is the stable identity of an event shape.
type TypeID uint32

// Category is a bitmask used as a cheap interest filter. Elements cache the
// union of the categories they and their ancestors handle, so a dispatch can
// skip whole subtrees with one AND.
type Category uint32

const (
	CategoryDefault Category = 1 << iota
	CategoryPointer
	CategoryPointerEnterLeave
	CategoryPointerCapture
	CategoryMouse
	CategoryMouseEnterLeave
	CategoryClick
	CategoryKeyboard
	CategoryFocus
	CategoryCommand
	CategoryDragAndDrop
	CategoryContextMenu
	CategoryPanel

	// CategoryNone matches nothing.
	CategoryNone Category = 0
)

var categoryNames = []string{
	"default", "pointer", "pointer-enter-leave", "pointer-capture", "mouse",
	"mouse-enter-leave", "click", "keyboard", "focus", "command", "drag-and-drop",
	"context-menu", "panel",
}

// Has reports whether any bit of o is set in c.
func (c Category) Has(o Category) bool {
	return c&o != 0
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	var parts []string
	for i, name := range categoryNames {
		if c&(1<<uint(i)) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Propagation holds the static capability flags of an event kind.
type Propagation uint8

const (
	// PropagationBubbles makes the event visit ancestors after the target.
	PropagationBubbles Propagation = 1 << iota
	// PropagationTricklesDown makes the event visit ancestors before the target.
	PropagationTricklesDown
	// PropagationSkipDisabled makes disabled elements skip the event by default.
	PropagationSkipDisabled

	PropagationNone Propagation = 0
)

// Routing selects the strategy used to find an event's initial target.
// The set is closed; the dispatcher switches over it exhaustively.
type Routing uint8

const (
	// RouteFocusedOrRoot targets the explicit target, else the focused
	// element, else the panel root.
	RouteFocusedOrRoot Routing = iota
	// RouteUnderPointerOrRoot targets the element under the pointer, else the root.
	RouteUnderPointerOrRoot
	// RouteCapturingOrUnderPointer targets the pointer's captor when one is
	// active and attached, else behaves as RouteUnderPointerOrRoot.
	RouteCapturingOrUnderPointer
	// RouteAssignedTarget requires an explicit target.
	RouteAssignedTarget
	// RoutePanelRoot always targets the panel root.
	RoutePanelRoot
)

func (r Routing) String() string {
	switch r {
	case RouteFocusedOrRoot:
		return "focused-or-root"
	case RouteUnderPointerOrRoot:
		return "under-pointer-or-root"
	case RouteCapturingOrUnderPointer:
		return "capturing-or-under-pointer"
	case RouteAssignedTarget:
		return "assigned-target"
	case RoutePanelRoot:
		return "panel-root"
	default:
		return "unknown"
	}
}

// Kind describes one event shape: identity, interest category, propagation
// capabilities and routing strategy. Kinds are registered once and compared
// by pointer.
type Kind struct {
	id          TypeID
	name        string
	category    Category
	propagation Propagation
	routing     Routing
}

func (k *Kind) ID() TypeID                { return k.id }
func (k *Kind) Name() string              { return k.name }
func (k *Kind) Category() Category        { return k.category }
func (k *Kind) Propagation() Propagation  { return k.propagation }
func (k *Kind) Routing() Routing          { return k.routing }
func (k *Kind) Bubbles() bool             { return k.propagation&PropagationBubbles != 0 }
func (k *Kind) TricklesDown() bool        { return k.propagation&PropagationTricklesDown != 0 }
func (k *Kind) SkipsDisabledByDefault() bool {
	return k.propagation&PropagationSkipDisabled != 0
}

func (k *Kind) String() string {
	if k == nil {
		return "<nil kind>"
	}
	return k.name
}

var (
	kindsMu     sync.RWMutex
	kindsByName = make(map[string]*Kind)
	kindsByID   []*Kind
)

// RegisterKind adds a new event shape. Kinds are usually registered during
// package initialization, but registration is safe at any time.
func RegisterKind(name string, category Category, propagation Propagation, routing Routing) (*Kind, error) {
	if name == "" {
		return nil, errors.New("event kind name cannot be empty")
	}
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if _, exists := kindsByName[name]; exists {
		return nil, errors.Wrap(ErrDuplicateKind, name)
	}
	k := &Kind{
		id:          TypeID(len(kindsByID) + 1),
		name:        name,
		category:    category,
		propagation: propagation,
		routing:     routing,
	}
	kindsByName[name] = k
	kindsByID = append(kindsByID, k)
	return k, nil
}

// MustRegisterKind is RegisterKind for package-level declarations.
func MustRegisterKind(name string, category Category, propagation Propagation, routing Routing) *Kind {
	k, err := RegisterKind(name, category, propagation, routing)
	if err != nil {
		panic(err)
	}
	return k
}

// KindByName looks up a registered kind.
func KindByName(name string) (*Kind, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	k, ok := kindsByName[name]
	return k, ok
}

// KindByID looks up a registered kind by its type id.
func KindByID(id TypeID) (*Kind, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if id == 0 || int(id) > len(kindsByID) {
		return nil, false
	}
	return kindsByID[id-1], true
}
