package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/ui"
)

// buttonOrder lists the tcell buttons the translator diffs, in the order
// their samples are emitted.
var buttonOrder = []struct {
	mask   tcell.ButtonMask
	button ui.Button
}{
	{tcell.ButtonPrimary, ui.ButtonPrimary},
	{tcell.ButtonSecondary, ui.ButtonSecondary},
	{tcell.ButtonMiddle, ui.ButtonMiddle},
	{tcell.Button4, ui.ButtonBack},
	{tcell.Button5, ui.ButtonForward},
}

var wheelOrder = []struct {
	mask  tcell.ButtonMask
	delta ui.Vec2
}{
	{tcell.WheelUp, ui.Vec2{Y: -1}},
	{tcell.WheelDown, ui.Vec2{Y: 1}},
	{tcell.WheelLeft, ui.Vec2{X: -1}},
	{tcell.WheelRight, ui.Vec2{X: 1}},
}

// Translator converts tcell events into samples. Terminals report the
// whole button mask with every mouse event, so the translator remembers the
// previous mask and position to produce discrete down, up and move samples.
// The terminal mouse is always the primary mouse pointer, id 0.
type Translator struct {
	buttons tcell.ButtonMask
	lastPos ui.Vec2
	hasPos  bool
}

// NewTranslator creates a translator with no buttons held.
func NewTranslator() *Translator {
	return &Translator{}
}

// Translate appends the samples for ev to dst and returns it.
func (t *Translator) Translate(ev tcell.Event, dst []Sample) []Sample {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(e, dst)

	case *tcell.EventKey:
		stroke := convertKey(e)
		return append(dst, Sample{
			Type:      SampleKeyDown,
			Time:      e.When(),
			Key:       stroke,
			Modifiers: stroke.Modifiers,
		})

	case *tcell.EventResize:
		w, h := e.Size()
		return append(dst, Sample{
			Type: SampleResize,
			Time: e.When(),
			Size: ui.Vec2{X: float64(w), Y: float64(h)},
		})

	case *tcell.EventFocus:
		if e.Focused {
			return dst
		}
		// The terminal lost focus; any held button will never be released.
		t.buttons = 0
		t.hasPos = false
		return append(dst, Sample{
			Type:        SampleLeave,
			Time:        e.When(),
			PointerType: ui.PointerMouse,
			Primary:     true,
			Button:      ui.ButtonNone,
			Position:    t.lastPos,
		})
	}
	return dst
}

func (t *Translator) mouse(e *tcell.EventMouse, dst []Sample) []Sample {
	x, y := e.Position()
	pos := ui.Vec2{X: float64(x), Y: float64(y)}
	mask := e.Buttons()

	base := Sample{
		Time:        e.When(),
		PointerType: ui.PointerMouse,
		Primary:     true,
		Button:      ui.ButtonNone,
		Position:    pos,
		Modifiers:   convertMod(e.Modifiers()),
	}

	if !t.hasPos || pos != t.lastPos {
		s := base
		s.Type = SamplePointerMove
		if t.hasPos {
			s.Delta = pos.Sub(t.lastPos)
		}
		s.Buttons = pressed(t.buttons)
		dst = append(dst, s)
	}
	t.lastPos = pos
	t.hasPos = true

	for _, b := range buttonOrder {
		was := t.buttons&b.mask != 0
		now := mask&b.mask != 0
		if was == now {
			continue
		}
		s := base
		s.Button = b.button
		if now {
			t.buttons |= b.mask
			s.Type = SamplePointerDown
		} else {
			t.buttons &^= b.mask
			s.Type = SamplePointerUp
		}
		s.Buttons = pressed(t.buttons)
		dst = append(dst, s)
	}

	for _, w := range wheelOrder {
		if mask&w.mask == 0 {
			continue
		}
		s := base
		s.Type = SampleWheel
		s.Wheel = w.delta
		s.Buttons = pressed(t.buttons)
		dst = append(dst, s)
	}
	return dst
}

// Reset forgets held buttons and the last position.
func (t *Translator) Reset() {
	*t = Translator{}
}

func pressed(mask tcell.ButtonMask) ui.Buttons {
	var b ui.Buttons
	for _, o := range buttonOrder {
		if mask&o.mask != 0 {
			b = b.With(o.button)
		}
	}
	return b
}

// convertMod converts tcell modifiers to key modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

var tcellKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey converts a tcell key event into a keystroke. Control letters
// become the letter rune with the Ctrl modifier.
func convertKey(e *tcell.EventKey) key.Stroke {
	s := key.Stroke{Modifiers: convertMod(e.Modifiers())}
	k := e.Key()

	if mapped, ok := tcellKeys[k]; ok {
		s.Key = mapped
		return s
	}
	switch {
	case k == tcell.KeyRune:
		s.Key = key.KeyRune
		s.Rune = e.Rune()
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		s.Key = key.KeyRune
		s.Rune = rune('a' + (k - tcell.KeyCtrlA))
		s.Modifiers |= key.ModCtrl
	default:
		s.Key = key.KeyNone
	}
	return s
}
