package panel

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uiflow/internal/dispatch"
	"github.com/dshills/uiflow/internal/input"
	"github.com/dshills/uiflow/internal/input/key"
	"github.com/dshills/uiflow/internal/pointer"
	"github.com/dshills/uiflow/internal/ui"
)

// fixture is an 80x24 panel with
//
//	root
//	├── a (10,5 20x10, focusable)
//	│   └── b (world 12,7 5x3)
//	└── c (40,0 10x10)
type fixture struct {
	p       *Panel
	a, b, c *ui.Element
	log     []string
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{p: New(opts...)}
	require.NoError(t, f.p.Resize(ui.NewRect(0, 0, 80, 24)))

	f.a, f.b, f.c = ui.NewElement("a"), ui.NewElement("b"), ui.NewElement("c")
	f.a.SetBounds(ui.NewRect(10, 5, 20, 10))
	f.a.SetFocusable(true)
	f.b.SetBounds(ui.NewRect(2, 2, 5, 3))
	f.c.SetBounds(ui.NewRect(40, 0, 10, 10))
	require.NoError(t, f.p.Root().Add(f.a))
	require.NoError(t, f.a.Add(f.b))
	require.NoError(t, f.p.Root().Add(f.c))
	return f
}

// watch records "Kind:element" whenever el is the target of one of kinds.
func (f *fixture) watch(t *testing.T, el *ui.Element, kinds ...*ui.Kind) {
	t.Helper()
	for _, k := range kinds {
		var opts []ui.CallbackOption
		if !k.Bubbles() && k.TricklesDown() {
			opts = append(opts, ui.WithTrickleDown())
		}
		cb := ui.NewCallback(func(evt *ui.Event) {
			if evt.CurrentTarget() == evt.Target() {
				f.log = append(f.log, evt.Kind().Name()+":"+evt.Target().Name())
			}
		})
		require.NoError(t, el.RegisterCallback(k, cb, opts...))
	}
}

func mouse(typ input.SampleType, x, y float64, b ui.Button) input.Sample {
	return input.Sample{
		Type:        typ,
		PointerType: ui.PointerMouse,
		Primary:     true,
		Button:      b,
		Position:    ui.Vec2{X: x, Y: y},
	}
}

func (f *fixture) handle(t *testing.T, samples ...input.Sample) {
	t.Helper()
	for _, s := range samples {
		require.NoError(t, f.p.HandleSample(s))
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New()
	assert.NotEqual(t, uuid.Nil, p.ID())
	assert.Equal(t, "panel", p.Name())
	assert.Same(t, ui.Panel(p), p.Root().Panel())
	assert.NotNil(t, p.Pointers())
	assert.NotNil(t, p.Tracker())
	assert.NotNil(t, p.Dispatcher())
	assert.Equal(t, pointer.ContextRuntime, p.Context())
}

func TestNew_SharedStore(t *testing.T) {
	store := pointer.NewStore()
	p1 := New(WithStore(store), WithName("one"))
	p2 := New(WithStore(store), WithName("two"), WithContext(pointer.ContextEditor))
	assert.Same(t, p1.Pointers(), p2.Pointers())
	assert.NotEqual(t, p1.ID(), p2.ID())
	assert.Equal(t, pointer.ContextEditor, p2.Context())
}

func TestHandleSample_PointerDownTargetsPickedElement(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.b, ui.KindPointerDown, ui.KindPointerOver, ui.KindPointerEnter)
	f.watch(t, f.a, ui.KindPointerEnter)

	f.handle(t, mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary))

	assert.Equal(t, []string{
		"PointerDown:b",
		"PointerOver:b",
		"PointerEnter:a",
		"PointerEnter:b",
	}, f.log)
	assert.Same(t, f.b, f.p.Tracker().TopElement(pointer.MousePointerID))
	assert.True(t, f.p.Pointers().IsPressed(pointer.MousePointerID, ui.ButtonPrimary))

	loc, ok := f.p.Pointers().Location(pointer.ContextRuntime, pointer.MousePointerID)
	require.True(t, ok)
	assert.Equal(t, ui.Vec2{X: 13, Y: 8}, loc.Position)
	assert.False(t, loc.Outside)
}

func TestHandleSample_MoveBetweenElements(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.b, ui.KindPointerOut, ui.KindPointerLeave)
	f.watch(t, f.a, ui.KindPointerLeave)
	f.watch(t, f.c, ui.KindPointerMove, ui.KindPointerOver, ui.KindPointerEnter)

	f.handle(t,
		mouse(input.SamplePointerMove, 13, 8, ui.ButtonNone),
		mouse(input.SamplePointerMove, 45, 5, ui.ButtonNone),
	)

	assert.Equal(t, []string{
		"PointerMove:c",
		"PointerOut:b",
		"PointerOver:c",
		"PointerLeave:b",
		"PointerLeave:a",
		"PointerEnter:c",
	}, f.log)
}

func TestHandleSample_NestedDispatchDoesNotCommitEarly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.p.Root().RegisterCallback(ui.KindPointerMove, ui.NewCallback(func(*ui.Event) {
		require.NoError(t, f.p.Focus(f.a))
	}), ui.WithTrickleDown()))
	f.watch(t, f.b, ui.KindPointerMove, ui.KindPointerOver, ui.KindPointerEnter)

	f.handle(t, mouse(input.SamplePointerMove, 13, 8, ui.ButtonNone))

	assert.Equal(t, []string{
		"PointerMove:b",
		"PointerOver:b",
		"PointerEnter:b",
	}, f.log)
	assert.Same(t, f.a, f.p.FocusedElement())
	assert.Same(t, f.b, f.p.Tracker().TopElement(pointer.MousePointerID))
}

func TestHandleSample_DetachDuringMoveKeepsNewTarget(t *testing.T) {
	f := newFixture(t)
	f.handle(t, mouse(input.SamplePointerMove, 45, 5, ui.ButtonNone))
	require.Same(t, f.c, f.p.Tracker().TopElement(pointer.MousePointerID))

	require.NoError(t, f.b.RegisterCallback(ui.KindPointerMove, ui.NewCallback(func(*ui.Event) {
		if f.c.Parent() != nil {
			f.c.RemoveFromHierarchy()
		}
	})))
	f.watch(t, f.c, ui.KindPointerOut, ui.KindPointerLeave)
	f.watch(t, f.b, ui.KindPointerOver, ui.KindPointerEnter)

	f.handle(t, mouse(input.SamplePointerMove, 13, 8, ui.ButtonNone))

	assert.Equal(t, []string{
		"PointerOut:c",
		"PointerOver:b",
		"PointerLeave:c",
		"PointerEnter:b",
	}, f.log)
	assert.Same(t, f.b, f.p.Tracker().TopElement(pointer.MousePointerID))
	assert.Same(t, f.b, f.p.Pick(ui.Vec2{X: 13, Y: 8}))
}

func TestSend_ErrorLoggedOnce(t *testing.T) {
	logger, hook := test.NewNullLogger()
	entry := logrus.NewEntry(logger)
	p := New(
		WithLogger(entry),
		WithDispatcher(dispatch.New(dispatch.DefaultConfig(), dispatch.WithLogger(entry))),
	)

	evt := ui.AcquireEvent(ui.KindPointerOut)
	defer evt.Dispose()
	err := p.Send(evt)
	require.ErrorIs(t, err, dispatch.ErrTargetRequired)

	errorsLogged := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorsLogged++
		}
	}
	assert.Equal(t, 1, errorsLogged)
}

func TestHandleSample_OutsideRootTargetsRoot(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.p.Root(), ui.KindPointerMove)

	f.handle(t, mouse(input.SamplePointerMove, 200, 200, ui.ButtonNone))

	assert.Equal(t, []string{"PointerMove:root"}, f.log)
	assert.Nil(t, f.p.Tracker().TopElement(pointer.MousePointerID))
	loc, ok := f.p.Pointers().Location(pointer.ContextRuntime, pointer.MousePointerID)
	require.True(t, ok)
	assert.True(t, loc.Outside)
}

func TestHandleSample_ClickSynthesis(t *testing.T) {
	f := newFixture(t)
	var counts []int
	require.NoError(t, f.b.RegisterCallback(ui.KindClick, ui.NewCallback(func(evt *ui.Event) {
		counts = append(counts, evt.Pointer.ClickCount)
	})))

	base := time.Unix(1000, 0)
	at := func(s input.Sample, d time.Duration) input.Sample {
		s.Time = base.Add(d)
		return s
	}

	f.handle(t,
		at(mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary), 0),
		at(mouse(input.SamplePointerUp, 13, 8, ui.ButtonPrimary), 10*time.Millisecond),
		at(mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary), 100*time.Millisecond),
		at(mouse(input.SamplePointerUp, 13, 8, ui.ButtonPrimary), 110*time.Millisecond),
	)
	assert.Equal(t, []int{1, 2}, counts)

	// Released over another element: no click.
	f.handle(t,
		at(mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary), 2*time.Second),
		at(mouse(input.SamplePointerUp, 45, 5, ui.ButtonPrimary), 2*time.Second+10*time.Millisecond),
	)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestHandleSample_CancelForgetsPress(t *testing.T) {
	f := newFixture(t)
	clicks := 0
	require.NoError(t, f.b.RegisterCallback(ui.KindClick, ui.NewCallback(func(*ui.Event) { clicks++ })))

	f.handle(t,
		mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary),
		mouse(input.SamplePointerCancel, 13, 8, ui.ButtonNone),
		mouse(input.SamplePointerUp, 13, 8, ui.ButtonPrimary),
	)
	assert.Zero(t, clicks)
	assert.Equal(t, ui.Buttons(0), f.p.Pointers().PressedButtons(pointer.MousePointerID))
}

func TestHandleSample_Leave(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.b, ui.KindPointerLeave)

	f.handle(t, mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary))
	f.log = nil
	f.handle(t, input.Sample{Type: input.SampleLeave})

	assert.Equal(t, []string{"PointerLeave:b"}, f.log)
	assert.False(t, f.p.Pointers().IsPressed(pointer.MousePointerID, ui.ButtonPrimary))
	assert.Nil(t, f.p.Tracker().TopElement(pointer.MousePointerID))
}

func TestHandleSample_InvalidPointer(t *testing.T) {
	f := newFixture(t)
	s := mouse(input.SamplePointerDown, 1, 1, ui.ButtonPrimary)
	s.PointerID = pointer.MaxPointers

	assert.ErrorIs(t, f.p.HandleSample(s), ErrInvalidPointer)
	assert.ErrorIs(t, f.p.HandleSample(input.Sample{Type: input.SampleLeave, PointerID: -1}), ErrInvalidPointer)
}

func TestHandleSample_KeyboardFollowsFocus(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.a, ui.KindKeyDown)
	f.watch(t, f.p.Root(), ui.KindKeyDown)

	down := input.Sample{Type: input.SampleKeyDown, Key: key.Stroke{Key: key.KeyEnter}}
	f.handle(t, down)
	require.NoError(t, f.p.Focus(f.a))
	f.handle(t, down)

	assert.Equal(t, []string{"KeyDown:root", "KeyDown:a"}, f.log)
}

func TestHandleSample_Command(t *testing.T) {
	f := newFixture(t)
	var got string
	require.NoError(t, f.p.Root().RegisterCallback(ui.KindExecuteCommand, ui.NewCallback(func(evt *ui.Event) {
		got = evt.Command
	})))

	f.handle(t, input.Sample{Type: input.SampleCommand, Command: "paste"})
	assert.Equal(t, "paste", got)
}

func TestHandleSample_Resize(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.p.Root(), ui.KindPanelResized)

	f.handle(t, input.Sample{Type: input.SampleResize, Size: ui.Vec2{X: 100, Y: 30}})

	assert.Equal(t, []string{"PanelResized:root"}, f.log)
	assert.Equal(t, ui.NewRect(0, 0, 100, 30), f.p.Root().Bounds())
}

func TestPick(t *testing.T) {
	p := New()
	p.Root().SetBounds(ui.NewRect(0, 0, 50, 50))
	d1, d2, e := ui.NewElement("d1"), ui.NewElement("d2"), ui.NewElement("e")
	d1.SetBounds(ui.NewRect(0, 0, 10, 10))
	d2.SetBounds(ui.NewRect(5, 5, 10, 10))
	e.SetBounds(ui.NewRect(1, 1, 2, 2))
	require.NoError(t, p.Root().Add(d1))
	require.NoError(t, p.Root().Add(d2))
	require.NoError(t, d2.Add(e))

	assert.Same(t, d2, p.Pick(ui.Vec2{X: 9, Y: 9}), "later sibling is on top")
	assert.Same(t, d1, p.Pick(ui.Vec2{X: 2, Y: 2}))
	assert.Same(t, e, p.Pick(ui.Vec2{X: 7, Y: 7}))
	assert.Same(t, p.Root(), p.Pick(ui.Vec2{X: 30, Y: 30}))
	assert.Nil(t, p.Pick(ui.Vec2{X: 60, Y: 1}))

	d2.SetPickingMode(ui.PickIgnore)
	assert.Same(t, e, p.Pick(ui.Vec2{X: 7, Y: 7}), "children of ignored elements stay pickable")
	assert.Same(t, d1, p.Pick(ui.Vec2{X: 9, Y: 9}))
	assert.Same(t, p.Root(), p.Pick(ui.Vec2{X: 12, Y: 12}))
}

func TestSetRoot(t *testing.T) {
	f := newFixture(t)
	old := f.p.Root()

	assert.ErrorIs(t, f.p.SetRoot(nil), ErrNilRoot)
	assert.ErrorIs(t, f.p.SetRoot(f.b), ErrRootHasParent)

	next := ui.NewElement("next")
	require.NoError(t, f.p.SetRoot(next))
	assert.Same(t, next, f.p.Root())
	assert.Same(t, ui.Panel(f.p), next.Panel())
	assert.Nil(t, old.Panel())
	assert.Nil(t, f.b.Panel())
	assert.Equal(t, ui.NewRect(0, 0, 80, 24), next.Bounds())
}

func TestElementDetaching(t *testing.T) {
	f := newFixture(t)
	f.watch(t, f.a, ui.KindFocusOut, ui.KindBlur, ui.KindPointerLeave)
	f.watch(t, f.b, ui.KindPointerOut, ui.KindPointerLeave)

	require.NoError(t, f.p.Focus(f.a))
	f.handle(t, mouse(input.SamplePointerDown, 13, 8, ui.ButtonPrimary))
	f.log = nil

	f.a.RemoveFromHierarchy()

	assert.Equal(t, []string{
		"FocusOut:a",
		"Blur:a",
		"PointerOut:b",
		"PointerLeave:b",
		"PointerLeave:a",
	}, f.log)
	assert.Nil(t, f.p.FocusedElement())
	assert.Nil(t, f.p.Tracker().TopElement(pointer.MousePointerID))

	// The pending press on b was forgotten.
	clicks := 0
	require.NoError(t, f.p.Root().RegisterCallback(ui.KindClick, ui.NewCallback(func(*ui.Event) { clicks++ })))
	f.handle(t, mouse(input.SamplePointerUp, 13, 8, ui.ButtonPrimary))
	assert.Zero(t, clicks)
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	f.handle(t, mouse(input.SamplePointerMove, 13, 8, ui.ButtonNone))
	require.NoError(t, f.p.CapturePointer(pointer.MousePointerID, f.b))

	f.p.Close()

	_, ok := f.p.Pointers().Location(pointer.ContextRuntime, pointer.MousePointerID)
	assert.False(t, ok)
	assert.Nil(t, f.p.Pointers().Capturing(pointer.MousePointerID))
	assert.Nil(t, f.p.Tracker().TopElement(pointer.MousePointerID))
}

func TestContextMenu(t *testing.T) {
	var shown *ui.Event
	var done func()
	f := newFixture(t, WithMenuPresenter(MenuPresenterFunc(func(evt *ui.Event, d func()) {
		shown, done = evt, d
	})))
	require.NoError(t, f.b.RegisterCallback(ui.KindContextualMenuPopulate, ui.NewCallback(func(evt *ui.Event) {
		evt.AppendMenuItem("Copy", nil)
	})))

	f.handle(t,
		mouse(input.SamplePointerDown, 13, 8, ui.ButtonSecondary),
		mouse(input.SamplePointerUp, 13, 8, ui.ButtonSecondary),
	)

	require.NotNil(t, shown)
	assert.Equal(t, 1, shown.RefCount(), "presenter holds the only reference")
	assert.Same(t, f.b, shown.Target())
	require.Len(t, shown.MenuItems(), 1)
	assert.Equal(t, "Copy", shown.MenuItems()[0].Label)

	done()
	assert.NotPanics(t, done)
}

func TestContextMenu_NothingToShow(t *testing.T) {
	presented := false
	f := newFixture(t, WithMenuPresenter(MenuPresenterFunc(func(*ui.Event, func()) {
		presented = true
	})))
	f.watch(t, f.b, ui.KindContextualMenuPopulate)

	f.handle(t,
		mouse(input.SamplePointerDown, 13, 8, ui.ButtonSecondary),
		mouse(input.SamplePointerUp, 13, 8, ui.ButtonSecondary),
	)

	assert.Equal(t, []string{"ContextualMenuPopulate:b"}, f.log)
	assert.False(t, presented)
}
