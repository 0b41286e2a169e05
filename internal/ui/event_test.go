package ui

import (
	"fmt"
	"sync"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireEvent_CapabilitiesFromKind(t *testing.T) {
	tests := []struct {
		kind         *Kind
		bubbles      bool
		trickles     bool
		skipDisabled bool
	}{
		{KindPointerDown, true, true, true},
		{KindPointerEnter, false, true, false},
		{KindGotPointerCapture, false, false, false},
		{KindFocusIn, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Name(), func(t *testing.T) {
			evt := AcquireEvent(tt.kind)
			defer evt.Dispose()

			tassert.Equal(t, tt.bubbles, evt.Bubbles())
			tassert.Equal(t, tt.trickles, evt.TricklesDown())
			tassert.Equal(t, tt.skipDisabled, evt.SkipDisabledElements())
			tassert.Equal(t, PhaseNone, evt.Phase())
			tassert.Equal(t, ButtonNone, evt.Pointer.Button)
			tassert.Equal(t, 1, evt.RefCount())
		})
	}
}

func TestAcquireEvent_ClearsRecycledState(t *testing.T) {
	evt := AcquireEvent(KindClick)
	evt.SetTarget(NewElement("t"))
	evt.StopImmediatePropagation()
	evt.PreventDefault()
	evt.AppendMenuItem("copy", nil)
	evt.Command = "copy"
	firstID := evt.ID()
	evt.Dispose()

	again := AcquireEvent(KindKeyDown)
	defer again.Dispose()

	tassert.Same(t, evt, again)
	tassert.Greater(t, again.ID(), firstID)
	tassert.Nil(t, again.Target())
	tassert.False(t, again.IsPropagationStopped())
	tassert.False(t, again.IsDefaultPrevented())
	tassert.Empty(t, again.MenuItems())
	tassert.Empty(t, again.Command)
	tassert.Equal(t, KindKeyDown, again.Kind())
}

func TestEvent_RetainDefersRelease(t *testing.T) {
	evt := AcquireEvent(KindContextualMenuPopulate)
	evt.Retain()

	before := pooledEvents()
	evt.Dispose()
	tassert.Equal(t, before, pooledEvents())
	tassert.Equal(t, 1, evt.RefCount())

	evt.Dispose()
	tassert.Equal(t, before+1, pooledEvents())
}

func TestEvent_StopImmediateImpliesStop(t *testing.T) {
	evt := AcquireEvent(KindClick)
	defer evt.Dispose()

	evt.StopImmediatePropagation()

	tassert.True(t, evt.IsImmediatePropagationStopped())
	tassert.True(t, evt.IsPropagationStopped())
}

func TestEvent_CompatReleasedWithPrimary(t *testing.T) {
	primary := AcquireEvent(KindPointerDown)
	shadow := AcquireEvent(KindMouseDown)
	primary.AttachCompat(shadow)
	shadow.StopPropagation()
	shadow.MarkFocusProcessed()

	primary.CopyStopStateFrom(shadow)
	tassert.True(t, primary.IsPropagationStopped())
	tassert.False(t, primary.IsImmediatePropagationStopped())
	tassert.True(t, primary.FocusProcessed())

	primary.Dispose()
	tassert.True(t, shadow.released)
	tassert.Nil(t, primary.Compat())
}

func TestEvent_EndDispatchResetsPhase(t *testing.T) {
	evt := AcquireEvent(KindClick)
	defer evt.Dispose()
	el := NewElement("el")

	evt.BeginDispatch(nil)
	evt.SetPhase(PhaseBubbleUp)
	evt.SetCurrentTarget(el)
	tassert.True(t, evt.Dispatching())

	evt.EndDispatch()
	tassert.Equal(t, PhaseNone, evt.Phase())
	tassert.Nil(t, evt.CurrentTarget())
	tassert.False(t, evt.Dispatching())
	tassert.True(t, evt.Dispatched())
}

func TestEvent_LocalPosition(t *testing.T) {
	root, a, _, _ := tree(t)
	a.SetBounds(NewRect(10, 10, 20, 20))

	evt := AcquireEvent(KindPointerMove)
	defer evt.Dispose()
	evt.Pointer.Position = Vec2{X: 15, Y: 12}

	tassert.Equal(t, Vec2{X: 15, Y: 12}, evt.LocalPosition())
	evt.SetCurrentTarget(a)
	tassert.Equal(t, Vec2{X: 5, Y: 2}, evt.LocalPosition())
	evt.SetCurrentTarget(root)
	tassert.Equal(t, Vec2{X: 15, Y: 12}, evt.LocalPosition())
}

func TestKindRegistry(t *testing.T) {
	k, ok := KindByName("PointerDown")
	tassert.True(t, ok)
	tassert.Same(t, KindPointerDown, k)

	byID, ok := KindByID(KindPointerDown.ID())
	tassert.True(t, ok)
	tassert.Same(t, KindPointerDown, byID)

	_, err := RegisterKind("PointerDown", CategoryPointer, PropagationNone, RoutePanelRoot)
	tassert.ErrorIs(t, err, ErrDuplicateKind)

	tassert.Equal(t, "pointer|mouse", (CategoryPointer | CategoryMouse).String())
	tassert.True(t, IsPointerKind(KindClick))
	tassert.False(t, IsPointerKind(KindKeyDown))
}

func TestKindRegistry_ConcurrentRegistration(t *testing.T) {
	const n = 16
	var wg sync.WaitGroup
	kinds := make([]*Kind, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k, err := RegisterKind(fmt.Sprintf("ConcurrentTestKind%d", i), CategoryCommand, PropagationNone, RoutePanelRoot)
			tassert.NoError(t, err)
			kinds[i] = k
			_, _ = KindByName("PointerDown")
		}(i)
	}
	wg.Wait()

	seen := make(map[TypeID]bool)
	for i, k := range kinds {
		require.NotNil(t, k)
		tassert.False(t, seen[k.ID()], "duplicate id for kind %d", i)
		seen[k.ID()] = true
		byID, ok := KindByID(k.ID())
		tassert.True(t, ok)
		tassert.Same(t, k, byID)
	}
}
