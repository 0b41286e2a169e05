package ui

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPanel struct {
	root      *Element
	detaching []*Element
}

func (p *recordingPanel) Root() *Element { return p.root }

func (p *recordingPanel) ElementDetaching(el *Element) {
	p.detaching = append(p.detaching, el)
}

// tree builds root > a > b and root > c.
func tree(t *testing.T) (root, a, b, c *Element) {
	t.Helper()
	root, a, b, c = NewElement("root"), NewElement("a"), NewElement("b"), NewElement("c")
	require.NoError(t, root.Add(a))
	require.NoError(t, a.Add(b))
	require.NoError(t, root.Add(c))
	return root, a, b, c
}

func TestElement_AddRejectsCycles(t *testing.T) {
	root, a, b, _ := tree(t)

	tassert.ErrorIs(t, b.Add(root), ErrCycle)
	tassert.ErrorIs(t, a.Add(a), ErrCycle)
	tassert.Equal(t, a, b.Parent())
}

func TestElement_AddReparents(t *testing.T) {
	root, a, b, c := tree(t)

	require.NoError(t, c.Add(b))

	tassert.Equal(t, c, b.Parent())
	tassert.Empty(t, a.Children())
	tassert.True(t, root.IsAncestorOf(b))
	tassert.False(t, a.IsAncestorOf(b))
}

func TestElement_Insert(t *testing.T) {
	root := NewElement("root")
	x, y, z := NewElement("x"), NewElement("y"), NewElement("z")
	require.NoError(t, root.Add(x))
	require.NoError(t, root.Add(z))
	require.NoError(t, root.Insert(1, y))

	tassert.Equal(t, []*Element{x, y, z}, root.Children())
	tassert.Error(t, root.Insert(7, NewElement("w")))
}

func TestElement_RemoveNotifiesPanelFirst(t *testing.T) {
	root, a, b, _ := tree(t)
	p := &recordingPanel{root: root}
	root.AttachToPanel(p)
	require.Equal(t, Panel(p), b.Panel())

	tassert.True(t, root.Remove(a))

	tassert.Equal(t, []*Element{a}, p.detaching)
	tassert.Nil(t, a.Parent())
	tassert.Nil(t, b.Panel())
	tassert.False(t, root.Remove(a))
}

func TestElement_EnabledInHierarchy(t *testing.T) {
	root, a, b, c := tree(t)
	a.SetEnabled(false)

	tassert.False(t, b.EnabledInHierarchy())
	tassert.True(t, b.EnabledSelf())
	tassert.True(t, c.EnabledInHierarchy())
	tassert.True(t, root.EnabledInHierarchy())
}

func TestElement_CommonAncestor(t *testing.T) {
	root, a, b, c := tree(t)

	tassert.Equal(t, root, CommonAncestor(b, c))
	tassert.Equal(t, a, CommonAncestor(a, b))
	tassert.Equal(t, b, CommonAncestor(b, b))
	tassert.Nil(t, CommonAncestor(b, NewElement("stray")))
	tassert.Nil(t, CommonAncestor(nil, b))
}

func TestElement_Coordinates(t *testing.T) {
	root, a, b, _ := tree(t)
	root.SetBounds(NewRect(0, 0, 100, 100))
	a.SetBounds(NewRect(10, 20, 50, 50))
	b.SetBounds(NewRect(5, 5, 10, 10))

	tassert.Equal(t, NewRect(15, 25, 10, 10), b.WorldBounds())
	tassert.Equal(t, Vec2{X: 2, Y: 3}, b.WorldToLocal(Vec2{X: 17, Y: 28}))
	tassert.Equal(t, Vec2{X: 17, Y: 28}, b.LocalToWorld(Vec2{X: 2, Y: 3}))
}

func TestElement_InterestCache(t *testing.T) {
	root, a, b, c := tree(t)
	cb := NewCallback(func(*Event) {})

	tassert.False(t, b.HasParentInterest(CategoryPointer))

	require.NoError(t, root.RegisterCallback(KindPointerDown, cb))
	tassert.True(t, root.HasSelfInterest(CategoryPointer))
	tassert.True(t, b.HasParentInterest(CategoryPointer))
	tassert.True(t, c.HasParentInterest(CategoryPointer))
	tassert.False(t, root.HasParentInterest(CategoryPointer))

	require.NoError(t, a.RegisterCallback(KindKeyDown, cb, WithTrickleDown()))
	tassert.True(t, b.HasParentInterest(CategoryKeyboard))
	tassert.False(t, c.HasParentInterest(CategoryKeyboard))

	require.True(t, root.UnregisterCallback(KindPointerDown, cb))
	tassert.False(t, b.HasParentInterest(CategoryPointer))

	// Moving b under c drops a's keyboard interest from its ancestors.
	require.NoError(t, c.Add(b))
	tassert.False(t, b.HasParentInterest(CategoryKeyboard))
}

func TestElement_BehaviorContributesInterest(t *testing.T) {
	root, _, b, _ := tree(t)
	root.SetBehavior(BehaviorFuncs{Categories: CategoryFocus})

	tassert.True(t, root.HasSelfInterest(CategoryFocus))
	tassert.True(t, b.HasParentInterest(CategoryFocus))

	root.SetBehavior(nil)
	tassert.False(t, b.HasParentInterest(CategoryFocus))
}

func TestElement_UnregisterUnknown(t *testing.T) {
	el := NewElement("el")
	tassert.False(t, el.UnregisterCallback(KindClick, NewCallback(func(*Event) {})))
	tassert.False(t, el.UnregisterCallback(nil, nil))
}
