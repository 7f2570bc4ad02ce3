// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSample returns the tree [A | [B / C]] with views in A and C.
func buildSample(t *testing.T) *Grid {
	t.Helper()
	a, err := NewPart("part.a", true, NewView("view.1"), NewView("view.2"))
	require.NoError(t, err)
	a.ActiveViewID = "view.2"
	b, err := NewPart("part.b", false)
	require.NoError(t, err)
	c, err := NewPart("part.c", false, NewView("view.3"))
	require.NoError(t, err)

	right, err := NewNode("node.2", b, c, Column, 0.5)
	require.NoError(t, err)
	root, err := NewNode("node.1", a, right, Row, 0.3)
	require.NoError(t, err)

	g, err := New(root, "part.a")
	require.NoError(t, err)
	return g
}

func TestNewNode_Validation(t *testing.T) {
	p1, _ := NewPart("p1", true)
	p2, _ := NewPart("p2", true)
	var nilPart *Part

	testCases := []struct {
		name      string
		child1    Element
		child2    Element
		direction Direction
		ratio     float64
		expectErr bool
	}{
		{name: "valid row", child1: p1, child2: p2, direction: Row, ratio: 0.5},
		{name: "ratio lower bound", child1: p1, child2: p2, direction: Column, ratio: 0},
		{name: "ratio upper bound", child1: p1, child2: p2, direction: Column, ratio: 1},
		{name: "error - missing child", child1: p1, child2: nil, direction: Row, ratio: 0.5, expectErr: true},
		{name: "error - typed nil child", child1: nilPart, child2: p2, direction: Row, ratio: 0.5, expectErr: true},
		{name: "error - bad direction", child1: p1, child2: p2, direction: "diagonal", ratio: 0.5, expectErr: true},
		{name: "error - ratio above range", child1: p1, child2: p2, direction: Row, ratio: 1.01, expectErr: true},
		{name: "error - ratio below range", child1: p1, child2: p2, direction: Row, ratio: -0.1, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := NewNode("n", tc.child1, tc.child2, tc.direction, tc.ratio)
			if tc.expectErr {
				var illegal *IllegalArgumentError
				require.ErrorAs(t, err, &illegal)
				return
			}
			require.NoError(t, err)
			assert.Same(t, n, tc.child1.Parent())
			assert.Same(t, n, tc.child2.Parent())
		})
	}
}

func TestNewPart_RejectsDuplicateViews(t *testing.T) {
	_, err := NewPart("p", true, NewView("view.1"), NewView("view.1"))
	var addErr *ViewAddError
	require.ErrorAs(t, err, &addErr)
	assert.Equal(t, "view.1", addErr.ID)

	_, err = NewPart("", true)
	require.Error(t, err)
}

func TestLink_RebuildsParents(t *testing.T) {
	g := buildSample(t)
	root := g.Root.(*Node)
	right := root.Child2.(*Node)

	// Break every back-reference, then relink.
	for _, el := range Find(g.Root, func(Element) bool { return true }, FindOptions{}) {
		el.setParent(nil)
	}
	Link(g.Root)

	assert.Nil(t, root.Parent())
	assert.Same(t, root, root.Child1.Parent())
	assert.Same(t, root, right.Parent())
	assert.Same(t, right, right.Child1.Parent())
	assert.Same(t, right, right.Child2.Parent())
}

func TestClone_IsIndependent(t *testing.T) {
	g := buildSample(t)
	c := g.Clone()

	cp, ok := c.Part("part.a")
	require.True(t, ok)
	cp.Views[0].ID = "view.changed"
	cp.ActiveViewID = "view.1"
	c.Root.(*Node).Ratio = 0.9

	orig, _ := g.Part("part.a")
	assert.Equal(t, "view.1", orig.Views[0].ID)
	assert.Equal(t, "view.2", orig.ActiveViewID)
	assert.Equal(t, 0.3, g.Root.(*Node).Ratio)

	// The clone's parents point into the clone, not the original.
	assert.Same(t, c.Root, cp.Parent())
}

func TestValidate(t *testing.T) {
	t.Run("duplicate part id", func(t *testing.T) {
		a, _ := NewPart("p", true)
		b, _ := NewPart("p", true)
		n, err := NewNode("n", a, b, Row, 0.5)
		require.NoError(t, err)
		_, err = New(n, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate part id "p"`)
	})

	t.Run("unknown active part", func(t *testing.T) {
		a, _ := NewPart("p", true)
		_, err := New(a, "q")
		require.Error(t, err)
	})

	t.Run("unknown active view", func(t *testing.T) {
		a, _ := NewPart("p", true, NewView("view.1"))
		a.ActiveViewID = "view.9"
		_, err := New(a, "p")
		require.Error(t, err)
	})

	t.Run("nil root", func(t *testing.T) {
		_, err := New(nil, "")
		require.Error(t, err)
	})
}

func TestFind(t *testing.T) {
	g := buildSample(t)
	isPart := func(el Element) bool { _, ok := el.(*Part); return ok }

	all := Find(g.Root, isPart, FindOptions{})
	require.Len(t, all, 3)
	assert.Equal(t, "part.a", all[0].ElementID())
	assert.Equal(t, "part.b", all[1].ElementID())
	assert.Equal(t, "part.c", all[2].ElementID())

	first := Find(g.Root, isPart, FindOptions{First: true})
	require.Len(t, first, 1)
	assert.Equal(t, "part.a", first[0].ElementID())

	assert.Len(t, Nodes(g.Root), 2)
	assert.Len(t, Views(g.Root), 3)
}

func TestGrid_Lookups(t *testing.T) {
	g := buildSample(t)

	n, ok := g.Node("node.2")
	require.True(t, ok)
	assert.Equal(t, Column, n.Direction)

	el, ok := g.Element("part.c")
	require.True(t, ok)
	assert.IsType(t, &Part{}, el)

	_, ok = g.Part("part.z")
	assert.False(t, ok)
}

func TestIsVisible(t *testing.T) {
	g := buildSample(t)
	root := g.Root.(*Node)
	right := root.Child2.(*Node)

	assert.True(t, IsVisible(root))
	assert.False(t, IsVisible(right.Child1), "empty part is hidden")
	assert.True(t, IsVisible(right), "node with one visible child is visible")

	emptyA, _ := NewPart("a", true)
	emptyB, _ := NewPart("b", true)
	empty, _ := NewNode("n", emptyA, emptyB, Row, 0.5)
	assert.False(t, IsVisible(empty))

	mainArea, _ := NewPart(MainAreaPartID, true)
	assert.True(t, IsVisible(mainArea), "main area is always visible")
}

func TestReplace(t *testing.T) {
	g := buildSample(t)
	right := g.Root.(*Node).Child2.(*Node)
	c, _ := g.Part("part.c")

	g.Replace(right, c)
	assert.Same(t, g.Root, c.Parent())
	assert.Equal(t, "part.c", g.Root.(*Node).Child2.ElementID())

	g.Replace(g.Root, c)
	assert.Same(t, c, g.Root)
	assert.Nil(t, c.Parent())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"part.left", "part.right", "part.initial"}
	assert.Equal(t, "part.left", Suggest("part.lfet", candidates))
	assert.Equal(t, "", Suggest("something.else", candidates))
	assert.Equal(t, "", Suggest("x", nil))
}

func TestErrors_Messages(t *testing.T) {
	err := error(&NullPartError{ID: "part.lfet", Suggestion: "part.left"})
	assert.Equal(t, `part "part.lfet" not found; did you mean "part.left"?`, err.Error())

	var nullPart *NullPartError
	assert.True(t, errors.As(err, &nullPart))
	assert.Equal(t, `view "v" not found`, (&NullViewError{ID: "v"}).Error())
}

func TestSegments(t *testing.T) {
	path := []Segment{{Path: "users"}, {Path: "42", Params: map[string]string{"tab": "info", "a": "1"}}}
	assert.Equal(t, "users/42;a=1;tab=info", PathString(path))
	assert.True(t, EqualPath(Segments("a", "b"), []Segment{{Path: "a"}, {Path: "b"}}))
	assert.False(t, EqualPath(Segments("a"), Segments("b")))
}

func TestView_Clone(t *testing.T) {
	v := &View{
		ID: "view.1",
		Navigation: &Navigation{
			ID:   "nav",
			Path: []Segment{{Path: "users", Params: map[string]string{"x": "1"}}},
			Data: map[string]string{"k": "v"},
		},
		CSSClass: []string{"a"},
	}
	c := v.Clone()
	require.NotNil(t, c.Navigation)
	c.Navigation.Data["k"] = "changed"
	c.Navigation.Path[0].Params["x"] = "2"
	c.CSSClass[0] = "b"

	assert.Equal(t, "v", v.Navigation.Data["k"])
	assert.Equal(t, "1", v.Navigation.Path[0].Params["x"])
	assert.Equal(t, "a", v.CSSClass[0])
}

func TestView_CloneKeepsNilFields(t *testing.T) {
	testCases := []struct {
		name string
		view *View
	}{
		{name: "bare view", view: NewView("view.1")},
		{name: "navigation without path or data", view: &View{ID: "view.1", Navigation: &Navigation{ID: "nav", Hint: "outline"}}},
		{name: "segment without params", view: &View{ID: "view.1", Navigation: &Navigation{ID: "nav", Path: Segments("users")}}},
		{name: "empty non-nil fields", view: &View{ID: "view.1", CSSClass: []string{}, Navigation: &Navigation{Path: []Segment{}, Data: map[string]string{}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			c := tc.view.Clone()

			// --- Assert ---
			assert.Equal(t, tc.view, c)
			assert.Equal(t, tc.view.CSSClass == nil, c.CSSClass == nil)
			if tc.view.Navigation == nil {
				assert.Nil(t, c.Navigation)
				return
			}
			require.NotNil(t, c.Navigation)
			assert.Equal(t, tc.view.Navigation.Path == nil, c.Navigation.Path == nil)
			assert.Equal(t, tc.view.Navigation.Data == nil, c.Navigation.Data == nil)
			for i, s := range tc.view.Navigation.Path {
				assert.Equal(t, s.Params == nil, c.Navigation.Path[i].Params == nil)
			}
		})
	}
}
