package merge

import (
	"testing"

	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must(t *testing.T) func(*engine.Layout, error) *engine.Layout {
	return func(l *engine.Layout, err error) *engine.Layout {
		t.Helper()
		require.NoError(t, err)
		return l
	}
}

func viewsOf(t *testing.T, l *engine.Layout, partID string) []string {
	t.Helper()
	p, err := l.FindPart(engine.PartFilter{ID: partID})
	require.NoError(t, err)
	return p.ViewIDs()
}

// baseLayout has the initial part with view.1 and a side part with view.2.
func baseLayout(t *testing.T) *engine.Layout {
	t.Helper()
	l := engine.New(engine.Env{})
	l = must(t)(l.AddView("view.1", engine.AddViewOptions{PartID: grid.InitialPartID}))
	l = must(t)(l.AddPart("part.side", "", engine.AddPartOptions{Structural: true}))
	return must(t)(l.AddView("view.2", engine.AddViewOptions{PartID: "part.side"}))
}

func TestDiff(t *testing.T) {
	testCases := []struct {
		name          string
		prev, next    []string
		expectAdded   []string
		expectRemoved []string
	}{
		{name: "identical", prev: []string{"a", "b"}, next: []string{"b", "a"}},
		{name: "added", prev: []string{"a"}, next: []string{"c", "a", "b"}, expectAdded: []string{"c", "b"}},
		{name: "removed", prev: []string{"a", "b", "c"}, next: []string{"b"}, expectRemoved: []string{"a", "c"}},
		{name: "both", prev: []string{"a", "b"}, next: []string{"b", "c"}, expectAdded: []string{"c"}, expectRemoved: []string{"a"}},
		{name: "empty", prev: nil, next: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			added, removed := Diff(tc.prev, tc.next)
			assert.Equal(t, tc.expectAdded, added)
			assert.Equal(t, tc.expectRemoved, removed)
		})
	}
}

func TestMerge_UnchangedRemoteKeepsLocal(t *testing.T) {
	// --- Arrange ---
	base := baseLayout(t)
	local := must(t)(base.AddPart("part.local", "", engine.AddPartOptions{Align: engine.AlignTop}))
	remote := baseLayout(t)

	// --- Act ---
	merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

	// --- Assert ---
	require.NoError(t, err)
	assert.Same(t, local, merged)
}

func TestMerge_AddedViews(t *testing.T) {
	base := baseLayout(t)

	t.Run("host part exists locally", func(t *testing.T) {
		local := must(t)(base.AddPart("part.local", "", engine.AddPartOptions{Align: engine.AlignTop}))
		remote := must(t)(base.AddView("view.3", engine.AddViewOptions{PartID: "part.side", CSSClass: []string{"x"}}))

		merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

		require.NoError(t, err)
		assert.Equal(t, []string{"view.2", "view.3"}, viewsOf(t, merged, "part.side"))
		_, ok := merged.LookupPart(engine.PartFilter{ID: "part.local"})
		assert.True(t, ok, "local structure is kept")
		v, err := merged.FindView(engine.ViewFilter{ID: "view.3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, v.CSSClass)
	})

	t.Run("host part missing locally", func(t *testing.T) {
		local := must(t)(base.RemovePart("part.side"))
		remote := must(t)(base.AddView("view.3", engine.AddViewOptions{PartID: "part.side"}))

		merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

		require.NoError(t, err)
		assert.Equal(t, []string{"view.1", "view.3"}, viewsOf(t, merged, grid.InitialPartID))
	})

	t.Run("navigation travels with the view", func(t *testing.T) {
		remote := must(t)(base.AddView("view.3", engine.AddViewOptions{PartID: "part.side"}))
		remote = must(t)(remote.NavigateView("view.3", grid.Segments("docs"), engine.NavigateOptions{Hint: "docs"}))

		merged, err := Merge(Input{Local: base, Base: base, Remote: remote})

		require.NoError(t, err)
		v, err := merged.FindView(engine.ViewFilter{ID: "view.3"})
		require.NoError(t, err)
		require.NotNil(t, v.Navigation)
		assert.Equal(t, "docs", grid.PathString(v.Navigation.Path))
	})
}

func TestMerge_NewPartWhenOnlyMainAreaExists(t *testing.T) {
	// --- Arrange ---
	mainArea, err := grid.NewPart(grid.MainAreaPartID, true)
	require.NoError(t, err)
	base, err := engine.FromGrids(engine.Env{}, map[string]*grid.Grid{grid.GridMain: grid.Single(mainArea)})
	require.NoError(t, err)
	remote := must(t)(base.AddPart("part.remote", "", engine.AddPartOptions{Align: engine.AlignLeft}))
	remote = must(t)(remote.AddView("view.9", engine.AddViewOptions{PartID: "part.remote"}))
	local, err := base.SetPartAlias(grid.MainAreaPartID, "workspace")
	require.NoError(t, err)

	// --- Act ---
	merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

	// --- Assert ---
	require.NoError(t, err)
	g, _ := merged.Grid(grid.GridMain)
	root, ok := g.Root.(*grid.Node)
	require.True(t, ok)
	assert.Equal(t, grid.MainAreaPartID, root.Child1.ElementID())
	p, ok := root.Child2.(*grid.Part)
	require.True(t, ok, "new part is aligned right")
	assert.Equal(t, "part.remote", p.ID)
	assert.True(t, p.Structural)
	assert.Equal(t, []string{"view.9"}, p.ViewIDs())
}

func TestMerge_RemovedViews(t *testing.T) {
	base := baseLayout(t)
	local := must(t)(base.AddView("view.local", engine.AddViewOptions{PartID: grid.InitialPartID}))
	remote := must(t)(base.RemoveView("view.1", engine.RemoveViewOptions{Force: true}))

	merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

	require.NoError(t, err)
	assert.Equal(t, []string{"view.local"}, viewsOf(t, merged, grid.InitialPartID))
	assert.Equal(t, []string{"view.2"}, viewsOf(t, merged, "part.side"))
}

func TestMerge_LegacyFullReplace(t *testing.T) {
	base := baseLayout(t)
	local := must(t)(base.AddView("view.local", engine.AddViewOptions{PartID: grid.InitialPartID}))

	t.Run("view path differs", func(t *testing.T) {
		remote := must(t)(base.NavigateView("view.1", grid.Segments("elsewhere"), engine.NavigateOptions{}))

		merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

		require.NoError(t, err)
		assert.True(t, merged.Equal(remote))
		_, ok := merged.LookupView(engine.ViewFilter{ID: "view.local"})
		assert.False(t, ok, "local changes are discarded")
	})

	t.Run("view hint differs", func(t *testing.T) {
		remote := must(t)(base.NavigateView("view.1", nil, engine.NavigateOptions{Hint: "other"}))

		merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

		require.NoError(t, err)
		assert.True(t, merged.Equal(remote))
	})

	t.Run("grid names differ", func(t *testing.T) {
		remote := engine.New(engine.Env{}, engine.WithMainArea())

		merged, err := Merge(Input{Local: local, Base: base, Remote: remote})

		require.NoError(t, err)
		assert.Equal(t, []string{grid.GridMain, grid.GridMainArea}, merged.GridNames())
	})
}

func TestMerge_RequiresAllSnapshots(t *testing.T) {
	_, err := Merge(Input{Local: baseLayout(t)})
	var illegal *grid.IllegalArgumentError
	require.ErrorAs(t, err, &illegal)
}
