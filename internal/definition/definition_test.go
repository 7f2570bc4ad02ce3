package definition_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/layoutgrid/internal/definition"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/specialistvlad/layoutgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() engine.Env {
	return engine.Env{IDs: &testutil.SeqIDs{}}
}

func build(t *testing.T, src string) (*engine.Layout, error) {
	t.Helper()
	ctx, _ := testutil.NewContext(t)
	def, err := definition.Parse("layout.hcl", []byte(testutil.Unindent(src)))
	if err != nil {
		return nil, err
	}
	return def.Build(ctx, testEnv())
}

func TestBuild_FullDefinition(t *testing.T) {
	// --- Arrange ---
	src := `
		layout {
		  main_area = true
		}

		part "part.left" {
		  relative_to = "part.initial"
		  align       = "left"
		  ratio       = 0.25
		  activate    = true
		  css_class   = ["sidebar"]

		  view "view.1" {
		    path     = ["search", "recent"]
		    hint     = "search"
		    data     = { mode = "compact", limit = 10 }
		    activate = true
		  }

		  view "view.2" {
		    css_class = ["muted"]
		  }
		}
	`

	// --- Act ---
	l, err := build(t, src)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{grid.GridMain, grid.GridMainArea}, l.GridNames())

	g, ok := l.Grid(grid.GridMainArea)
	require.True(t, ok)
	root, ok := g.Root.(*grid.Node)
	require.True(t, ok)
	assert.Equal(t, grid.Row, root.Direction)
	assert.Equal(t, 0.25, root.Ratio)
	assert.Equal(t, "part.left", root.Child1.ElementID())
	assert.Equal(t, grid.InitialPartID, root.Child2.ElementID())
	assert.Equal(t, "part.left", g.ActivePartID)

	left := root.Child1.(*grid.Part)
	assert.True(t, left.Structural)
	assert.Equal(t, []string{"sidebar"}, left.CSSClass)
	assert.Equal(t, []string{"view.1", "view.2"}, left.ViewIDs())
	assert.Equal(t, "view.1", left.ActiveViewID)

	v1 := left.Views[0]
	require.NotNil(t, v1.Navigation)
	assert.Equal(t, "search/recent", grid.PathString(v1.Navigation.Path))
	assert.Equal(t, "search", v1.Navigation.Hint)
	assert.Equal(t, map[string]string{"mode": "compact", "limit": "10"}, v1.Navigation.Data)
	assert.NotEmpty(t, v1.Navigation.ID)

	v2 := left.Views[1]
	assert.Nil(t, v2.Navigation)
	assert.Equal(t, []string{"muted"}, v2.CSSClass)
}

func TestBuild_ExistingPartOnlyReceivesViews(t *testing.T) {
	l, err := build(t, `
		part "part.initial" {
		  view "view.1" {}
		  view "view.2" { activate = true }
		}
	`)
	require.NoError(t, err)

	assert.Len(t, l.Parts(engine.PartFilter{}), 1)
	p, err := l.FindPart(engine.PartFilter{ID: grid.InitialPartID})
	require.NoError(t, err)
	assert.Equal(t, []string{"view.1", "view.2"}, p.ViewIDs())
	assert.Equal(t, "view.2", p.ActiveViewID)
}

func TestBuild_PartRatio(t *testing.T) {
	testCases := []struct {
		name        string
		ratio       string
		expectRatio float64
	}{
		{name: "omitted", ratio: "", expectRatio: engine.DefaultRatio},
		{name: "zero", ratio: "ratio = 0", expectRatio: 0},
		{name: "one", ratio: "ratio = 1", expectRatio: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			src := `
				part "part.left" {
				  align = "left"
				  ` + tc.ratio + `
				}
			`

			// --- Act ---
			l, err := build(t, src)

			// --- Assert ---
			require.NoError(t, err)
			g, ok := l.Grid(grid.GridMain)
			require.True(t, ok)
			root, ok := g.Root.(*grid.Node)
			require.True(t, ok)
			assert.Equal(t, tc.expectRatio, root.Ratio)
		})
	}
}

func TestBuild_PartOptions(t *testing.T) {
	l, err := build(t, `
		part "part.bottom" {
		  align      = "bottom"
		  structural = false
		  view "view.1" {}
		}
	`)
	require.NoError(t, err)

	p, err := l.FindPart(engine.PartFilter{ID: "part.bottom"})
	require.NoError(t, err)
	assert.False(t, p.Structural)
	g, _ := l.Grid(grid.GridMain)
	root := g.Root.(*grid.Node)
	assert.Equal(t, grid.Column, root.Direction)
	assert.Equal(t, 0.5, root.Ratio)
	assert.Equal(t, "part.bottom", root.Child2.ElementID())
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
		expectDiags bool
	}{
		{
			name:        "unknown relative_to suggests a close id",
			src:         `part "part.left" { relative_to = "part.intial" }`,
			errContains: `Did you mean "part.initial"?`,
			expectDiags: true,
		},
		{
			name:        "invalid syntax",
			src:         `part "part.left" {`,
			errContains: "layout.hcl",
			expectDiags: true,
		},
		{
			name:        "unknown attribute",
			src:         `part "part.left" { colour = "red" }`,
			errContains: "colour",
			expectDiags: true,
		},
		{
			name:        "duplicate view",
			src:         "part \"part.initial\" {\n  view \"v\" {}\n  view \"v\" {}\n}",
			errContains: `view "v" already exists`,
		},
		{
			name:        "invalid alignment",
			src:         `part "part.left" { align = "diagonal" }`,
			errContains: "unknown alignment",
		},
		{
			name:        "view data must be an object",
			src:         "part \"part.initial\" {\n  view \"v\" { data = [\"a\"] }\n}",
			errContains: "Invalid view data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := build(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
			if tc.expectDiags {
				var diags hcl.Diagnostics
				assert.True(t, errors.As(err, &diags), "expected HCL diagnostics, got %T", err)
			}
		})
	}
}

func TestLoad_MergesFilesInPathOrder(t *testing.T) {
	// --- Arrange ---
	ctx, logs := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"layouts/10-base.hcl": `
			layout {
			  main_area = true
			}
			part "part.side" {
			  align = "left"
			}
		`,
		"layouts/20-views.hcl": `
			part "part.side" {
			  view "view.1" {}
			}
		`,
		"layouts/README.md": "ignored",
	})

	// --- Act ---
	def, err := definition.Load(ctx, filepath.Join(dir, "layouts"))
	require.NoError(t, err)
	l, err := def.Build(ctx, testEnv())

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, def.MainArea)
	assert.Len(t, def.Files, 2)
	p, err := l.FindPart(engine.PartFilter{ViewID: "view.1"})
	require.NoError(t, err)
	assert.Equal(t, "part.side", p.ID)
	assert.Contains(t, logs.String(), "Definition loading complete.")
}

func TestLoad_NoFiles(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	_, err := definition.Load(ctx, t.TempDir())
	require.Error(t, err)
}
