package app_test

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/layoutgrid/internal/app"
	"github.com/specialistvlad/layoutgrid/internal/config"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/specialistvlad/layoutgrid/internal/sqlitestore"
	"github.com/specialistvlad/layoutgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sidebarHCL = `
	part "part.side" {
	  align = "left"
	  ratio = 0.3
	  view "view.1" {
	    path = ["explorer"]
	  }
	}
`

func TestApplyDefinition_PersistsLayout(t *testing.T) {
	// --- Arrange ---
	a, logs := app.SetupAppTest(t, nil)
	dir := testutil.WriteFiles(t, map[string]string{"side.hcl": sidebarHCL})

	// --- Act ---
	l, err := a.ApplyDefinition("workbench", []string{dir}, app.ApplyOptions{})

	// --- Assert ---
	require.NoError(t, err)
	_, err = l.FindPart(engine.PartFilter{ID: "part.side"})
	require.NoError(t, err)

	loaded, err := a.LoadLayout("workbench")
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.False(t, loaded.Migrated)
	assert.True(t, loaded.Layout.Equal(l), "stored layout equals the applied one")
	assert.Contains(t, logs.String(), "Layout definition applied.")
}

func TestApplyDefinition_ExtendsStoredLayout(t *testing.T) {
	a, _ := app.SetupAppTest(t, nil)
	first := testutil.WriteFiles(t, map[string]string{"side.hcl": sidebarHCL})
	second := testutil.WriteFiles(t, map[string]string{"more.hcl": `
		part "part.side" {
		  view "view.2" { activate = true }
		}
	`})

	_, err := a.ApplyDefinition("workbench", []string{first}, app.ApplyOptions{})
	require.NoError(t, err)
	l, err := a.ApplyDefinition("workbench", []string{second}, app.ApplyOptions{})
	require.NoError(t, err)

	p, err := l.FindPart(engine.PartFilter{ID: "part.side"})
	require.NoError(t, err)
	assert.Equal(t, []string{"view.1", "view.2"}, p.ViewIDs())
	assert.Equal(t, "view.2", p.ActiveViewID)

	t.Run("reset starts from scratch", func(t *testing.T) {
		l, err := a.ApplyDefinition("workbench", []string{second}, app.ApplyOptions{Reset: true})
		require.NoError(t, err)
		p, err := l.FindPart(engine.PartFilter{ID: "part.side"})
		require.NoError(t, err)
		assert.Equal(t, []string{"view.2"}, p.ViewIDs())
	})
}

func TestApplyDefinition_MainAreaFromConfig(t *testing.T) {
	cfg := app.TestConfig()
	cfg.Layout.MainArea = true
	a, _ := app.SetupAppTest(t, cfg)
	dir := testutil.WriteFiles(t, map[string]string{"side.hcl": sidebarHCL})

	l, err := a.ApplyDefinition("workbench", []string{dir}, app.ApplyOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{grid.GridMain, grid.GridMainArea}, l.GridNames())
}

func TestMigrateLayout_WritesBackUpgradedPayload(t *testing.T) {
	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "layouts.db")
	ctx, _ := testutil.NewContext(t)
	seed, err := sqlitestore.Open(ctx, path)
	require.NoError(t, err)
	v1 := `{"root":{"type":"MPart","partId":"part.initial","viewIds":["view.1"],"activeViewId":"view.1"},"activePartId":"part.initial"}//1`
	require.NoError(t, seed.Store(ctx, "legacy", base64.StdEncoding.EncodeToString([]byte(v1))))
	require.NoError(t, seed.Close())

	cfg := app.TestConfig()
	cfg.Storage = config.StorageConfig{Type: config.StorageSQLite, Path: path}
	a, _ := app.SetupAppTest(t, cfg)

	// --- Act ---
	loaded, err := a.MigrateLayout("legacy")

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.True(t, loaded.Migrated)
	_, err = loaded.Layout.FindView(engine.ViewFilter{ID: "view.1"})
	require.NoError(t, err)

	again, err := a.LoadLayout("legacy")
	require.NoError(t, err)
	assert.False(t, again.Migrated, "the payload was written back at the current version")
	assert.True(t, again.Layout.Equal(loaded.Layout))
}

func TestMergeLayout_AddsRemoteViews(t *testing.T) {
	// --- Arrange ---
	a, _ := app.SetupAppTest(t, nil)
	base := engine.New(a.Env())
	require.NoError(t, a.SaveLayout("workbench", base))

	remote, err := base.AddView("view.9", engine.AddViewOptions{PartID: grid.InitialPartID})
	require.NoError(t, err)
	baseStr, err := app.EncodeLayout(base)
	require.NoError(t, err)
	remoteStr, err := app.EncodeLayout(remote)
	require.NoError(t, err)

	// --- Act ---
	merged, err := a.MergeLayout("workbench", baseStr, remoteStr)

	// --- Assert ---
	require.NoError(t, err)
	_, err = merged.FindView(engine.ViewFilter{ID: "view.9"})
	require.NoError(t, err)

	loaded, err := a.LoadLayout("workbench")
	require.NoError(t, err)
	assert.True(t, loaded.Layout.Equal(merged))
}

func TestKeys(t *testing.T) {
	a, _ := app.SetupAppTest(t, nil)
	require.NoError(t, a.SaveLayout("b", engine.New(a.Env())))
	require.NoError(t, a.SaveLayout("a", engine.New(a.Env())))

	keys, err := a.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestNewApp_SQLiteStorage(t *testing.T) {
	cfg := app.TestConfig()
	cfg.Storage = config.StorageConfig{
		Type: config.StorageSQLite,
		Path: filepath.Join(t.TempDir(), "nested", "layouts.db"),
	}
	a, _ := app.SetupAppTest(t, cfg)

	l, err := engine.New(a.Env()).AddPart("part.side", "", engine.AddPartOptions{})
	require.NoError(t, err)
	require.NoError(t, a.SaveLayout("workbench", l))

	loaded, err := a.LoadLayout("workbench")
	require.NoError(t, err)
	assert.True(t, loaded.Found)
	assert.True(t, loaded.Layout.Equal(l))
}
