package sqlitestore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_RoundTrip(t *testing.T) {
	// --- Arrange ---
	ctx := testContext()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// --- Act & Assert ---
	_, ok, err := s.Load(ctx, "workbench")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Store(ctx, "workbench", "v1"))
	require.NoError(t, s.Store(ctx, "workbench", "v2"))
	require.NoError(t, s.Store(ctx, "other", "x"))

	value, ok, err := s.Load(ctx, "workbench")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "workbench"}, keys)
}

func TestStore_ReopenKeepsValues(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "layouts.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Store(ctx, "workbench", "persisted"))
	require.NoError(t, s.Close())

	// Opening again runs the migrations as a no-op.
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	value, ok, err := s.Load(ctx, "workbench")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", value)
}
