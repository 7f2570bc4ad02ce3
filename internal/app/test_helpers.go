package app

import (
	"context"
	"os"
	"testing"

	"github.com/specialistvlad/layoutgrid/internal/config"
	"github.com/specialistvlad/layoutgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestConfig returns a debug configuration backed by in-memory storage.
func TestConfig() *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{Type: config.StorageMemory},
		Log:     config.LogConfig{Level: "debug", Format: "text"},
		Layout:  config.LayoutConfig{Key: "workbench"},
	}
}

// SetupAppTest creates a new app instance for system testing. A nil cfg
// means TestConfig. The app is closed when the test finishes.
func SetupAppTest(t *testing.T, cfg *config.Config) (*App, *testutil.SafeBuffer) {
	t.Helper()
	if cfg == nil {
		cfg = TestConfig()
	}

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(context.Background(), logBuffer, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, testApp.Close())
		if os.Getenv("LAYOUTGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}
