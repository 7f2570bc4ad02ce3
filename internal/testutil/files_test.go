package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnindent(t *testing.T) {
	in := `
		part "a" {
		  ratio = 0.5
		}
	`
	assert.Equal(t, "part \"a\" {\n  ratio = 0.5\n}", Unindent(in))
	assert.Equal(t, "", Unindent("\n\n"))
	assert.Equal(t, "flat", Unindent("flat"))
}

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{"nested/a.hcl": "  x = 1\n"})
	content, err := os.ReadFile(filepath.Join(dir, "nested", "a.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(content))
}

func TestSeqIDs(t *testing.T) {
	ids := &SeqIDs{}
	assert.Equal(t, "node.1", ids.NodeID())
	assert.Equal(t, "nav.2", ids.NavigationID())
}
