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
		a {
		  b = 1
		}
	`
	assert.Equal(t, "a {\n  b = 1\n}\n", Unindent(in))
	assert.Equal(t, "", Unindent("\n\n"))
}

func TestWriteFiles(t *testing.T) {
	root := WriteFiles(t, map[string]string{
		"grid/main.hcl": "\n    x = 1\n",
	})
	got, err := os.ReadFile(filepath.Join(root, "grid", "main.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(got))
}
