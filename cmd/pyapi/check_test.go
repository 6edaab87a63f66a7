package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCommandReportsNoBreakageForIdenticalSources(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "pkg", "__init__.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("def greet():\n    pass\n"), 0o644))

	cmd := newCheckCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"pkg", "-s", root})
	require.NoError(t, cmd.Execute())
}
