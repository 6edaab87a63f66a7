package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDumpCommandWritesJSONEnvelope(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pkg/__init__.py", "def greet():\n    pass\n")

	cmd := newDumpCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"pkg", "-s", root})
	require.NoError(t, cmd.Execute())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.NotEmpty(t, payload["schema_version"])
	modules, ok := payload["modules"].(map[string]any)
	require.True(t, ok)
	_, ok = modules["pkg"]
	assert.True(t, ok)
}

func TestDumpCommandWithDigestFlag(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pkg/__init__.py", "def greet():\n    pass\n")

	cmd := newDumpCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"pkg", "-s", root, "--digest"})
	require.NoError(t, cmd.Execute())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	digest, ok := payload["digest"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, digest)
}

func TestDumpCommandWritesToFileWhenOutputGiven(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "pkg/__init__.py", "")

	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "{package}.json")

	cmd := newDumpCommand()
	cmd.SetArgs([]string{"pkg", "-s", root, "-o", outPath})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(outDir, "pkg.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "schema_version")
}
