package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_NoFile verifies that a project without cmpenv.yaml gets the
// conventional defaults: venv/, requirements.txt, the Bloomberg index,
// and the two standard scripts.
func TestLoad_NoFile(t *testing.T) {
	proj, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "venv", proj.Venv)
	assert.Equal(t, "requirements.txt", proj.Requirements)
	assert.Equal(t, "blpapi", proj.Blpapi.Package)
	assert.Equal(t, "https://blpapi.bloomberg.com/repository/releases/python/simple/", proj.Blpapi.IndexURL)
	assert.Equal(t, "fetch.py", proj.Scripts.Fetch)
	assert.Equal(t, "tunnel.py", proj.Scripts.Tunnel)
	assert.Empty(t, proj.Python, "base interpreter defaults to PATH resolution, not a fixed name")
}

// TestLoad_Overrides verifies that cmpenv.yaml values replace the
// defaults while omitted keys keep theirs.
func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	content := `python: python3.12
venv: .venv
blpapi:
  package: blpapi==3.24.11
scripts:
  fetch: scripts/fetch.py
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	proj, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "python3.12", proj.Python)
	assert.Equal(t, ".venv", proj.Venv)
	assert.Equal(t, "blpapi==3.24.11", proj.Blpapi.Package)
	assert.Equal(t, filepath.Join("scripts", "fetch.py"), filepath.FromSlash(proj.Scripts.Fetch))

	// Omitted keys keep their defaults.
	assert.Equal(t, "requirements.txt", proj.Requirements)
	assert.Equal(t, "https://blpapi.bloomberg.com/repository/releases/python/simple/", proj.Blpapi.IndexURL)
	assert.Equal(t, "tunnel.py", proj.Scripts.Tunnel)
}

// TestLoad_EmptyValuesRefilled verifies that keys present in the file but
// set to empty strings fall back to defaults instead of producing unusable
// empty paths.
func TestLoad_EmptyValuesRefilled(t *testing.T) {
	dir := t.TempDir()
	content := `venv: ""
requirements: ""
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	proj, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "venv", proj.Venv)
	assert.Equal(t, "requirements.txt", proj.Requirements)
}

// TestLoad_Malformed verifies that a syntactically broken cmpenv.yaml is
// reported as an error rather than silently ignored.
func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("venv: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

// TestProject_PathHelpers verifies that the path accessors join relative
// settings onto the project root.
func TestProject_PathHelpers(t *testing.T) {
	proj := Defaults()
	dir := filepath.Join("home", "op", "cmp")

	assert.Equal(t, filepath.Join(dir, "venv"), proj.VenvRoot(dir))
	assert.Equal(t, filepath.Join(dir, "requirements.txt"), proj.RequirementsPath(dir))
	assert.Equal(t, filepath.Join(dir, "fetch.py"), proj.FetchScript(dir))
	assert.Equal(t, filepath.Join(dir, "tunnel.py"), proj.TunnelScript(dir))
}
