// Package cli — doctor_test.go covers the doctor command's check
// assembly. The blpapi import probe is stubbed so no child process runs,
// and the base-interpreter check is ignored where asserted statuses would
// otherwise depend on the test machine having Python installed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmp-tools/cmpenv/internal/config"
	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/venv"
)

// findCheck returns the result with the given name, failing the test if
// it is absent.
func findCheck(t *testing.T, results []model.CheckResult, name string) model.CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("check %q not found in %v", name, results)
	return model.CheckResult{}
}

// makeCompleteProject lays out a project that passes every filesystem
// check: complete venv, requirements manifest, both scripts, and a
// config.json with a real-looking token.
func makeCompleteProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	env := makeVenv(t, dir)
	require.NoError(t, os.WriteFile(env.Python(), []byte("#!\n"), 0o755))
	require.NoError(t, os.WriteFile(env.Pip(), []byte("#!\n"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("pandas\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fetch.py"), []byte("#\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tunnel.py"), []byte("#\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.TunnelFileName),
		[]byte(`{"ngrok_authtoken": "2abc_real_token"}`), 0o600))

	return dir
}

// TestDoctorChecks_EmptyProject verifies that a bare directory fails the
// venv, manifest, and script checks, and only warns about the tunnel
// config (which init would seed).
func TestDoctorChecks_EmptyProject(t *testing.T) {
	dir := t.TempDir()
	proj := config.Defaults()

	results := doctorChecks(context.Background(), dir, &proj, nil)

	assert.Equal(t, model.CheckFail, findCheck(t, results, "venv").Status)
	assert.Equal(t, model.CheckFail, findCheck(t, results, "requirements").Status)
	assert.Equal(t, model.CheckFail, findCheck(t, results, "fetch-script").Status)
	assert.Equal(t, model.CheckFail, findCheck(t, results, "tunnel-script").Status)
	assert.Equal(t, model.CheckWarn, findCheck(t, results, "tunnel-config").Status)
	assert.True(t, model.AnyFailed(results))

	// The venv failure carries the remedy.
	assert.Contains(t, findCheck(t, results, "venv").Detail, "cmpenv init")
}

// TestDoctorChecks_IncompleteVenv verifies that an activation marker
// without interpreter and pip is reported as incomplete rather than
// passing the venv check.
func TestDoctorChecks_IncompleteVenv(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir)
	proj := config.Defaults()

	results := doctorChecks(context.Background(), dir, &proj, nil)

	venvCheck := findCheck(t, results, "venv")
	assert.Equal(t, model.CheckFail, venvCheck.Status)
	assert.Contains(t, venvCheck.Detail, "incomplete")
}

// TestDoctorChecks_CompleteProject verifies the all-clear case, with the
// import probe stubbed to succeed.
func TestDoctorChecks_CompleteProject(t *testing.T) {
	dir := makeCompleteProject(t)
	proj := config.Defaults()

	probe := func(ctx context.Context, env *venv.Env) (string, error) { return "", nil }
	results := doctorChecks(context.Background(), dir, &proj, probe)

	for _, name := range []string{"venv", "requirements", "fetch-script", "tunnel-script", "tunnel-config", "blpapi"} {
		assert.Equal(t, model.CheckPass, findCheck(t, results, name).Status, "check %q", name)
	}
	assert.False(t, model.AnyFailed(results))
}

// TestDoctorChecks_BlpapiNotInstalled verifies that a failing import
// probe is a warning that names the remedy, not a failure — the
// environment itself is healthy.
func TestDoctorChecks_BlpapiNotInstalled(t *testing.T) {
	dir := makeCompleteProject(t)
	proj := config.Defaults()

	probe := func(ctx context.Context, env *venv.Env) (string, error) {
		return "ModuleNotFoundError: No module named 'blpapi'", errors.New("exit status 1")
	}
	results := doctorChecks(context.Background(), dir, &proj, probe)

	blpapi := findCheck(t, results, "blpapi")
	assert.Equal(t, model.CheckWarn, blpapi.Status)
	assert.Contains(t, blpapi.Detail, "cmpenv install-blpapi")
	assert.Contains(t, blpapi.Detail, "No module named 'blpapi'")
	assert.False(t, model.AnyFailed(results))
}

// TestDoctorChecks_ProbeSkippedForIncompleteVenv verifies that the import
// probe is not attempted when the venv cannot run it.
func TestDoctorChecks_ProbeSkippedForIncompleteVenv(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir) // marker only, no interpreter
	proj := config.Defaults()

	probe := func(ctx context.Context, env *venv.Env) (string, error) {
		t.Fatal("probe must not run against an incomplete venv")
		return "", nil
	}
	results := doctorChecks(context.Background(), dir, &proj, probe)

	for _, r := range results {
		assert.NotEqual(t, "blpapi", r.Name, "blpapi check should be absent")
	}
}

// TestTunnelConfigCheck verifies the three config.json outcomes: missing
// (warn), placeholder token (warn with the dashboard pointer), and
// unparseable (fail).
func TestTunnelConfigCheck(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		result := tunnelConfigCheck(t.TempDir())
		assert.Equal(t, model.CheckWarn, result.Status)
		assert.Contains(t, result.Detail, "cmpenv init")
	})

	t.Run("placeholder token", func(t *testing.T) {
		dir := t.TempDir()
		content := fmt.Sprintf(`{"ngrok_authtoken": %q}`, config.PlaceholderToken)
		require.NoError(t, os.WriteFile(config.TunnelPath(dir), []byte(content), 0o600))

		result := tunnelConfigCheck(dir)
		assert.Equal(t, model.CheckWarn, result.Status)
		assert.Contains(t, result.Detail, "dashboard.ngrok.com")
	})

	t.Run("unparseable", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(config.TunnelPath(dir), []byte("{not json"), 0o600))

		result := tunnelConfigCheck(dir)
		assert.Equal(t, model.CheckFail, result.Status)
	})
}
