package runner

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmp-tools/cmpenv/internal/venv"
)

// testEnv builds an Env rooted in a temp directory. The venv does not need
// to actually exist for environment-construction tests.
func testEnv(t *testing.T) *venv.Env {
	t.Helper()
	return venv.New(filepath.Join(t.TempDir(), "venv"))
}

// TestActivationEnv_PathPrepended verifies that the venv's executable
// directory is prepended to an existing PATH entry, so the venv's python
// and pip shadow any system-wide ones — the same effect as sourcing the
// activation script.
func TestActivationEnv_PathPrepended(t *testing.T) {
	env := testEnv(t)
	base := []string{"HOME=/home/op", "PATH=/usr/bin:/bin"}

	result := ActivationEnv(env, base)

	wantPath := "PATH=" + env.BinDir() + string(filepath.ListSeparator) + "/usr/bin:/bin"
	assert.Contains(t, result, wantPath)
	assert.Contains(t, result, "HOME=/home/op")
}

// TestActivationEnv_VirtualEnvSet verifies that VIRTUAL_ENV points at the
// venv root, replacing any inherited value from another activated
// environment.
func TestActivationEnv_VirtualEnvSet(t *testing.T) {
	env := testEnv(t)
	base := []string{"PATH=/usr/bin", "VIRTUAL_ENV=/somewhere/else"}

	result := ActivationEnv(env, base)

	assert.Contains(t, result, "VIRTUAL_ENV="+env.Root)
	assert.NotContains(t, result, "VIRTUAL_ENV=/somewhere/else")
}

// TestActivationEnv_PythonHomeDropped verifies that PYTHONHOME is removed.
// An inherited PYTHONHOME would override the venv's prefix and defeat the
// isolation entirely.
func TestActivationEnv_PythonHomeDropped(t *testing.T) {
	env := testEnv(t)
	base := []string{"PYTHONHOME=/opt/python", "PATH=/usr/bin"}

	result := ActivationEnv(env, base)

	for _, entry := range result {
		assert.False(t, strings.HasPrefix(strings.ToUpper(entry), "PYTHONHOME="),
			"PYTHONHOME should be removed, got %q", entry)
	}
}

// TestActivationEnv_NoPath verifies that a base environment without any
// PATH entry still ends up with the venv's executable directory on PATH.
func TestActivationEnv_NoPath(t *testing.T) {
	env := testEnv(t)

	result := ActivationEnv(env, []string{"HOME=/home/op"})

	assert.Contains(t, result, "PATH="+env.BinDir())
}

// TestExitStatus_Nil verifies the success mapping.
func TestExitStatus_Nil(t *testing.T) {
	assert.Equal(t, 0, ExitStatus(nil))
}

// TestExitStatus_GenericError verifies that non-exec errors (command not
// found, context cancelled before start) map to exit code 1.
func TestExitStatus_GenericError(t *testing.T) {
	assert.Equal(t, 1, ExitStatus(errors.New("executable file not found")))
}

// TestRun_PropagatesExitCode verifies exact exit-code propagation through
// a real child process: a shell exiting 3 must surface as 3, not as a
// generic failure code.
func TestRun_PropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test fixture shells out to sh")
	}

	r := New(testEnv(t), t.TempDir())
	r.Stdout = &bytes.Buffer{}
	r.Stderr = &bytes.Buffer{}

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, ExitStatus(err))
}

// TestRun_StreamsOutput verifies that the child's stdout reaches the
// configured writer, since the delegated scripts talk to the operator
// directly.
func TestRun_StreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test fixture shells out to sh")
	}

	var stdout bytes.Buffer
	r := New(testEnv(t), t.TempDir())
	r.Stdout = &stdout
	r.Stderr = &bytes.Buffer{}

	err := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(stdout.String()))
}

// TestRun_ChildSeesActivation verifies that the child process observes the
// activation environment (VIRTUAL_ENV here, as a proxy for the full set).
func TestRun_ChildSeesActivation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test fixture shells out to sh")
	}

	env := testEnv(t)
	var stdout bytes.Buffer
	r := New(env, t.TempDir())
	r.Stdout = &stdout
	r.Stderr = &bytes.Buffer{}

	err := r.Run(context.Background(), "sh", "-c", "echo \"$VIRTUAL_ENV\"")
	require.NoError(t, err)
	assert.Equal(t, env.Root, strings.TrimSpace(stdout.String()))
}

// TestOutput_CapturesQuietly verifies that Output returns the child's
// combined output without needing the streaming writers.
func TestOutput_CapturesQuietly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test fixture shells out to sh")
	}

	r := New(testEnv(t), t.TempDir())

	out, err := r.Output(context.Background(), "sh", "-c", "echo probe; echo detail 1>&2")
	require.NoError(t, err)
	assert.Contains(t, out, "probe")
	assert.Contains(t, out, "detail")
}

// TestOutput_ErrorKeepsOutput verifies that a failing probe still returns
// whatever the child printed, which the doctor includes in its findings.
func TestOutput_ErrorKeepsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test fixture shells out to sh")
	}

	r := New(testEnv(t), t.TempDir())

	out, err := r.Output(context.Background(), "sh", "-c", "echo no module named blpapi 1>&2; exit 1")
	require.Error(t, err)
	assert.Contains(t, out, "no module named blpapi")
}
