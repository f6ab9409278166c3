package venv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cmp-tools/cmpenv/internal/model"
)

// Env describes a Python virtual environment rooted at a fixed directory.
//
// The struct is a pure path calculator plus two operations (Exists, Create).
// It never caches filesystem state: every probe goes to disk, so a venv
// created or deleted between calls is observed immediately.
type Env struct {
	// Root is the absolute path to the virtual environment directory
	// (e.g. "/work/project/venv").
	Root string
}

// New creates an Env rooted at the given directory.
// The path is not required to exist; use Exists to probe for it.
func New(root string) *Env {
	return &Env{Root: root}
}

// windows reports whether we are running on Windows, where the venv
// module uses a Scripts\ directory and .exe suffixes instead of bin/.
var windows = runtime.GOOS == "windows"

// BinDir returns the directory inside the venv that holds executables
// and the activation scripts: bin/ on POSIX, Scripts\ on Windows.
func (e *Env) BinDir() string {
	if windows {
		return filepath.Join(e.Root, "Scripts")
	}
	return filepath.Join(e.Root, "bin")
}

// ActivateScript returns the path of the activation marker for this
// environment. Its existence is the precondition every command checks
// before delegating work, matching the layout `python -m venv` creates:
//
//	<root>/bin/activate       (POSIX)
//	<root>\Scripts\activate   (Windows; activate.bat also exists, but the
//	                           extensionless script is present on both)
func (e *Env) ActivateScript() string {
	return filepath.Join(e.BinDir(), "activate")
}

// Python returns the path of the environment's own interpreter.
// Invoking this binary directly is equivalent to activating the venv
// and running "python": the interpreter derives its sys.prefix from
// its own location.
func (e *Env) Python() string {
	return filepath.Join(e.BinDir(), exeName("python"))
}

// Pip returns the path of the environment's own pip executable.
func (e *Env) Pip() string {
	return filepath.Join(e.BinDir(), exeName("pip"))
}

// exeName appends the .exe suffix on Windows.
func exeName(name string) string {
	if windows {
		return name + ".exe"
	}
	return name
}

// fileExists reports whether path exists and is a regular file.
// Directories do not count: a directory named "activate" is not a marker.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Exists reports whether the virtual environment is present, probed via
// the activation marker. A directory that exists but lacks the marker
// (e.g. a half-deleted venv) counts as absent, since activation would
// fail for it too.
func (e *Env) Exists() bool {
	return fileExists(e.ActivateScript())
}

// IsComplete reports whether the environment has both its interpreter
// and pip executable in addition to the activation marker. The doctor
// command uses this stricter probe; the regular commands only gate on
// Exists, matching the activation check the original workflow performed.
func (e *Env) IsComplete() bool {
	return e.Exists() && fileExists(e.Python()) && fileExists(e.Pip())
}

// Create builds the virtual environment by delegating to the base
// interpreter's venv module: `<basePython> -m venv <root>`.
//
// basePython may be a bare command name (resolved via PATH) or a path.
// Output from the venv module is captured and included in the error on
// failure, since venv failures (missing ensurepip, read-only parent
// directory) are only diagnosable from that output.
func (e *Env) Create(ctx context.Context, basePython string) error {
	// #nosec G204 — the interpreter comes from project configuration,
	// not remote input; this tool exists to run it.
	cmd := exec.CommandContext(ctx, basePython, "-m", "venv", e.Root)

	// venv writes progress and errors to both streams depending on the
	// failure mode, so capture them together.
	output, err := cmd.CombinedOutput()
	if err != nil {
		message := fmt.Sprintf("%s -m venv %s failed", basePython, e.Root)
		if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
			message = fmt.Sprintf("%s: %s", message, trimmed)
		}
		return model.WrapCLIError(model.ExitGeneralError, message, err)
	}

	return nil
}

// ResolveInterpreter locates a usable base Python interpreter.
//
// If preferred is non-empty it is tried first; otherwise the conventional
// names are tried in order ("python3" then "python" on POSIX, the reverse
// on Windows where the launcher installs only "python"). Returns the
// resolved absolute path, or a CLIError when no interpreter is on PATH.
func ResolveInterpreter(preferred string) (string, error) {
	candidates := []string{"python3", "python"}
	if windows {
		candidates = []string{"python", "python3"}
	}
	if preferred != "" {
		candidates = append([]string{preferred}, candidates...)
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", model.NewCLIError(model.ExitGeneralError,
		fmt.Sprintf("no Python interpreter found on PATH (tried: %s)", strings.Join(candidates, ", ")))
}
