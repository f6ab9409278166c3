package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cmp-tools/cmpenv/internal/venv"
)

// Runner executes child processes inside an activated virtual environment.
//
// It is a thin wrapper over os/exec: the value it adds is the activation
// environment and consistent exit-status handling. A Runner is cheap and
// stateless; commands construct one per invocation.
type Runner struct {
	// Env is the virtual environment whose activation the children inherit.
	Env *venv.Env

	// Dir is the working directory for children (the project root, so the
	// delegated scripts resolve their relative paths the same way they
	// would when run by hand from that directory).
	Dir string

	// Stdout and Stderr receive the child's streamed output in Run.
	// They default to the process's own streams; tests redirect them.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner for the given environment and working directory.
func New(env *venv.Env, dir string) *Runner {
	return &Runner{
		Env:    env,
		Dir:    dir,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// ActivationEnv returns base with the virtual environment activated:
// VIRTUAL_ENV points at the venv root, the venv's executable directory is
// prepended to PATH, and PYTHONHOME is removed. These are exactly the
// mutations the activation script performs, so a child started with this
// environment behaves as if the operator had sourced it.
//
// base is typically os.Environ(); it is taken as a parameter so the
// transformation stays a pure function.
func ActivationEnv(env *venv.Env, base []string) []string {
	result := make([]string, 0, len(base)+2)

	pathSeen := false
	for _, entry := range base {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			result = append(result, entry)
			continue
		}
		switch {
		// PYTHONHOME would override the venv's own prefix and break the
		// isolation, so activation always unsets it.
		case strings.EqualFold(key, "PYTHONHOME"):
			continue
		// An inherited VIRTUAL_ENV from some other activated environment
		// is replaced below.
		case strings.EqualFold(key, "VIRTUAL_ENV"):
			continue
		case strings.EqualFold(key, "PATH"):
			pathSeen = true
			result = append(result, key+"="+env.BinDir()+string(os.PathListSeparator)+value)
		default:
			result = append(result, entry)
		}
	}

	if !pathSeen {
		result = append(result, "PATH="+env.BinDir())
	}
	result = append(result, "VIRTUAL_ENV="+env.Root)

	return result
}

// Run starts the named command with the activation environment and waits
// for it to finish, streaming its stdout and stderr through to the
// operator. Stdin is connected as well: the tunnel script, for one, runs
// until interrupted.
//
// The returned error is the raw os/exec error; callers translate it with
// ExitStatus when they need the child's exit code.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	// #nosec G204 — the command and arguments are assembled from project
	// configuration by this tool, not from untrusted input.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = ActivationEnv(r.Env, os.Environ())

	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Stdin = os.Stdin

	return cmd.Run()
}

// Output runs the named command with the activation environment and
// returns its combined stdout and stderr, without echoing anything to the
// operator. Used for quiet probes such as the doctor's blpapi import check.
func (r *Runner) Output(ctx context.Context, name string, args ...string) (string, error) {
	// #nosec G204 — see Run.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Env = ActivationEnv(r.Env, os.Environ())

	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// ExitStatus translates an error returned by Run into the process exit
// code the CLI should report:
//
//	nil                      → 0
//	*exec.ExitError (code N) → N
//	*exec.ExitError (signal) → 1 (os/exec reports -1, which os.Exit rejects)
//	anything else            → 1 (the command could not be started at all)
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
		return 1
	}

	return 1
}
