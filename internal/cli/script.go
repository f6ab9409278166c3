// Package cli — script.go holds the shared run logic behind the fetch and
// tunnel commands: precondition checks, delegation to the venv's Python
// interpreter, and verbatim exit-status propagation.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cmp-tools/cmpenv/internal/config"
	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/runner"
)

// delegatedScript selects which configured script a run command invokes.
type delegatedScript int

const (
	scriptFetch delegatedScript = iota
	scriptTunnel
)

// path returns the absolute script path for the given project.
func (s delegatedScript) path(proj *config.Project, dir string) string {
	if s == scriptTunnel {
		return proj.TunnelScript(dir)
	}
	return proj.FetchScript(dir)
}

// runDelegatedScript runs one of the project's Python scripts inside the
// virtual environment and propagates its exit status exactly.
//
// Contract (shared by fetch and tunnel):
//   - missing venv → diagnostic on stdout, exit 1, script never started;
//   - missing script file → exit 1;
//   - script exits 0 → success message, exit 0;
//   - script exits N ≠ 0 → exit N, not a fixed failure code.
func runDelegatedScript(ctx context.Context, script delegatedScript, extraArgs []string) error {
	// Step 1: Resolve the project root and configuration.
	dir, proj, err := loadProject()
	if err != nil {
		return err
	}

	// Step 2: Precondition — the virtual environment must exist.
	env, err := requireEnv(proj, dir)
	if err != nil {
		return err
	}

	// Step 3: Precondition — the script file must exist. Checking here
	// gives a clear diagnostic instead of the interpreter's "No such file
	// or directory" traceback.
	scriptPath := script.path(proj, dir)
	scriptName := filepath.Base(scriptPath)
	if err := requireFile(scriptPath, scriptName); err != nil {
		return err
	}

	// Step 4: Delegate to the venv's interpreter. The script owns the
	// terminal while it runs — both fetch and tunnel talk to the operator
	// directly, and tunnel runs until interrupted.
	args := append([]string{scriptPath}, extraArgs...)
	VerboseLog("Running %s %v", env.Python(), args)

	r := runner.New(env, dir)
	if runErr := r.Run(ctx, env.Python(), args...); runErr != nil {
		// Propagate the script's own exit status verbatim. ExitStatus
		// maps start failures and signal deaths to 1.
		code := runner.ExitStatus(runErr)
		return model.WrapCLIError(model.ExitCode(code),
			fmt.Sprintf("%s exited with status %d", scriptName, code), runErr)
	}

	// Step 5: Report success.
	fmt.Printf("%s completed successfully.\n", scriptName)
	return nil
}
