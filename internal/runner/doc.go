// Package runner executes the delegated commands that cmpenv wraps:
// pip installs and the fetch/tunnel Python scripts.
//
// Each command in this tool exists to run exactly one child process inside
// an activated virtual environment. Activation is reproduced directly as
// environment mutation (VIRTUAL_ENV, PATH, PYTHONHOME) rather than by
// sourcing the activation script, which a non-shell parent cannot do and
// does not need to — the script performs the same mutations.
//
// The package offers two execution modes matching the two kinds of
// delegation in the CLI:
//   - Run streams the child's stdio through to the operator, for the
//     long-running, interactive installers and scripts.
//   - Output captures combined output quietly, for doctor probes.
//
// ExitStatus translates a Run error into the child's process exit code,
// which the run-style commands propagate verbatim.
package runner
