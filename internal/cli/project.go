// Package cli — project.go holds the shared precondition helpers used by
// every subcommand: resolving the project root, loading configuration,
// and the virtual-environment existence check that gates all delegated
// commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmp-tools/cmpenv/internal/config"
	"github.com/cmp-tools/cmpenv/internal/model"
	"github.com/cmp-tools/cmpenv/internal/venv"
)

// loadProject resolves the --dir flag to an absolute project root and
// loads the effective project configuration.
func loadProject() (string, *config.Project, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", nil, model.WrapCLIError(model.ExitGeneralError, "failed to resolve project directory", err)
	}

	proj, err := config.Load(dir)
	if err != nil {
		return "", nil, err // config.Load already returns CLIError
	}

	VerboseLog("Project root: %s", dir)
	return dir, proj, nil
}

// requireEnv is the precondition every delegated command is gated on:
// the virtual environment's activation marker must exist.
//
// On failure it prints the operator-facing diagnostic on stdout — the
// remedy, not just the error — and returns a CLIError with the fixed
// exit code 1. No delegated command runs after this returns an error.
func requireEnv(proj *config.Project, dir string) (*venv.Env, error) {
	env := venv.New(proj.VenvRoot(dir))
	if !env.Exists() {
		fmt.Printf("Virtual environment not found at %s.\n", env.Root)
		fmt.Println("Run \"cmpenv init\" to create it.")
		return nil, model.NewCLIError(model.ExitGeneralError, "virtual environment not found")
	}

	VerboseLog("Virtual environment: %s", env.Root)
	return env, nil
}

// requireFile checks that a file the delegated command depends on exists,
// returning a CLIError with the fixed exit code 1 when it does not.
// label names the file in operator terms ("requirements manifest",
// "fetch script").
func requireFile(path, label string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("%s not found at %s", label, path))
	}
	return nil
}
