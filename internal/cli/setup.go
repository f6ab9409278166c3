// Package cli — setup.go implements the "cmpenv setup" command.
//
// setup installs the project's requirements manifest into the virtual
// environment: precondition checks (venv marker, manifest file), then a
// single delegated `pip install -r requirements.txt` through the venv's
// own pip. Install failures exit with the fixed code 1 regardless of
// pip's own exit status.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmp-tools/cmpenv/internal/pip"
	"github.com/cmp-tools/cmpenv/internal/runner"
)

// NewSetupCommand creates the "setup" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Install project dependencies into the virtual environment",
		Long: `Install the dependencies listed in the requirements manifest into the
project's virtual environment using the environment's own pip.

The virtual environment must already exist (see "cmpenv init").

Examples:
  cmpenv setup
  cmpenv --dir ~/work/cmp setup`,

		// No positional arguments: the manifest path comes from cmpenv.yaml
		// (default requirements.txt).
		Args: cobra.NoArgs,

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context())
		},
	}
}

// runSetup is the main logic function for the setup command.
func runSetup(ctx context.Context) error {
	// Step 1: Resolve the project root and configuration.
	dir, proj, err := loadProject()
	if err != nil {
		return err
	}

	// Step 2: Precondition — the virtual environment must exist.
	// No install is attempted when it does not.
	env, err := requireEnv(proj, dir)
	if err != nil {
		return err
	}

	// Step 3: Precondition — the requirements manifest must exist.
	manifest := proj.RequirementsPath(dir)
	if err := requireFile(manifest, "requirements manifest"); err != nil {
		return err
	}
	VerboseLog("Requirements manifest: %s", manifest)

	// Step 4: Delegate to pip. Output streams through to the operator.
	installer := pip.NewInstaller(runner.New(env, dir))
	if err := installer.InstallRequirements(ctx, manifest); err != nil {
		return err // Installer already returns CLIError with the fixed code 1
	}

	// Step 5: Report success.
	printInstallResult("setup", fmt.Sprintf("Requirements installed successfully from %s.", proj.Requirements))
	return nil
}

// printInstallResult outputs an install-style command's success result in
// text or JSON format, depending on the global --json flag.
func printInstallResult(command, message string) {
	if IsJSONOutput() {
		result := struct {
			Command string `json:"command"`
			Status  string `json:"status"`
			Message string `json:"message"`
		}{Command: command, Status: "ok", Message: message}

		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Println(message)
}
