// Package cli — initcmd.go implements the "cmpenv init" command.
//
// init is the one command that does not require the virtual environment
// to exist: it creates it, by delegating to the base interpreter's venv
// module, and seeds the placeholder tunnel credentials file. Every other
// command's missing-environment diagnostic points here.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmp-tools/cmpenv/internal/config"
	"github.com/cmp-tools/cmpenv/internal/venv"
)

// NewInitCommand creates the "init" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the project's virtual environment",
		Long: `Create the project's Python virtual environment using the base
interpreter's venv module, and seed an example config.json for the
tunnel script if none exists.

Running init on a project that already has a virtual environment is a
no-op and exits successfully.

Examples:
  cmpenv init
  cmpenv --dir ~/work/cmp init`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.Context())
		},
	}
}

// runInit is the main logic function for the init command.
func runInit(ctx context.Context) error {
	// Step 1: Resolve the project root and configuration.
	dir, proj, err := loadProject()
	if err != nil {
		return err
	}

	// Step 2: Idempotence — an existing environment is left untouched.
	env := venv.New(proj.VenvRoot(dir))
	if env.Exists() {
		fmt.Printf("Virtual environment already exists at %s.\n", env.Root)
		return nil
	}

	// Step 3: Locate a base interpreter. The configured name is tried
	// first; conventional names are the fallback.
	interpreter, err := venv.ResolveInterpreter(proj.Python)
	if err != nil {
		return err
	}
	VerboseLog("Base interpreter: %s", interpreter)

	// Step 4: Delegate to `python -m venv`.
	fmt.Printf("Creating virtual environment at %s...\n", env.Root)
	if err := env.Create(ctx, interpreter); err != nil {
		return err // Create already returns CLIError
	}

	// Step 5: Seed the tunnel credentials example if the file is absent.
	// An existing config.json may hold a real token and is never touched.
	tunnelPath := config.TunnelPath(dir)
	if _, loadErr := config.LoadTunnel(tunnelPath); loadErr != nil {
		if writeErr := config.WriteTunnelExample(tunnelPath); writeErr == nil {
			fmt.Printf("Created example %s — add your ngrok authtoken before running \"cmpenv tunnel\".\n", config.TunnelFileName)
		} else {
			VerboseLog("Skipping tunnel config example: %v", writeErr)
		}
	}

	// Step 6: Report success and the natural next step.
	printInstallResult("init", fmt.Sprintf("Virtual environment created at %s. Next: \"cmpenv setup\".", env.Root))
	return nil
}
