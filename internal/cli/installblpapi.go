// Package cli — installblpapi.go implements the "cmpenv install-blpapi"
// command.
//
// blpapi is not published on PyPI; it lives on Bloomberg's private package
// index. This command wraps the one pip invocation that knows about the
// index, so operators never have to remember the URL. Like setup, install
// failures exit with the fixed code 1.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmp-tools/cmpenv/internal/pip"
	"github.com/cmp-tools/cmpenv/internal/runner"
)

// installBlpapiFlags holds the flag values for the install-blpapi command.
// These are bound to cobra flags in NewInstallBlpapiCommand.
type installBlpapiFlags struct {
	pkg      string // --package: pip requirement override (e.g. a pinned version)
	indexURL string // --index-url: package index override (e.g. an internal mirror)
}

// NewInstallBlpapiCommand creates the "install-blpapi" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInstallBlpapiCommand() *cobra.Command {
	flags := &installBlpapiFlags{}

	cmd := &cobra.Command{
		Use:   "install-blpapi",
		Short: "Install the Bloomberg blpapi package from the vendor index",
		Long: `Install the Bloomberg blpapi Python package into the project's virtual
environment from Bloomberg's private package index.

The virtual environment must already exist (see "cmpenv init"), and the
machine needs network access to the index.

Examples:
  cmpenv install-blpapi
  cmpenv install-blpapi --package "blpapi==3.24.11"
  cmpenv install-blpapi --index-url https://mirror.internal/simple/`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstallBlpapi(cmd.Context(), flags)
		},
	}

	// Flag defaults are left empty so precedence is handled in one place:
	// flag > cmpenv.yaml > built-in Bloomberg defaults.
	cmd.Flags().StringVar(&flags.pkg, "package", "", "Pip requirement to install (default from cmpenv.yaml, then \"blpapi\")")
	cmd.Flags().StringVar(&flags.indexURL, "index-url", "", "Package index URL (default from cmpenv.yaml, then the Bloomberg index)")

	return cmd
}

// runInstallBlpapi is the main logic function for the install-blpapi command.
func runInstallBlpapi(ctx context.Context, flags *installBlpapiFlags) error {
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

	// Step 3: Resolve the package and index with flag > config precedence.
	// The config values are already default-filled, so empty means the
	// flag was not set.
	pkg := flags.pkg
	if pkg == "" {
		pkg = proj.Blpapi.Package
	}
	indexURL := flags.indexURL
	if indexURL == "" {
		indexURL = proj.Blpapi.IndexURL
	}
	VerboseLog("Installing %s from %s", pkg, indexURL)

	// Step 4: Delegate to pip.
	installer := pip.NewInstaller(runner.New(env, dir))
	if err := installer.InstallPackage(ctx, pkg, indexURL); err != nil {
		return err // Installer already returns CLIError with the fixed code 1
	}

	// Step 5: Report success.
	printInstallResult("install-blpapi", fmt.Sprintf("%s installed successfully.", pkg))
	return nil
}
